package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
)

// Имена cookie с токенами
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "недостаточно прав"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenParser проверяет access токен
type TokenParser interface {
	ParseAccessToken(token string) (*models.Claims, error)
}

// Auth проверяет access токен из cookie access_token или заголовка Authorization: Bearer
// и кладёт claims в контекст запроса
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := AccessTokenFromRequest(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			claims, err := parser.ParseAccessToken(token)
			if err != nil {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole пропускает только запросы с одной из указанных ролей. Ставится после Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// AccessTokenFromRequest достаёт access токен: сначала явный Bearer заголовок, затем cookie
func AccessTokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token
		}
	}

	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// WithClaims кладёт claims в контекст
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims возвращает claims аутентифицированного пользователя
func GetClaims(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.Claims)
	return claims, ok && claims != nil
}

// GetUsername возвращает логин аутентифицированного пользователя
func GetUsername(ctx context.Context) (string, bool) {
	claims, ok := GetClaims(ctx)
	if !ok || claims.Username == "" {
		return "", false
	}
	return claims.Username, true
}
