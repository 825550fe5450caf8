package sessions

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	userRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-MovingService/internal/infra/session"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
	issuer            = "smc-moving-service"
)

// Config параметры выдачи токенов
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AdminUsername string
	AdminPassword string
}

// Service сервис сессий: вход, обновление access токена, выход, роль
type Service struct {
	userRepo     UserRepository
	tokenStore   TokenStore
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(userRepo UserRepository, tokenStore TokenStore, cfg Config, logger Logger) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Service{
		userRepo:     userRepo,
		tokenStore:   tokenStore,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет учетные данные и выдает пару токенов.
// Сначала сверяется служебная учетная запись администратора, затем пользователи из БД.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Tokens, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	var claims models.Claims
	if s.isAdmin(username, password) {
		claims = models.Claims{Username: username, Role: domain.RoleAdmin}
	} else {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				s.logger.Warn("Login: unknown user=%s", username)
				return nil, ErrInvalidCredentials
			}
			s.logger.Error("Login: failed to get user=%s: %v", username, err)
			return nil, fmt.Errorf("%w: Login - get user: %v", ErrInternal, err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			s.logger.Warn("Login: wrong password for user=%s", username)
			return nil, ErrInvalidCredentials
		}
		claims = models.Claims{Username: user.Username, UserID: user.ID, Role: domain.RoleUser}
	}

	now := s.timeProvider.Now()

	access, accessExp, err := s.sign(claims, models.TokenTypeAccess, now)
	if err != nil {
		s.logger.Error("Login: failed to sign access token for user=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - sign access token: %v", ErrInternal, err)
	}

	refresh, refreshExp, err := s.sign(claims, models.TokenTypeRefresh, now)
	if err != nil {
		s.logger.Error("Login: failed to sign refresh token for user=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - sign refresh token: %v", ErrInternal, err)
	}

	if err := s.tokenStore.Save(ctx, refresh, claims.Username, s.cfg.RefreshTTL); err != nil {
		s.logger.Error("Login: failed to store refresh token for user=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - store refresh token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%s logged in with role=%s", claims.Username, claims.Role)

	return &models.Tokens{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
		Username:         claims.Username,
		Role:             claims.Role,
	}, nil
}

// Refresh выдает новый access токен по действующему refresh токену
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.AccessToken, error) {
	claims, err := s.parse(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		s.logger.Warn("Refresh: invalid refresh token: %v", err)
		return nil, ErrInvalidToken
	}

	owner, err := s.tokenStore.Lookup(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrTokenNotFound) {
			s.logger.Warn("Refresh: refresh token of user=%s is revoked", claims.Username)
			return nil, ErrInvalidToken
		}
		s.logger.Error("Refresh: token store error: %v", err)
		return nil, fmt.Errorf("%w: Refresh - lookup token: %v", ErrInternal, err)
	}
	if owner != claims.Username {
		s.logger.Warn("Refresh: token owner mismatch for user=%s", claims.Username)
		return nil, ErrInvalidToken
	}

	access, exp, err := s.sign(*claims, models.TokenTypeAccess, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Refresh: failed to sign access token for user=%s: %v", claims.Username, err)
		return nil, fmt.Errorf("%w: Refresh - sign access token: %v", ErrInternal, err)
	}

	return &models.AccessToken{Token: access, ExpiresAt: exp}, nil
}

// Logout отзывает refresh токен. Пустой токен ошибкой не считается.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokenStore.Delete(ctx, refreshToken); err != nil {
		s.logger.Error("Logout: failed to delete refresh token: %v", err)
		return fmt.Errorf("%w: Logout - delete token: %v", ErrInternal, err)
	}
	return nil
}

// Role возвращает логин и роль владельца access токена
func (s *Service) Role(_ context.Context, accessToken string) (*models.RoleResponse, error) {
	claims, err := s.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	return &models.RoleResponse{Username: claims.Username, Role: claims.Role}, nil
}

// ParseAccessToken проверяет access токен (используется middleware аутентификации)
func (s *Service) ParseAccessToken(token string) (*models.Claims, error) {
	claims, err := s.parse(token, models.TokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *Service) isAdmin(username, password string) bool {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return userOK && passOK
}

func (s *Service) sign(base models.Claims, tokenType string, now time.Time) (string, time.Time, error) {
	secret, ttl := s.cfg.AccessSecret, s.cfg.AccessTTL
	if tokenType == models.TokenTypeRefresh {
		secret, ttl = s.cfg.RefreshSecret, s.cfg.RefreshTTL
	}

	exp := now.Add(ttl)
	claims := models.Claims{
		Username:  base.Username,
		UserID:    base.UserID,
		Role:      base.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   base.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Service) parse(token, tokenType string) (*models.Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	secret := s.cfg.AccessSecret
	if tokenType == models.TokenTypeRefresh {
		secret = s.cfg.RefreshSecret
	}

	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("unexpected token type %q", claims.TokenType)
	}
	return claims, nil
}
