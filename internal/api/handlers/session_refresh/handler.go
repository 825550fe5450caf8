package session_refresh

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions"
)

const (
	msgSessionExpired = "сессия истекла, войдите снова"
	msgRefreshed      = "токен обновлён"
)

type Handler struct {
	service      SessionService
	secureCookie bool
	logger       Logger
}

func NewHandler(service SessionService, secureCookie bool, logger Logger) *Handler {
	return &Handler{
		service:      service,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Handle POST /session/refresh-token
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		h.logger.Warn("POST /session/refresh-token - Missing refresh token")
		h.expire(w)
		return
	}

	access, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, sessions.ErrInvalidToken) {
			h.logger.Warn("POST /session/refresh-token - Invalid refresh token")
			h.expire(w)
			return
		}
		h.logger.Error("POST /session/refresh-token - Failed to refresh token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.SetTokenCookie(w, middleware.AccessTokenCookie, access.Token, access.ExpiresAt, h.secureCookie)

	h.logger.Info("POST /session/refresh-token - Access token refreshed")
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgRefreshed})
}

// expire стирает оба cookie и просит клиента войти заново
func (h *Handler) expire(w http.ResponseWriter) {
	handlers.ClearCookie(w, middleware.AccessTokenCookie, h.secureCookie)
	handlers.ClearCookie(w, middleware.RefreshTokenCookie, h.secureCookie)
	handlers.RespondUnauthorized(w, msgSessionExpired)
}
