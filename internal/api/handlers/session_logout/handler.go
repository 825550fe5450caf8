package session_logout

import (
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
)

const msgLoggedOut = "выход выполнен"

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

// Handle POST /session/logout
// Cookie стираются даже если отозвать токен не удалось.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		token = cookie.Value
	}

	handlers.ClearCookie(w, middleware.AccessTokenCookie, h.secureCookie)
	handlers.ClearCookie(w, middleware.RefreshTokenCookie, h.secureCookie)

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Error("POST /session/logout - Failed to revoke refresh token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /session/logout - Logged out")
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgLoggedOut})
}
