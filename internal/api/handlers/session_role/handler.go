package session_role

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions"
)

const (
	msgMissingToken = "токен не передан"
	msgInvalidToken = "недействительный токен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /session/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := middleware.AccessTokenFromRequest(r)
	if token == "" {
		h.logger.Warn("GET /session/role - Missing access token")
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	role, err := h.service.Role(r.Context(), token)
	if err != nil {
		if errors.Is(err, sessions.ErrInvalidToken) {
			h.logger.Warn("GET /session/role - Invalid access token")
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}
		h.logger.Error("GET /session/role - Failed to resolve role: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, role)
}
