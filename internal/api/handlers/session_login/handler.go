package session_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCredentials = "необходимо указать логин и пароль"
	msgInvalidCredentials = "неверный логин или пароль"
	msgLoggedIn           = "вход выполнен"
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

// Handle POST /session/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tokens, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /session/login - Missing credentials")
			handlers.RespondBadRequest(w, msgMissingCredentials)

		case errors.Is(err, sessions.ErrInvalidCredentials):
			h.logger.Warn("POST /session/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /session/login - Failed to login: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.SetTokenCookie(w, middleware.AccessTokenCookie, tokens.AccessToken, tokens.AccessExpiresAt, h.secureCookie)
	handlers.SetTokenCookie(w, middleware.RefreshTokenCookie, tokens.RefreshToken, tokens.RefreshExpiresAt, h.secureCookie)

	h.logger.Info("POST /session/login - Logged in: username=%s, role=%s", tokens.Username, tokens.Role)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(tokens))
}
