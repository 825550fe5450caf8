package get_user_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/appointments"
)

const (
	msgMissingUser     = "требуется авторизация"
	msgForbidden       = "доступ запрещен"
	msgInvalidUsername = "некорректное имя пользователя"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /appointment/user/{username}
// Пользователь видит только свои заявки, администратор любые.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("GET /appointment/user/{username} - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if claims.Role != domain.RoleAdmin && claims.Username != username {
		h.logger.Warn("GET /appointment/user/{username} - Access denied: caller=%s, username=%s", claims.Username, username)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	list, err := h.service.GetByUser(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointment/user/{username} - Invalid username: %q", username)
			handlers.RespondBadRequest(w, msgInvalidUsername)

		default:
			h.logger.Error("GET /appointment/user/{username} - Failed to get appointments: username=%s, error=%v", username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointment/user/{username} - Appointments retrieved: username=%s, count=%d", username, list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
