package cancel_appointment_owner

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID заявки"
	msgMissingUser          = "требуется авторизация"
	msgAppointmentNotFound  = "заявка не найдена"
	msgInvalidState         = "заявку нельзя отменить в текущем состоянии"
	msgConcurrentUpdate     = "заявка была изменена параллельно, повторите попытку"
	msgCancelled            = "заявка отменена"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /appointment/user/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /appointment/user/{id} - Invalid appointment ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointment/user/{id} - Missing username")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	err = h.useCase.CancelByOwner(r.Context(), &cancelAppointment.OwnerRequest{AppointmentID: id, Username: username})
	if err != nil {
		var denied *domain.EligibilityError
		switch {
		case errors.As(err, &denied):
			h.logger.Warn("PUT /appointment/user/{id} - Not eligible: id=%d, username=%s, reason=%s", id, username, denied.Reason)
			handlers.RespondUnprocessable(w, denied.Reason)

		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointment/user/{id} - Appointment not found: id=%d, username=%s", id, username)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, cancelAppointment.ErrInvalidState):
			h.logger.Warn("PUT /appointment/user/{id} - Invalid state: id=%d", id)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, cancelAppointment.ErrConcurrentUpdate):
			h.logger.Warn("PUT /appointment/user/{id} - Concurrent update: id=%d", id)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointment/user/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("PUT /appointment/user/{id} - Failed to cancel appointment: id=%d, username=%s, error=%v", id, username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment/user/{id} - Appointment cancelled: id=%d, username=%s", id, username)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgCancelled})
}
