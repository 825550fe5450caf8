package cancel_appointment_admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID заявки"
	msgAppointmentNotFound  = "заявка не найдена"
	msgInvalidState         = "заявку нельзя отменить в текущем состоянии"
	msgConcurrentUpdate     = "заявка была изменена параллельно, повторите попытку"
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

// Handle PUT /appointment/admin/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /appointment/admin/{id} - Invalid appointment ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.CancelByAdmin(r.Context(), &cancelAppointment.AdminRequest{AppointmentID: id})
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointment/admin/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, cancelAppointment.ErrInvalidState):
			h.logger.Warn("PUT /appointment/admin/{id} - Invalid state: id=%d", id)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, cancelAppointment.ErrConcurrentUpdate):
			h.logger.Warn("PUT /appointment/admin/{id} - Concurrent update: id=%d", id)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointment/admin/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("PUT /appointment/admin/{id} - Failed to cancel appointment: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment/admin/{id} - Appointment cancelled: id=%d, owner=%s", id, result.Contact.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
