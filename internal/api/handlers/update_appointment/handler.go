package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDay           = "некорректный формат дня, ожидается YYYY-MM-DD"
	msgInvalidSchedule      = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidDuration      = "некорректная длительность, ожидается HH:MM"
	msgMissingUser          = "требуется авторизация"
	msgAppointmentNotFound  = "заявка не найдена"
	msgInvalidDate          = "дата или время заявки уже прошли"
	msgInvalidTimeSlot      = "выбранное время не входит в расписание"
	msgSlotNotAvailable     = "на выбранное время свободных мест нет"
	msgVanNotAvailable      = "назначенный фургон занят в новое время"
	msgConcurrentUpdate     = "заявка была изменена параллельно, повторите попытку"
	msgInvalidInput         = "некорректные данные заявки"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /appointment/appointmentUser/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /appointment/appointmentUser/{id} - Invalid appointment ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointment/appointmentUser/{id} - Missing username")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointment/appointmentUser/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id, username)
	if err != nil {
		h.logger.Warn("PUT /appointment/appointmentUser/{id} - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidDay):
			handlers.RespondBadRequest(w, msgInvalidDay)
		case errors.Is(err, errInvalidSchedule):
			handlers.RespondBadRequest(w, msgInvalidSchedule)
		default:
			handlers.RespondBadRequest(w, msgInvalidDuration)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var denied *domain.EligibilityError
		switch {
		case errors.As(err, &denied):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Not eligible: id=%d, username=%s, reason=%s", id, username, denied.Reason)
			handlers.RespondUnprocessable(w, denied.Reason)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Appointment not found: id=%d, username=%s", id, username)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Slot not available: id=%d, day=%s, schedule=%s", id, req.Day, req.Schedule)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateAppointment.ErrVanNotAvailable):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Van not available: id=%d", id)
			handlers.RespondConflict(w, msgVanNotAvailable)

		case errors.Is(err, updateAppointment.ErrConcurrentUpdate):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Concurrent update: id=%d", id)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, updateAppointment.ErrInvalidDate):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Invalid date: id=%d, day=%s, schedule=%s", id, req.Day, req.Schedule)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Invalid time slot: id=%d, schedule=%s", id, req.Schedule)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointment/appointmentUser/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /appointment/appointmentUser/{id} - Failed to update appointment: id=%d, username=%s, error=%v", id, username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment/appointmentUser/{id} - Appointment updated: id=%d, username=%s, rescheduled=%t",
		id, username, result.Rescheduled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
