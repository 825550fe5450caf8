package assign_van

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	assignVan "github.com/m04kA/SMC-MovingService/internal/usecase/assign_van"
)

const (
	msgInvalidAppointmentID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректный ID фургона"
	msgAppointmentNotFound  = "заявка не найдена"
	msgVanNotFound          = "фургон не найден"
	msgVanNotAvailable      = "фургон занят в это время"
	msgInvalidState         = "заявка уже завершена"
)

type Handler struct {
	useCase AssignVanUseCase
	logger  Logger
}

func NewHandler(useCase AssignVanUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /appointment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /appointment/{id} - Invalid appointment ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req AssignVanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointment/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, assignVan.ErrVanNotAvailable):
			h.logger.Warn("PUT /appointment/{id} - Van not available: id=%d, van_id=%d", id, req.VanID)
			handlers.RespondConflict(w, msgVanNotAvailable)

		case errors.Is(err, assignVan.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointment/{id} - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, assignVan.ErrVanNotFound):
			h.logger.Warn("PUT /appointment/{id} - Van not found: id=%d, van_id=%d", id, req.VanID)
			handlers.RespondNotFound(w, msgVanNotFound)

		case errors.Is(err, assignVan.ErrInvalidState):
			h.logger.Warn("PUT /appointment/{id} - Appointment in final state: id=%d", id)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, assignVan.ErrInvalidInput):
			h.logger.Warn("PUT /appointment/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /appointment/{id} - Failed to assign van: id=%d, van_id=%d, error=%v", id, req.VanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment/{id} - Van assigned: id=%d, van_id=%d", id, result.VanID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
