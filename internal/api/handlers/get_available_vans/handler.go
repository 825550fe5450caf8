package get_available_vans

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	getAvailableVans "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_vans"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSchedule = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration = "некорректная длительность, ожидается HH:MM"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableVansUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableVansUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /van/available?date=&schedule=&duration=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /van/available - Invalid query %q: %v", r.URL.RawQuery, err)
		switch {
		case errors.Is(err, errInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, errInvalidSchedule):
			handlers.RespondBadRequest(w, msgInvalidSchedule)
		default:
			handlers.RespondBadRequest(w, msgInvalidDuration)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableVans.ErrInvalidInput):
			h.logger.Warn("GET /van/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /van/available - Failed to get available vans: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /van/available - Vans retrieved: day=%s, schedule=%s, count=%d",
		r.URL.Query().Get("date"), req.Time, len(result.Vans))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
