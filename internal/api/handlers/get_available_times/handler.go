package get_available_times

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	getAvailableTimes "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_times"
)

const msgInvalidDay = "некорректный формат дня, ожидается YYYY-MM-DD"

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /appointment/available-times/{day}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dayStr := mux.Vars(r)["day"]

	day, err := time.Parse(domain.DateFormat, dayStr)
	if err != nil {
		h.logger.Warn("GET /appointment/available-times/{day} - Invalid day: %q", dayStr)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableTimes.Request{Day: day})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /appointment/available-times/{day} - Invalid input: day=%s, error=%v", dayStr, err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("GET /appointment/available-times/{day} - Failed to get available times: day=%s, error=%v", dayStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
