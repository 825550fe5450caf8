package get_appointments_by_day

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/domain"
)

const msgInvalidDay = "некорректный формат дня, ожидается YYYY-MM-DD"

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

// Handle GET /appointment/day/{day}
// Пустой день возвращает 200 с пустым списком.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dayStr := mux.Vars(r)["day"]

	day, err := time.Parse(domain.DateFormat, dayStr)
	if err != nil {
		h.logger.Warn("GET /appointment/day/{day} - Invalid day: %q", dayStr)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	list, err := h.service.GetByDay(r.Context(), day)
	if err != nil {
		h.logger.Error("GET /appointment/day/{day} - Failed to get appointments: day=%s, error=%v", dayStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointment/day/{day} - Appointments retrieved: day=%s, count=%d", dayStr, list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
