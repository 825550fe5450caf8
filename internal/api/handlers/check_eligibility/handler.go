package check_eligibility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	checkEligibility "github.com/m04kA/SMC-MovingService/internal/usecase/check_eligibility"
)

const (
	msgInvalidAppointmentID = "некорректный ID заявки"
	msgMissingUser          = "требуется авторизация"
)

type Handler struct {
	useCase CheckEligibilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckEligibilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /appointment/eligibility/{id}
// Отказ это не ошибка: ответ 200 с eligible=false и причиной.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("GET /appointment/eligibility/{id} - Invalid appointment ID: %q", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		h.logger.Warn("GET /appointment/eligibility/{id} - Missing username")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkEligibility.Request{AppointmentID: id, Username: username})
	if err != nil {
		switch {
		case errors.Is(err, checkEligibility.ErrInvalidInput):
			h.logger.Warn("GET /appointment/eligibility/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("GET /appointment/eligibility/{id} - Failed to check eligibility: id=%d, username=%s, error=%v", id, username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointment/eligibility/{id} - Checked: id=%d, username=%s, eligible=%t", id, username, result.Eligible)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
