package create_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректный формат дня, ожидается YYYY-MM-DD"
	msgInvalidSchedule    = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidDuration    = "некорректная длительность, ожидается HH:MM"
	msgMissingUser        = "требуется авторизация"
	msgForbidden          = "нельзя создать заявку от имени другого пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidDate        = "дата или время заявки уже прошли"
	msgInvalidTimeSlot    = "выбранное время не входит в расписание"
	msgSlotNotAvailable   = "на выбранное время свободных мест нет"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("POST /appointment - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Владелец заявки берётся из токена. Администратор может записать клиента по логину.
	owner := claims.Username
	if requested := strings.TrimSpace(req.Username); requested != "" && requested != owner {
		if claims.Role != domain.RoleAdmin {
			h.logger.Warn("POST /appointment - Access denied: caller=%s, username=%s", claims.Username, requested)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		owner = requested
	}

	useCaseReq, err := req.ToUseCaseRequest(owner)
	if err != nil {
		h.logger.Warn("POST /appointment - Failed to parse request: %v", err)
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
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointment - Slot not available: username=%s, day=%s, schedule=%s", owner, req.Day, req.Schedule)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrUserNotFound):
			h.logger.Warn("POST /appointment - User not found: username=%s", owner)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointment - Invalid date: username=%s, day=%s, schedule=%s", owner, req.Day, req.Schedule)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointment - Invalid time slot: username=%s, schedule=%s", owner, req.Schedule)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointment - Invalid input: username=%s, error=%v", owner, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointment - Failed to create appointment: username=%s, error=%v", owner, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment - Appointment created: id=%d, username=%s, day=%s, schedule=%s",
		result.ID, owner, req.Day, result.Schedule)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
