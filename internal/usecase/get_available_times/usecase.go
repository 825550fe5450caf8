package get_available_times

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// UseCase use case расчёта свободных времён начала на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	rules           domain.Rules
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, rules domain.Rules, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		rules:           rules,
		logger:          logger,
	}
}

// Execute возвращает времена дня, на которые активных заявок меньше вместимости слота.
// Правило одинаково для любого дня: запрет записи в прошлое проверяется при создании и переносе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	day := domain.DateOnly(req.Day)
	candidates := uc.rules.DailySlots

	uc.logger.Info("GetAvailableTimes: day=%s", day.Format(domain.DateFormat))

	counts, err := uc.appointmentRepo.CountBySlots(ctx, day, candidates)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to count appointments for day=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
	}

	resp := &Response{
		Day:   day,
		Times: availableSlots(candidates, counts, uc.rules.SlotCapacity),
	}

	uc.logger.Info("GetAvailableTimes: day=%s, %d of %d times available",
		day.Format(domain.DateFormat), len(resp.Times), len(candidates))

	return resp, nil
}

// availableSlots оставляет метки, у которых занято меньше capacity мест, сохраняя порядок
func availableSlots(candidates []types.TimeString, counts map[types.TimeString]int, capacity int) []types.TimeString {
	out := make([]types.TimeString, 0, len(candidates))
	for _, label := range candidates {
		if counts[label] < capacity {
			out = append(out, label)
		}
	}
	return out
}
