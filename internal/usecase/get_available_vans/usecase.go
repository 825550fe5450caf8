package get_available_vans

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// UseCase use case поиска фургонов, свободных на запрошенное время
type UseCase struct {
	vanRepo         VanRepository
	appointmentRepo AppointmentRepository
	rules           domain.Rules
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(vanRepo VanRepository, appointmentRepo AppointmentRepository, rules domain.Rules, logger Logger) *UseCase {
	return &UseCase{
		vanRepo:         vanRepo,
		appointmentRepo: appointmentRepo,
		rules:           rules,
		logger:          logger,
	}
}

// Execute возвращает фургоны с флагом available, у которых нет активной заявки,
// окно которой [schedule, schedule+duration+буфер) пересекается с запрошенным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableVans: validation failed: %v", err)
		return nil, err
	}

	day := domain.DateOnly(req.Day)
	loc := uc.rules.Loc()

	var duration time.Duration
	if req.Duration != nil {
		duration = req.Duration.Duration()
	}
	requested := domain.RequestedWindow(req.Time.On(day, loc), duration, uc.rules.VanBuffer)

	uc.logger.Info("GetAvailableVans: day=%s, time=%s, duration=%s",
		day.Format(domain.DateFormat), req.Time, duration)

	vans, err := uc.vanRepo.GetAvailable(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableVans: failed to get vans: %v", err)
		return nil, fmt.Errorf("%w: failed to get vans: %v", ErrInternal, err)
	}

	assigned, err := uc.appointmentRepo.GetAssignedByDay(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailableVans: failed to get appointments for day=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	busy := make(map[int64]bool)
	for _, a := range assigned {
		if a.IsDeleted || !a.HasVan() {
			continue
		}
		if a.Window(loc, uc.rules.VanBuffer).Overlaps(requested) {
			busy[*a.VanID] = true
		}
	}

	resp := &Response{Vans: make([]Van, 0, len(vans))}
	for _, v := range vans {
		if !v.Available || busy[v.ID] {
			continue
		}
		resp.Vans = append(resp.Vans, Van{
			ID:           v.ID,
			DriverName:   v.DriverName,
			LicensePlate: v.LicensePlate,
			Model:        v.Model,
		})
	}

	uc.logger.Info("GetAvailableVans: %d of %d vans free", len(resp.Vans), len(vans))
	return resp, nil
}
