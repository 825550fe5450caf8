package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	pricingModels "github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
)

const costMismatchTolerance = 0.01

// UseCase use case изменения заявки владельцем
type UseCase struct {
	appointmentRepo AppointmentRepository
	pricing         CostCalculator
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	rules           domain.Rules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	pricing CostCalculator,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	rules domain.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		pricing:         pricing,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute изменяет заявку. Проверка 48 часов выполняется внутри транзакции под блокировкой строки.
// При переносе на другой день или время новый слот проверяется как новая заявка,
// а назначенный фургон - на пересечение в новом окне.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	day := domain.DateOnly(req.Day)

	uc.logger.Info("UpdateAppointment: appointment=%d, user=%s, day=%s, schedule=%s",
		req.AppointmentID, req.Username, day.Format(domain.DateFormat), req.Schedule)

	cost, err := uc.pricing.Quote(ctx, pricingModels.QuoteInput{
		Stairs:     req.Stairs,
		Staff:      req.Staff,
		DistanceKm: req.Distance,
	})
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to calculate cost: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate cost: %v", ErrInternal, err)
	}
	if req.Cost != nil && math.Abs(*req.Cost-cost) > costMismatchTolerance {
		uc.logger.Warn("UpdateAppointment: client cost %.2f differs from calculated %.2f for appointment=%d",
			*req.Cost, cost, req.AppointmentID)
	}

	var (
		updated     *domain.Appointment
		rescheduled bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now()

		// 1. Блокируем заявку владельца и перепроверяем допуск
		current, err := uc.appointmentRepo.GetByIDAndUsername(txCtx, req.AppointmentID, req.Username)
		if err != nil && !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Error("UpdateAppointment: failed to get appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		eligibility := domain.EvaluateEligibility(current, now, uc.rules.Loc(), uc.rules.EditLeadTime)
		if !eligibility.Eligible {
			if current == nil || current.IsDeleted {
				uc.logger.Warn("UpdateAppointment: appointment=%d not found for user=%s", req.AppointmentID, req.Username)
				return ErrAppointmentNotFound
			}
			uc.logger.Warn("UpdateAppointment: appointment=%d denied: %s", req.AppointmentID, eligibility.Reason)
			return &domain.EligibilityError{Reason: eligibility.Reason}
		}

		// 2. Новые значения
		next := *current
		next.Day = day
		next.Schedule = req.Schedule
		if req.Duration != nil {
			next.Duration = *req.Duration
		}
		next.StartAddress = req.StartAddress
		next.EndAddress = req.EndAddress
		next.Stairs = req.Stairs
		next.Distance = req.Distance
		next.Staff = req.Staff
		next.Elevator = req.Elevator
		next.Description = req.Description
		next.Cost = cost

		if err := domain.ValidateDetails(&next); err != nil {
			uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. Перенос: новый слот проверяется как при создании
		rescheduled = !current.IsSameSlot(next.Day, next.Schedule)
		if rescheduled {
			if err := validateSlot(uc.rules, next.Day, next.Schedule, now); err != nil {
				uc.logger.Warn("UpdateAppointment: slot validation failed: %v", err)
				return err
			}

			taken, err := uc.appointmentRepo.LockSlot(txCtx, next.Day, next.Schedule, &next.ID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to lock slot: %v", err)
				return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
			}
			if taken >= uc.rules.SlotCapacity {
				uc.logger.Warn("UpdateAppointment: slot %s %s is full (%d/%d)",
					next.Day.Format(domain.DateFormat), next.Schedule, taken, uc.rules.SlotCapacity)
				return ErrSlotNotAvailable
			}
		}

		// 4. Назначенный фургон должен быть свободен в новом окне
		if next.HasVan() && (rescheduled || next.Duration != current.Duration) {
			others, err := uc.appointmentRepo.GetByVanAndDay(txCtx, *next.VanID, next.Day, &next.ID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to get schedule of van=%d: %v", *next.VanID, err)
				return fmt.Errorf("%w: failed to get van schedule: %w", ErrInternal, err)
			}

			window := next.Window(uc.rules.Loc(), uc.rules.VanBuffer)
			for _, other := range others {
				if other.Window(uc.rules.Loc(), uc.rules.VanBuffer).Overlaps(window) {
					uc.logger.Warn("UpdateAppointment: van=%d is busy with appointment=%d", *next.VanID, other.ID)
					return ErrVanNotAvailable
				}
			}
		}

		// 5. Условное обновление (только неудалённые)
		if err := uc.appointmentRepo.Update(txCtx, &next); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		updated = &next
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err, rescheduled)
	}

	if rescheduled {
		if err := uc.publisher.Publish(ctx, events.Event{
			Type:          events.TypeAppointmentRescheduled,
			AppointmentID: updated.ID,
			Username:      req.Username,
			Day:           updated.Day.Format(domain.DateFormat),
			Schedule:      updated.Schedule.String(),
			VanID:         updated.VanID,
		}); err != nil {
			uc.logger.Warn("UpdateAppointment: failed to publish event for appointment=%d: %v", updated.ID, err)
		}
	}

	uc.logger.Info("UpdateAppointment: appointment=%d updated (rescheduled=%t)", updated.ID, rescheduled)

	return &Response{
		ID:           updated.ID,
		State:        updated.StateID.String(),
		VanID:        updated.VanID,
		Day:          updated.Day,
		Schedule:     updated.Schedule,
		Duration:     updated.Duration,
		StartAddress: updated.StartAddress,
		EndAddress:   updated.EndAddress,
		Stairs:       updated.Stairs,
		Distance:     updated.Distance,
		Staff:        updated.Staff,
		Elevator:     updated.Elevator,
		Description:  updated.Description,
		Cost:         updated.Cost,
		Rescheduled:  rescheduled,
	}, nil
}

func (uc *UseCase) mapError(err error, rescheduled bool) error {
	switch {
	case errors.Is(err, domain.ErrNotEligible):
		uc.metrics.RecordEligibilityDenied()
		return err
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.RecordConflict("slot")
		return err
	case errors.Is(err, ErrVanNotAvailable):
		uc.metrics.RecordConflict("van")
		return err
	case errors.Is(err, txmanager.ErrConflict):
		uc.logger.Warn("UpdateAppointment: concurrent modification: %v", err)
		if rescheduled {
			uc.metrics.RecordConflict("slot")
			return ErrSlotNotAvailable
		}
		return ErrConcurrentUpdate
	case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTimeSlot), errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("UpdateAppointment: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}
