package assign_van

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	vanRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/van"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
)

// UseCase use case назначения фургона на заявку (только администратор)
type UseCase struct {
	appointmentRepo AppointmentRepository
	vanRepo         VanRepository
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	rules           domain.Rules
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	vanRepo VanRepository,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	rules domain.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		vanRepo:         vanRepo,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		rules:           rules,
		logger:          logger,
	}
}

// Execute назначает фургон. Заявка и фургон блокируются, пересечение окон
// с другими заявками этого фургона проверяется в той же транзакции.
// Флаг available фургона при этом не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.AppointmentID <= 0 || req.VanID <= 0 {
		return nil, fmt.Errorf("%w: appointment id and van id must be positive", ErrInvalidInput)
	}

	uc.logger.Info("AssignVan: appointment=%d, van=%d", req.AppointmentID, req.VanID)

	var (
		previous *int64
		assigned *domain.Appointment
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("AssignVan: appointment=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("AssignVan: failed to get appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if appointment.StateID.IsTerminal() {
			uc.logger.Warn("AssignVan: appointment=%d is %s", req.AppointmentID, appointment.StateID)
			return ErrInvalidState
		}

		van, err := uc.vanRepo.GetByID(txCtx, req.VanID)
		if err != nil {
			if errors.Is(err, vanRepo.ErrVanNotFound) {
				uc.logger.Warn("AssignVan: van=%d not found", req.VanID)
				return ErrVanNotFound
			}
			uc.logger.Error("AssignVan: failed to get van=%d: %v", req.VanID, err)
			return fmt.Errorf("%w: failed to get van: %w", ErrInternal, err)
		}

		if !van.Available {
			uc.logger.Warn("AssignVan: van=%d is switched off", req.VanID)
			return ErrVanNotAvailable
		}

		others, err := uc.appointmentRepo.GetByVanAndDay(txCtx, req.VanID, appointment.Day, &appointment.ID)
		if err != nil {
			uc.logger.Error("AssignVan: failed to get schedule of van=%d: %v", req.VanID, err)
			return fmt.Errorf("%w: failed to get van schedule: %w", ErrInternal, err)
		}

		window := appointment.Window(uc.rules.Loc(), uc.rules.VanBuffer)
		for _, other := range others {
			if other.Window(uc.rules.Loc(), uc.rules.VanBuffer).Overlaps(window) {
				uc.logger.Warn("AssignVan: van=%d is busy with appointment=%d at %s", req.VanID, other.ID, other.Schedule)
				return ErrVanNotAvailable
			}
		}

		if err := uc.appointmentRepo.UpdateVan(txCtx, appointment.ID, req.VanID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("AssignVan: failed to update appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		previous = appointment.VanID
		assigned = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrVanNotAvailable):
			uc.metrics.RecordConflict("van")
			return nil, ErrVanNotAvailable
		case errors.Is(err, txmanager.ErrConflict):
			uc.logger.Warn("AssignVan: concurrent assignment of van=%d", req.VanID)
			uc.metrics.RecordConflict("van")
			return nil, ErrVanNotAvailable
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrVanNotFound),
			errors.Is(err, ErrInvalidState), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("AssignVan: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	if err := uc.publisher.Publish(ctx, events.Event{
		Type:          events.TypeAppointmentVanAssigned,
		AppointmentID: assigned.ID,
		Day:           assigned.Day.Format(domain.DateFormat),
		Schedule:      assigned.Schedule.String(),
		VanID:         ptr.Ptr(req.VanID),
		PreviousVanID: previous,
	}); err != nil {
		uc.logger.Warn("AssignVan: failed to publish event for appointment=%d: %v", assigned.ID, err)
	}

	uc.logger.Info("AssignVan: van=%d assigned to appointment=%d", req.VanID, req.AppointmentID)

	return &Response{
		AppointmentID: req.AppointmentID,
		VanID:         req.VanID,
		PreviousVanID: previous,
	}, nil
}
