package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
)

// UseCase use case отмены заявки (мягкое удаление)
type UseCase struct {
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
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
	userRepo UserRepository,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	rules domain.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// CancelByOwner отменяет заявку владельца. Правило 48 часов проверяется в транзакции.
func (uc *UseCase) CancelByOwner(ctx context.Context, req *OwnerRequest) error {
	if req == nil || req.AppointmentID <= 0 || strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: appointment id and username are required", ErrInvalidInput)
	}

	uc.logger.Info("CancelByOwner: appointment=%d, user=%s", req.AppointmentID, req.Username)

	var cancelled *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByIDAndUsername(txCtx, req.AppointmentID, req.Username)
		if err != nil && !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Error("CancelByOwner: failed to get appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		eligibility := domain.EvaluateEligibility(appointment, uc.timeProvider.Now(), uc.rules.Loc(), uc.rules.EditLeadTime)
		if !eligibility.Eligible {
			if appointment == nil || appointment.IsDeleted {
				uc.logger.Warn("CancelByOwner: appointment=%d not found for user=%s", req.AppointmentID, req.Username)
				return ErrAppointmentNotFound
			}
			uc.logger.Warn("CancelByOwner: appointment=%d denied: %s", req.AppointmentID, eligibility.Reason)
			return &domain.EligibilityError{Reason: eligibility.Reason}
		}

		if err := uc.softDelete(txCtx, appointment); err != nil {
			return err
		}

		cancelled = appointment
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotEligible) {
			uc.metrics.RecordEligibilityDenied()
		}
		return uc.mapError("CancelByOwner", err)
	}

	uc.publish(ctx, cancelled, req.Username, events.ByOwner)
	uc.logger.Info("CancelByOwner: appointment=%d cancelled by user=%s", req.AppointmentID, req.Username)

	return nil
}

// CancelByAdmin отменяет любую активную заявку без проверки 48 часов
// и возвращает контакты владельца.
func (uc *UseCase) CancelByAdmin(ctx context.Context, req *AdminRequest) (*AdminResponse, error) {
	if req == nil || req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	uc.logger.Info("CancelByAdmin: appointment=%d", req.AppointmentID)

	var (
		cancelled *domain.Appointment
		owner     *domain.User
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelByAdmin: appointment=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelByAdmin: failed to get appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if err := uc.softDelete(txCtx, appointment); err != nil {
			return err
		}

		owner, err = uc.userRepo.GetByID(txCtx, appointment.UserID)
		if err != nil {
			uc.logger.Error("CancelByAdmin: failed to get owner=%s of appointment=%d: %v", appointment.UserID, req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get owner: %w", ErrInternal, err)
		}

		cancelled = appointment
		return nil
	})
	if err != nil {
		return nil, uc.mapError("CancelByAdmin", err)
	}

	uc.publish(ctx, cancelled, owner.Username, events.ByAdmin)
	uc.logger.Info("CancelByAdmin: appointment=%d of user=%s cancelled", req.AppointmentID, owner.Username)

	return &AdminResponse{
		AppointmentID: cancelled.ID,
		Contact:       owner.Contact(),
	}, nil
}

// softDelete переводит заявку в cancelled и помечает удалённой
func (uc *UseCase) softDelete(ctx context.Context, appointment *domain.Appointment) error {
	if err := appointment.Cancel(); err != nil {
		uc.logger.Warn("CancelAppointment: appointment=%d: %v", appointment.ID, err)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := uc.appointmentRepo.SoftDelete(ctx, appointment.ID, appointment.StateID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to delete appointment=%d: %v", appointment.ID, err)
		return fmt.Errorf("%w: failed to delete appointment: %w", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) mapError(op string, err error) error {
	switch {
	case errors.Is(err, txmanager.ErrConflict):
		uc.logger.Warn("%s: concurrent modification: %v", op, err)
		return ErrConcurrentUpdate
	case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, ErrInvalidState), errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func (uc *UseCase) publish(ctx context.Context, a *domain.Appointment, username, by string) {
	err := uc.publisher.Publish(ctx, events.Event{
		Type:          events.TypeAppointmentCancelled,
		AppointmentID: a.ID,
		Username:      username,
		Day:           a.Day.Format(domain.DateFormat),
		Schedule:      a.Schedule.String(),
		VanID:         a.VanID,
		By:            by,
	})
	if err != nil {
		uc.logger.Warn("CancelAppointment: failed to publish event for appointment=%d: %v", a.ID, err)
	}
}
