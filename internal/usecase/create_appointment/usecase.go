package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	userRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/user"
	pricingModels "github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
)

const costMismatchTolerance = 0.01

// UseCase use case создания заявки
type UseCase struct {
	appointmentRepo AppointmentRepository
	userRepo        UserRepository
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
	userRepo UserRepository,
	pricing CostCalculator,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	rules domain.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		pricing:         pricing,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания заявки.
// Заполненность слота перепроверяется в сериализуемой транзакции под блокировкой строк слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	day := domain.DateOnly(req.Day)

	uc.logger.Info("CreateAppointment: user=%s, day=%s, schedule=%s",
		req.Username, day.Format(domain.DateFormat), req.Schedule)

	appointment := &domain.Appointment{
		StateID:      domain.InitialState,
		Day:          day,
		Schedule:     req.Schedule,
		Duration:     uc.rules.DefaultDuration,
		StartAddress: req.StartAddress,
		EndAddress:   req.EndAddress,
		Stairs:       req.Stairs,
		Distance:     req.Distance,
		Staff:        req.Staff,
		Elevator:     req.Elevator,
		Description:  req.Description,
	}
	if req.Duration != nil {
		appointment.Duration = *req.Duration
	}

	if err := domain.ValidateDetails(appointment); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем, что слот предлагается и ещё не наступил
	if err := validateSlot(uc.rules, day, req.Schedule, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: slot validation failed: %v", err)
		return nil, err
	}

	// 3. Владелец заявки
	user, err := uc.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: user=%s not found", req.Username)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get user=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	appointment.UserID = user.ID

	// 4. Стоимость считается на сервере
	cost, err := uc.pricing.Quote(ctx, pricingModels.QuoteInput{
		Stairs:     appointment.Stairs,
		Staff:      appointment.Staff,
		DistanceKm: appointment.Distance,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to calculate cost: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate cost: %v", ErrInternal, err)
	}
	if req.Cost != nil && math.Abs(*req.Cost-cost) > costMismatchTolerance {
		uc.logger.Warn("CreateAppointment: client cost %.2f differs from calculated %.2f for user=%s",
			*req.Cost, cost, req.Username)
	}
	appointment.Cost = cost

	var created *domain.Appointment

	// 5. Проверка вместимости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		taken, err := uc.appointmentRepo.LockSlot(txCtx, day, req.Schedule, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to lock slot: %v", err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		if taken >= uc.rules.SlotCapacity {
			uc.logger.Warn("CreateAppointment: slot %s %s is full (%d/%d)",
				day.Format(domain.DateFormat), req.Schedule, taken, uc.rules.SlotCapacity)
			return ErrSlotNotAvailable
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.metrics.RecordConflict("slot")
			return nil, ErrSlotNotAvailable
		case errors.Is(err, txmanager.ErrConflict):
			uc.logger.Warn("CreateAppointment: concurrent booking of slot %s %s", day.Format(domain.DateFormat), req.Schedule)
			uc.metrics.RecordConflict("slot")
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.RecordAppointmentCreated()
	uc.publish(ctx, created, req.Username)

	uc.logger.Info("CreateAppointment: created appointment id=%d for user=%s", created.ID, req.Username)

	return &Response{
		ID:           created.ID,
		UserID:       created.UserID,
		State:        created.StateID.String(),
		Day:          created.Day,
		Schedule:     created.Schedule,
		Duration:     created.Duration,
		StartAddress: created.StartAddress,
		EndAddress:   created.EndAddress,
		Stairs:       created.Stairs,
		Distance:     created.Distance,
		Staff:        created.Staff,
		Elevator:     created.Elevator,
		Description:  created.Description,
		Cost:         created.Cost,
	}, nil
}

func (uc *UseCase) publish(ctx context.Context, a *domain.Appointment, username string) {
	err := uc.publisher.Publish(ctx, events.Event{
		Type:          events.TypeAppointmentCreated,
		AppointmentID: a.ID,
		Username:      username,
		Day:           a.Day.Format(domain.DateFormat),
		Schedule:      a.Schedule.String(),
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for id=%d: %v", a.ID, err)
	}
}
