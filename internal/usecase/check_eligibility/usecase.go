package check_eligibility

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/appointment"
)

// UseCase use case проверки, может ли владелец изменить или отменить заявку
type UseCase struct {
	appointmentRepo AppointmentRepository
	metrics         Metrics
	rules           domain.Rules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, metrics Metrics, rules domain.Rules, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет заявку по правилам domain.EvaluateEligibility.
// Отказ это обычный результат, ошибкой считается только сбой хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.AppointmentID <= 0 || strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: appointment id and username are required", ErrInvalidInput)
	}

	uc.logger.Info("CheckEligibility: appointment=%d, user=%s", req.AppointmentID, req.Username)

	appointment, err := uc.appointmentRepo.GetByIDAndUsername(ctx, req.AppointmentID, req.Username)
	if err != nil && !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Error("CheckEligibility: failed to get appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	result := domain.EvaluateEligibility(appointment, uc.timeProvider.Now(), uc.rules.Loc(), uc.rules.EditLeadTime)
	if !result.Eligible {
		uc.metrics.RecordEligibilityDenied()
		uc.logger.Info("CheckEligibility: appointment=%d denied for user=%s: %s", req.AppointmentID, req.Username, result.Reason)
	}

	return &Response{
		Eligible:   result.Eligible,
		Reason:     result.Reason,
		HoursUntil: result.HoursUntil,
	}, nil
}
