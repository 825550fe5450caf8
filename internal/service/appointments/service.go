package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/appointments/models"
)

// Service сервис списков заявок (только чтение)
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(appointmentRepo AppointmentRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// GetByDay возвращает активные заявки дня, отсортированные по времени начала.
// Пустой день не ошибка.
func (s *Service) GetByDay(ctx context.Context, day time.Time) (*models.AppointmentListResponse, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	day = domain.DateOnly(day)

	s.logger.Info("GetByDay: fetching appointments for day=%s", day.Format(domain.DateFormat))

	list, err := s.appointmentRepo.GetDetailsByDay(ctx, day)
	if err != nil {
		s.logger.Error("GetByDay: repository error for day=%s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDay: found %d appointments for day=%s", len(list), day.Format(domain.DateFormat))
	return models.FromDomainDetailsList(list), nil
}

// GetByUser возвращает активные заявки пользователя начиная с сегодняшнего дня
func (s *Service) GetByUser(ctx context.Context, username string) (*models.AppointmentListResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	today := domain.DateOnly(s.timeProvider.Now().In(s.location))

	s.logger.Info("GetByUser: fetching appointments for user=%s from=%s", username, today.Format(domain.DateFormat))

	list, err := s.appointmentRepo.GetDetailsByUsername(ctx, username, today)
	if err != nil {
		s.logger.Error("GetByUser: repository error for user=%s: %v", username, err)
		return nil, fmt.Errorf("%w: GetByUser - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetailsList(list), nil
}
