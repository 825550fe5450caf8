package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
	pricingModels "github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	LockSlot(ctx context.Context, day time.Time, schedule types.TimeString, excludeID *int64) (int, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CostCalculator расчёт стоимости по прайс-листу
type CostCalculator interface {
	Quote(ctx context.Context, in pricingModels.QuoteInput) (float64, error)
}

// EventPublisher публикация событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordAppointmentCreated()
	RecordConflict(kind string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
