package assign_van

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/events"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByVanAndDay(ctx context.Context, vanID int64, day time.Time, excludeID *int64) ([]*domain.Appointment, error)
	UpdateVan(ctx context.Context, id int64, vanID int64) error
}

// VanRepository интерфейс репозитория фургонов
type VanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Van, error)
}

// EventPublisher публикация событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordConflict(kind string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
