package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	GetDetailsByDay(ctx context.Context, day time.Time) ([]*domain.AppointmentDetails, error)
	GetDetailsByUsername(ctx context.Context, username string, from time.Time) ([]*domain.AppointmentDetails, error)
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
