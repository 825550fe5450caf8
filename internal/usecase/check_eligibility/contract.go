package check_eligibility

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	GetByIDAndUsername(ctx context.Context, id int64, username string) (*domain.Appointment, error)
}

// Metrics бизнес-метрики
type Metrics interface {
	RecordEligibilityDenied()
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
