package get_available_vans

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// VanRepository интерфейс репозитория фургонов
type VanRepository interface {
	GetAvailable(ctx context.Context) ([]*domain.Van, error)
}

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	GetAssignedByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
