package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	CountBySlots(ctx context.Context, day time.Time, labels []types.TimeString) (map[types.TimeString]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
