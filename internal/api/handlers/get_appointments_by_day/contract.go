package get_appointments_by_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByDay(ctx context.Context, day time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
