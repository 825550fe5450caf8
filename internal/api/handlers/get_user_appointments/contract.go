package get_user_appointments

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByUser(ctx context.Context, username string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
