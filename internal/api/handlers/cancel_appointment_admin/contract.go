package cancel_appointment_admin

import (
	"context"

	cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
)

type CancelAppointmentUseCase interface {
	CancelByAdmin(ctx context.Context, req *cancelAppointment.AdminRequest) (*cancelAppointment.AdminResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
