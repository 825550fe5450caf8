package cancel_appointment_owner

import (
	"context"

	cancelAppointment "github.com/m04kA/SMC-MovingService/internal/usecase/cancel_appointment"
)

type CancelAppointmentUseCase interface {
	CancelByOwner(ctx context.Context, req *cancelAppointment.OwnerRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
