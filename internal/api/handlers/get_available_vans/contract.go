package get_available_vans

import (
	"context"

	getAvailableVans "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_vans"
)

type GetAvailableVansUseCase interface {
	Execute(ctx context.Context, req *getAvailableVans.Request) (*getAvailableVans.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
