package assign_van

import (
	"context"

	assignVan "github.com/m04kA/SMC-MovingService/internal/usecase/assign_van"
)

type AssignVanUseCase interface {
	Execute(ctx context.Context, req *assignVan.Request) (*assignVan.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
