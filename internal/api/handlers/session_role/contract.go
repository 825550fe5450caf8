package session_role

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
)

type SessionService interface {
	Role(ctx context.Context, accessToken string) (*models.RoleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
