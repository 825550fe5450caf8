package session_login

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
)

type SessionService interface {
	Login(ctx context.Context, username, password string) (*models.Tokens, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
