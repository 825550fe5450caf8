package session_refresh

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/sessions/models"
)

type SessionService interface {
	Refresh(ctx context.Context, refreshToken string) (*models.AccessToken, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
