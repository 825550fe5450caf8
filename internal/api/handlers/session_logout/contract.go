package session_logout

import "context"

type SessionService interface {
	Logout(ctx context.Context, refreshToken string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
