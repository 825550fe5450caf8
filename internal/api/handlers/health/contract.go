package health

import "context"

// CheckFunc проверка зависимости (БД, хранилище токенов)
type CheckFunc func(ctx context.Context) error

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
