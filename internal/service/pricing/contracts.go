package pricing

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// PriceRepository интерфейс репозитория прайс-листа
type PriceRepository interface {
	GetAll(ctx context.Context) ([]*domain.Price, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
