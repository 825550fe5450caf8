package get_prices

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
)

type PricingService interface {
	ListPrices(ctx context.Context) (*models.PriceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
