package pricing

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
)

// Service сервис прайс-листа и расчёта стоимости.
// Стоимость всегда считается на сервере, значение клиента только сверяется.
type Service struct {
	priceRepo PriceRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(priceRepo PriceRepository, logger Logger) *Service {
	return &Service{
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// ListPrices возвращает весь прайс-лист
func (s *Service) ListPrices(ctx context.Context) (*models.PriceListResponse, error) {
	prices, err := s.priceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListPrices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPrices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPrices(prices), nil
}

// Quote рассчитывает стоимость заявки:
// hourly_rate + stairs * ступени + extra_staff (если нужны грузчики) + distance_km * км.
// Отсутствующая позиция прайса считается нулевой.
func (s *Service) Quote(ctx context.Context, in models.QuoteInput) (float64, error) {
	if in.Stairs < 0 || in.DistanceKm < 0 {
		return 0, fmt.Errorf("%w: stairs and distance must not be negative", ErrInvalidInput)
	}

	prices, err := s.priceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Quote: repository error: %v", err)
		return 0, fmt.Errorf("%w: Quote - repository error: %v", ErrInternal, err)
	}

	table := make(map[string]float64, len(prices))
	for _, p := range prices {
		table[p.ServiceName] = p.Price
	}

	rate := func(name string) float64 {
		v, ok := table[name]
		if !ok {
			s.logger.Warn("Quote: price %q is not configured, counted as 0", name)
		}
		return v
	}

	total := rate(domain.PriceHourlyRate)
	total += float64(in.Stairs) * rate(domain.PriceStairs)
	if in.Staff {
		total += rate(domain.PriceExtraStaff)
	}
	total += in.DistanceKm * rate(domain.PriceDistanceKm)

	return round2(total), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
