package models

import "github.com/m04kA/SMC-MovingService/internal/domain"

// QuoteInput параметры заявки, влияющие на стоимость
type QuoteInput struct {
	Stairs     int
	Staff      bool
	DistanceKm float64
}

// PriceResponse позиция прайс-листа
type PriceResponse struct {
	ID          int64   `json:"id"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
}

// PriceListResponse прайс-лист
type PriceListResponse struct {
	Prices []PriceResponse `json:"prices"`
}

// FromDomainPrices конвертирует список цен из domain
func FromDomainPrices(prices []*domain.Price) *PriceListResponse {
	resp := &PriceListResponse{Prices: make([]PriceResponse, 0, len(prices))}
	for _, p := range prices {
		resp.Prices = append(resp.Prices, PriceResponse{
			ID:          p.ID,
			ServiceName: p.ServiceName,
			Price:       p.Price,
		})
	}
	return resp
}
