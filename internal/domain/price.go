package domain

// Price позиция прайс-листа
type Price struct {
	ID          int64
	ServiceName string
	Price       float64
}

// Service names used by cost calculation
const (
	PriceHourlyRate = "hourly_rate"
	PriceStairs     = "stairs"
	PriceExtraStaff = "extra_staff"
	PriceDistanceKm = "distance_km"
)
