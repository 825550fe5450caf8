package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type priceRepoStub struct {
	prices []*domain.Price
	err    error
}

func (s *priceRepoStub) GetAll(context.Context) ([]*domain.Price, error) {
	return s.prices, s.err
}

func fullPriceList() []*domain.Price {
	return []*domain.Price{
		{ID: 1, ServiceName: domain.PriceHourlyRate, Price: 15000},
		{ID: 2, ServiceName: domain.PriceStairs, Price: 1200},
		{ID: 3, ServiceName: domain.PriceExtraStaff, Price: 8000},
		{ID: 4, ServiceName: domain.PriceDistanceKm, Price: 350.5},
	}
}

func TestQuote(t *testing.T) {
	svc := NewService(&priceRepoStub{prices: fullPriceList()}, logger.NewNop())

	tests := []struct {
		name string
		in   models.QuoteInput
		want float64
	}{
		{name: "base only", in: models.QuoteInput{}, want: 15000},
		{name: "stairs", in: models.QuoteInput{Stairs: 3}, want: 18600},
		{name: "extra staff", in: models.QuoteInput{Staff: true}, want: 23000},
		{name: "distance rounds to cents", in: models.QuoteInput{DistanceKm: 12.345}, want: 19326.92},
		{name: "everything", in: models.QuoteInput{Stairs: 2, Staff: true, DistanceKm: 10}, want: 28905},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Quote(context.Background(), tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestQuote_MissingPriceCountsAsZero(t *testing.T) {
	svc := NewService(&priceRepoStub{prices: []*domain.Price{
		{ID: 1, ServiceName: domain.PriceHourlyRate, Price: 100},
	}}, logger.NewNop())

	got, err := svc.Quote(context.Background(), models.QuoteInput{Stairs: 4, Staff: true, DistanceKm: 3})

	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestQuote_Errors(t *testing.T) {
	svc := NewService(&priceRepoStub{err: errors.New("db down")}, logger.NewNop())

	_, err := svc.Quote(context.Background(), models.QuoteInput{})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Quote(context.Background(), models.QuoteInput{Stairs: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListPrices(t *testing.T) {
	svc := NewService(&priceRepoStub{prices: fullPriceList()}, logger.NewNop())

	resp, err := svc.ListPrices(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Prices, 4)
	assert.Equal(t, domain.PriceHourlyRate, resp.Prices[0].ServiceName)
}
