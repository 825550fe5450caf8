package price

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
)

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))

	// DECIMAL приходит из драйвера MySQL строкой
	mock.ExpectQuery("SELECT id, service_name, price FROM prices ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_name", "price"}).
			AddRow(1, "hourly_rate", []byte("15000.00")).
			AddRow(2, "stairs", []byte("1200.50")))

	prices, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "hourly_rate", prices[0].ServiceName)
	assert.Equal(t, 1200.50, prices[1].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}
