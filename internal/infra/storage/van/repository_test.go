package van

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil, "test")), mock
}

func TestGetAvailable(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, driver_name, license_plate, model, available FROM vans WHERE available = \\? ORDER BY id ASC").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(vanColumns).
			AddRow(3, "Juan", "AB123CD", "Sprinter", true).
			AddRow(7, "Pedro", "AC456EF", "Master", true))

	vans, err := repo.GetAvailable(context.Background())

	require.NoError(t, err)
	require.Len(t, vans, 2)
	assert.Equal(t, int64(3), vans[0].ID)
	assert.Equal(t, "AC456EF", vans[1].LicensePlate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM vans WHERE id = \\?$").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrVanNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
