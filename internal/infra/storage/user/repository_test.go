package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
)

func TestGetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))

	mock.ExpectQuery("SELECT id, first_name, last_name, phone, email, username, password FROM users WHERE username = \\?").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("0b7f", "Alice", "Smith", int64(3515550000), "alice@example.com", "alice", "$2a$10$hash"))
	mock.ExpectQuery("FROM users WHERE username = \\?").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "0b7f", u.ID)
	assert.Equal(t, int64(3515550000), u.Contact().Phone)

	_, err = repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
