package appointment

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

var day = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

var columns = []string{
	"id", "id_user", "id_state", "id_van", "day", "schedule", "duration",
	"start_address", "end_address", "stairs", "distance", "staff", "elevator",
	"description", "cost", "is_deleted",
}

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func TestCreate_MySQLUsesLastInsertID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(42, 1))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		UserID:       "6f1c2d9e-0000-4000-8000-000000000001",
		StateID:      domain.StateScheduled,
		Day:          day,
		Schedule:     types.MustTimeString("09:00"),
		Duration:     types.MustTimeString("02:00"),
		StartAddress: "Av. Colón 100",
		EndAddress:   "San Martín 250",
		Stairs:       2,
		Distance:     12.5,
		Cost:         18500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT .* FROM appointments a WHERE a.id = \\? AND a.is_deleted = \\?$").
		WithArgs(int64(7), false).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_LocksRowInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	mock.ExpectQuery("FROM appointments a WHERE a.id = \\? AND a.is_deleted = \\? FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			7, "user-1", 2, 3, day, "10:00:00", "01:00:00",
			"A", "B", 0, 5.0, false, true, "", 9000.0, false,
		))

	a, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, domain.StateScheduled, a.StateID)
	require.NotNil(t, a.VanID)
	assert.Equal(t, int64(3), *a.VanID)
	assert.Equal(t, types.TimeString("10:00"), a.Schedule)
	assert.Equal(t, types.TimeString("01:00"), a.Duration)
	assert.True(t, a.Elevator)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBySlots_NormalizesSeconds(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT schedule, COUNT\\(\\*\\) FROM appointments WHERE day = \\? AND is_deleted = \\? AND schedule IN \\(\\?,\\?\\) GROUP BY schedule").
		WithArgs(day, false, "09:00:00", "10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"schedule", "total"}).
			AddRow("09:00:00", 5).
			AddRow("10:00:00", 2))

	counts, err := repo.CountBySlots(context.Background(), day, []types.TimeString{"09:00", "10:00"})

	require.NoError(t, err)
	assert.Equal(t, map[types.TimeString]int{"09:00": 5, "10:00": 2}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBySlots_StorageFailure(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT schedule").WillReturnError(errors.New("connection reset"))

	_, err := repo.CountBySlots(context.Background(), day, []types.TimeString{"09:00"})

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestLockSlot_ExcludesItself(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	mock.ExpectQuery("SELECT id FROM appointments WHERE .* AND id <> \\? FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))

	count, err := repo.LockSlot(ctx, day, types.MustTimeString("09:00"), ptr.Ptr(int64(9)))

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("UPDATE appointments SET is_deleted = \\?, id_state = \\? WHERE id = \\? AND is_deleted = \\?").
		WithArgs(true, domain.StateCancelled, int64(5), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE appointments SET is_deleted").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), 5, domain.StateCancelled))
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), 5, domain.StateCancelled), ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailsByDay(t *testing.T) {
	repo, _, mock := newRepo(t)

	detailColumns := append(append([]string{}, columns...), "username", "first_name", "last_name", "state_name", "driver_name")

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments a JOIN users u ON u.id = a.id_user JOIN states s ON s.id = a.id_state LEFT JOIN vans v ON v.id = a.id_van WHERE a.day = ? AND a.is_deleted = ? ORDER BY a.schedule ASC, a.id ASC")).
		WithArgs(day, false).
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(1, "u-1", 2, nil, day, "09:00:00", "01:00:00", "A", "B", 0, 3.0, false, false, "", 5000.0, false,
				"alice", "Alice", "Smith", "scheduled", nil).
			AddRow(2, "u-2", 2, 7, day, "10:00:00", "02:00:00", "C", "D", 1, 8.0, true, false, "fragile", 9000.0, false,
				"bob", "Bob", "Stone", "scheduled", "Juan"))

	details, err := repo.GetDetailsByDay(context.Background(), day)

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Nil(t, details[0].VanID)
	assert.Nil(t, details[0].DriverName)
	assert.Equal(t, "alice", details[0].Username)
	require.NotNil(t, details[1].DriverName)
	assert.Equal(t, "Juan", *details[1].DriverName)
	assert.Equal(t, int64(7), *details[1].VanID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailsByUsername_SkipsDeletedAndPast(t *testing.T) {
	repo, _, mock := newRepo(t)

	detailColumns := append(append([]string{}, columns...), "username", "first_name", "last_name", "state_name", "driver_name")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.is_deleted = ? AND u.username = ? AND a.day >= ? ORDER BY a.day ASC, a.schedule ASC")).
		WithArgs(false, "alice", day).
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(1, "u-1", 2, nil, day, "09:00:00", "01:00:00", "A", "B", 0, 3.0, false, false, "", 5000.0, false,
				"alice", "Alice", "Smith", "scheduled", nil))

	details, err := repo.GetDetailsByUsername(context.Background(), "alice", day)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "alice", details[0].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAssignedByDay_SkipsDeletedAndUnassigned(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments a WHERE a.day = ? AND a.is_deleted = ? AND a.id_van IS NOT NULL ORDER BY a.id_van ASC, a.schedule ASC")).
		WithArgs(day, false).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			4, "u-1", 2, 7, day, "10:00:00", "01:00:00",
			"A", "B", 0, 5.0, false, false, "", 9000.0, false,
		))

	assigned, err := repo.GetAssignedByDay(context.Background(), day)

	require.NoError(t, err)
	require.Len(t, assigned, 1)
	require.NotNil(t, assigned[0].VanID)
	assert.Equal(t, int64(7), *assigned[0].VanID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByVanAndDay_SkipsDeletedAndItself(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments a WHERE a.day = ? AND a.id_van = ? AND a.is_deleted = ? ORDER BY a.schedule ASC")).
		WithArgs(day, int64(7), false).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.GetByVanAndDay(context.Background(), 7, day, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments a WHERE a.day = ? AND a.id_van = ? AND a.is_deleted = ? AND a.id <> ? ORDER BY a.schedule ASC FOR UPDATE")).
		WithArgs(day, int64(7), false, int64(9)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			3, "u-2", 2, 7, day, "13:00:00", "02:00:00",
			"C", "D", 1, 8.0, true, false, "", 12000.0, false,
		))

	got, err = repo.GetByVanAndDay(ctx, 7, day, ptr.Ptr(int64(9)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
