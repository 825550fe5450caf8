package van

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/sqlbuilder"
)

var vanColumns = []string{"id", "driver_name", "license_plate", "model", "available"}

// Repository репозиторий фургонов (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория фургонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает фургон по ID
// Внутри транзакции блокирует строку, чтобы флаг available не поменялся до конца назначения.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Van, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sqlbuilder.Select(vanColumns...).
		From("vans").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Van
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.DriverName,
		&v.LicensePlate,
		&v.Model,
		&v.Available,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan van: %w", ErrScanRow, err)
	}

	return &v, nil
}

// GetAvailable получает фургоны с включённым флагом available, отсортированные по id
func (r *Repository) GetAvailable(ctx context.Context) ([]*domain.Van, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sqlbuilder.Select(vanColumns...).
		From("vans").
		Where(squirrel.Eq{"available": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	vans := make([]*domain.Van, 0)
	for rows.Next() {
		var v domain.Van
		if err := rows.Scan(&v.ID, &v.DriverName, &v.LicensePlate, &v.Model, &v.Available); err != nil {
			return nil, fmt.Errorf("%w: GetAvailable - scan row: %w", ErrScanRow, err)
		}
		vans = append(vans, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - rows error: %w", ErrScanRow, err)
	}

	return vans, nil
}
