package price

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/sqlbuilder"
)

// Repository репозиторий прайс-листа (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll получает все позиции прайс-листа
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Price, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sqlbuilder.Select("id", "service_name", "price").
		From("prices").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	prices := make([]*domain.Price, 0)
	for rows.Next() {
		var p domain.Price
		if err := rows.Scan(&p.ID, &p.ServiceName, &p.Price); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}
		prices = append(prices, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return prices, nil
}
