package sqlbuilder

import (
	"fmt"
	"sync/atomic"

	"github.com/Masterminds/squirrel"
)

// Dialect диалект SQL, определяющий формат плейсхолдеров
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

var current atomic.Value

func init() {
	current.Store(MySQL)
}

// SetDialect задает диалект для всех построителей запросов.
// Вызывается один раз при старте сервиса.
func SetDialect(d Dialect) error {
	switch d {
	case MySQL, Postgres:
		current.Store(d)
		return nil
	default:
		return fmt.Errorf("sqlbuilder: unsupported dialect %q", d)
	}
}

// CurrentDialect возвращает текущий диалект
func CurrentDialect() Dialect {
	return current.Load().(Dialect)
}

// IsPostgres возвращает true для PostgreSQL (нужен RETURNING вместо LastInsertId)
func IsPostgres() bool {
	return CurrentDialect() == Postgres
}

func builder() squirrel.StatementBuilderType {
	if IsPostgres() {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Select создает SELECT запрос
func Select(columns ...string) squirrel.SelectBuilder {
	return builder().Select(columns...)
}

// Insert создает INSERT запрос
func Insert(table string) squirrel.InsertBuilder {
	return builder().Insert(table)
}

// Update создает UPDATE запрос
func Update(table string) squirrel.UpdateBuilder {
	return builder().Update(table)
}

// Delete создает DELETE запрос
func Delete(table string) squirrel.DeleteBuilder {
	return builder().Delete(table)
}
