package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
	"github.com/m04kA/SMC-MovingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

const table = "appointments"

// appointmentColumns порядок колонок совпадает с порядком в scanAppointment
var appointmentColumns = []string{
	"a.id",
	"a.id_user",
	"a.id_state",
	"a.id_van",
	"a.day",
	"a.schedule",
	"a.duration",
	"a.start_address",
	"a.end_address",
	"a.stairs",
	"a.distance",
	"a.staff",
	"a.elevator",
	"a.description",
	"a.cost",
	"a.is_deleted",
}

// Repository репозиторий для работы с заявками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := sqlbuilder.Insert(table).
		Columns(
			"id_user",
			"id_state",
			"id_van",
			"day",
			"schedule",
			"duration",
			"start_address",
			"end_address",
			"stairs",
			"distance",
			"staff",
			"elevator",
			"description",
			"cost",
			"is_deleted",
		).
		Values(
			a.UserID,
			a.StateID,
			a.VanID,
			a.Day,
			a.Schedule,
			a.Duration,
			a.StartAddress,
			a.EndAddress,
			a.Stairs,
			a.Distance,
			a.Staff,
			a.Elevator,
			a.Description,
			a.Cost,
			false,
		)

	if sqlbuilder.IsPostgres() {
		query, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
		}
		return a, nil
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - get last insert id: %w", ErrExecQuery, err)
	}
	a.ID = id

	return a, nil
}

// GetByID получает неудалённую заявку по ID
// Внутри транзакции блокирует строку (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sqlbuilder.Select(appointmentColumns...).
		From(table + " a").
		Where(squirrel.Eq{"a.id": id, "a.is_deleted": false})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// GetByIDAndUsername получает неудалённую заявку по ID, только если она принадлежит пользователю
// Внутри транзакции блокирует строку (FOR UPDATE).
func (r *Repository) GetByIDAndUsername(ctx context.Context, id int64, username string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sqlbuilder.Select(appointmentColumns...).
		From(table + " a").
		Join("users u ON u.id = a.id_user").
		Where(squirrel.Eq{"a.id": id, "u.username": username, "a.is_deleted": false})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndUsername - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndUsername - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// CountBySlots считает неудалённые заявки по каждому времени из labels в указанный день.
// Времена без заявок в результат не попадают.
func (r *Repository) CountBySlots(ctx context.Context, day time.Time, labels []types.TimeString) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedules := make([]interface{}, 0, len(labels))
	for _, l := range labels {
		v, err := l.Value()
		if err != nil {
			return nil, fmt.Errorf("%w: CountBySlots - invalid label %q: %v", ErrBuildQuery, l, err)
		}
		schedules = append(schedules, v)
	}

	query, args, err := sqlbuilder.Select("schedule", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"day": day, "is_deleted": false}).
		Where(squirrel.Eq{"schedule": schedules}).
		GroupBy("schedule").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountBySlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var schedule types.TimeString
		var total int
		if err := rows.Scan(&schedule, &total); err != nil {
			return nil, fmt.Errorf("%w: CountBySlots - scan row: %w", ErrScanRow, err)
		}
		// "10:00:00" и "10:00" считаются одним слотом
		counts[schedule] += total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountBySlots - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// LockSlot блокирует неудалённые заявки слота (day, schedule) и возвращает их количество.
// excludeID исключает саму заявку при переносе.
// Вне транзакции работает как обычный подсчёт.
func (r *Repository) LockSlot(ctx context.Context, day time.Time, schedule types.TimeString, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sqlbuilder.Select("id").
		From(table).
		Where(squirrel.Eq{"day": day, "schedule": schedule, "is_deleted": false})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	// Агрегаты с FOR UPDATE PostgreSQL не поддерживает, поэтому считаем строки в Go
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: LockSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: LockSlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: LockSlot - scan id: %w", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: LockSlot - rows error: %w", ErrScanRow, err)
	}

	return count, nil
}

// GetAssignedByDay получает неудалённые заявки дня, у которых назначен фургон
func (r *Repository) GetAssignedByDay(ctx context.Context, day time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sqlbuilder.Select(appointmentColumns...).
		From(table + " a").
		Where(squirrel.Eq{"a.day": day, "a.is_deleted": false}).
		Where(squirrel.NotEq{"a.id_van": nil}).
		OrderBy("a.id_van ASC", "a.schedule ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedByDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByVanAndDay получает неудалённые заявки фургона в указанный день.
// excludeID исключает саму заявку при переназначении или переносе.
// Внутри транзакции блокирует строки (FOR UPDATE).
func (r *Repository) GetByVanAndDay(ctx context.Context, vanID int64, day time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := sqlbuilder.Select(appointmentColumns...).
		From(table + " a").
		Where(squirrel.Eq{"a.id_van": vanID, "a.day": day, "a.is_deleted": false}).
		OrderBy("a.schedule ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVanAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVanAndDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetDetailsByDay получает неудалённые заявки дня с именами клиента, состояния и водителя,
// отсортированные по времени начала
func (r *Repository) GetDetailsByDay(ctx context.Context, day time.Time) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"a.day": day, "a.is_deleted": false}).
		OrderBy("a.schedule ASC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

// GetDetailsByUsername получает неудалённые заявки пользователя начиная с дня from
func (r *Repository) GetDetailsByUsername(ctx context.Context, username string, from time.Time) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"u.username": username, "a.is_deleted": false}).
		Where(squirrel.GtOrEq{"a.day": from}).
		OrderBy("a.day ASC", "a.schedule ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByUsername - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByUsername - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

// UpdateVan назначает фургон заявке. Удалённые заявки не обновляются.
func (r *Repository) UpdateVan(ctx context.Context, id int64, vanID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sqlbuilder.Update(table).
		Set("id_van", vanID).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateVan - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateVan", query, args)
}

// Update обновляет изменяемые владельцем поля заявки. Удалённые заявки не обновляются.
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sqlbuilder.Update(table).
		Set("day", a.Day).
		Set("schedule", a.Schedule).
		Set("duration", a.Duration).
		Set("start_address", a.StartAddress).
		Set("end_address", a.EndAddress).
		Set("stairs", a.Stairs).
		Set("distance", a.Distance).
		Set("staff", a.Staff).
		Set("elevator", a.Elevator).
		Set("description", a.Description).
		Set("cost", a.Cost).
		Where(squirrel.Eq{"id": a.ID, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// SoftDelete помечает заявку удалённой и переводит её в указанное состояние.
// Повторное удаление возвращает ErrAppointmentNotFound.
func (r *Repository) SoftDelete(ctx context.Context, id int64, state domain.State) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sqlbuilder.Update(table).
		Set("is_deleted", true).
		Set("id_state", state).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SoftDelete", query, args)
}

// execAffectingOne выполняет UPDATE и возвращает ErrAppointmentNotFound, если строка не изменилась
func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	columns := append([]string{}, appointmentColumns...)
	columns = append(columns, "u.username", "u.first_name", "u.last_name", "s.state_name", "v.driver_name")

	return sqlbuilder.Select(columns...).
		From(table + " a").
		Join("users u ON u.id = a.id_user").
		Join("states s ON s.id = a.id_state").
		LeftJoin("vans v ON v.id = a.id_van")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func appointmentDest(a *domain.Appointment, vanID *sql.NullInt64) []interface{} {
	return []interface{}{
		&a.ID,
		&a.UserID,
		&a.StateID,
		vanID,
		&a.Day,
		&a.Schedule,
		&a.Duration,
		&a.StartAddress,
		&a.EndAddress,
		&a.Stairs,
		&a.Distance,
		&a.Staff,
		&a.Elevator,
		&a.Description,
		&a.Cost,
		&a.IsDeleted,
	}
}

func applyVan(a *domain.Appointment, vanID sql.NullInt64) {
	if vanID.Valid {
		a.VanID = ptr.Ptr(vanID.Int64)
	}
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var vanID sql.NullInt64

	if err := row.Scan(appointmentDest(&a, &vanID)...); err != nil {
		return nil, err
	}
	applyVan(&a, vanID)

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс заявок
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// scanDetails сканирует заявки вместе с именами из связанных таблиц
func scanDetails(rows *sql.Rows) ([]*domain.AppointmentDetails, error) {
	details := make([]*domain.AppointmentDetails, 0)

	for rows.Next() {
		var d domain.AppointmentDetails
		var vanID sql.NullInt64
		var driverName sql.NullString

		dest := appointmentDest(&d.Appointment, &vanID)
		dest = append(dest, &d.Username, &d.FirstName, &d.LastName, &d.StateName, &driverName)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scanDetails - scan row: %w", ErrScanRow, err)
		}

		applyVan(&d.Appointment, vanID)
		if driverName.Valid {
			d.DriverName = ptr.Ptr(driverName.String)
		}

		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetails - rows error: %w", ErrScanRow, err)
	}

	return details, nil
}
