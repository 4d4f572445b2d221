package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"customer_id",
	"staff_id",
	"service_id",
	"service_name",
	"start_time",
	"duration_minutes",
	"status",
	"price",
	"payment_status",
	"checked_in",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Проверки пересечений и блокировки должны выполняться в той же транзакции до вызова Create
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_id",
			"staff_id",
			"service_id",
			"service_name",
			"start_time",
			"duration_minutes",
			"status",
			"price",
			"payment_status",
			"checked_in",
		).
		Values(
			booking.CustomerID,
			booking.StaffID,
			booking.ServiceID,
			booking.ServiceName,
			booking.StartTime.UTC(),
			booking.DurationMinutes,
			booking.Status,
			booking.Price,
			booking.PaymentStatus,
			booking.CheckedIn,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Find получает бронирования по фильтру, отсортированные по времени начала
// Используется проверкой пересечений, расчетом слотов, сканером и списками
//
// Для проверки пересечений фильтр ограничивает выборку окном вокруг кандидата,
// а точная проверка делается в коде по собственной длительности каждой записи.
// Запрос по (customer_id|staff_id, start_time, status) покрывается составными индексами
func (r *Repository) Find(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time ASC", "id ASC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	// Фильтрация по периоду
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": filter.StartFrom.UTC()})
	}
	if filter.StartAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"start_time": filter.StartAfter.UTC()})
	}
	if filter.StartBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": filter.StartBefore.UTC()})
	}

	// Фильтрация по статусу
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if len(filter.ExcludeStatuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(filter.ExcludeStatuses)})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	if filter.CheckedIn != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"checked_in": *filter.CheckedIn})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Find - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Find - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Find - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Запись выполняется только если текущий статус всё ещё from (compare-and-set),
// иначе возвращается ErrStatusChanged и строка не меняется.
// markCheckedIn только выставляет флаг, сброса флага нет
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, markCheckedIn bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if markCheckedIn {
		updateBuilder = updateBuilder.Set("checked_in", true)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, "UpdateStatus", query, args)
}

// Reschedule переносит бронирование на newStart и выставляет статус to
// Как и UpdateStatus, пишет только если текущий статус равен from.
// Услуга, длительность и цена не пересчитываются
func (r *Repository) Reschedule(ctx context.Context, id int64, from domain.BookingStatus, newStart time.Time, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_time", newStart.UTC()).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, "Reschedule", query, args)
}

// AssignStaff назначает сотрудника staffID, если статус записи всё ещё from
func (r *Repository) AssignStaff(ctx context.Context, id int64, from domain.BookingStatus, staffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("staff_id", staffID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignStaff - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, "AssignStaff", query, args)
}

func (r *Repository) execCAS(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.StaffID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.Price,
		&booking.PaymentStatus,
		&booking.CheckedIn,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
