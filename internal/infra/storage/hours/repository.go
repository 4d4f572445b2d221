package hours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const table = "business_hours"

var columns = []string{"id", "staff_id", "start_hour", "end_hour", "created_at", "updated_at"}

// Repository репозиторий рабочих часов
// Строка со staff_id = NULL задает часы салона, строка с staff_id переопределяет их для сотрудника
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает рабочие часы ровно для staffID (nil - часы салона)
func (r *Repository) Get(ctx context.Context, staffID *int64) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(staffCondition(staffID)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.BusinessHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.StaffID,
		&h.StartHour,
		&h.EndHour,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan business hours: %v", ErrScanRow, err)
	}

	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return &h, nil
}

// GetWithHierarchy получает часы с учетом иерархии приоритетов
// 1. Часы конкретного сотрудника (если staffID задан)
// 2. Часы салона
// Если не найдено ни одной строки, возвращается ErrHoursNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, staffID *int64) (*domain.BusinessHours, error) {
	if staffID != nil {
		h, err := r.Get(ctx, staffID)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, ErrHoursNotFound) {
			return nil, err
		}
	}

	return r.Get(ctx, nil)
}

// upsertSuffix опирается на уникальный индекс business_hours_staff_uidx по COALESCE(staff_id, 0)
const upsertSuffix = "ON CONFLICT ((COALESCE(staff_id, 0))) DO UPDATE SET " +
	"start_hour = EXCLUDED.start_hour, end_hour = EXCLUDED.end_hour, updated_at = NOW() " +
	"RETURNING id, created_at, updated_at"

// Upsert сохраняет часы для h.StaffID одним запросом
// Конкурентные первые записи для одного сотрудника сходятся в одну строку
func (r *Repository) Upsert(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("staff_id", "start_hour", "end_hour").
		Values(h.StaffID, h.StartHour, h.EndHour).
		Suffix(upsertSuffix).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return h, nil
}

// staffCondition фильтр по staff_id (NULL или конкретное значение)
func staffCondition(staffID *int64) squirrel.Eq {
	if staffID == nil {
		return squirrel.Eq{"staff_id": nil}
	}
	return squirrel.Eq{"staff_id": *staffID}
}
