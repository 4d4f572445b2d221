package person

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const (
	table = "persons"

	uniqueViolationCode = "23505"
)

var columns = []string{"id", "name", "email", "phone", "role", "created_at", "updated_at"}

// Repository справочник клиентов и сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись; email хранится в нижнем регистре
func (r *Repository) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p.Email = domain.NormalizeEmail(p.Email)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "email", "phone", "role").
		Values(p.Name, p.Email, p.Phone, p.Role).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// FindByEmail ищет запись по email без учета регистра
// Условие совпадает с выражением уникального индекса на LOWER(email)
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	return r.getOne(ctx, "FindByEmail", squirrel.Expr("LOWER(email) = ?", domain.NormalizeEmail(email)))
}

// FindByPhone ищет запись по телефону
// Телефон не уникален, при нескольких совпадениях берется самая ранняя запись
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*domain.Person, error) {
	return r.getOne(ctx, "FindByPhone", squirrel.Eq{"phone": phone})
}

// UpdateContact обновляет имя и телефон, пустые значения не трогают поле
func (r *Repository) UpdateContact(ctx context.Context, id int64, name, phone *string) error {
	if name == nil && phone == nil {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if name != nil {
		updateBuilder = updateBuilder.Set("name", *name)
	}
	if phone != nil {
		updateBuilder = updateBuilder.Set("phone", *phone)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPersonNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Person
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Role,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan person: %v", ErrScanRow, op, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
