package hours

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	Get(ctx context.Context, staffID *int64) (*domain.BusinessHours, error)
	GetWithHierarchy(ctx context.Context, staffID *int64) (*domain.BusinessHours, error)
	Upsert(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error)
}

// PersonRepository интерфейс справочника для проверки сотрудника
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
