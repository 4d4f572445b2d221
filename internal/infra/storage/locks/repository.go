package locks

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

var (
	// ErrNoTransaction возвращается при попытке взять блокировку вне транзакции
	ErrNoTransaction = errors.New("locks.repository: advisory lock requires a transaction")

	// ErrLock возвращается, когда блокировку не удалось получить
	ErrLock = errors.New("locks.repository: failed to acquire advisory lock")
)

// Repository транзакционные advisory-блокировки Postgres
// Блокировка живет до конца транзакции и снимается при commit или rollback
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Lock берет блокировки по ключам в отсортированном порядке
// Одинаковый порядок у всех вызывающих исключает взаимную блокировку
func (r *Repository) Lock(ctx context.Context, keys ...string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, key := range SortedUnique(keys) {
		if _, err := executor.ExecContext(ctx, advisoryLockQuery, key); err != nil {
			return fmt.Errorf("%w: key=%s: %v", ErrLock, key, err)
		}
	}

	return nil
}

// SortedUnique возвращает ключи без повторов в лексикографическом порядке
func SortedUnique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
