package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewTransactionManager(dbmetrics.Wrap(db, nil)), mock
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.TxFromContext(ctx)
		_, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "customer:1")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnError(t *testing.T) {
	mgr, mock := newManager(t)
	errBusiness := errors.New("customer overlap")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_JoinsExistingTransaction(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.Do(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = mgr.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: serializationFailureCode})
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginFailure(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)
}
