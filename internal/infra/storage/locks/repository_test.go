package locks

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
)

func TestLock_SortedInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).WithArgs("customer:1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).WithArgs("staff:5").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	err = repo.Lock(dbmetrics.WithTx(context.Background(), tx), "staff:5", "customer:1", "staff:5")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_RequiresTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewRepository(db).Lock(context.Background(), "customer:1")
	assert.ErrorIs(t, err, ErrNoTransaction)
}

func TestSortedUnique(t *testing.T) {
	got := SortedUnique([]string{"staff:2", "", "customer:9", "staff:2", "person-email:a@b.c"})
	assert.Equal(t, []string{"customer:9", "person-email:a@b.c", "staff:2"}, got)
}
