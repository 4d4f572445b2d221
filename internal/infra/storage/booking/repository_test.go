package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	start := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings \(customer_id,staff_id,service_id`).
		WithArgs(int64(1), ptr.Ptr(int64(5)), int64(10), "Стрижка", start, 60,
			domain.StatusConfirmed, decimal.RequireFromString("1500.00"), domain.PaymentUnpaid, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(100), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		CustomerID:      1,
		StaffID:         ptr.Ptr(int64(5)),
		ServiceID:       10,
		ServiceName:     "Стрижка",
		StartTime:       start,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		Price:           decimal.RequireFromString("1500.00"),
		PaymentStatus:   domain.PaymentUnpaid,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)
	start := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(bookingRows().AddRow(
			int64(7), int64(1), nil, int64(10), "Маникюр", start, 45, "confirmed",
			"800.00", "unpaid", false, start, start,
		))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
	assert.Nil(t, b.StaffID)
	assert.Equal(t, 45, b.DurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.True(t, decimal.RequireFromString("800").Equal(b.Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestFind_OverlapWindow(t *testing.T) {
	repo, mock := newRepo(t)
	from := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	before := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE customer_id = \$1 AND start_time > \$2 AND start_time < \$3 AND status NOT IN \(\$4,\$5,\$6\) AND id <> \$7 ORDER BY start_time ASC, id ASC`).
		WithArgs(int64(1), from, before, "cancelled", "completed", "missed", int64(9)).
		WillReturnRows(bookingRows().AddRow(
			int64(3), int64(1), int64(5), int64(10), "Стрижка", from.Add(8*time.Hour), 60, "confirmed",
			"1500.00", "paid", false, from, from,
		))

	bookings, err := repo.Find(context.Background(), domain.BookingFilter{
		CustomerID:      ptr.Ptr(int64(1)),
		StartAfter:      &from,
		StartBefore:     &before,
		ExcludeStatuses: domain.OverlapExcludedStatuses,
		ExcludeID:       ptr.Ptr(int64(9)),
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(5), *bookings[0].StaffID)
	assert.Equal(t, domain.PaymentPaid, bookings[0].PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_CompareAndSet(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\), checked_in = \$2 WHERE id = \$3 AND status = \$4`).
		WithArgs(domain.StatusCheckedIn, true, int64(7), domain.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 7, domain.StatusConfirmed, domain.StatusCheckedIn, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_LostRace(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 7, domain.StatusConfirmed, domain.StatusCancelled, false)
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestReschedule(t *testing.T) {
	repo, mock := newRepo(t)
	newStart := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE bookings SET start_time = \$1, status = \$2, updated_at = NOW\(\) WHERE id = \$3 AND status = \$4`).
		WithArgs(newStart, domain.StatusConfirmed, int64(7), domain.StatusMissed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Reschedule(context.Background(), 7, domain.StatusMissed, newStart, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignStaff(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET staff_id = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs(int64(5), int64(7), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AssignStaff(context.Background(), 7, domain.StatusPending, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignStaff_StatusChanged(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET staff_id`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignStaff(context.Background(), 7, domain.StatusPending, 5)
	assert.ErrorIs(t, err, ErrStatusChanged)
}
