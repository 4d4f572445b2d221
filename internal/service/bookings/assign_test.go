package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonService/internal/testutil"
)

func (f *fixture) putUnassigned(status domain.BookingStatus, start time.Time) *domain.Booking {
	return f.store.PutBooking(domain.Booking{
		CustomerID:      f.customer.ID,
		ServiceID:       1,
		ServiceName:     "Стрижка",
		StartTime:       start,
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(1500),
		Status:          status,
		PaymentStatus:   domain.PaymentUnpaid,
	})
}

func TestAssignStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.putUnassigned(domain.StatusPending, at(11, 0))

	resp, err := f.svc.AssignStaff(ctx, f.admin, &models.AssignStaffRequest{BookingID: b.ID, StaffID: f.staff.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, f.staff.ID, *resp.StaffID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, at(11, 0), resp.StartTime)

	require.Len(t, f.store.LockedKeys, 1)
	assert.ElementsMatch(t, []string{
		domain.FieldCustomer.LockKey(f.customer.ID),
		domain.FieldStaff.LockKey(f.staff.ID),
	}, f.store.LockedKeys[0])

	// повторное назначение того же сотрудника не конфликтует с самой записью
	_, err = f.svc.AssignStaff(ctx, f.admin, &models.AssignStaffRequest{BookingID: b.ID, StaffID: f.staff.ID})
	assert.NoError(t, err)
}

func TestAssignStaff_StaffBusy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.put(domain.StatusConfirmed, at(11, 30))
	b := f.store.PutBooking(domain.Booking{
		CustomerID:      f.store.PutPerson(domain.Person{Name: "Олег", Email: "oleg@example.com", Role: domain.RoleCustomer}).ID,
		ServiceID:       1,
		StartTime:       at(11, 0),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	})

	_, err := f.svc.AssignStaff(ctx, f.admin, &models.AssignStaffRequest{BookingID: b.ID, StaffID: f.staff.ID})
	assert.ErrorIs(t, err, ErrStaffOverlap)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := f.store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.StaffID)
}

func TestAssignStaff_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := f.putUnassigned(domain.StatusPending, at(9, 0))

	tests := []struct {
		name    string
		actor   domain.Actor
		booking int64
		staff   int64
		want    error
	}{
		{name: "не администратор", actor: f.staff, booking: pending.ID, staff: f.staff.ID, want: ErrAccessDenied},
		{name: "неизвестный сотрудник", actor: f.admin, booking: pending.ID, staff: 999, want: domain.ErrNotFound},
		{name: "клиент вместо сотрудника", actor: f.admin, booking: pending.ID, staff: f.customer.ID, want: ErrStaffNotFound},
		{name: "нет записи", actor: f.admin, booking: 404, staff: f.staff.ID, want: ErrBookingNotFound},
		{name: "пустой сотрудник", actor: f.admin, booking: pending.ID, staff: 0, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AssignStaff(ctx, tt.actor, &models.AssignStaffRequest{BookingID: tt.booking, StaffID: tt.staff})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	stored, err := f.store.GetByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.StaffID)
}

func TestAssignStaff_TerminalBooking(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			b := f.putUnassigned(status, at(11, 0))

			_, err := f.svc.AssignStaff(context.Background(), f.admin, &models.AssignStaffRequest{BookingID: b.ID, StaffID: f.staff.ID})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		})
	}
}

func TestAssignStaff_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	b := f.putUnassigned(domain.StatusConfirmed, at(11, 0))
	f.store.FailUpdate = testutil.ErrInjected

	_, err := f.svc.AssignStaff(context.Background(), f.admin, &models.AssignStaffRequest{BookingID: b.ID, StaffID: f.staff.ID})
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
}
