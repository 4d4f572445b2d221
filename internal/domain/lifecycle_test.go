package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_Legal(t *testing.T) {
	tests := []struct {
		from   BookingStatus
		action Action
		want   BookingStatus
	}{
		{StatusConfirmed, ActionCheckIn, StatusCheckedIn},
		{StatusConfirmed, ActionComplete, StatusCompleted},
		{StatusCheckedIn, ActionComplete, StatusCompleted},
		{StatusPending, ActionCancel, StatusCancelled},
		{StatusConfirmed, ActionCancel, StatusCancelled},
		{StatusCheckedIn, ActionCancel, StatusCancelled},
		{StatusPending, ActionMarkMissed, StatusMissed},
		{StatusConfirmed, ActionMarkMissed, StatusMissed},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := NextStatus(tt.from, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_TerminalIsFinal(t *testing.T) {
	for _, status := range []BookingStatus{StatusCompleted, StatusCancelled} {
		for action := range transitions {
			_, err := NextStatus(status, action)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", status, action)
		}
	}
}

func TestNextStatus_Illegal(t *testing.T) {
	tests := []struct {
		from   BookingStatus
		action Action
	}{
		{StatusPending, ActionCheckIn},
		{StatusCheckedIn, ActionCheckIn},
		{StatusPending, ActionComplete},
		{StatusMissed, ActionCancel},
		{StatusCheckedIn, ActionMarkMissed},
		{StatusMissed, ActionMarkMissed},
	}

	for _, tt := range tests {
		_, err := NextStatus(tt.from, tt.action)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.action)
	}
}

func TestNextStatus_UnknownAction(t *testing.T) {
	_, err := NextStatus(StatusConfirmed, Action("teleport"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseAction("teleport")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsOverdue(t *testing.T) {
	now := at(12, 0)
	grace := 10 * time.Minute

	booking := &Booking{StartTime: now.Add(-20 * time.Minute), Status: StatusConfirmed}
	assert.True(t, IsOverdue(booking, now, grace))

	booking.StartTime = now.Add(-5 * time.Minute)
	assert.False(t, IsOverdue(booking, now, grace), "inside grace period")

	booking.StartTime = now.Add(-20 * time.Minute)
	booking.CheckedIn = true
	assert.False(t, IsOverdue(booking, now, grace), "checked in")

	booking.CheckedIn = false
	booking.Status = StatusCancelled
	assert.False(t, IsOverdue(booking, now, grace), "cancelled")
}

func TestCanReschedule(t *testing.T) {
	assert.True(t, CanReschedule(StatusPending))
	assert.True(t, CanReschedule(StatusConfirmed))
	assert.True(t, CanReschedule(StatusMissed))
	assert.False(t, CanReschedule(StatusCheckedIn))
	assert.False(t, CanReschedule(StatusCompleted))
	assert.False(t, CanReschedule(StatusCancelled))
}
