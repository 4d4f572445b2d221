package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBooking_WindowUsesOwnDuration(t *testing.T) {
	b := &Booking{StartTime: at(11, 0), DurationMinutes: 45}
	assert.Equal(t, at(11, 45), b.EndTime())
}

func TestBookingStatus_HoldsTime(t *testing.T) {
	assert.True(t, StatusPending.HoldsTime())
	assert.True(t, StatusConfirmed.HoldsTime())
	assert.True(t, StatusCheckedIn.HoldsTime())
	assert.False(t, StatusCompleted.HoldsTime())
	assert.False(t, StatusCancelled.HoldsTime())
	assert.False(t, StatusMissed.HoldsTime())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("checked-in")
	assert.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, s)

	_, err = ParseBookingStatus("no_show")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Validate(t *testing.T) {
	ok := &Service{ID: 1, DurationMinutes: 60, Price: decimal.NewFromInt(50)}
	assert.NoError(t, ok.Validate())

	tooLong := &Service{ID: 2, DurationMinutes: MaxBookingDurationMinutes + 1}
	assert.ErrorIs(t, tooLong.Validate(), ErrInvalidInput)

	zero := &Service{ID: 3}
	assert.ErrorIs(t, zero.Validate(), ErrInvalidInput)
}

func TestBusinessHours(t *testing.T) {
	h := &BusinessHours{StartHour: 9, EndHour: 18}
	assert.NoError(t, h.Validate())
	assert.Equal(t, 540, h.Minutes())
	assert.Equal(t, at(9, 0), h.Opening(at(15, 30), at(0, 0).Location()))
	assert.Equal(t, at(18, 0), h.Closing(at(15, 30), at(0, 0).Location()))

	bad := &BusinessHours{StartHour: 18, EndHour: 9}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
