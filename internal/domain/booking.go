package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCheckedIn BookingStatus = "checked-in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusMissed    BookingStatus = "missed"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a scheduled service occurrence
type Booking struct {
	ID         int64
	CustomerID int64
	StaffID    *int64 // nil until a staff member is assigned
	ServiceID  int64
	StartTime  time.Time

	// Snapshotted from the service at creation time and never re-derived
	ServiceName     string
	DurationMinutes int
	Price           decimal.Decimal

	Status        BookingStatus
	PaymentStatus PaymentStatus
	CheckedIn     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the instant the booking ends, using its own duration
func (b *Booking) EndTime() time.Time {
	return b.Window().End
}

// Window returns the booked interval
func (b *Booking) Window() TimeWindow {
	return WindowOf(b.StartTime, b.DurationMinutes)
}

// IsTerminal returns true if no further status transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// HoldsTime returns true if the booking occupies its window for overlap purposes
func (b *Booking) HoldsTime() bool {
	return b.Status.HoldsTime()
}

// HasStaff returns true if a staff member is assigned
func (b *Booking) HasStaff() bool {
	return b.StaffID != nil
}

// IsTerminal returns true for completed and cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HoldsTime returns true for pending, confirmed and checked-in
func (s BookingStatus) HoldsTime() bool {
	for _, excluded := range OverlapExcludedStatuses {
		if s == excluded {
			return false
		}
	}
	return true
}

// Valid returns true if s is a known status
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled, StatusMissed:
		return true
	}
	return false
}

// ParseBookingStatus converts an external string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, s)
	}
	return status, nil
}

// Valid returns true if p is a known payment status
func (p PaymentStatus) Valid() bool {
	return p == PaymentUnpaid || p == PaymentPaid || p == PaymentRefunded
}

// BookingFilter фильтр выборки бронирований
// Пустые поля не ограничивают выборку
type BookingFilter struct {
	CustomerID      *int64
	StaffID         *int64
	StartFrom       *time.Time // start_time >= StartFrom
	StartAfter      *time.Time // start_time > StartAfter
	StartBefore     *time.Time // start_time < StartBefore
	Statuses        []BookingStatus
	ExcludeStatuses []BookingStatus
	ExcludeID       *int64
	CheckedIn       *bool
}
