package domain

import (
	"fmt"
	"time"
)

// BusinessHours are opening hours for the salon or for a single staff member.
// Resolution order: staff row, global row (StaffID == nil), configured default.
type BusinessHours struct {
	ID        int64
	StaffID   *int64
	StartHour int
	EndHour   int // exclusive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal returns true for the salon-wide row
func (h *BusinessHours) IsGlobal() bool {
	return h.StaffID == nil
}

// Validate checks the hour range
func (h *BusinessHours) Validate() error {
	if h.StartHour < 0 || h.EndHour > 24 || h.StartHour >= h.EndHour {
		return fmt.Errorf("%w: business hours %d..%d", ErrInvalidInput, h.StartHour, h.EndHour)
	}
	return nil
}

// Minutes returns the length of the working day in minutes
func (h *BusinessHours) Minutes() int {
	return (h.EndHour - h.StartHour) * 60
}

// Opening returns day@StartHour:00 in loc
func (h *BusinessHours) Opening(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, h.StartHour, 0, 0, 0, loc)
}

// Closing returns day@EndHour:00 in loc
func (h *BusinessHours) Closing(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, h.EndHour, 0, 0, 0, loc)
}
