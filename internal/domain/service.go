package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry consumed by the scheduler. Read-only here.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
}

// Validate checks that the service can be scheduled
func (s *Service) Validate() error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service %d has non-positive duration", ErrInvalidInput, s.ID)
	}
	if s.DurationMinutes > MaxBookingDurationMinutes {
		return fmt.Errorf("%w: service %d lasts %d minutes, max is %d",
			ErrInvalidInput, s.ID, s.DurationMinutes, MaxBookingDurationMinutes)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("%w: service %d has negative price", ErrInvalidInput, s.ID)
	}
	return nil
}
