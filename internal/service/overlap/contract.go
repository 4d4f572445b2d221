package overlap

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// BookingRepository чтение бронирований для проверки пересечений
type BookingRepository interface {
	Find(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}
