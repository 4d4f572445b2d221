package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Find(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// HoursResolver рабочие часы с учетом иерархии
type HoursResolver interface {
	Resolve(ctx context.Context, staffID *int64) (*domain.BusinessHours, error)
}

// CatalogClient интерфейс каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
