package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Find(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, markCheckedIn bool) error
	Reschedule(ctx context.Context, id int64, from domain.BookingStatus, newStart time.Time, to domain.BookingStatus) error
	AssignStaff(ctx context.Context, id int64, from domain.BookingStatus, staffID int64) error
}

// PersonRepository справочник людей: контакты для уведомлений и проверка сотрудника
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
}

// OverlapGuard проверка пересечений при переносе
type OverlapGuard interface {
	HasOverlap(ctx context.Context, field domain.PersonField, personID int64, start time.Time, durationMinutes int, excludeBookingID *int64) (bool, error)
}

// Locker транзакционные блокировки по ключам
type Locker interface {
	Lock(ctx context.Context, keys ...string) error
}

// TokenParser проверяет ссылку на перенос из уведомления о пропуске
type TokenParser interface {
	Parse(raw string) (int64, error)
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, msg notifier.Message)
}

// Metrics счетчик переходов статусов
type Metrics interface {
	ObserveTransition(action, result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
