package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PersonRepository интерфейс справочника клиентов и сотрудников
type PersonRepository interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	FindByEmail(ctx context.Context, email string) (*domain.Person, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Person, error)
	UpdateContact(ctx context.Context, id int64, name, phone *string) error
}

// OverlapGuard проверка пересечений по клиенту и сотруднику
type OverlapGuard interface {
	HasOverlap(ctx context.Context, field domain.PersonField, personID int64, start time.Time, durationMinutes int, excludeBookingID *int64) (bool, error)
}

// Locker транзакционные блокировки по ключам
type Locker interface {
	Lock(ctx context.Context, keys ...string) error
}

// CatalogClient интерфейс каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// Notifier отправка уведомлений, ошибки доставки не возвращаются
type Notifier interface {
	Notify(ctx context.Context, msg notifier.Message)
}

// Metrics счетчик созданных бронирований
type Metrics interface {
	ObserveBookingCreated(result string)
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
