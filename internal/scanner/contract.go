package scanner

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// BookingRepository поиск кандидатов для напоминаний и пропусков
type BookingRepository interface {
	Find(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// PersonRepository источник контактов получателей
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
}

// MissedMarker переводит просроченную запись в missed через автомат статусов
type MissedMarker interface {
	MarkMissed(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// TokenIssuer выпускает ссылку на перенос записи
type TokenIssuer interface {
	Issue(bookingID int64) (string, error)
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, msg notifier.Message)
}

// Metrics счетчик запусков сканера
type Metrics interface {
	ObserveScannerRun(task, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
