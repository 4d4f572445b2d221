package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирования с таким ID нет
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusChanged условная запись не применилась: статус в базе уже другой
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow ошибка чтения строки результата
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
