package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход недопустим из текущего статуса
	ErrInvalidTransition = fmt.Errorf("%w: booking status does not allow this action", domain.ErrInvalidTransition)

	// ErrCustomerOverlap возвращается, когда новое время пересекается с другой записью клиента
	ErrCustomerOverlap = fmt.Errorf("%w: customer overlap", domain.ErrConflict)

	// ErrStaffOverlap возвращается, когда новое время пересекается с другой записью сотрудника
	ErrStaffOverlap = fmt.Errorf("%w: staff overlap", domain.ErrConflict)

	// ErrStaffNotFound возвращается, когда назначаемый сотрудник не найден или не является сотрудником
	ErrStaffNotFound = fmt.Errorf("%w: staff member not found", domain.ErrNotFound)

	// ErrInvalidToken возвращается для поддельной или просроченной ссылки на перенос
	ErrInvalidToken = fmt.Errorf("%w: invalid reschedule token", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: service: internal error", domain.ErrInfrastructure)
)
