package hours

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = fmt.Errorf("%w: staff member not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда часы меняет не администратор
	ErrAccessDenied = errors.New("hours: access denied")

	// ErrInvalidInput возвращается при некорректных часах
	ErrInvalidInput = fmt.Errorf("%w: hours: invalid business hours", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: hours: internal error", domain.ErrInfrastructure)
)
