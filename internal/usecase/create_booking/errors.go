package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_booking: service not found", domain.ErrNotFound)

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = fmt.Errorf("%w: create_booking: customer not found", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = fmt.Errorf("%w: create_booking: staff member not found", domain.ErrNotFound)

	// ErrCustomerOverlap возвращается, когда у клиента уже есть запись на это время
	ErrCustomerOverlap = fmt.Errorf("%w: customer overlap", domain.ErrConflict)

	// ErrStaffOverlap возвращается, когда у сотрудника уже есть запись на это время
	ErrStaffOverlap = fmt.Errorf("%w: staff overlap", domain.ErrConflict)

	// ErrAccessDenied возвращается, когда роль не позволяет создать такую запись
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_booking: internal error", domain.ErrInfrastructure)
)
