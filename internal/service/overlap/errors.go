package overlap

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidDuration возвращается для длительности вне (0, MaxBookingDurationMinutes]
	ErrInvalidDuration = fmt.Errorf("%w: overlap: invalid duration", domain.ErrInvalidInput)

	// ErrInvalidField возвращается для неизвестного поля персоны
	ErrInvalidField = fmt.Errorf("%w: overlap: invalid person field", domain.ErrInvalidInput)

	// ErrQuery возвращается, когда не удалось прочитать бронирования
	ErrQuery = fmt.Errorf("%w: overlap: failed to load bookings", domain.ErrInfrastructure)
)
