package overlap

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Guard проверяет, пересекается ли окно кандидата с активными бронированиями человека
// Результаты не кэшируются: каждая проверка читает хранилище заново
type Guard struct {
	bookingRepo BookingRepository
}

// NewGuard создает проверку пересечений
func NewGuard(bookingRepo BookingRepository) *Guard {
	return &Guard{bookingRepo: bookingRepo}
}

// HasOverlap сообщает, есть ли у personID (как клиента или сотрудника) бронирование
// в статусе pending, confirmed или checked-in, пересекающее [start, start+duration).
// excludeBookingID исключает само переносимое бронирование.
//
// Из базы выбираются записи, начинающиеся в (start - max(duration, MaxBookingDurationMinutes), end):
// запись, начавшаяся раньше, закончилась бы до start, потому что длиннее максимума записей нет.
// Точная проверка выполняется по собственной длительности каждой записи
func (g *Guard) HasOverlap(
	ctx context.Context,
	field domain.PersonField,
	personID int64,
	start time.Time,
	durationMinutes int,
	excludeBookingID *int64,
) (bool, error) {
	conflicts, err := g.Conflicts(ctx, field, personID, start, durationMinutes, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// Conflicts возвращает бронирования, с которыми пересекается кандидат
func (g *Guard) Conflicts(
	ctx context.Context,
	field domain.PersonField,
	personID int64,
	start time.Time,
	durationMinutes int,
	excludeBookingID *int64,
) ([]*domain.Booking, error) {
	if durationMinutes <= 0 || durationMinutes > domain.MaxBookingDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	candidate := domain.WindowOf(start, durationMinutes)
	lookback := time.Duration(max(durationMinutes, domain.MaxBookingDurationMinutes)) * time.Minute
	after := candidate.Start.Add(-lookback)

	filter := domain.BookingFilter{
		StartAfter:      &after,
		StartBefore:     &candidate.End,
		ExcludeStatuses: domain.OverlapExcludedStatuses,
		ExcludeID:       excludeBookingID,
	}

	switch field {
	case domain.FieldCustomer:
		filter.CustomerID = &personID
	case domain.FieldStaff:
		filter.StaffID = &personID
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	bookings, err := g.bookingRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%d: %v", ErrQuery, field, personID, err)
	}

	conflicts := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if !b.HoldsTime() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if candidate.Overlaps(b.Window()) {
			conflicts = append(conflicts, b)
		}
	}

	return conflicts, nil
}
