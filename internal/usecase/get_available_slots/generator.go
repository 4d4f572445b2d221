package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// GenerateSlots возвращает времена начала, на которые можно записаться на service в день day
//
// Слоты идут от открытия с шагом в длительность услуги, пока слот целиком помещается до закрытия.
// Слот исключается, если пересекается с любым из existing по собственной длительности бронирования.
// existing должны быть уже отфильтрованы по дню и сотруднику; отмененные и пропущенные
// записи пропускаются и здесь. Часы интерпретируются в loc
func GenerateSlots(
	service *domain.Service,
	day time.Time,
	hours *domain.BusinessHours,
	existing []*domain.Booking,
	loc *time.Location,
) []types.TimeString {
	duration := service.DurationMinutes
	if duration <= 0 || duration >= hours.Minutes() {
		return []types.TimeString{}
	}

	dayInLoc := day.In(loc)
	opening := hours.Opening(dayInLoc, loc)
	closing := hours.Closing(dayInLoc, loc)

	busy := make([]domain.TimeWindow, 0, len(existing))
	for _, b := range existing {
		if isSlotExcluded(b.Status) {
			continue
		}
		busy = append(busy, b.Window())
	}

	step := time.Duration(duration) * time.Minute
	slots := make([]types.TimeString, 0, hours.Minutes()/duration)

	for start := opening; !start.Add(step).After(closing); start = start.Add(step) {
		candidate := domain.WindowOf(start, duration)
		if overlapsAny(candidate, busy) {
			continue
		}
		slots = append(slots, types.NewTimeString(start))
	}

	return slots
}

func overlapsAny(candidate domain.TimeWindow, busy []domain.TimeWindow) bool {
	for _, w := range busy {
		if candidate.Overlaps(w) {
			return true
		}
	}
	return false
}

func isSlotExcluded(status domain.BookingStatus) bool {
	for _, s := range domain.SlotExcludedStatuses {
		if status == s {
			return true
		}
	}
	return false
}
