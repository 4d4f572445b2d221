package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	hoursService "github.com/m04kA/SMC-SalonService/internal/service/hours"
	"github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

// Каждый предложенный слот должен бронироваться без конфликта,
// а каждый исключенный - действительно пересекаться с существующей записью
func TestSlotsAgreeWithOverlapGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f.store.PutService(domain.Service{ID: 2, Name: "Окрашивание", DurationMinutes: 90})
	f.store.PutBooking(domain.Booking{CustomerID: f.customer.ID, StaffID: &f.staff.ID, ServiceID: 2, StartTime: at(10, 30), DurationMinutes: 90, Status: domain.StatusConfirmed})
	f.store.PutBooking(domain.Booking{CustomerID: f.customer.ID, StaffID: &f.staff.ID, ServiceID: 1, StartTime: at(15, 0), DurationMinutes: 60, Status: domain.StatusCompleted})
	f.store.PutBooking(domain.Booking{CustomerID: f.customer.ID, StaffID: &f.staff.ID, ServiceID: 1, StartTime: at(9, 0), DurationMinutes: 60, Status: domain.StatusCancelled})

	hours := hoursService.NewService(f.store.HoursRepo(), f.store.PersonRepo(), f.store,
		domain.BusinessHours{StartHour: domain.DefaultStartHour, EndHour: domain.DefaultEndHour}, logger.NewDiscard())
	slotsUC := get_available_slots.NewUseCase(f.store, hours, f.store, time.UTC, logger.NewDiscard())

	resp, err := slotsUC.Execute(ctx, &get_available_slots.Request{ServiceID: 1, Date: day, StaffID: &f.staff.ID})
	require.NoError(t, err)

	offered := make(map[string]bool)
	for _, s := range resp.Slots {
		offered[s.String()] = true
	}
	assert.Equal(t, map[string]bool{
		"09:00": true, "12:00": true, "13:00": true, "14:00": true, "16:00": true, "17:00": true,
	}, offered)

	// слоты проверяются до бронирования, иначе новые записи повлияют на следующие
	for hour := domain.DefaultStartHour; hour < domain.DefaultEndHour; hour++ {
		label := fmt.Sprintf("%02d:00", hour)
		fresh := f.newCustomer(fmt.Sprintf("p2-%d@example.com", hour))
		_, err := f.uc.Execute(ctx, f.admin, &Request{CustomerID: fresh.ID, ServiceID: 1, StartTime: at(hour, 0), StaffID: &f.staff.ID})

		if offered[label] {
			assert.NoError(t, err, "offered slot %s must be bookable", label)
			continue
		}
		if hour == 15 {
			// завершенная запись занимает слот в расписании, но не блокирует новую запись
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, ErrStaffOverlap, "excluded slot %s", label)
	}
}
