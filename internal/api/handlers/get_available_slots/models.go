package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	ServiceID       int64    `json:"serviceId"`
	StaffID         *int64   `json:"staffId,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
	StartHour       int      `json:"startHour"`
	EndHour         int      `json:"endHour"`
	Slots           []string `json:"slots"` // "HH:MM" в часовом поясе салона
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		DurationMinutes: resp.DurationMinutes,
		StartHour:       resp.StartHour,
		EndHour:         resp.EndHour,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Дата трактуется как календарный день салона
func ToUseCaseRequest(serviceID int64, staffID *int64, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
		StaffID:   staffID,
	}, nil
}
