package notifier

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Kind тип уведомления
type Kind string

const (
	KindBookingCreated Kind = "booking.created"
	KindReminder       Kind = "booking.reminder"
	KindMissed         Kind = "booking.missed"
	KindCancelled      Kind = "booking.cancelled"
	KindRescheduled    Kind = "booking.rescheduled"
)

// Message уведомление для одного получателя
type Message struct {
	Kind      Kind
	Contact   domain.Contact
	Subject   string
	Body      string
	BookingID int64

	// RescheduleToken заполняется для уведомления о пропущенной записи
	RescheduleToken string
}

// Event сообщение в брокере с ключом notification.requested
type Event struct {
	Kind            Kind      `json:"kind"`
	BookingID       int64     `json:"bookingId,omitempty"`
	PersonID        int64     `json:"personId,omitempty"`
	Name            string    `json:"name,omitempty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	RescheduleToken string    `json:"rescheduleToken,omitempty"`
	RequestedAt     time.Time `json:"requestedAt"`
}
