package notifier

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const displayLayout = "02.01.2006 15:04"

// BookingCreatedMessage подтверждение новой записи
func BookingCreatedMessage(b *domain.Booking, to domain.Contact, loc *time.Location) Message {
	return Message{
		Kind:      KindBookingCreated,
		Contact:   to,
		BookingID: b.ID,
		Subject:   "Запись подтверждена",
		Body: fmt.Sprintf("Здравствуйте, %s! Вы записаны на «%s» %s, длительность %d мин.",
			to.Name, b.ServiceName, b.StartTime.In(loc).Format(displayLayout), b.DurationMinutes),
	}
}

// ReminderMessage напоминание о записи за lookahead до начала
func ReminderMessage(b *domain.Booking, to domain.Contact, lookahead time.Duration, loc *time.Location) Message {
	return Message{
		Kind:      KindReminder,
		Contact:   to,
		BookingID: b.ID,
		Subject:   fmt.Sprintf("Напоминание: запись через %s", humanize(lookahead)),
		Body: fmt.Sprintf("Здравствуйте, %s! Напоминаем о записи на «%s» %s.",
			to.Name, b.ServiceName, b.StartTime.In(loc).Format(displayLayout)),
	}
}

// MissedMessage уведомление о пропущенной записи со ссылкой на перенос
func MissedMessage(b *domain.Booking, to domain.Contact, token, rescheduleURL string, loc *time.Location) Message {
	body := fmt.Sprintf("Здравствуйте, %s! Вы пропустили запись на «%s» %s.",
		to.Name, b.ServiceName, b.StartTime.In(loc).Format(displayLayout))
	if token != "" {
		body += fmt.Sprintf(" Перенести запись: %s?token=%s", rescheduleURL, token)
	}

	return Message{
		Kind:            KindMissed,
		Contact:         to,
		BookingID:       b.ID,
		Subject:         "Запись пропущена, перенесите визит",
		Body:            body,
		RescheduleToken: token,
	}
}

// CancelledMessage уведомление об отмене записи
func CancelledMessage(b *domain.Booking, to domain.Contact, loc *time.Location) Message {
	return Message{
		Kind:      KindCancelled,
		Contact:   to,
		BookingID: b.ID,
		Subject:   "Запись отменена",
		Body: fmt.Sprintf("Здравствуйте, %s! Запись на «%s» %s отменена.",
			to.Name, b.ServiceName, b.StartTime.In(loc).Format(displayLayout)),
	}
}

// RescheduledMessage уведомление о переносе записи
func RescheduledMessage(b *domain.Booking, to domain.Contact, loc *time.Location) Message {
	return Message{
		Kind:      KindRescheduled,
		Contact:   to,
		BookingID: b.ID,
		Subject:   "Запись перенесена",
		Body: fmt.Sprintf("Здравствуйте, %s! Запись на «%s» перенесена на %s.",
			to.Name, b.ServiceName, b.StartTime.In(loc).Format(displayLayout)),
	}
}

func humanize(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%d ч", int(d/time.Hour))
	}
	return fmt.Sprintf("%d мин", int(d/time.Minute))
}
