package notifier

import "context"

// LogChannel только пишет уведомление в лог, используется без настроенных провайдеров
type LogChannel struct {
	log Logger
}

func NewLogChannel(log Logger) *LogChannel {
	return &LogChannel{log: log}
}

func (c *LogChannel) Name() string {
	return "log"
}

func (c *LogChannel) Send(_ context.Context, msg Message) error {
	c.log.Info("Notification kind=%s booking=%d to=%q <%s>: %s",
		msg.Kind, msg.BookingID, msg.Contact.Name, msg.Contact.Email, msg.Subject)
	return nil
}
