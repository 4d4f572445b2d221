package notifier

import (
	"context"
	"fmt"
	"time"
)

// RoutingKey ключ, по которому внешний воркер (SMS, push) подписывается на уведомления
const RoutingKey = "notification.requested"

// BrokerChannel публикует уведомление событием в RabbitMQ
type BrokerChannel struct {
	publisher Publisher
	now       func() time.Time
}

// NewBrokerChannel создает канал поверх издателя
func NewBrokerChannel(publisher Publisher) *BrokerChannel {
	return &BrokerChannel{publisher: publisher, now: time.Now}
}

func (c *BrokerChannel) Name() string {
	return "broker"
}

func (c *BrokerChannel) Send(ctx context.Context, msg Message) error {
	event := Event{
		Kind:            msg.Kind,
		BookingID:       msg.BookingID,
		PersonID:        msg.Contact.PersonID,
		Name:            msg.Contact.Name,
		Email:           msg.Contact.Email,
		Phone:           msg.Contact.Phone,
		Subject:         msg.Subject,
		Body:            msg.Body,
		RescheduleToken: msg.RescheduleToken,
		RequestedAt:     c.now().UTC(),
	}

	if err := c.publisher.PublishJSON(ctx, RoutingKey, event); err != nil {
		return fmt.Errorf("%w: broker: %v", ErrDelivery, err)
	}
	return nil
}
