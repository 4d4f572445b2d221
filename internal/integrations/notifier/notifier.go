package notifier

import (
	"context"
	"errors"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Notifier рассылает уведомление по всем настроенным каналам
// Ошибки каналов логируются и учитываются в метриках, но не возвращаются вызывающему
type Notifier struct {
	channels []Channel
	metrics  Metrics
	log      Logger
}

// New создает рассылку; без каналов уведомления только пишутся в лог
func New(log Logger, m Metrics, channels ...Channel) *Notifier {
	if len(channels) == 0 {
		channels = []Channel{NewLogChannel(log)}
	}
	return &Notifier{channels: channels, metrics: m, log: log}
}

// Notify доставляет сообщение по каналам; отказ одного канала не мешает остальным
func (n *Notifier) Notify(ctx context.Context, msg Message) {
	for _, ch := range n.channels {
		err := ch.Send(ctx, msg)
		switch {
		case err == nil:
			n.observe(ch.Name(), resultSent)
		case errors.Is(err, ErrNoAddress):
			n.observe(ch.Name(), resultSkipped)
		default:
			n.observe(ch.Name(), resultFailed)
			n.log.Error("Notify: channel=%s kind=%s booking=%d person=%d failed: %v",
				ch.Name(), msg.Kind, msg.BookingID, msg.Contact.PersonID, err)
		}
	}
}

func (n *Notifier) observe(channel, result string) {
	if n.metrics != nil {
		n.metrics.ObserveNotification(channel, result)
	}
}
