package notifier

import "context"

// Channel способ доставки уведомления
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Publisher публикация событий в брокер (*mq.Publisher)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics счетчик доставленных уведомлений (*metrics.Metrics)
type Metrics interface {
	ObserveNotification(channel, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
