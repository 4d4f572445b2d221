package notifier

import "errors"

var (
	// ErrNoAddress возвращается каналом, когда у получателя нет адреса для него
	ErrNoAddress = errors.New("notifier: contact has no address for channel")

	// ErrDelivery возвращается при отказе провайдера доставки
	ErrDelivery = errors.New("notifier: delivery failed")
)
