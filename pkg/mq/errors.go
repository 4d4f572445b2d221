package mq

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("mq: failed to connect")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("mq: failed to publish")

	// ErrEncode возвращается, когда сообщение не сериализуется в JSON
	ErrEncode = errors.New("mq: failed to encode message")
)
