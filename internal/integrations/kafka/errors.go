package kafka

import "errors"

var (
	// ErrNoBrokers возвращается, когда список брокеров пуст
	ErrNoBrokers = errors.New("kafka client: brokers not configured")

	// ErrPublish возвращается, когда брокер не принял сообщения
	ErrPublish = errors.New("kafka client: failed to publish messages")

	// ErrUnavailable возвращается, когда брокер недоступен для проверки готовности
	ErrUnavailable = errors.New("kafka client: broker unavailable")
)
