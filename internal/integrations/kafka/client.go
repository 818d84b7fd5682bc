package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MessageWriter отправка сообщений (kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client публикует события outbox в Kafka: топик - тип события, ключ - id агрегата
type Client struct {
	brokers     []string
	writer      MessageWriter
	dialTimeout time.Duration
	log         Logger
}

// NewClient создает клиента для брокеров из строки "host:port,host:port"
func NewClient(brokers string, writeTimeout time.Duration, log Logger) (*Client, error) {
	list := SplitBrokers(brokers)
	if len(list) == 0 {
		return nil, ErrNoBrokers
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(list...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	return NewClientWithWriter(list, writer, log), nil
}

// NewClientWithWriter создает клиента с готовым writer
func NewClientWithWriter(brokers []string, writer MessageWriter, log Logger) *Client {
	return &Client{
		brokers:     brokers,
		writer:      writer,
		dialTimeout: 2 * time.Second,
		log:         log,
	}
}

// Publish отправляет события одним батчем
func (c *Client) Publish(ctx context.Context, events []*domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, toMessage(ctx, e))
	}

	if err := c.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %d messages: %v", ErrPublish, len(msgs), err)
	}

	c.log.Info("Kafka: published %d messages", len(msgs))
	return nil
}

// Ready проверяет, что первый брокер принимает TCP соединение
func (c *Client) Ready(ctx context.Context) error {
	dialer := kafka.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.brokers[0])
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, c.brokers[0], err)
	}
	_ = conn.Close()
	return nil
}

// Close закрывает writer, дожидаясь отправки буфера
func (c *Client) Close() error {
	return c.writer.Close()
}

func toMessage(ctx context.Context, e *domain.OutboxEvent) kafka.Message {
	headers := []kafka.Header{
		{Key: HeaderEventID, Value: []byte(e.EventID.String())},
		{Key: HeaderEventType, Value: []byte(e.EventType)},
		{Key: HeaderTenantID, Value: []byte(e.TenantID.String())},
	}

	return kafka.Message{
		Topic:   e.EventType,
		Key:     []byte(e.AggregateID),
		Value:   e.Payload,
		Headers: injectTraceHeaders(ctx, headers),
	}
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
