package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type notificationPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// writerBatchTimeout bounds how long a synchronous write waits for a batch
// to fill. Publish runs inside the request that raised the notification.
const writerBatchTimeout = 5 * time.Millisecond

// NewKafkaWriter builds a writer for topic on brokers. Every message is
// flushed on its own.
func NewKafkaWriter(brokers []string, topic string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		BatchSize:              1,
		BatchTimeout:           writerBatchTimeout,
		WriteTimeout:           writeTimeout,
	}
}

// NotificationPublisher forwards stored notifications to Kafka, keyed by
// user so one user's notifications stay ordered.
type NotificationPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewNotificationPublisher(writer MessageWriter, logger *slog.Logger) *NotificationPublisher {
	return &NotificationPublisher{
		writer: writer,
		logger: logger.With("bus", "kafka"),
	}
}

// Publish writes one notification.created envelope.
func (p *NotificationPublisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(notificationPayload{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      string(n.Type),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal payload: %w", err)
	}
	value, err := json.Marshal(envelope{Type: domain.EventNotificationCreated, Payload: payload})
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(n.UserID.String()),
		Value: value,
		Time:  n.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publisher: publish failed: %w", err)
	}
	p.logger.Debug("Notification published", "notification_id", n.ID, "type", n.Type)
	return nil
}

// Handler adapts Publish to the event bus.
func (p *NotificationPublisher) Handler() eventbus.HandlerFunc {
	return func(ctx context.Context, e domain.Event) error {
		evt, ok := e.(domain.NotificationCreated)
		if !ok {
			return fmt.Errorf("kafka publisher: unexpected event %T", e)
		}
		return p.Publish(ctx, evt.Notification)
	}
}

func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
