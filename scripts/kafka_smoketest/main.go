// Command kafka_smoketest publishes one notification the way the server does
// and reads it back, to check a local Kafka setup end to end.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	infraeventbus "github.com/amirasaad/finance-tracker/infra/eventbus"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tidwall/gjson"
)

// RunSmokeTest writes a notification.created envelope to topic and waits
// for a message carrying the same notification id.
func RunSmokeTest(ctx context.Context, brokers []string, topic string, logger *slog.Logger) error {
	writer := infraeventbus.NewKafkaWriter(brokers, topic, 10*time.Second)
	publisher := infraeventbus.NewNotificationPublisher(writer, logger)
	defer func() { _ = publisher.Close() }()

	n := domain.Notification{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      domain.NotificationTransactionAlert,
		Message:   "Kafka smoke test",
		CreatedAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, n); err != nil {
		return err
	}
	logger.Info("produced", "topic", topic, "notification_id", n.ID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     "finance-tracker-smoketest-" + n.ID.String(),
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer func() { _ = r.Close() }()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			return fmt.Errorf("fetch from %s: %w", topic, err)
		}
		_ = r.CommitMessages(ctx, msg)

		if !matches(msg.Value, n.ID.String()) {
			continue
		}
		logger.Info("consumed", "topic", topic, "value", string(msg.Value))
		return nil
	}
}

func matches(value []byte, id string) bool {
	v := gjson.ParseBytes(value)
	return v.Get("type").String() == domain.EventNotificationCreated &&
		v.Get("payload.id").String() == id
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := strings.TrimSpace(os.Getenv("KAFKA_NOTIFICATION_TOPIC"))
	if topic == "" {
		topic = "notifications"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := RunSmokeTest(ctx, strings.Split(brokers, ","), topic, logger)
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Error("timed out waiting for the notification")
	}
	if err != nil {
		logger.Error("kafka smoke test failed", "error", err)
		os.Exit(1)
	}
	logger.Info("kafka smoke test passed")
}
