package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/kismet-analyzer/internal/config"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/storm-data-shared/retry"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	publishAttempts   = 3
	initialBackoff    = 200 * time.Millisecond
	maxPublishBackoff = 2 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes normalized entities to a Kafka topic.
type Writer struct {
	writer  messageWriter
	topic   string
	backoff time.Duration
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured entity topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, topic: cfg.KafkaTopic, backoff: initialBackoff, logger: logger}
}

// Publish serializes entities and sends them in a single WriteMessages call,
// retrying the batch with exponential backoff when the broker rejects it.
// It returns the number of messages written.
func (w *Writer) Publish(ctx context.Context, entities []domain.Entity) (int, error) {
	if len(entities) == 0 {
		return 0, nil
	}
	exportedAt := domain.Now()
	msgs := make([]kafkago.Message, len(entities))
	for i, e := range entities {
		msg, err := serializeToMessage(e, exportedAt)
		if err != nil {
			return 0, err
		}
		msgs[i] = msg
	}
	if err := w.write(ctx, msgs); err != nil {
		return 0, fmt.Errorf("publish entities: %w", err)
	}
	w.logger.Debug("published entities", "topic", w.topic, "count", len(msgs))
	return len(msgs), nil
}

func (w *Writer) write(ctx context.Context, msgs []kafkago.Message) error {
	backoff := w.backoff
	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		if err = w.writer.WriteMessages(ctx, msgs...); err == nil {
			return nil
		}
		if attempt == publishAttempts {
			break
		}
		w.logger.Warn("kafka write failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = retry.NextBackoff(backoff, maxPublishBackoff)
	}
	return err
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an entity into a Kafka message keyed by MAC.
func serializeToMessage(e domain.Entity, exportedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s: %w", e.Kind(), err)
	}
	return kafkago.Message{
		Key:   []byte(e.Common().MAC),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "entity", Value: []byte(e.Kind())},
			{Key: "exported_at", Value: []byte(exportedAt.Format(time.RFC3339))},
		},
	}, nil
}
