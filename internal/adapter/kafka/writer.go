package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
)

// Writer publishes completed calculations to a Kafka topic.
// It implements estimator.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the estimate event topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one calculation and writes it to the topic.
func (w *Writer) Publish(ctx context.Context, calc domain.Calculation) error {
	msg, err := serializeToMessage(calc)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write estimate event: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Calculation into a Kafka message keyed by
// calculation ID.
func serializeToMessage(calc domain.Calculation) (kafkago.Message, error) {
	data, err := json.Marshal(calc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize calculation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(calc.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "temperature_source", Value: []byte(calc.TemperatureSource)},
			{Key: "created_at", Value: []byte(calc.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
