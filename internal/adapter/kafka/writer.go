// Package kafka publishes weather snapshots to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/config"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces snapshot messages to a Kafka topic.
// It implements publisher.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes multiple snapshots to the sink topic in
// a single WriteMessages call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, snaps []domain.WeatherSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snaps))
	for i := range snaps {
		msg, err := serializeToMessage(snaps[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a WeatherSnapshot into a Kafka message keyed by
// city, so per-city ordering is preserved within a partition.
func serializeToMessage(snap domain.WeatherSnapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snap.CityKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "condition", Value: []byte(snap.Condition)},
			{Key: "generated_at", Value: []byte(snap.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
