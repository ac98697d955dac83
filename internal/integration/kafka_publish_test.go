//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkaadapter "github.com/couchcryptid/brandenburg-weather-sim/internal/adapter/kafka"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/config"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSinkTopic = "test-weather-snapshots"

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic via the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	ctrlConn, err := kafkago.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err, "dial controller")
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestWriterPublishesSnapshots verifies that a batch synthesized by the
// simulator round-trips through Kafka with key, headers, and fields intact.
func TestWriterPublishesSnapshots(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	sim := domain.NewSimulator(domain.DefaultRegistry(), domain.WithSeed(7))
	at := time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC)
	snaps, err := sim.AllCities(at)
	require.NoError(t, err)
	require.Len(t, snaps, 10)

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, snaps))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testSinkTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	byKey := map[string]domain.WeatherSnapshot{}
	for range snaps {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from sink topic")

		var snap domain.WeatherSnapshot
		require.NoError(t, json.Unmarshal(msg.Value, &snap))
		assert.Equal(t, snap.CityKey, string(msg.Key), "message keyed by city")

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, string(snap.Condition), headers["condition"])
		assert.Equal(t, at.Format(time.RFC3339), headers["generated_at"])

		byKey[snap.CityKey] = snap
	}

	require.Len(t, byKey, 10, "one message per city")
	for _, want := range snaps {
		got, ok := byKey[want.CityKey]
		require.True(t, ok, "missing snapshot for %s", want.CityKey)
		assert.Equal(t, want.Temperature, got.Temperature)
		assert.Equal(t, want.Condition, got.Condition)
		assert.Equal(t, domain.SourceSimulated, got.Source)
		assert.True(t, want.Timestamp.Equal(got.Timestamp))
	}
}
