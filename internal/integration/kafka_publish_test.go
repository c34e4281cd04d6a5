//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/Anand123098sitare/Weather-Insights/internal/adapter/kafka"
	"github.com/Anand123098sitare/Weather-Insights/internal/config"
	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

const testTopic = "test-weather-notifications"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishBundle round-trips a notification bundle through real Kafka and
// verifies the key, headers, and payload the consumer sees.
func TestPublishBundle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	end := domain.NewDate(2026, time.July, 4)
	bundle := domain.Bundle{
		City:        "Madrid",
		GeneratedAt: time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC),
		Notifications: []domain.Notification{
			{
				Type:            domain.TypeWarning,
				Rule:            "heat_wave",
				Message:         "Heat wave alert: Temperatures above 32°C expected for 3 consecutive days.",
				Icon:            "temperature-high",
				Priority:        domain.PriorityWarning,
				StartDate:       domain.NewDate(2026, time.July, 2),
				EndDate:         &end,
				ConsecutiveDays: 3,
			},
		},
	}

	require.NoError(t, publisher.PublishBundle(ctx, bundle))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from notifications topic")

	assert.Equal(t, "Madrid", string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Madrid", headers["city"])
	assert.Equal(t, "1", headers["notification_count"])
	_, err = time.Parse(time.RFC3339, headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	var got domain.Bundle
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, bundle.City, got.City)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, bundle.Notifications[0].Rule, got.Notifications[0].Rule)
	assert.Equal(t, bundle.Notifications[0].StartDate, got.Notifications[0].StartDate)
	assert.Equal(t, 3, got.Notifications[0].ConsecutiveDays)
}
