package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Anand123098sitare/Weather-Insights/internal/config"
	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

// Publisher produces notification bundles to a Kafka topic. Messages are
// keyed by city so downstream consumers see per-city ordering.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishBundle serializes and publishes one notification bundle.
func (p *Publisher) PublishBundle(ctx context.Context, bundle domain.Bundle) error {
	msg, err := serializeBundle(bundle)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeBundle marshals a bundle into a Kafka message.
func serializeBundle(bundle domain.Bundle) (kafkago.Message, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize bundle for %q: %w", bundle.City, err)
	}
	return kafkago.Message{
		Key:   []byte(bundle.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "city", Value: []byte(bundle.City)},
			{Key: "generated_at", Value: []byte(bundle.GeneratedAt.Format(time.RFC3339))},
			{Key: "notification_count", Value: []byte(strconv.Itoa(len(bundle.Notifications)))},
		},
	}, nil
}
