package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishTimeout bounds a single write. Writes ignore request cancellation.
const publishTimeout = 2 * time.Second

type kafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

func NewKafkaPublisher(cfg *config.Kafka) Publisher {

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}

	slog.Info("Kafka publisher configured", slog.Any("brokers", cfg.Brokers), slog.String("topic", cfg.Topic))

	return newKafkaPublisher(writer, cfg.Topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *kafkaPublisher {
	return &kafkaPublisher{writer: writer, topic: topic, timeout: publishTimeout}
}

// Publish writes the event keyed by its aggregate id so per-order events keep
// their order within a partition.
func (p *kafkaPublisher) Publish(ctx context.Context, event models.StorefrontEvent) error {

	logger := middleware.LoggerFromContext(ctx)

	value, err := json.Marshal(event)
	if err != nil {
		metrics.ObserveEvent(string(event.Type), err)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "request_id", Value: []byte(requestID)})
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, msg)
	metrics.ObserveEvent(string(event.Type), err)

	if err != nil {
		logger.Error("Failed to publish event", slog.String("type", string(event.Type)), slog.String("topic", p.topic), slog.Any("error", err))
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	logger.Debug("Event published", slog.String("type", string(event.Type)), slog.String("key", event.Key))

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
