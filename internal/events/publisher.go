package events

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

// Publisher emits storefront events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event models.StorefrontEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, event models.StorefrontEvent) error {
	middleware.LoggerFromContext(ctx).Debug("Event publishing disabled, dropping event",
		slog.String("type", string(event.Type)),
		slog.String("key", event.Key))

	return nil
}

func (noopPublisher) Close() error {
	return nil
}
