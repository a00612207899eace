package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

// publishEvent never fails the caller.
func publishEvent(ctx context.Context, publisher events.Publisher, event models.StorefrontEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Event not published", slog.String("type", string(event.Type)), slog.Any("error", err))
	}
}

// actorID is the signed-in user behind ctx, or empty.
func actorID(ctx context.Context) string {

	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok || claims == nil {
		return ""
	}

	return claims.UserID
}
