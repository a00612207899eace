package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventOrderPlaced        EventType = "order.placed"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderCancelled     EventType = "order.cancelled"
	EventContactSubmitted   EventType = "contact.submitted"
	EventProductChanged     EventType = "product.changed"
	EventCartSynced         EventType = "cart.synced"
)

// StorefrontEvent is published to the event stream. Key groups events of
// the same aggregate (order id, product id, user id).
type StorefrontEvent struct {
	ID         uuid.UUID      `json:"id"`
	Type       EventType      `json:"type"`
	Key        string         `json:"key"`
	UserID     string         `json:"user_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewEvent(eventType EventType, key, userID string, payload map[string]any) StorefrontEvent {
	return StorefrontEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Key:        key,
		UserID:     userID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
