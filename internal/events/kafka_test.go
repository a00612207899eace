package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
	ctxErr   error
	deadline bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.ctxErr = ctx.Err()
	_, w.deadline = ctx.Deadline()

	if w.err != nil {
		return w.err
	}

	w.messages = append(w.messages, msgs...)

	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Keyed JSON message", func(t *testing.T) {
		// Arrange
		writer := &recordingWriter{}
		publisher := newKafkaPublisher(writer, "storefront-events")
		event := models.NewEvent(models.EventOrderPlaced, "ord-1", "user-1", map[string]any{"total": 42.5})

		// Act
		err := publisher.Publish(ctx, event)

		// Assert
		require.NoError(t, err)
		require.Len(t, writer.messages, 1)

		msg := writer.messages[0]
		assert.Equal(t, "ord-1", string(msg.Key))
		assert.Equal(t, "event_type", msg.Headers[0].Key)
		assert.Equal(t, "order.placed", string(msg.Headers[0].Value))

		var decoded models.StorefrontEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, event.ID, decoded.ID)
		assert.Equal(t, "user-1", decoded.UserID)
		assert.InDelta(t, 42.5, decoded.Payload["total"], 0.001)
	})

	t.Run("Success - Request cancellation does not drop the event", func(t *testing.T) {
		// Arrange
		writer := &recordingWriter{}
		publisher := newKafkaPublisher(writer, "storefront-events")

		requestCtx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		err := publisher.Publish(requestCtx, models.NewEvent(models.EventCartSynced, "user-1", "user-1", nil))

		// Assert
		require.NoError(t, err)
		require.Len(t, writer.messages, 1)
		assert.NoError(t, writer.ctxErr)
		assert.True(t, writer.deadline, "writes are bounded by the publish timeout")
	})

	t.Run("Failure - Writer error", func(t *testing.T) {
		writer := &recordingWriter{err: errors.New("leader not available")}
		publisher := newKafkaPublisher(writer, "storefront-events")

		err := publisher.Publish(ctx, models.NewEvent(models.EventContactSubmitted, "c-1", "", nil))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish contact.submitted event")
	})

	t.Run("Success - Close closes writer", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := newKafkaPublisher(writer, "storefront-events")

		require.NoError(t, publisher.Close())
		assert.True(t, writer.closed)
	})
}

func TestNewKafkaPublisher(t *testing.T) {
	publisher := NewKafkaPublisher(&config.Kafka{Brokers: []string{"localhost:9092"}, Topic: "events"})

	assert.NotNil(t, publisher)
	assert.NoError(t, publisher.Close())
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher()

	assert.NoError(t, publisher.Publish(t.Context(), models.NewEvent(models.EventCartSynced, "user-1", "user-1", nil)))
	assert.NoError(t, publisher.Close())
}
