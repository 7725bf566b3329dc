package mq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/messaging"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (c *capturePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	c.destination = destination
	c.msg = msg
	return messaging.PublishResult{Destination: destination}, c.err
}

func (c *capturePublisher) Close() error { return nil }

func TestMessaging_PublishSubscriptionCreated(t *testing.T) {
	ev := usecase.SubscriptionCreatedEvent{
		ID:        9,
		Name:      "Mateus Flavio",
		Email:     "mateusflavio@gmail.com",
		CreatedAt: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	}

	t.Run("publishes json with correlation id", func(t *testing.T) {
		pub := &capturePublisher{}
		m := NewMessaging(pub, instrument.NewNoop())

		ctx := instrument.SetCorrelationID(context.Background(), "cid-1")
		require.NoError(t, m.PublishSubscriptionCreated(ctx, ev))

		assert.Equal(t, "subscription.created", pub.destination)
		assert.JSONEq(t, `{"id":9,"name":"Mateus Flavio","email":"mateusflavio@gmail.com","created_at":"2026-03-14T18:30:00Z"}`, string(pub.msg.Body))
		assert.Equal(t, []messaging.Header{{Key: "cID", Value: "cid-1"}}, pub.msg.Headers)
		assert.NotContains(t, string(pub.msg.Body), "cpf")
	})

	t.Run("broker error is returned", func(t *testing.T) {
		pub := &capturePublisher{err: errors.New("no responders")}
		m := NewMessaging(pub, instrument.NewNoop())

		assert.Error(t, m.PublishSubscriptionCreated(context.Background(), ev))
	})
}
