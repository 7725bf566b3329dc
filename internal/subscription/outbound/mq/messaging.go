package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/messaging"
	"github.com/shandysiswandi/eventex/internal/shared/event"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishSubscriptionCreated(ctx context.Context, msg usecase.SubscriptionCreatedEvent) error {
	ctx, span := m.ins.Tracer("subscription.outbound.mq").Start(ctx, "PublishSubscriptionCreated")
	defer span.End()

	body, err := json.Marshal(event.SubscriptionCreatedMessage{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.SubscriptionCreatedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: cID}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
