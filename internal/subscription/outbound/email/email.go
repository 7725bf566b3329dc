package email

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Mail delivers subscription confirmations through the configured mail driver.
type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) Send(ctx context.Context, msg mail.Message) (err error) {
	ctx, span := m.ins.Tracer("subscription.outbound.email").Start(ctx, "Send")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "confirmation not delivered")
		}
		span.End()
	}()

	span.SetAttributes(
		attribute.String("mail.subject", msg.Subject),
		attribute.Int("mail.recipients", len(msg.Recipients())),
	)

	if err = m.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}

	return nil
}
