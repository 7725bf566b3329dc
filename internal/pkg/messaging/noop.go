package messaging

import (
	"context"
	"log/slog"
	"time"
)

// Noop accepts every message and drops it. Used when no broker is configured.
type Noop struct{}

// NewNoop returns a Noop publisher.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	slog.DebugContext(ctx, "message dropped, no broker configured", "destination", destination, "bytes", len(msg.Body))
	return PublishResult{Destination: destination, Timestamp: time.Now()}, nil
}

func (Noop) Close() error {
	return nil
}
