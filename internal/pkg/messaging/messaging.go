package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the broker cannot honor a publish setting.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Publisher sends messages to a destination (subject, topic).
type Publisher interface {
	io.Closer
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-agnostic message to publish.
type OutgoingMessage struct {
	Body    []byte
	Headers []Header
	// Delay requests deferred delivery where the broker supports it.
	Delay time.Duration
}

// Header is a message header. Duplicate keys are allowed.
type Header struct {
	Key   string
	Value string
}

// PublishResult carries what the broker reported on accept.
type PublishResult struct {
	Destination string
	Timestamp   time.Time
}
