package mail

import (
	"context"
	"log/slog"
)

// Log writes messages to the structured logger instead of delivering them.
// It is meant for local development.
type Log struct {
	defaultFrom string
}

// NewLog constructs a Log sink.
func NewLog(from string) *Log {
	return &Log{defaultFrom: from}
}

// Send logs the envelope and text body.
func (l *Log) Send(ctx context.Context, msg Message) error {
	from, err := resolveSender(msg, l.defaultFrom)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "mail not delivered, log driver active",
		"from", from,
		"to", msg.To,
		"cc", msg.Cc,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}

// Close implements io.Closer.
func (l *Log) Close() error {
	return nil
}
