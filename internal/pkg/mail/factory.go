package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverSMTP selects the SMTP relay.
	DriverSMTP = "smtp"
	// DriverSES selects Amazon SES v2.
	DriverSES = "ses"
	// DriverLog selects the development log sink.
	DriverLog = "log"
)

// ErrUnknownDriver indicates an unsupported mail driver.
var ErrUnknownDriver = errors.New("mail: unknown driver")

// FactoryOptions groups config for the supported mail backends.
type FactoryOptions struct {
	// From is the default sender shared by every driver.
	From string
	SMTP SMTPConfig
	SES  SESConfig
}

// NewFromDriver constructs a Mail implementation by driver name.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSMTP:
		cfg := opts.SMTP
		cfg.From = opts.From
		return NewSMTP(cfg)
	case DriverSES:
		cfg := opts.SES
		cfg.From = opts.From
		return NewSES(ctx, cfg)
	case DriverLog:
		return NewLog(opts.From), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
