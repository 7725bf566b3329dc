package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ErrSESRegionRequired is returned when the SES region is missing.
var ErrSESRegionRequired = errors.New("mail: ses region is required")

const charsetUTF8 = "UTF-8"

// SESConfig configures the Amazon SES v2 implementation.
//
// Leaving AccessKey/SecretKey empty falls back to the default AWS credential chain.
type SESConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// From is the default sender when Message.From is empty.
	From string
}

type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES is a Mail implementation backed by Amazon SES v2.
type SES struct {
	client      sesAPI
	defaultFrom string
}

// NewSES constructs an SES mail sender.
func NewSES(ctx context.Context, cfg SESConfig) (*SES, error) {
	if cfg.Region == "" {
		return nil, ErrSESRegionRequired
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: load aws config: %w", err)
	}

	return &SES{client: sesv2.NewFromConfig(awsCfg), defaultFrom: cfg.From}, nil
}

// Send delivers msg through SES SendEmail.
func (s *SES) Send(ctx context.Context, msg Message) error {
	from, err := resolveSender(msg, s.defaultFrom)
	if err != nil {
		return err
	}

	body := &types.Body{}
	if msg.TextBody != "" || msg.HTMLBody == "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String(charsetUTF8)}
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String(charsetUTF8)}
	}

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses:  msg.To,
			CcAddresses:  msg.Cc,
			BccAddresses: msg.Bcc,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body:    body,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("mail: ses send: %w", err)
	}

	slog.DebugContext(ctx, "ses accepted message", "message_id", aws.ToString(out.MessageId))
	return nil
}

// Close implements io.Closer; the SDK client holds no resources to release.
func (s *SES) Close() error {
	return nil
}
