package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *sesv2.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestNewSES_RegionRequired(t *testing.T) {
	_, err := NewSES(t.Context(), SESConfig{})
	assert.ErrorIs(t, err, ErrSESRegionRequired)
}

func TestSES_Send(t *testing.T) {
	t.Run("maps message", func(t *testing.T) {
		api := &fakeSES{}
		s := &SES{client: api, defaultFrom: "contato@eventex.com.br"}

		err := s.Send(t.Context(), Message{
			To:       []string{"contato@eventex.com.br", "henrique@bastos.net"},
			Subject:  "Confirmação de inscrição",
			TextBody: "body",
		})
		require.NoError(t, err)

		assert.Equal(t, "contato@eventex.com.br", aws.ToString(api.in.FromEmailAddress))
		assert.Equal(t, []string{"contato@eventex.com.br", "henrique@bastos.net"}, api.in.Destination.ToAddresses)
		assert.Equal(t, "Confirmação de inscrição", aws.ToString(api.in.Content.Simple.Subject.Data))
		assert.Equal(t, "body", aws.ToString(api.in.Content.Simple.Body.Text.Data))
		assert.Nil(t, api.in.Content.Simple.Body.Html)
	})

	t.Run("provider error", func(t *testing.T) {
		boom := errors.New("throttled")
		s := &SES{client: &fakeSES{err: boom}, defaultFrom: "a@b.c"}
		assert.ErrorIs(t, s.Send(t.Context(), Message{To: []string{"x@y.z"}}), boom)
	})

	t.Run("no sender", func(t *testing.T) {
		s := &SES{client: &fakeSES{}}
		assert.ErrorIs(t, s.Send(t.Context(), Message{To: []string{"x@y.z"}}), ErrNoSender)
	})
}
