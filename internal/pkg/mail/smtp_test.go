package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{Host: "localhost"})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", s.addr)
	assert.Nil(t, s.auth)
	assert.NoError(t, s.Close())
}

func TestSMTP_Send(t *testing.T) {
	type sent struct {
		from string
		to   []string
		raw  string
	}

	newSMTP := func(t *testing.T, sendErr error) (*SMTP, *sent) {
		t.Helper()
		s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "contato@eventex.com.br"})
		require.NoError(t, err)

		got := &sent{}
		s.send = func(_ string, _ smtp.Auth, from string, to []string, msg []byte) error {
			got.from, got.to, got.raw = from, to, string(msg)
			return sendErr
		}
		return s, got
	}

	t.Run("uses default sender and all recipients", func(t *testing.T) {
		s, got := newSMTP(t, nil)

		err := s.Send(t.Context(), Message{
			To:       []string{"contato@eventex.com.br", "henrique@bastos.net"},
			Bcc:      []string{"audit@eventex.com.br"},
			Subject:  "Confirmação de inscrição",
			TextBody: "Henrique Bastos",
		})
		require.NoError(t, err)

		assert.Equal(t, "contato@eventex.com.br", got.from)
		assert.Equal(t, []string{"contato@eventex.com.br", "henrique@bastos.net", "audit@eventex.com.br"}, got.to)
		assert.Contains(t, got.raw, "To: contato@eventex.com.br, henrique@bastos.net\r\n")
		assert.NotContains(t, got.raw, "audit@eventex.com.br")
		assert.Contains(t, got.raw, "Subject: =?utf-8?q?")
		assert.True(t, strings.HasSuffix(got.raw, "Henrique Bastos"))
	})

	t.Run("no recipients", func(t *testing.T) {
		s, _ := newSMTP(t, nil)
		assert.ErrorIs(t, s.Send(t.Context(), Message{Subject: "x"}), ErrNoRecipients)
	})

	t.Run("transport failure is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		s, _ := newSMTP(t, boom)
		assert.ErrorIs(t, s.Send(t.Context(), Message{To: []string{"a@b.c"}}), boom)
	})

	t.Run("canceled context", func(t *testing.T) {
		s, _ := newSMTP(t, nil)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@b.c"}}), context.Canceled)
	})
}

func TestComposeMIME_Multipart(t *testing.T) {
	raw := string(composeMIME("a@b.c", Message{
		To:       []string{"x@y.z"},
		Cc:       []string{"cc@y.z"},
		Subject:  "plain",
		TextBody: "text",
		HTMLBody: "<p>html</p>",
	}, "b1"))

	assert.Contains(t, raw, "Cc: cc@y.z\r\n")
	assert.Contains(t, raw, "Subject: plain\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=b1\r\n")
	assert.Contains(t, raw, "--b1\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\ntext\r\n")
	assert.Contains(t, raw, "--b1\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n<p>html</p>\r\n")
	assert.True(t, strings.HasSuffix(raw, "--b1--\r\n"))
}
