package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: eventex
  server:
    http:
      read_timeout_seconds: 15
instrument:
  log_mask_fields: "cpf, csrfmiddlewaretoken,,"
modules:
  subscription:
    idempotency_ttl_minutes: 10
    mail:
      from: "   "
`

func TestNewViperFromBytes(t *testing.T) {
	t.Run("requires a type", func(t *testing.T) {
		_, err := NewViperFromBytes(" ", []byte(sample))
		assert.ErrorIs(t, err, ErrConfigTypeRequired)
	})

	t.Run("reads typed values", func(t *testing.T) {
		cfg, err := NewViperFromBytes("yaml", []byte(sample))
		require.NoError(t, err)

		assert.Equal(t, "eventex", cfg.GetString("app.name"))
		assert.Equal(t, 15*time.Second, cfg.GetSecond("app.server.http.read_timeout_seconds"))
		assert.Equal(t, 10*time.Minute, cfg.GetMinute("modules.subscription.idempotency_ttl_minutes"))
		assert.Equal(t, []string{"cpf", "csrfmiddlewaretoken"}, cfg.GetArray("instrument.log_mask_fields"))
		assert.Empty(t, cfg.GetArray("missing.key"))
		assert.NoError(t, cfg.Close())
	})

	t.Run("string default on blank", func(t *testing.T) {
		cfg, err := NewViperFromBytes("yaml", []byte(sample))
		require.NoError(t, err)

		assert.Equal(t, "contato@eventex.com.br", cfg.GetStringDefault("modules.subscription.mail.from", "contato@eventex.com.br"))
		assert.Equal(t, "eventex", cfg.GetStringDefault("app.name", "other"))
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("EVENTEX_APP_NAME", "from-env")

		cfg, err := NewViperFromBytes("yaml", []byte(sample))
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.GetString("app.name"))
	})
}
