package instrument

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_MasksAndTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(newHandler(base, "eventex", NewMaskKeys([]string{" CPF ", "csrfmiddlewaretoken", ""})))

	ctx := SetCorrelationID(t.Context(), "cid-1")
	logger.InfoContext(ctx, "request received",
		"cpf", "12345678901",
		"form", map[string][]string{"name": {"Henrique"}, "csrfmiddlewaretoken": {"tok"}},
		"body", `{"cpf":"12345678901","email":"h@b.net"}`,
	)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "***", got["cpf"])
	assert.Equal(t, map[string]any{"name": "Henrique", "csrfmiddlewaretoken": "***"}, got["form"])
	assert.JSONEq(t, `{"cpf":"***","email":"h@b.net"}`, got["body"].(string))
	assert.Equal(t, "cid-1", got["_cID"])
	assert.Equal(t, "eventex", got["service"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(t.Context()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(t.Context(), "abc")))
}

func TestNoop(t *testing.T) {
	ins := NewNoop()
	_, span := ins.Tracer("t").Start(t.Context(), "op")
	span.End()
	assert.NoError(t, ins.Shutdown(t.Context()))
}
