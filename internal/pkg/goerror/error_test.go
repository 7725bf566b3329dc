package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldErr map[string][]string

func (f fieldErr) Error() string                      { return "field error" }
func (f fieldErr) FieldMessages() map[string][]string { return f }

func TestNewInvalidInput(t *testing.T) {
	t.Run("wraps field messenger", func(t *testing.T) {
		cause := fieldErr{"cpf": {"invalid"}}
		err := NewInvalidInput(cause)

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, CodeInvalidInput, gerr.Code())
		assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
		assert.Equal(t, map[string][]string{"cpf": {"invalid"}}, gerr.Fields())

		var back fieldErr
		assert.ErrorAs(t, err, &back)
	})

	t.Run("key value pairs accumulate per field", func(t *testing.T) {
		err := NewInvalidInput(nil, "name", "a", "name", "b")

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, []string{"a", "b"}, gerr.Fields()["name"])
	})

	t.Run("odd pairs become invalid format", func(t *testing.T) {
		err := NewInvalidInput(nil, "name")

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
	})
}

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"server", NewServer(errors.New("db down")), http.StatusInternalServerError},
		{"not found", NewBusiness("missing", CodeNotFound), http.StatusNotFound},
		{"conflict", NewBusiness("again", CodeConflict), http.StatusConflict},
		{"forbidden", NewBusiness("csrf", CodeForbidden), http.StatusForbidden},
		{"format", NewInvalidFormat(), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}
