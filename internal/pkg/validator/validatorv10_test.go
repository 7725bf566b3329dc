package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV10Validator_Var(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   string
		tag     string
		wantTag string
		wantMsg string
	}{
		{"empty required", "", "required", TagRequired, "Este campo é obrigatório."},
		{"empty cpf reports required first", "", "required,cpf", TagRequired, "Este campo é obrigatório."},
		{"short cpf", "1234567890", "required,cpf", TagCPF, "CPF deve ter 11 números."},
		{"cpf with letters", "1234567890a", "required,cpf", TagCPF, "CPF deve ter 11 números."},
		{"bad email", "henrique", "required,email", TagEmail, "Informe um endereço de email válido."},
		{"valid cpf", "12345678901", "required,cpf", "", ""},
		{"valid email", "henrique@bastos.net", "required,email", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}

			var fe *V10FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantTag, fe.Tag)
			assert.Equal(t, tt.wantMsg, fe.Message)
		})
	}
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	type dependency struct {
		MailFrom string `validate:"required,email"`
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, v.Validate(dependency{MailFrom: "contato@eventex.com.br"}))
	})

	t.Run("snake case keys", func(t *testing.T) {
		err := v.Validate(dependency{})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Este campo é obrigatório.", verr["mail_from"])
		assert.Equal(t, map[string][]string{"mail_from": {"Este campo é obrigatório."}}, verr.FieldMessages())
	})
}
