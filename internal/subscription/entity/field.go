package entity

import (
	"strings"
	"unicode"
)

const (
	FieldName  = "name"
	FieldCPF   = "cpf"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// Field describes one input of the subscription form.
//
// The same list drives validation order and HTML rendering, so adding a
// field here is enough for both.
type Field struct {
	Name      string
	Label     string
	InputType string
	// Rules is a validator tag such as "required,email". "required" is
	// checked on the trimmed raw value, the rest after Normalize.
	Rules string
	// Normalize is applied to the raw value before the format rules run.
	Normalize func(string) string
}

// Fields is the ordered form definition.
var Fields = []Field{
	{Name: FieldName, Label: "Nome", InputType: "text", Rules: "required", Normalize: strings.TrimSpace},
	{Name: FieldCPF, Label: "CPF", InputType: "text", Rules: "required,cpf", Normalize: StripCPF},
	{Name: FieldEmail, Label: "Email", InputType: "email", Rules: "required,email", Normalize: strings.TrimSpace},
	{Name: FieldPhone, Label: "Telefone", InputType: "text", Rules: "required", Normalize: strings.TrimSpace},
}

// StripCPF removes the usual cpf separators ('.', '-') and any whitespace.
// Other characters are kept so the format rule can reject them.
func StripCPF(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
