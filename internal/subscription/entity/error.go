package entity

import (
	"strings"

	"github.com/samber/lo"
)

type ErrorKind int

const (
	// RequiredField means the value was empty after normalization.
	RequiredField ErrorKind = iota + 1
	// InvalidFormat means the value was present but failed a structural check.
	InvalidFormat
)

func (k ErrorKind) String() string {
	switch k {
	case RequiredField:
		return "required_field"
	case InvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

type FieldError struct {
	Kind    ErrorKind
	Message string
}

// FieldErrors maps a field name to its ordered, non-empty list of errors.
type FieldErrors map[string][]FieldError

// Add appends an error to field.
func (fe FieldErrors) Add(field string, kind ErrorKind, msg string) {
	fe[field] = append(fe[field], FieldError{Kind: kind, Message: msg})
}

// Has reports whether field carries an error of kind.
func (fe FieldErrors) Has(field string, kind ErrorKind) bool {
	return lo.ContainsBy(fe[field], func(e FieldError) bool { return e.Kind == kind })
}

// Error lists the failing fields in form order.
func (fe FieldErrors) Error() string {
	names := lo.FilterMap(Fields, func(f Field, _ int) (string, bool) {
		_, ok := fe[f.Name]
		return f.Name, ok
	})
	return "invalid fields: " + strings.Join(names, ", ")
}

// FieldMessages exposes the messages per field for goerror and templates.
func (fe FieldErrors) FieldMessages() map[string][]string {
	return lo.MapValues(fe, func(errs []FieldError, _ string) []string {
		return lo.Map(errs, func(e FieldError, _ int) string { return e.Message })
	})
}
