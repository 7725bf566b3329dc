package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/samber/lo"
)

// Rule tags registered on top of the go-playground defaults.
const (
	TagRequired = "required"
	TagEmail    = "email"
	TagCPF      = "cpf"
)

var reCPF = regexp.MustCompile(`^[0-9]{11}$`)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when struct validation fails.
//
// Keys are field names in snake_case to match typical JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// FieldMessages exposes the map in the shape used by goerror.
func (vs V10ValidationError) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(vs))
	for k, v := range vs {
		out[k] = []string{v}
	}
	return out
}

// V10FieldError describes the first rule a single value failed.
type V10FieldError struct {
	// Tag is the failing rule, e.g. "required" or "cpf".
	Tag string
	// Message is the translated, user-facing description.
	Message string
}

// Error implements the error interface.
func (fe *V10FieldError) Error() string {
	return fe.Tag + ": " + fe.Message
}

// NewV10Validator constructs a V10Validator with Brazilian Portuguese
// translations and the custom rules used by the forms.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, ok := uni.GetTranslator("pt_BR")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := ptBRTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := v10CustomValidation(validate, trans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: trans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(V10ValidationError)
		for _, fe := range validateErrs {
			errV10[lo.SnakeCase(fe.Field())] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

// Var validates a single value against tag and returns a *V10FieldError for
// the first rule that fails.
func (v *V10Validator) Var(value any, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) || len(validateErrs) == 0 {
		return err
	}

	fe := validateErrs[0]
	return &V10FieldError{Tag: fe.Tag(), Message: fe.Translate(v.translator)}
}

func v10CustomValidation(validate *validator.Validate, trans ut.Translator) error {
	if err := validate.RegisterValidation(TagCPF, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && reCPF.MatchString(s)
	}); err != nil {
		return err
	}

	messages := map[string]string{
		TagRequired: "Este campo é obrigatório.",
		TagEmail:    "Informe um endereço de email válido.",
		TagCPF:      "CPF deve ter 11 números.",
	}

	for tag, text := range messages {
		if err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			},
			translateFieldError,
		); err != nil {
			return err
		}
	}

	return nil
}

func translateFieldError(ut ut.Translator, fe validator.FieldError) string {
	t, err := ut.T(fe.Tag(), fe.Field())
	if err != nil {
		slog.Warn("warning: error translating", "tag", fe.Tag(), "error", err)
		return fe.Error()
	}

	return t
}
