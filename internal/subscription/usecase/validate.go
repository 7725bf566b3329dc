package usecase

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/eventex/internal/pkg/validator"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
)

// Validate checks every field of in and returns either the normalized record
// or all field errors. It has no side effects.
//
// Presence is judged on the trimmed raw value, so a cpf of only separators is
// malformed rather than missing. The remaining rules see the normalized value.
func (s *Usecase) Validate(in entity.SubmissionInput) entity.ValidationResult {
	values := make(map[string]string, len(entity.Fields))
	errs := entity.FieldErrors{}

	for _, f := range entity.Fields {
		raw := in.Get(f.Name)
		tags := strings.Split(f.Rules, ",")

		if lo.Contains(tags, validator.TagRequired) {
			if err := s.validator.Var(strings.TrimSpace(raw), validator.TagRequired); err != nil {
				kind, msg := classify(err)
				errs.Add(f.Name, kind, msg)
				continue
			}
		}

		v := raw
		if f.Normalize != nil {
			v = f.Normalize(v)
		}
		values[f.Name] = v

		rules := strings.Join(lo.Without(tags, validator.TagRequired), ",")
		if rules == "" {
			continue
		}
		if err := s.validator.Var(v, rules); err != nil {
			kind, msg := classify(err)
			errs.Add(f.Name, kind, msg)
		}
	}

	if len(errs) > 0 {
		return entity.ValidationResult{Errors: errs}
	}

	return entity.ValidationResult{Record: &entity.Subscription{
		Name:  values[entity.FieldName],
		CPF:   values[entity.FieldCPF],
		Email: values[entity.FieldEmail],
		Phone: values[entity.FieldPhone],
	}}
}

func classify(err error) (entity.ErrorKind, string) {
	var fe *validator.V10FieldError
	if !errors.As(err, &fe) {
		slog.Warn("unexpected validator error", "error", err)
		return entity.InvalidFormat, "Valor inválido."
	}

	if fe.Tag == validator.TagRequired {
		return entity.RequiredField, fe.Message
	}
	return entity.InvalidFormat, fe.Message
}
