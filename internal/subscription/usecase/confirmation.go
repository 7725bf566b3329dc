package usecase

import (
	"github.com/shandysiswandi/eventex/internal/pkg/mail"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
)

const (
	// SuccessMessage is shown to the subscriber once after an accepted submission.
	SuccessMessage = "Inscrição realizada com sucesso!"

	// DefaultOperatorEmail sends every confirmation and receives a copy of it.
	DefaultOperatorEmail = "contato@eventex.com.br"

	ConfirmationSubject      = "Confirmação de inscrição"
	ConfirmationTemplateName = "subscription_confirmation"
)

// ConfirmationTemplate is the Liquid source of the confirmation body.
const ConfirmationTemplate = `Olá, {{ name }}!

Obrigado por se inscrever no Eventex.

Confira os dados da sua inscrição:

Nome: {{ name }}
CPF: {{ cpf }}
Email: {{ email }}
Telefone: {{ phone }}

Em caso de dúvidas, responda este email ({{ operator }}).

Atenciosamente,
Equipe Eventex
`

func (s *Usecase) operatorEmail() string {
	return s.cfg.GetStringDefault("modules.subscription.mail.from", DefaultOperatorEmail)
}

// confirmationMessage addresses the stored email but fills the body with the
// values exactly as submitted.
func (s *Usecase) confirmationMessage(sub entity.Subscription, submitted entity.SubmissionInput) (mail.Message, error) {
	operator := s.operatorEmail()

	body, err := s.renderer.Render(ConfirmationTemplateName, map[string]any{
		"name":     submitted.Get(entity.FieldName),
		"cpf":      submitted.Get(entity.FieldCPF),
		"email":    submitted.Get(entity.FieldEmail),
		"phone":    submitted.Get(entity.FieldPhone),
		"operator": operator,
	})
	if err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		From:     operator,
		To:       []string{operator, sub.Email},
		Subject:  ConfirmationSubject,
		TextBody: body,
	}, nil
}
