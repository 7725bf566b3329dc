package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/eventex/internal/subscription/entity"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
)

type SubscriptionRequest struct {
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r SubscriptionRequest) input() entity.SubmissionInput {
	return entity.SubmissionInput{
		entity.FieldName:  r.Name,
		entity.FieldCPF:   r.CPF,
		entity.FieldEmail: r.Email,
		entity.FieldPhone: r.Phone,
	}
}

type SubscriptionResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func newSubscriptionResponse(s entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		Name:      s.Name,
		CPF:       s.CPF,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}

type SubscriptionCreateResponse struct {
	SubscriptionResponse
	ConfirmationSent bool `json:"confirmation_sent"`
}

func (SubscriptionCreateResponse) Message() string {
	return usecase.SuccessMessage
}

func (SubscriptionCreateResponse) StatusCode() int {
	return http.StatusCreated
}
