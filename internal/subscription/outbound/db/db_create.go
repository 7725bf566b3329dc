package db

import (
	"context"

	"github.com/shandysiswandi/eventex/internal/subscription/entity"
)

const createSubscription = `
INSERT INTO subscriptions (id, name, cpf, email, phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (s *DB) CreateSubscription(ctx context.Context, in entity.Subscription) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSubscription")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createSubscription, in.ID, in.Name, in.CPF, in.Email, in.Phone, in.CreatedAt)
	err = s.mapError(err)
	return err
}
