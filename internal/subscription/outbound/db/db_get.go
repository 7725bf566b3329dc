package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
)

const getSubscriptionByID = `
SELECT id, name, cpf, email, phone, created_at
FROM subscriptions
WHERE id = $1`

type subscriptionRow struct {
	ID        int64              `db:"id"`
	Name      string             `db:"name"`
	CPF       string             `db:"cpf"`
	Email     string             `db:"email"`
	Phone     string             `db:"phone"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

func (s *DB) GetSubscriptionByID(ctx context.Context, id int64) (_ *entity.Subscription, err error) {
	ctx, span := s.startSpan(ctx, "GetSubscriptionByID")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, getSubscriptionByID, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[subscriptionRow])
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.Subscription{
		ID:        row.ID,
		Name:      row.Name,
		CPF:       row.CPF,
		Email:     row.Email,
		Phone:     row.Phone,
		CreatedAt: row.CreatedAt.Time.UTC(),
	}, nil
}
