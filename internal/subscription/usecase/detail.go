package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/eventex/internal/pkg/goerror"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
)

type (
	DetailInput struct {
		ID int64
	}

	DetailOutput struct {
		Subscription entity.Subscription
	}
)

func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*DetailOutput, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	if in.ID <= 0 {
		return nil, goerror.NewInvalidInput(nil, "id", "ID deve ser positivo.")
	}

	sub, err := s.repoDB.GetSubscriptionByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "subscription not found", "subscription_id", in.ID)
		return nil, goerror.NewBusiness("Inscrição não encontrada", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subscription by id", "subscription_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DetailOutput{Subscription: *sub}, nil
}
