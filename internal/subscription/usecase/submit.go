package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/eventex/internal/pkg/goerror"
	"github.com/shandysiswandi/eventex/internal/pkg/idempotency"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
)

type (
	SubmitInput struct {
		Fields entity.SubmissionInput
		// IdempotencyKey is optional. When set, a replay of the same key is
		// refused instead of creating a second subscription.
		IdempotencyKey string
	}

	SubmitOutput struct {
		Subscription     entity.Subscription
		ConfirmationSent bool
	}
)

// Submit validates the input, stores the subscription and sends one
// confirmation email. A rejected submission returns a validation error whose
// cause is entity.FieldErrors.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	result := s.Validate(in.Fields)
	if !result.OK() {
		return nil, goerror.NewInvalidInput(result.Errors)
	}

	if in.IdempotencyKey == "" {
		return s.accept(ctx, *result.Record, in.Fields)
	}

	var out *SubmitOutput
	err := s.idemp.Exec(ctx, "subscription:"+in.IdempotencyKey, func(ctx context.Context) error {
		var err error
		out, err = s.accept(ctx, *result.Record, in.Fields)
		return err
	}, idempotency.WithStateTTL(s.cfg.GetMinute("modules.subscription.idempotency_ttl_minutes")))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "subscription submit already in progress", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness("Inscrição já está em processamento", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		slog.WarnContext(ctx, "subscription submit replayed", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness("Inscrição já realizada", goerror.CodeConflict)
	case out != nil:
		if err != nil {
			slog.ErrorContext(ctx, "failed to mark idempotency key completed", "idempotency_key", in.IdempotencyKey, "error", err)
		}
		return out, nil
	case err != nil:
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to acquire idempotency key", "idempotency_key", in.IdempotencyKey, "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

// accept stores the normalized record. submitted is what the subscriber typed
// and is echoed back in the confirmation.
func (s *Usecase) accept(ctx context.Context, sub entity.Subscription, submitted entity.SubmissionInput) (*SubmitOutput, error) {
	sub.ID = s.uid.Generate()
	sub.CreatedAt = s.clock.Now()

	if err := s.repoDB.CreateSubscription(ctx, sub); err != nil {
		slog.ErrorContext(ctx, "failed to repo create subscription", "subscription_id", sub.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &SubmitOutput{
		Subscription:     sub,
		ConfirmationSent: s.sendConfirmation(ctx, sub, submitted),
	}

	s.publishCreated(ctx, sub)

	return out, nil
}

// sendConfirmation is best effort: the subscription is already stored.
func (s *Usecase) sendConfirmation(ctx context.Context, sub entity.Subscription, submitted entity.SubmissionInput) bool {
	msg, err := s.confirmationMessage(sub, submitted)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render confirmation email", "subscription_id", sub.ID, "error", err)
		return false
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send confirmation email", "subscription_id", sub.ID, "error", err)
		return false
	}

	return true
}

func (s *Usecase) publishCreated(ctx context.Context, sub entity.Subscription) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishSubscriptionCreated(ctx, SubscriptionCreatedEvent{
			ID:        sub.ID,
			Name:      sub.Name,
			Email:     sub.Email,
			CreatedAt: sub.CreatedAt,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish subscription created", "subscription_id", sub.ID, "error", err)
		}
		return nil
	})
}
