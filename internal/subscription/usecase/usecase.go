package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/eventex/internal/pkg/clock"
	"github.com/shandysiswandi/eventex/internal/pkg/config"
	"github.com/shandysiswandi/eventex/internal/pkg/goroutine"
	"github.com/shandysiswandi/eventex/internal/pkg/idempotency"
	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/mail"
	"github.com/shandysiswandi/eventex/internal/pkg/render"
	"github.com/shandysiswandi/eventex/internal/pkg/uid"
	"github.com/shandysiswandi/eventex/internal/pkg/validator"
	"github.com/shandysiswandi/eventex/internal/subscription/entity"
	"go.opentelemetry.io/otel/trace"
)

type SubscriptionCreatedEvent struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

type repoDB interface {
	CreateSubscription(ctx context.Context, in entity.Subscription) error
	GetSubscriptionByID(ctx context.Context, id int64) (*entity.Subscription, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type repoMessaging interface {
	PublishSubscriptionCreated(ctx context.Context, msg SubscriptionCreatedEvent) error
}

type Usecase struct {
	repoDB        repoDB
	repoMail      repoMail
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	renderer      render.Renderer
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMail      repoMail
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Renderer      render.Renderer
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMail:      dep.RepoMail,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		renderer:      dep.Renderer,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("subscription.usecase").Start(ctx, name)
}
