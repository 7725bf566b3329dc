package subscription

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/eventex/internal/pkg/clock"
	"github.com/shandysiswandi/eventex/internal/pkg/config"
	"github.com/shandysiswandi/eventex/internal/pkg/goroutine"
	"github.com/shandysiswandi/eventex/internal/pkg/idempotency"
	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/mail"
	"github.com/shandysiswandi/eventex/internal/pkg/messaging"
	"github.com/shandysiswandi/eventex/internal/pkg/render"
	"github.com/shandysiswandi/eventex/internal/pkg/router"
	"github.com/shandysiswandi/eventex/internal/pkg/uid"
	"github.com/shandysiswandi/eventex/internal/pkg/validator"
	"github.com/shandysiswandi/eventex/internal/subscription/inbound"
	"github.com/shandysiswandi/eventex/internal/subscription/outbound/db"
	"github.com/shandysiswandi/eventex/internal/subscription/outbound/email"
	"github.com/shandysiswandi/eventex/internal/subscription/outbound/mq"
	"github.com/shandysiswandi/eventex/internal/subscription/usecase"
)

type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	CSRF        *router.CSRF               `validate:"required"`
	Renderer    *render.Liquid             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	if err := dep.Renderer.Register(usecase.ConfirmationTemplateName, usecase.ConfirmationTemplate); err != nil {
		return err
	}

	dbSub := db.NewDB(dep.DBConn, dep.Instrument)
	if dep.Config.GetBool("database.auto_migrate") {
		if err := dbSub.Migrate(dep.Ctx); err != nil {
			return err
		}
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbSub,
		RepoMail:      email.New(dep.Mail, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Renderer:      dep.Renderer,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.CSRF)

	return nil
}
