package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/eventex/internal/subscription"
)

func (a *App) initModules() {
	if err := subscription.New(subscription.Dependency{
		Ctx:         a.ctx,
		DBConn:      a.dbConn,
		Goroutine:   a.goroutine,
		Router:      a.router,
		CSRF:        a.csrf,
		Renderer:    a.renderer,
		Idempotency: a.idemp,
		Messaging:   a.messaging,
		Mail:        a.mail,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		Clock:       a.clock,
		Validator:   a.validator,
	}); err != nil {
		slog.Error("failed to init module subscription", "error", err)
		os.Exit(1)
	}
}
