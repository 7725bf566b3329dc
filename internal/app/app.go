package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/eventex/internal/pkg/clock"
	"github.com/shandysiswandi/eventex/internal/pkg/config"
	"github.com/shandysiswandi/eventex/internal/pkg/goroutine"
	"github.com/shandysiswandi/eventex/internal/pkg/hash"
	"github.com/shandysiswandi/eventex/internal/pkg/idempotency"
	"github.com/shandysiswandi/eventex/internal/pkg/instrument"
	"github.com/shandysiswandi/eventex/internal/pkg/mail"
	"github.com/shandysiswandi/eventex/internal/pkg/messaging"
	"github.com/shandysiswandi/eventex/internal/pkg/render"
	"github.com/shandysiswandi/eventex/internal/pkg/router"
	"github.com/shandysiswandi/eventex/internal/pkg/uid"
	"github.com/shandysiswandi/eventex/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      *hash.HMACSHA256
	uid       uid.NumberID
	uuid      uid.StringID
	renderer  *render.Liquid

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Publisher

	// server
	router     *router.Router
	csrf       *router.CSRF
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
