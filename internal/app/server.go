package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Start serves HTTP in the background. The returned channel closes once the
// process receives SIGINT, SIGTERM or SIGHUP.
func (a *App) Start() <-chan struct{} {
	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("eventex accepting subscriptions", "address", a.httpServer.Addr)

		err := a.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-sigCtx.Done()
		stop()
		slog.Info("shutdown signal received")
	}()

	return done
}

// ShutdownTimeout is how long Stop may take before in-flight work is abandoned.
func (a *App) ShutdownTimeout() time.Duration {
	if d := a.config.GetSecond("app.server.shutdown_timeout_seconds"); d > 0 {
		return d
	}

	return 10 * time.Second
}

// Stop refuses new submissions, lets pending confirmation work finish and then
// releases every resource in reverse dependency order.
func (a *App) Stop(ctx context.Context) {
	started := time.Now()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "http server shutdown incomplete", "error", err)
	}

	// background publishes run on a context detached from the request
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background work finished with error", "error", err)
	}

	a.cancel()

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to release resource", "name", c.name, "error", err)
			continue
		}
		slog.DebugContext(ctx, "resource released", "name", c.name)
	}

	slog.InfoContext(ctx, "eventex stopped", "took", time.Since(started).String())
}
