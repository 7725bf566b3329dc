package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/eventex/internal/pkg/goerror"
	"github.com/shandysiswandi/eventex/internal/pkg/router"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (healthResponse) Message() string {
	return "service is healthy"
}

func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.dbConn.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "dependency", "database", "error", err)
		return nil, goerror.NewServer(errors.New("database unavailable"))
	}

	if err := a.cacheConn.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "health check failed", "dependency", "redis", "error", err)
		return nil, goerror.NewServer(errors.New("redis unavailable"))
	}

	return healthResponse{Status: "ok"}, nil
}
