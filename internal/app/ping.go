package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// waitReady calls ping until it succeeds or retries run out. Only startup
// checks go through here; request paths never retry.
func waitReady(ctx context.Context, name string, retries uint64, ping func(context.Context) error) error {
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(2*time.Second, b)
	b = retry.WithMaxRetries(retries, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := ping(pingCtx); err != nil {
			slog.WarnContext(ctx, "dependency not ready", "name", name, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
