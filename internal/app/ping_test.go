package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitReady(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := waitReady(context.Background(), "db", 3, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after retries", func(t *testing.T) {
		calls := 0
		refused := errors.New("connection refused")
		err := waitReady(context.Background(), "redis", 1, func(context.Context) error {
			calls++
			return refused
		})

		assert.ErrorIs(t, err, refused)
		assert.Equal(t, 2, calls)
	})
}
