package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) (*StateTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, "test:"), mr
}

func TestStateTracker_Exec(t *testing.T) {
	t.Run("runs once then reports completed", func(t *testing.T) {
		tr, mr := newTracker(t)
		calls := 0
		fn := func(context.Context) error { calls++; return nil }

		require.NoError(t, tr.Exec(t.Context(), "k1", fn, WithStateTTL(time.Hour)))
		assert.ErrorIs(t, tr.Exec(t.Context(), "k1", fn), ErrAlreadyCompleted)
		assert.Equal(t, 1, calls)

		v, err := mr.Get("test:k1")
		require.NoError(t, err)
		assert.Equal(t, StateCompleted.String(), v)
		assert.Equal(t, time.Hour, mr.TTL("test:k1"))
	})

	t.Run("failure releases the key", func(t *testing.T) {
		tr, mr := newTracker(t)
		boom := errors.New("boom")

		assert.ErrorIs(t, tr.Exec(t.Context(), "k2", func(context.Context) error { return boom }), boom)
		assert.False(t, mr.Exists("test:k2"))

		assert.NoError(t, tr.Exec(t.Context(), "k2", func(context.Context) error { return nil }))
	})

	t.Run("in progress", func(t *testing.T) {
		tr, mr := newTracker(t)
		require.NoError(t, mr.Set("test:k3", StateInProgress.String()))

		err := tr.Exec(t.Context(), "k3", func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrAlreadyInProgress)
	})

	t.Run("garbage state", func(t *testing.T) {
		tr, mr := newTracker(t)
		require.NoError(t, mr.Set("test:k4", "??"))

		err := tr.Exec(t.Context(), "k4", func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("empty key", func(t *testing.T) {
		tr, _ := newTracker(t)
		assert.ErrorIs(t, tr.Exec(t.Context(), "", nil), ErrEmptyKey)
	})

	t.Run("redis down", func(t *testing.T) {
		tr, mr := newTracker(t)
		mr.Close()
		assert.Error(t, tr.Exec(t.Context(), "k5", func(context.Context) error { return nil }))
	})
}
