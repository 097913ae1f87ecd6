package reconciler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vetgate/internal/compliance/service"
	"vetgate/pkg/requestcontext"
)

type fakeSweeper struct {
	sweeps atomic.Int64
	gotNow atomic.Bool
}

func (f *fakeSweeper) SweepExpirations(ctx context.Context) (service.SweepResult, error) {
	f.sweeps.Add(1)
	if !requestcontext.Now(ctx).IsZero() {
		f.gotNow.Store(true)
	}
	return service.SweepResult{}, nil
}

type fakeLock struct {
	held     bool
	acquires atomic.Int64
	releases atomic.Int64
	err      error
}

func (l *fakeLock) TryAcquire(context.Context) (bool, error) {
	l.acquires.Add(1)
	return !l.held, l.err
}

func (l *fakeLock) Release(context.Context) error {
	l.releases.Add(1)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSweepsImmediately(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := New(sweeper, time.Hour, discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		return sweeper.sweeps.Load() == 1
	}, time.Second, 5*time.Millisecond, "first sweep happens before the first tick")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.True(t, sweeper.gotNow.Load(), "sweep runs with a pinned batch time")
}

func TestSweepRespectsLock(t *testing.T) {
	ctx := context.Background()

	t.Run("held lock skips the cycle", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		lock := &fakeLock{held: true}
		w := New(sweeper, time.Hour, discardLogger(), lock)

		w.sweep(ctx)
		require.Zero(t, sweeper.sweeps.Load())
		require.Zero(t, lock.releases.Load(), "a lock we never took is never released")
	})

	t.Run("acquired lock is released after the sweep", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		lock := &fakeLock{}
		w := New(sweeper, time.Hour, discardLogger(), lock)

		w.sweep(ctx)
		require.Equal(t, int64(1), sweeper.sweeps.Load())
		require.Equal(t, int64(1), lock.releases.Load())
	})

	t.Run("lock errors skip the cycle", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		lock := &fakeLock{err: errors.New("redis unreachable")}
		w := New(sweeper, time.Hour, discardLogger(), lock)

		w.sweep(ctx)
		require.Zero(t, sweeper.sweeps.Load())
	})
}
