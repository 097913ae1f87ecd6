// Package reconciler runs the periodic expiry sweep. The sweep itself lives
// in the compliance service; this package owns scheduling, leader locking,
// and lifecycle.
//
// Sweep frequency is a policy choice, not a correctness requirement: the
// visibility gate re-evaluates at query time, so a missed or late sweep only
// delays notifications and the cached verdict, never a gating decision.
package reconciler

import (
	"context"
	"log/slog"
	"time"

	"vetgate/internal/compliance/service"
	"vetgate/pkg/requestcontext"
)

// Sweeper is the slice of the compliance service the worker needs.
type Sweeper interface {
	SweepExpirations(ctx context.Context) (service.SweepResult, error)
}

// Lock elects a single sweeping instance. TryAcquire returns false when
// another instance holds the lock; that sweep cycle is skipped.
type Lock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Worker ticks on an interval and runs one sweep per tick.
type Worker struct {
	sweeper  Sweeper
	lock     Lock
	interval time.Duration
	logger   *slog.Logger
}

// New constructs a reconciler worker. lock may be nil for single-instance
// deployments.
func New(sweeper Sweeper, interval time.Duration, logger *slog.Logger, lock Lock) *Worker {
	return &Worker{
		sweeper:  sweeper,
		lock:     lock,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	if w.lock != nil {
		acquired, err := w.lock.TryAcquire(ctx)
		if err != nil {
			w.logger.ErrorContext(ctx, "sweep lock acquisition failed", "error", err)
			return
		}
		if !acquired {
			w.logger.DebugContext(ctx, "another instance is sweeping, skipping cycle")
			return
		}
		defer func() {
			if err := w.lock.Release(ctx); err != nil {
				w.logger.WarnContext(ctx, "sweep lock release failed", "error", err)
			}
		}()
	}

	// One consistent instant for the whole batch.
	sweepCtx := requestcontext.WithTime(ctx, time.Now())
	if _, err := w.sweeper.SweepExpirations(sweepCtx); err != nil {
		w.logger.ErrorContext(ctx, "expiry sweep failed", "error", err)
	}
}
