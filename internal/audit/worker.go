package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. Main owns
// the channel and the worker lifecycle. Append failures are logged, not
// fatal; losing one audit line must not take the worker down with it.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"carer_id", event.CarerID,
					"error", err,
				)
			}
		}
	}
}
