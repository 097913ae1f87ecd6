package audit

import (
	"context"
	"time"

	id "vetgate/pkg/domain"
)

// Store persists audit events. Append-only; there is no update or delete.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCarer(ctx context.Context, carerID id.CarerID) ([]Event, error)
}

// Publisher captures structured audit events. With an inbox it enqueues for
// the Worker so review latency stays independent of audit storage latency;
// without one it appends synchronously (tests, CLI).
type Publisher struct {
	store Store
	inbox chan<- Event
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// NewAsyncPublisher routes Emit through inbox; a Worker on the same channel
// does the persisting.
func NewAsyncPublisher(store Store, inbox chan<- Event) *Publisher {
	return &Publisher{store: store, inbox: inbox}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	if p.inbox != nil {
		select {
		case p.inbox <- base:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, carerID id.CarerID) ([]Event, error) {
	return p.store.ListByCarer(ctx, carerID)
}
