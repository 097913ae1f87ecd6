package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Publisher hands events to the delivery collaborator. Implementations must
// tolerate duplicate events; the reconciler may re-emit after a partial
// failure.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the structured log. It is the default when no
// broker is configured, and keeps local development dependency-free.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "notification event",
		"kind", event.Kind,
		"carer_id", event.CarerID,
		"doc_type", event.DocType,
		"new_state", event.NewState,
	)
	return nil
}

// MemoryPublisher records events for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event{}, p.events...)
}
