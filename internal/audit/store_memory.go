package audit

import (
	"context"
	"sync"

	id "vetgate/pkg/domain"
)

// MemoryStore keeps audit events in process. Suitable for tests and local
// development; production uses the PostgreSQL store.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[id.CarerID][]Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[id.CarerID][]Event)}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.CarerID] = append(s.events[event.CarerID], event)
	return nil
}

func (s *MemoryStore) ListByCarer(_ context.Context, carerID id.CarerID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[carerID]...), nil
}
