// Package credential persists per-carer credential records. Both
// implementations expose the same Execute contract: validation and mutation
// run while the record is locked, so concurrent reviews of the same carer
// serialize instead of clobbering each other.
package credential

import (
	"context"
	"sync"
	"time"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

// InMemory keeps credential records in process, guarded by one RWMutex.
// Stricter than the per-row locking of the PostgreSQL store, which is fine:
// the contract only requires per-carer serialization.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.CarerID]*models.CredentialRecord
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.CarerID]*models.CredentialRecord)}
}

// Ensure returns the carer's record, creating an empty one on first contact.
func (s *InMemory) Ensure(ctx context.Context, carerID id.CarerID, now time.Time) (*models.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[carerID]; ok {
		return rec.Clone(), nil
	}
	rec := models.NewCredentialRecord(carerID, now)
	s.records[carerID] = rec
	return rec.Clone(), nil
}

func (s *InMemory) FindByCarer(ctx context.Context, carerID id.CarerID) (*models.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[carerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return rec.Clone(), nil
}

// Execute runs validate then mutate on the carer's record under the store
// lock and bumps the version. The callbacks see a private copy; the stored
// record only changes when both succeed.
func (s *InMemory) Execute(
	ctx context.Context,
	carerID id.CarerID,
	validate func(*models.CredentialRecord) error,
	mutate func(*models.CredentialRecord),
) (*models.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[carerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	work := rec.Clone()
	if validate != nil {
		if err := validate(work); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(work)
	}
	work.Version = rec.Version + 1
	s.records[carerID] = work
	return work.Clone(), nil
}

// ListByOverallStatus returns carers whose stored verdict matches status.
// The reconciler sweeps the result; the stored verdict is only a candidate
// filter, never the gating truth.
func (s *InMemory) ListByOverallStatus(ctx context.Context, status models.OverallStatus) ([]id.CarerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []id.CarerID
	for carerID, rec := range s.records {
		if rec.OverallStatus == status {
			out = append(out, carerID)
		}
	}
	return out, nil
}
