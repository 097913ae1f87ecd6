// Package referral persists referral submissions. Slot occupancy is enforced
// here, under the same lock as the write, so two concurrent submissions into
// one slot cannot both succeed.
package referral

import (
	"context"
	"sync"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

// InMemory keeps referrals in process.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.ReferralID]*models.Referral
	byCarer map[id.CarerID][]id.ReferralID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.ReferralID]*models.Referral),
		byCarer: make(map[id.CarerID][]id.ReferralID),
	}
}

// CreateIfSlotFree inserts the referral unless its slot already holds a
// non-rejected record for the carer.
func (s *InMemory) CreateIfSlotFree(ctx context.Context, ref *models.Referral) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existingID := range s.byCarer[ref.CarerID] {
		existing := s.byID[existingID]
		if existing.Slot == ref.Slot && existing.OccupiesSlot() {
			return sentinel.ErrSlotOccupied
		}
	}
	s.byID[ref.ID] = ref.Clone()
	s.byCarer[ref.CarerID] = append(s.byCarer[ref.CarerID], ref.ID)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, referralID id.ReferralID) (*models.Referral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.byID[referralID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return ref.Clone(), nil
}

func (s *InMemory) ListByCarer(ctx context.Context, carerID id.CarerID) ([]*models.Referral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byCarer[carerID]
	out := make([]*models.Referral, 0, len(ids))
	for _, refID := range ids {
		out = append(out, s.byID[refID].Clone())
	}
	return out, nil
}

// Execute runs validate then mutate on one referral under the store lock.
func (s *InMemory) Execute(
	ctx context.Context,
	referralID id.ReferralID,
	validate func(*models.Referral) error,
	mutate func(*models.Referral),
) (*models.Referral, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.byID[referralID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	work := ref.Clone()
	if validate != nil {
		if err := validate(work); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(work)
	}
	work.Version = ref.Version + 1
	s.byID[referralID] = work
	return work.Clone(), nil
}
