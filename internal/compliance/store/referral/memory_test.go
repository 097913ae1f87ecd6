package referral

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

type ReferralStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *ReferralStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestReferralStoreSuite(t *testing.T) {
	suite.Run(t, new(ReferralStoreSuite))
}

func (s *ReferralStoreSuite) newReferral(carerID id.CarerID, slot models.ReferralSlot) *models.Referral {
	ref, err := models.NewReferral(id.NewReferralID(), carerID, slot, models.RefereeInfo{
		Name:         "Dana Osei",
		Email:        "dana.osei@example.org",
		Relationship: "former manager",
	}, s.now)
	s.Require().NoError(err)
	return ref
}

func (s *ReferralStoreSuite) TestSlotOccupancy() {
	carerID := id.NewCarerID()

	s.Run("both slots accept one referral each", func() {
		s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, s.newReferral(carerID, 1)))
		s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, s.newReferral(carerID, 2)))
	})

	s.Run("an occupied slot rejects a second referral", func() {
		err := s.store.CreateIfSlotFree(s.ctx, s.newReferral(carerID, 1))
		s.Require().ErrorIs(err, sentinel.ErrSlotOccupied)
	})

	s.Run("a rejected referral frees its slot", func() {
		refs, err := s.store.ListByCarer(s.ctx, carerID)
		s.Require().NoError(err)
		var slotOne id.ReferralID
		for _, ref := range refs {
			if ref.Slot == 1 {
				slotOne = ref.ID
			}
		}

		_, err = s.store.Execute(s.ctx, slotOne, nil, func(r *models.Referral) {
			r.ApplyDecision(models.DecisionReject, s.now)
		})
		s.Require().NoError(err)

		s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, s.newReferral(carerID, 1)))
	})

	s.Run("other carers are unaffected", func() {
		s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, s.newReferral(id.NewCarerID(), 1)))
	})
}

func (s *ReferralStoreSuite) TestFindByID() {
	ref := s.newReferral(id.NewCarerID(), 1)
	s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, ref))

	found, err := s.store.FindByID(s.ctx, ref.ID)
	s.Require().NoError(err)
	s.Equal(ref.Referee.Email, found.Referee.Email)

	_, err = s.store.FindByID(s.ctx, id.NewReferralID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ReferralStoreSuite) TestListByCarer() {
	carerID := id.NewCarerID()
	s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, s.newReferral(carerID, 1)))
	s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, s.newReferral(carerID, 2)))

	refs, err := s.store.ListByCarer(s.ctx, carerID)
	s.Require().NoError(err)
	s.Len(refs, 2)

	s.Run("empty for unknown carer", func() {
		refs, err := s.store.ListByCarer(s.ctx, id.NewCarerID())
		s.Require().NoError(err)
		s.Empty(refs)
	})
}

func (s *ReferralStoreSuite) TestExecute() {
	ref := s.newReferral(id.NewCarerID(), 1)
	s.Require().NoError(s.store.CreateIfSlotFree(s.ctx, ref))

	got, err := s.store.Execute(s.ctx, ref.ID,
		func(r *models.Referral) error { return r.CanDecide() },
		func(r *models.Referral) { r.ApplyDecision(models.DecisionApprove, s.now) },
	)
	s.Require().NoError(err)
	s.Equal(models.ReferralVerified, got.Status)
	s.Equal(int64(1), got.Version)

	s.Run("validate failure leaves the referral untouched", func() {
		_, err := s.store.Execute(s.ctx, ref.ID,
			func(r *models.Referral) error { return r.CanDecide() },
			func(r *models.Referral) { r.ApplyDecision(models.DecisionReject, s.now) },
		)
		s.Require().Error(err)

		found, err := s.store.FindByID(s.ctx, ref.ID)
		s.Require().NoError(err)
		s.Equal(models.ReferralVerified, found.Status)
	})
}
