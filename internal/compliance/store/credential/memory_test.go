package credential

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

type CredentialStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func (s *CredentialStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestCredentialStoreSuite(t *testing.T) {
	suite.Run(t, new(CredentialStoreSuite))
}

func (s *CredentialStoreSuite) TestEnsure() {
	carerID := id.NewCarerID()

	s.Run("creates an empty record on first contact", func() {
		rec, err := s.store.Ensure(s.ctx, carerID, s.now)
		s.Require().NoError(err)
		s.Equal(models.OverallIncomplete, rec.OverallStatus)
		s.Len(rec.Documents, 4)
	})

	s.Run("returns the existing record on later calls", func() {
		expiry := s.now.Add(365 * 24 * time.Hour)
		_, err := s.store.Execute(s.ctx, carerID, nil, func(r *models.CredentialRecord) {
			r.ApplySubmission(models.DocInsurance, "doc-ref", &expiry, s.now)
		})
		s.Require().NoError(err)

		rec, err := s.store.Ensure(s.ctx, carerID, s.now.Add(time.Hour))
		s.Require().NoError(err)
		s.Equal(models.DocStatusPending, rec.Document(models.DocInsurance).Status)
	})
}

func (s *CredentialStoreSuite) TestFindByCarer() {
	s.Run("returns ErrNotFound for unknown carer", func() {
		_, err := s.store.FindByCarer(s.ctx, id.NewCarerID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned record is a private copy", func() {
		carerID := id.NewCarerID()
		_, err := s.store.Ensure(s.ctx, carerID, s.now)
		s.Require().NoError(err)

		rec, err := s.store.FindByCarer(s.ctx, carerID)
		s.Require().NoError(err)
		rec.ApplySubmission(models.DocIdentity, "doc-ref", nil, s.now)

		fresh, err := s.store.FindByCarer(s.ctx, carerID)
		s.Require().NoError(err)
		s.Equal(models.DocStatusNotSubmitted, fresh.Document(models.DocIdentity).Status)
	})
}

func (s *CredentialStoreSuite) TestExecute() {
	carerID := id.NewCarerID()
	_, err := s.store.Ensure(s.ctx, carerID, s.now)
	s.Require().NoError(err)

	s.Run("bumps version on every mutation", func() {
		rec, err := s.store.Execute(s.ctx, carerID, nil, func(r *models.CredentialRecord) {
			r.ApplySubmission(models.DocIdentity, "doc-ref", nil, s.now)
		})
		s.Require().NoError(err)
		s.Equal(int64(1), rec.Version)

		rec, err = s.store.Execute(s.ctx, carerID, nil, nil)
		s.Require().NoError(err)
		s.Equal(int64(2), rec.Version)
	})

	s.Run("validate failure leaves the record untouched", func() {
		boom := errors.New("rejected by validator")
		_, err := s.store.Execute(s.ctx, carerID,
			func(*models.CredentialRecord) error { return boom },
			func(r *models.CredentialRecord) {
				r.ApplySubmission(models.DocRightToWork, "doc-ref", nil, s.now)
			},
		)
		s.Require().ErrorIs(err, boom)

		rec, err := s.store.FindByCarer(s.ctx, carerID)
		s.Require().NoError(err)
		s.Equal(models.DocStatusNotSubmitted, rec.Document(models.DocRightToWork).Status)
	})

	s.Run("unknown carer yields ErrNotFound", func() {
		_, err := s.store.Execute(s.ctx, id.NewCarerID(), nil, nil)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestExecuteSerializes exercises the per-carer serialization contract:
// concurrent mutations may interleave in any order but none may be lost.
func (s *CredentialStoreSuite) TestExecuteSerializes() {
	carerID := id.NewCarerID()
	_, err := s.store.Ensure(s.ctx, carerID, s.now)
	s.Require().NoError(err)

	const writers = 16
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(s.ctx, carerID, nil, func(r *models.CredentialRecord) {
				r.UpdatedAt = r.UpdatedAt.Add(time.Second)
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	rec, err := s.store.FindByCarer(s.ctx, carerID)
	s.Require().NoError(err)
	s.Equal(int64(writers), rec.Version)
}

func (s *CredentialStoreSuite) TestListByOverallStatus() {
	verified := id.NewCarerID()
	incomplete := id.NewCarerID()
	for _, carerID := range []id.CarerID{verified, incomplete} {
		_, err := s.store.Ensure(s.ctx, carerID, s.now)
		s.Require().NoError(err)
	}
	_, err := s.store.Execute(s.ctx, verified, nil, func(r *models.CredentialRecord) {
		r.SetOverall(models.OverallVerified, s.now)
	})
	s.Require().NoError(err)

	got, err := s.store.ListByOverallStatus(s.ctx, models.OverallVerified)
	s.Require().NoError(err)
	s.Equal([]id.CarerID{verified}, got)
}
