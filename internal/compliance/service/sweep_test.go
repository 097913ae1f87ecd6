package service

import (
	"time"

	"vetgate/internal/audit"
	"vetgate/internal/compliance/models"
	"vetgate/internal/notify"
	id "vetgate/pkg/domain"
)

func (s *ServiceSuite) TestSweepExpiresLapsedDocuments() {
	carerID := id.NewCarerID()
	s.verifyCarer(carerID, s.now.Add(24*time.Hour))

	sweepCtx := s.at(s.now.Add(48 * time.Hour))
	result, err := s.service.SweepExpirations(sweepCtx)
	s.Require().NoError(err)
	s.Equal(1, result.Candidates)
	s.Equal(1, result.Expired)
	s.Zero(result.Failed)

	s.Run("the stored verdict and documents flip to expired", func() {
		rec, err := s.credentials.FindByCarer(sweepCtx, carerID)
		s.Require().NoError(err)
		s.Equal(models.OverallExpired, rec.OverallStatus)
		for _, docType := range models.AllDocTypes() {
			if docType.RequiresExpiry() {
				s.Equal(models.DocStatusExpired, rec.Document(docType).Status, docType)
			}
		}
		s.Equal(models.DocStatusVerified, rec.Document(models.DocIdentity).Status)
	})

	s.Run("expiry notifications and audit entries go out per document", func() {
		expired := 0
		for _, e := range s.notifications.Events() {
			if e.Kind == notify.KindCredentialExpired {
				expired++
			}
		}
		s.Equal(3, expired)

		events, err := s.service.GetAuditTrail(sweepCtx, carerID)
		s.Require().NoError(err)
		audited := 0
		for _, e := range events {
			if e.Action == audit.ActionDocumentExpired {
				audited++
				s.Equal(audit.ActorReconciler, e.Actor)
			}
		}
		s.Equal(3, audited)
	})

	s.Run("a second sweep changes nothing", func() {
		before := len(s.notifications.Events())

		result, err := s.service.SweepExpirations(sweepCtx)
		s.Require().NoError(err)
		s.Zero(result.Candidates, "expired records are no longer sweep candidates")
		s.Zero(result.Expired)
		s.Len(s.notifications.Events(), before)
	})
}

func (s *ServiceSuite) TestSweepWarnsOncePerExpiry() {
	carerID := id.NewCarerID()
	s.rates.SetRate(carerID, 20)
	s.verifyCarer(carerID, s.now.Add(10*24*time.Hour))

	result, err := s.service.SweepExpirations(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, result.Warned, "each dated document gets one warning")
	s.Zero(result.Expired)

	warnings := 0
	for _, e := range s.notifications.Events() {
		if e.Kind == notify.KindCredentialExpiring {
			warnings++
		}
	}
	s.Equal(3, warnings)

	s.Run("the carer stays verified and listable", func() {
		listable, err := s.service.IsListable(s.ctx, carerID)
		s.Require().NoError(err)
		s.True(listable)
	})

	s.Run("the next sweep does not warn again", func() {
		result, err := s.service.SweepExpirations(s.ctx)
		s.Require().NoError(err)
		s.Zero(result.Warned)
	})
}

// TestSweepSkipsNonVerified pins candidate selection: only records whose
// cached verdict is verified are swept.
func (s *ServiceSuite) TestSweepSkipsNonVerified() {
	carerID := id.NewCarerID()
	expiry := s.now.Add(-time.Hour)
	_, err := s.service.SubmitDocument(s.ctx, carerID, models.DocInsurance, "doc-ref", &expiry)
	s.Require().NoError(err)

	result, err := s.service.SweepExpirations(s.ctx)
	s.Require().NoError(err)
	s.Zero(result.Candidates)
}
