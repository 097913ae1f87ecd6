package service

import (
	"context"
	"time"

	"vetgate/internal/audit"
	"vetgate/internal/compliance/evaluator"
	"vetgate/internal/compliance/models"
	"vetgate/internal/notify"
	id "vetgate/pkg/domain"
	"vetgate/pkg/requestcontext"
)

// SubmitDocument stores a new document reference for the carer and resets
// the sub-state to pending. The record is created on first contact; a
// re-submission after rejection or expiry discards the old rejection reason.
// The aggregate verdict is recomputed and persisted before returning.
func (s *Service) SubmitDocument(ctx context.Context, carerID id.CarerID, docType models.DocType, ref string, expiry *time.Time) (*models.CredentialRecord, error) {
	now := requestcontext.Now(ctx)

	if _, err := s.credentials.Ensure(ctx, carerID, now); err != nil {
		return nil, wrapStoreErr(err, "credential record")
	}
	referrals, err := s.referrals.ListByCarer(ctx, carerID)
	if err != nil {
		return nil, wrapStoreErr(err, "referrals")
	}

	var fromState models.DocStatus
	rec, err := s.credentials.Execute(ctx, carerID,
		func(r *models.CredentialRecord) error {
			fromState = r.Document(docType).Status
			return r.CanSubmit(docType, ref, expiry)
		},
		func(r *models.CredentialRecord) {
			r.ApplySubmission(docType, ref, expiry, now)
			r.SetOverall(evaluator.Evaluate(r, referrals, now), now)
		},
	)
	if err != nil {
		return nil, wrapStoreErr(err, "credential record")
	}
	s.observeEvaluation(rec.OverallStatus)
	if s.metrics != nil {
		s.metrics.SubmissionsTotal.WithLabelValues("document").Inc()
	}

	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		CarerID:   carerID,
		Actor:     audit.ActorCarer,
		Action:    audit.ActionDocumentSubmitted,
		Subject:   string(docType),
		FromState: string(fromState),
		ToState:   string(models.DocStatusPending),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "document submitted",
		"carer_id", carerID,
		"doc_type", docType,
		"overall_status", rec.OverallStatus,
	)
	return rec, nil
}

// ReviewDocument records an administrator decision on a pending document.
// Approve moves it to verified, reject requires a reason. Only pending
// documents are reviewable; anything else is an invalid transition.
func (s *Service) ReviewDocument(ctx context.Context, carerID id.CarerID, docType models.DocType, decision models.ReviewDecision, reason string) (*models.CredentialRecord, error) {
	now := requestcontext.Now(ctx)

	referrals, err := s.referrals.ListByCarer(ctx, carerID)
	if err != nil {
		return nil, wrapStoreErr(err, "referrals")
	}

	rec, err := s.credentials.Execute(ctx, carerID,
		func(r *models.CredentialRecord) error {
			return r.CanReview(docType, decision, reason)
		},
		func(r *models.CredentialRecord) {
			r.ApplyReview(docType, decision, reason, now)
			r.SetOverall(evaluator.Evaluate(r, referrals, now), now)
		},
	)
	if err != nil {
		return nil, wrapStoreErr(err, "credential record")
	}
	s.observeEvaluation(rec.OverallStatus)
	if s.metrics != nil {
		s.metrics.ReviewsTotal.WithLabelValues("document", string(decision)).Inc()
	}

	newState := rec.Document(docType).Status
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		CarerID:   carerID,
		Actor:     requestcontext.ReviewerID(ctx).String(),
		Action:    audit.ActionDocumentReviewed,
		Subject:   string(docType),
		FromState: string(models.DocStatusPending),
		ToState:   string(newState),
		Reason:    reason,
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		RequestID: requestcontext.RequestID(ctx),
	})
	s.emitNotification(ctx, notify.Event{
		Kind:     notify.KindReviewDecided,
		CarerID:  carerID,
		DocType:  docType,
		NewState: string(newState),
		At:       now,
	})

	s.logger.InfoContext(ctx, "document reviewed",
		"carer_id", carerID,
		"doc_type", docType,
		"decision", decision,
		"overall_status", rec.OverallStatus,
	)
	return rec, nil
}
