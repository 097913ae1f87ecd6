package service

import (
	"context"
	"time"

	"vetgate/internal/compliance/evaluator"
	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/requestcontext"
)

// DocumentSummary is the read model for one document sub-state.
type DocumentSummary struct {
	Status          models.DocStatus `json:"status"`
	Expiry          *time.Time       `json:"expiry,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
}

// ReferralSummary is the read model for one referral.
type ReferralSummary struct {
	ID          id.ReferralID         `json:"id"`
	Slot        models.ReferralSlot   `json:"slot"`
	RefereeName string                `json:"referee_name"`
	Status      models.ReferralStatus `json:"status"`
	SubmittedAt time.Time             `json:"submitted_at"`
	DecidedAt   *time.Time            `json:"decided_at,omitempty"`
}

// ComplianceSummary is the read model served to the admin UI and to the
// carer's own verification screen. OverallStatus is evaluator-fresh, never
// the stored cache.
type ComplianceSummary struct {
	CarerID        id.CarerID                         `json:"carer_id"`
	OverallStatus  models.OverallStatus               `json:"overall_status"`
	LastVerifiedAt *time.Time                         `json:"last_verified_at,omitempty"`
	Documents      map[models.DocType]DocumentSummary `json:"documents"`
	Referrals      []ReferralSummary                  `json:"referrals"`
	EvaluatedAt    time.Time                          `json:"evaluated_at"`
}

// GetComplianceSummary returns the carer's full verification state with a
// verdict recomputed at read time.
func (s *Service) GetComplianceSummary(ctx context.Context, carerID id.CarerID) (*ComplianceSummary, error) {
	now := requestcontext.Now(ctx)

	rec, err := s.credentials.FindByCarer(ctx, carerID)
	if err != nil {
		return nil, wrapStoreErr(err, "credential record")
	}
	referrals, err := s.referrals.ListByCarer(ctx, carerID)
	if err != nil {
		return nil, wrapStoreErr(err, "referrals")
	}

	status := evaluator.Evaluate(rec, referrals, now)
	s.observeEvaluation(status)

	summary := &ComplianceSummary{
		CarerID:        carerID,
		OverallStatus:  status,
		LastVerifiedAt: rec.LastVerifiedAt,
		Documents:      make(map[models.DocType]DocumentSummary, 4),
		Referrals:      make([]ReferralSummary, 0, len(referrals)),
		EvaluatedAt:    now,
	}
	for _, t := range models.AllDocTypes() {
		doc := rec.Document(t)
		summary.Documents[t] = DocumentSummary{
			Status:          doc.Status,
			Expiry:          doc.Expiry,
			RejectionReason: doc.RejectionReason,
			SubmittedAt:     doc.SubmittedAt,
			ReviewedAt:      doc.ReviewedAt,
		}
	}
	for _, ref := range referrals {
		summary.Referrals = append(summary.Referrals, ReferralSummary{
			ID:          ref.ID,
			Slot:        ref.Slot,
			RefereeName: ref.Referee.Name,
			Status:      ref.Status,
			SubmittedAt: ref.SubmittedAt,
			DecidedAt:   ref.DecidedAt,
		})
	}
	return summary, nil
}

// IsListable is the visibility gate: true iff a fresh evaluation says
// verified and the external minimum-rate predicate holds. The stored verdict
// is never consulted, so a document that expired since the last sweep hides
// the carer immediately.
func (s *Service) IsListable(ctx context.Context, carerID id.CarerID) (bool, error) {
	now := requestcontext.Now(ctx)

	rec, err := s.credentials.FindByCarer(ctx, carerID)
	if err != nil {
		return false, wrapStoreErr(err, "credential record")
	}
	referrals, err := s.referrals.ListByCarer(ctx, carerID)
	if err != nil {
		return false, wrapStoreErr(err, "referrals")
	}

	status := evaluator.Evaluate(rec, referrals, now)
	s.observeEvaluation(status)
	if status != models.OverallVerified {
		s.observeListable("not_verified")
		return false, nil
	}

	ok, err := s.rate.AboveMinimum(ctx, carerID)
	if err != nil {
		return false, wrapStoreErr(err, "carer rate")
	}
	if !ok {
		s.observeListable("below_minimum_rate")
		return false, nil
	}
	s.observeListable("listable")
	return true, nil
}

func (s *Service) observeListable(result string) {
	if s.metrics != nil {
		s.metrics.ListableChecks.WithLabelValues(result).Inc()
	}
}
