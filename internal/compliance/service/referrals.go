package service

import (
	"context"

	"vetgate/internal/audit"
	"vetgate/internal/compliance/evaluator"
	"vetgate/internal/compliance/models"
	"vetgate/internal/notify"
	id "vetgate/pkg/domain"
	"vetgate/pkg/requestcontext"
)

// SubmitReferral creates a pending referral in the given slot. A slot is
// occupied while its current record is anything but rejected; two live
// referrals is the ceiling.
func (s *Service) SubmitReferral(ctx context.Context, carerID id.CarerID, slot models.ReferralSlot, info models.RefereeInfo) (*models.Referral, error) {
	now := requestcontext.Now(ctx)

	ref, err := models.NewReferral(id.NewReferralID(), carerID, slot, info, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.credentials.Ensure(ctx, carerID, now); err != nil {
		return nil, wrapStoreErr(err, "credential record")
	}
	if err := s.referrals.CreateIfSlotFree(ctx, ref); err != nil {
		return nil, wrapStoreErr(err, "referral")
	}
	if s.metrics != nil {
		s.metrics.SubmissionsTotal.WithLabelValues("referral").Inc()
	}

	// A new pending referral can change the verdict (incomplete →
	// pending_review), so refresh the cached verdict too.
	if err := s.reevaluateCarer(ctx, carerID); err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		CarerID:   carerID,
		Actor:     audit.ActorCarer,
		Action:    audit.ActionReferralSubmitted,
		Subject:   ref.ID.String(),
		ToState:   string(models.ReferralPending),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "referral submitted",
		"carer_id", carerID,
		"referral_id", ref.ID,
		"slot", int(slot),
	)
	return ref, nil
}

// GetReferral returns the current state of one referral. The referee-contact
// collaborator reads this before reaching out and after posting its callback.
func (s *Service) GetReferral(ctx context.Context, referralID id.ReferralID) (*models.Referral, error) {
	ref, err := s.referrals.FindByID(ctx, referralID)
	if err != nil {
		return nil, wrapStoreErr(err, "referral")
	}
	return ref, nil
}

// NotifyReferral marks a referral as notified once the referee-contact
// process has reached out. Replaying the callback on an already notified
// referral is a no-op.
func (s *Service) NotifyReferral(ctx context.Context, referralID id.ReferralID) (*models.Referral, error) {
	now := requestcontext.Now(ctx)

	changed := false
	ref, err := s.referrals.Execute(ctx, referralID,
		func(r *models.Referral) error {
			var err error
			changed, err = r.CanNotify()
			return err
		},
		func(r *models.Referral) {
			if changed {
				r.ApplyNotified()
			}
		},
	)
	if err != nil {
		return nil, wrapStoreErr(err, "referral")
	}

	if changed {
		s.emitAudit(ctx, audit.Event{
			Timestamp: now,
			CarerID:   ref.CarerID,
			Actor:     audit.ActorCarer,
			Action:    audit.ActionReferralNotified,
			Subject:   ref.ID.String(),
			FromState: string(models.ReferralPending),
			ToState:   string(models.ReferralNotified),
			RequestID: requestcontext.RequestID(ctx),
		})
	}
	return ref, nil
}

// ReviewReferral records the decision on a pending or notified referral and
// refreshes the carer's verdict; an approved second referral can complete
// the carer.
func (s *Service) ReviewReferral(ctx context.Context, referralID id.ReferralID, decision models.ReviewDecision) (*models.Referral, error) {
	now := requestcontext.Now(ctx)

	var fromState models.ReferralStatus
	ref, err := s.referrals.Execute(ctx, referralID,
		func(r *models.Referral) error {
			fromState = r.Status
			return r.CanDecide()
		},
		func(r *models.Referral) {
			r.ApplyDecision(decision, now)
		},
	)
	if err != nil {
		return nil, wrapStoreErr(err, "referral")
	}
	if s.metrics != nil {
		s.metrics.ReviewsTotal.WithLabelValues("referral", string(decision)).Inc()
	}

	if err := s.reevaluateCarer(ctx, ref.CarerID); err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		CarerID:   ref.CarerID,
		Actor:     requestcontext.ReviewerID(ctx).String(),
		Action:    audit.ActionReferralReviewed,
		Subject:   ref.ID.String(),
		FromState: string(fromState),
		ToState:   string(ref.Status),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		RequestID: requestcontext.RequestID(ctx),
	})
	refID := ref.ID
	s.emitNotification(ctx, notify.Event{
		Kind:       notify.KindReviewDecided,
		CarerID:    ref.CarerID,
		ReferralID: &refID,
		NewState:   string(ref.Status),
		At:         now,
	})

	s.logger.InfoContext(ctx, "referral reviewed",
		"carer_id", ref.CarerID,
		"referral_id", ref.ID,
		"decision", decision,
	)
	return ref, nil
}

// reevaluateCarer recomputes and persists the cached verdict after a
// referral-side mutation.
func (s *Service) reevaluateCarer(ctx context.Context, carerID id.CarerID) error {
	now := requestcontext.Now(ctx)
	referrals, err := s.referrals.ListByCarer(ctx, carerID)
	if err != nil {
		return wrapStoreErr(err, "referrals")
	}
	rec, err := s.credentials.Execute(ctx, carerID, nil,
		func(r *models.CredentialRecord) {
			r.SetOverall(evaluator.Evaluate(r, referrals, now), now)
		},
	)
	if err != nil {
		return wrapStoreErr(err, "credential record")
	}
	s.observeEvaluation(rec.OverallStatus)
	return nil
}
