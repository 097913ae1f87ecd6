// Package evaluator computes the aggregate compliance verdict for a carer.
//
// Evaluate is the single source of truth: every mutation re-runs it before
// persisting, the reconciler re-runs it on a schedule, and the visibility
// gate re-runs it at query time. The stored verdict on the credential record
// is only a cache. Keeping the function pure - no I/O, no clocks, no shared
// state - means it can be called from any goroutine and never fails.
package evaluator

import (
	"time"

	"vetgate/internal/compliance/models"
)

// Evaluate returns the verdict for one credential record and its referrals
// at the given instant.
//
// Rule priority, fail-fast:
//  1. Expiry dominates: any lapsed or expired document makes the whole
//     record expired, regardless of everything else.
//  2. Completeness: any document short of verified, or fewer than two
//     verified referrals, keeps the record out of verified. The result is
//     pending_review when every outstanding item is waiting on an
//     administrator or referee, incomplete when at least one item still
//     needs carer action (never submitted, or rejected).
//  3. Otherwise the carer is verified.
func Evaluate(rec *models.CredentialRecord, referrals []*models.Referral, now time.Time) models.OverallStatus {
	if anyExpired(rec, now) {
		return models.OverallExpired
	}

	awaiting := false
	carerAction := false

	for _, t := range models.AllDocTypes() {
		switch doc := rec.Document(t); doc.Status {
		case models.DocStatusVerified:
			// counts toward completeness; lapse handled above
		case models.DocStatusPending:
			awaiting = true
		default: // not_submitted, rejected
			carerAction = true
		}
	}

	verifiedReferrals := 0
	occupied := make(map[models.ReferralSlot]bool, models.MaxReferralSlots)
	for _, ref := range referrals {
		switch ref.Status {
		case models.ReferralVerified:
			verifiedReferrals++
			occupied[ref.Slot] = true
		case models.ReferralPending, models.ReferralNotified:
			awaiting = true
			occupied[ref.Slot] = true
		}
		// rejected referrals free their slot and count for nothing
	}
	if len(occupied) < models.MaxReferralSlots {
		// at least one slot has never held a live submission
		carerAction = true
	}

	if carerAction {
		return models.OverallIncomplete
	}
	if awaiting {
		return models.OverallPendingReview
	}
	if verifiedReferrals < models.MaxReferralSlots {
		return models.OverallIncomplete
	}
	return models.OverallVerified
}

// LapsedDocs lists documents that are verified but past expiry at now.
// The reconciler flips exactly these to expired.
func LapsedDocs(rec *models.CredentialRecord, now time.Time) []models.DocType {
	var lapsed []models.DocType
	for _, t := range models.AllDocTypes() {
		if rec.Document(t).LapsedAt(now) {
			lapsed = append(lapsed, t)
		}
	}
	return lapsed
}

// ExpiringDocs lists verified documents whose expiry falls inside the warning
// window (now, now+window] and that have not been warned yet. A submission
// resets ExpiryWarnedAt along with the rest of the sub-record, and the expiry
// date is immutable per submission, so "not warned" means exactly once per
// expiry date.
func ExpiringDocs(rec *models.CredentialRecord, now time.Time, window time.Duration) []models.DocType {
	var expiring []models.DocType
	horizon := now.Add(window)
	for _, t := range models.AllDocTypes() {
		doc := rec.Document(t)
		if doc.Status != models.DocStatusVerified || doc.Expiry == nil || doc.ExpiryWarnedAt != nil {
			continue
		}
		if doc.Expiry.After(now) && !doc.Expiry.After(horizon) {
			expiring = append(expiring, t)
		}
	}
	return expiring
}

func anyExpired(rec *models.CredentialRecord, now time.Time) bool {
	for _, t := range models.AllDocTypes() {
		doc := rec.Document(t)
		if doc.Status == models.DocStatusExpired || doc.LapsedAt(now) {
			return true
		}
	}
	return false
}
