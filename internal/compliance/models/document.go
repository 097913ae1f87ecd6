// Package models holds the compliance domain entities: the per-carer
// credential record, referral submissions, and their state machines.
// Transition guards live here so illegal states are caught at the model
// boundary, not scattered across services.
package models

import (
	"time"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
)

// DocType enumerates the four mandatory document types.
type DocType string

const (
	DocBackgroundCheck DocType = "background_check"
	DocIdentity        DocType = "identity"
	DocRightToWork     DocType = "right_to_work"
	DocInsurance       DocType = "insurance"
)

// AllDocTypes returns the document types in display order. Every credential
// record tracks exactly these four.
func AllDocTypes() []DocType {
	return []DocType{DocBackgroundCheck, DocIdentity, DocRightToWork, DocInsurance}
}

// ParseDocType validates a document type at a trust boundary.
func ParseDocType(s string) (DocType, error) {
	switch DocType(s) {
	case DocBackgroundCheck, DocIdentity, DocRightToWork, DocInsurance:
		return DocType(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown document type %q", s)
}

// RequiresExpiry reports whether submissions of this type must carry an
// expiry date. Identity documents are the only type without one.
func (t DocType) RequiresExpiry() bool {
	return t != DocIdentity
}

// DocStatus is the per-document sub-state.
type DocStatus string

const (
	DocStatusNotSubmitted DocStatus = "not_submitted"
	DocStatusPending      DocStatus = "pending"
	DocStatusVerified     DocStatus = "verified"
	DocStatusRejected     DocStatus = "rejected"
	DocStatusExpired      DocStatus = "expired"
)

// CanTransitionTo encodes the per-document state machine:
//
//	not_submitted → pending → {verified, rejected}
//	verified → expired (time-driven only)
//	{rejected, expired} → pending (re-submission)
func (s DocStatus) CanTransitionTo(next DocStatus) bool {
	switch s {
	case DocStatusNotSubmitted:
		return next == DocStatusPending
	case DocStatusPending:
		return next == DocStatusVerified || next == DocStatusRejected
	case DocStatusVerified:
		return next == DocStatusExpired
	case DocStatusRejected, DocStatusExpired:
		return next == DocStatusPending
	}
	return false
}

// ReviewDecision is an administrator's verdict on a pending item.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// ParseReviewDecision validates a decision at a trust boundary.
func ParseReviewDecision(s string) (ReviewDecision, error) {
	switch ReviewDecision(s) {
	case DecisionApprove, DecisionReject:
		return ReviewDecision(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown review decision %q", s)
}

// Document is one of the four credential sub-records.
//
// Invariants:
//   - Ref is present iff Status != not_submitted
//   - Ref is immutable per submission; a re-submission stores a new Ref
//   - RejectionReason is present iff Status == rejected
//   - Expiry is present for types where RequiresExpiry() holds and the
//     document has been submitted
type Document struct {
	Status          DocStatus  `json:"status"`
	Ref             string     `json:"ref,omitempty"`
	Expiry          *time.Time `json:"expiry,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	// ExpiryWarnedAt records the last expiring-soon warning emitted for the
	// current Expiry, so the reconciler warns once per expiry date.
	ExpiryWarnedAt *time.Time `json:"expiry_warned_at,omitempty"`
}

// LapsedAt reports whether a verified document's expiry has passed at the
// given instant. Documents without an expiry never lapse.
func (d Document) LapsedAt(now time.Time) bool {
	return d.Status == DocStatusVerified && d.Expiry != nil && !d.Expiry.After(now)
}

// CredentialRecord is the aggregate of all four document sub-states for one
// carer, plus the cached compliance verdict.
//
// The stored OverallStatus is a cache for fast reads and audit history. The
// visibility gate and the compliance summary always recompute it through the
// evaluator; only mutations and the reconciler persist it.
//
// Records are created on first contact with the verification area and are
// never deleted, so the audit trail survives carer deactivation.
type CredentialRecord struct {
	CarerID        id.CarerID
	Documents      map[DocType]Document
	OverallStatus  OverallStatus
	LastVerifiedAt *time.Time
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCredentialRecord constructs an empty record with all four documents in
// not_submitted.
func NewCredentialRecord(carerID id.CarerID, now time.Time) *CredentialRecord {
	docs := make(map[DocType]Document, 4)
	for _, t := range AllDocTypes() {
		docs[t] = Document{Status: DocStatusNotSubmitted}
	}
	return &CredentialRecord{
		CarerID:       carerID,
		Documents:     docs,
		OverallStatus: OverallIncomplete,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Document returns the sub-record for t. Unknown types yield a zero Document;
// callers are expected to have parsed t via ParseDocType.
func (r *CredentialRecord) Document(t DocType) Document {
	return r.Documents[t]
}

// CanSubmit checks whether a new submission for t is accepted: the document
// must not already be pending or verified, and the expiry requirement for the
// type must be satisfied.
func (r *CredentialRecord) CanSubmit(t DocType, ref string, expiry *time.Time) error {
	if ref == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "document reference is required")
	}
	if t.RequiresExpiry() && expiry == nil {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s submissions require an expiry date", t)
	}
	if !t.RequiresExpiry() && expiry != nil {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s submissions must not carry an expiry date", t)
	}
	doc := r.Documents[t]
	if !doc.Status.CanTransitionTo(DocStatusPending) {
		return dErrors.Newf(dErrors.CodeInvalidState, "cannot submit %s while %s", t, doc.Status)
	}
	return nil
}

// ApplySubmission stores a new reference and resets the sub-state to pending,
// discarding any prior rejection reason. Call CanSubmit first.
func (r *CredentialRecord) ApplySubmission(t DocType, ref string, expiry *time.Time, now time.Time) {
	submitted := now
	r.Documents[t] = Document{
		Status:      DocStatusPending,
		Ref:         ref,
		Expiry:      expiry,
		SubmittedAt: &submitted,
	}
	r.UpdatedAt = now
}

// CanReview checks that t is awaiting review and, for rejections, that a
// reason was given.
func (r *CredentialRecord) CanReview(t DocType, decision ReviewDecision, reason string) error {
	if decision == DecisionReject && reason == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "a rejection reason is required")
	}
	doc := r.Documents[t]
	if doc.Status != DocStatusPending {
		return dErrors.Newf(dErrors.CodeInvalidState, "cannot review %s while %s", t, doc.Status)
	}
	return nil
}

// ApplyReview records the administrator decision. Call CanReview first.
func (r *CredentialRecord) ApplyReview(t DocType, decision ReviewDecision, reason string, now time.Time) {
	doc := r.Documents[t]
	reviewed := now
	doc.ReviewedAt = &reviewed
	switch decision {
	case DecisionApprove:
		doc.Status = DocStatusVerified
		doc.RejectionReason = ""
	case DecisionReject:
		doc.Status = DocStatusRejected
		doc.RejectionReason = reason
	}
	r.Documents[t] = doc
	r.UpdatedAt = now
}

// ApplyLapse flips a verified document whose expiry has passed to expired.
// No-op if the document has not lapsed; the reconciler relies on that for
// idempotence.
func (r *CredentialRecord) ApplyLapse(t DocType, now time.Time) bool {
	doc := r.Documents[t]
	if !doc.LapsedAt(now) {
		return false
	}
	doc.Status = DocStatusExpired
	r.Documents[t] = doc
	r.UpdatedAt = now
	return true
}

// MarkExpiryWarned records that an expiring-soon warning went out for the
// document's current expiry date.
func (r *CredentialRecord) MarkExpiryWarned(t DocType, now time.Time) {
	doc := r.Documents[t]
	warned := now
	doc.ExpiryWarnedAt = &warned
	r.Documents[t] = doc
	r.UpdatedAt = now
}

// SetOverall persists a freshly evaluated verdict into the cache fields,
// stamping LastVerifiedAt on the transition into verified.
func (r *CredentialRecord) SetOverall(status OverallStatus, now time.Time) {
	if status == OverallVerified && r.OverallStatus != OverallVerified {
		verified := now
		r.LastVerifiedAt = &verified
	}
	r.OverallStatus = status
	r.UpdatedAt = now
}

// Clone returns a deep copy so in-memory stores never hand out aliased maps.
func (r *CredentialRecord) Clone() *CredentialRecord {
	cp := *r
	cp.Documents = make(map[DocType]Document, len(r.Documents))
	for t, d := range r.Documents {
		cp.Documents[t] = d
	}
	return &cp
}
