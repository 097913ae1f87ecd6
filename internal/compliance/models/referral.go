package models

import (
	"net/mail"
	"strings"
	"time"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
)

// ReferralStatus is the lifecycle state of one referral submission.
type ReferralStatus string

const (
	ReferralPending  ReferralStatus = "pending"
	ReferralNotified ReferralStatus = "notified"
	ReferralVerified ReferralStatus = "verified"
	ReferralRejected ReferralStatus = "rejected"
)

// MaxReferralSlots is the number of professional referrals a carer provides.
const MaxReferralSlots = 2

// ReferralSlot numbers a referral 1 or 2.
type ReferralSlot int

// ParseReferralSlot validates a slot number at a trust boundary.
func ParseReferralSlot(n int) (ReferralSlot, error) {
	if n < 1 || n > MaxReferralSlots {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "referral slot must be 1 or %d", MaxReferralSlots)
	}
	return ReferralSlot(n), nil
}

// RefereeInfo is the contact detail for the professional referee.
type RefereeInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship"`
}

// Validate enforces the referee data rules: name, parseable email, and
// relationship are required; phone is optional.
func (info RefereeInfo) Validate() error {
	if strings.TrimSpace(info.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "referee name is required")
	}
	if strings.TrimSpace(info.Email) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "referee email is required")
	}
	if _, err := mail.ParseAddress(info.Email); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "referee email is not a valid address")
	}
	if strings.TrimSpace(info.Relationship) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "referee relationship is required")
	}
	return nil
}

// Referral is one referee submission occupying a slot on a carer's record.
//
// Invariants:
//   - at most two referrals are live per carer (one per slot)
//   - a slot is resubmittable only once its current record is rejected
//   - records are never silently overwritten; a resubmission is a new record
type Referral struct {
	ID          id.ReferralID
	CarerID     id.CarerID
	Slot        ReferralSlot
	Referee     RefereeInfo
	Status      ReferralStatus
	SubmittedAt time.Time
	DecidedAt   *time.Time
	Version     int64
}

// NewReferral constructs a pending referral after validating the referee data.
func NewReferral(referralID id.ReferralID, carerID id.CarerID, slot ReferralSlot, info RefereeInfo, now time.Time) (*Referral, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &Referral{
		ID:          referralID,
		CarerID:     carerID,
		Slot:        slot,
		Referee:     info,
		Status:      ReferralPending,
		SubmittedAt: now,
	}, nil
}

// OccupiesSlot reports whether this record blocks a new submission into its
// slot. Only rejected referrals free their slot.
func (r *Referral) OccupiesSlot() bool {
	return r.Status != ReferralRejected
}

// CanNotify reports whether the notify callback would change state. An
// already notified record is a valid no-op; the referee-contact process
// retries delivery and must be able to replay the callback safely.
func (r *Referral) CanNotify() (changed bool, err error) {
	switch r.Status {
	case ReferralPending:
		return true, nil
	case ReferralNotified:
		return false, nil
	}
	return false, dErrors.Newf(dErrors.CodeInvalidState, "cannot notify a %s referral", r.Status)
}

// ApplyNotified transitions pending → notified. Call CanNotify first.
func (r *Referral) ApplyNotified() {
	r.Status = ReferralNotified
}

// CanDecide checks the referral is awaiting a decision.
func (r *Referral) CanDecide() error {
	if r.Status != ReferralPending && r.Status != ReferralNotified {
		return dErrors.Newf(dErrors.CodeInvalidState, "cannot review a %s referral", r.Status)
	}
	return nil
}

// ApplyDecision records the administrator (or referee-response) verdict.
// Call CanDecide first.
func (r *Referral) ApplyDecision(decision ReviewDecision, now time.Time) {
	decided := now
	r.DecidedAt = &decided
	switch decision {
	case DecisionApprove:
		r.Status = ReferralVerified
	case DecisionReject:
		r.Status = ReferralRejected
	}
}

// Clone returns a copy so in-memory stores never hand out shared pointers.
func (r *Referral) Clone() *Referral {
	cp := *r
	return &cp
}
