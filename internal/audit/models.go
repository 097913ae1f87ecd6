package audit

import (
	"time"

	id "vetgate/pkg/domain"
)

// Action names the transition being recorded.
type Action string

const (
	ActionDocumentSubmitted Action = "document_submitted"
	ActionDocumentReviewed  Action = "document_reviewed"
	ActionDocumentExpired   Action = "document_expired"
	ActionReferralSubmitted Action = "referral_submitted"
	ActionReferralNotified  Action = "referral_notified"
	ActionReferralReviewed  Action = "referral_reviewed"
)

// Event is one line of the compliance audit trail. Events are append-only
// and retained even after a carer is deactivated.
//
// Actor is the reviewer ID for administrator actions, "carer" for carer
// submissions, and "reconciler" for time-driven expiry.
type Event struct {
	Timestamp time.Time  `json:"timestamp"`
	CarerID   id.CarerID `json:"carer_id"`
	Actor     string     `json:"actor"`
	Action    Action     `json:"action"`
	Subject   string     `json:"subject"` // doc type or referral ID
	FromState string     `json:"from_state,omitempty"`
	ToState   string     `json:"to_state"`
	Reason    string     `json:"reason,omitempty"`
	ClientIP  string     `json:"client_ip,omitempty"`
	UserAgent string     `json:"user_agent,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// ActorCarer and ActorReconciler mark non-administrator actors.
const (
	ActorCarer      = "carer"
	ActorReconciler = "reconciler"
)
