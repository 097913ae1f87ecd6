// Package notify defines the abstract notification events the engine emits
// and the publishers that hand them to the delivery collaborator. The engine
// never sends email or SMS itself.
package notify

import (
	"time"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
)

// Kind enumerates the events the engine raises.
type Kind string

const (
	// KindCredentialExpiring warns that a verified document lapses soon.
	KindCredentialExpiring Kind = "credential_expiring"
	// KindCredentialExpired reports a document flipped to expired.
	KindCredentialExpired Kind = "credential_expired"
	// KindReviewDecided reports an administrator decision on a document or
	// referral.
	KindReviewDecided Kind = "review_decided"
)

// Event is the payload handed to the delivery collaborator.
type Event struct {
	Kind       Kind           `json:"kind"`
	CarerID    id.CarerID     `json:"carer_id"`
	DocType    models.DocType `json:"doc_type,omitempty"`
	ReferralID *id.ReferralID `json:"referral_id,omitempty"`
	NewState   string         `json:"new_state"`
	At         time.Time      `json:"at"`
}
