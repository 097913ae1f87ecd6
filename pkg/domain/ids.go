// Package domain holds shared domain primitives: typed identifiers used
// across services and stores. Typed IDs make cross-entity assignment a
// compile error instead of a data bug.
package domain

import (
	"github.com/google/uuid"

	dErrors "vetgate/pkg/domain-errors"
)

// CarerID identifies a caregiver account.
type CarerID uuid.UUID

// ReferralID identifies a single referral submission.
type ReferralID uuid.UUID

// ReviewerID identifies the compliance staff member acting on a record.
type ReviewerID uuid.UUID

func (id CarerID) String() string    { return uuid.UUID(id).String() }
func (id ReferralID) String() string { return uuid.UUID(id).String() }
func (id ReviewerID) String() string { return uuid.UUID(id).String() }

func (id CarerID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ReferralID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReviewerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// IDs serialize as canonical UUID strings. Defined types do not inherit
// uuid.UUID's text marshaling, so without these json renders the raw
// 16-byte array.

func (id CarerID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id ReferralID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ReviewerID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *CarerID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ReferralID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ReviewerID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// NewCarerID generates a fresh carer identifier.
func NewCarerID() CarerID { return CarerID(uuid.New()) }

// NewReferralID generates a fresh referral identifier.
func NewReferralID() ReferralID { return ReferralID(uuid.New()) }

// ParseCarerID validates and parses a carer ID at a trust boundary.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParseCarerID(s string) (CarerID, error) {
	u, err := parseUUID(s, "carer id")
	if err != nil {
		return CarerID{}, err
	}
	return CarerID(u), nil
}

// ParseReferralID validates and parses a referral ID at a trust boundary.
func ParseReferralID(s string) (ReferralID, error) {
	u, err := parseUUID(s, "referral id")
	if err != nil {
		return ReferralID{}, err
	}
	return ReferralID(u), nil
}

// ParseReviewerID validates and parses a reviewer ID at a trust boundary.
func ParseReviewerID(s string) (ReviewerID, error) {
	u, err := parseUUID(s, "reviewer id")
	if err != nil {
		return ReviewerID{}, err
	}
	return ReviewerID(u), nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", what)
	}
	return u, nil
}
