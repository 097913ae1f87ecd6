package handler

import (
	"strings"
	"time"

	"vetgate/internal/compliance/models"
	dErrors "vetgate/pkg/domain-errors"
)

// SubmitDocumentRequest is the HTTP request body for
// POST /carers/{carerID}/credentials/{docType}.
type SubmitDocumentRequest struct {
	Ref    string `json:"ref"`
	Expiry string `json:"expiry,omitempty"`

	parsedExpiry *time.Time
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SubmitDocumentRequest) Validate() error {
	r.Ref = strings.TrimSpace(r.Ref)
	if r.Ref == "" {
		return dErrors.New(dErrors.CodeValidation, "ref is required")
	}
	if len(r.Ref) > 256 {
		return dErrors.New(dErrors.CodeValidation, "ref must be at most 256 characters")
	}

	r.Expiry = strings.TrimSpace(r.Expiry)
	if r.Expiry != "" {
		expiry, err := parseExpiry(r.Expiry)
		if err != nil {
			return err
		}
		r.parsedExpiry = &expiry
	}
	return nil
}

// ParsedExpiry returns the validated expiry, nil when absent.
func (r *SubmitDocumentRequest) ParsedExpiry() *time.Time {
	return r.parsedExpiry
}

// parseExpiry accepts RFC 3339 timestamps and bare dates; a bare date means
// end of that day UTC.
func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.Add(24*time.Hour - time.Nanosecond), nil
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "expiry must be an RFC 3339 timestamp or YYYY-MM-DD date")
}

// SubmitReferralRequest is the HTTP request body for
// POST /carers/{carerID}/referrals.
type SubmitReferralRequest struct {
	Slot    int                `json:"slot"`
	Referee models.RefereeInfo `json:"referee"`

	parsedSlot models.ReferralSlot
}

// Validate validates and parses the request.
func (r *SubmitReferralRequest) Validate() error {
	slot, err := models.ParseReferralSlot(r.Slot)
	if err != nil {
		return err
	}
	r.parsedSlot = slot
	return r.Referee.Validate()
}

// ParsedSlot returns the validated slot number.
func (r *SubmitReferralRequest) ParsedSlot() models.ReferralSlot {
	return r.parsedSlot
}

// ReviewRequest is the HTTP request body for the admin review endpoints.
type ReviewRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`

	parsedDecision models.ReviewDecision
}

// Validate validates and parses the request. Reason requirements for
// rejections are enforced by the domain model, which knows which subjects
// need one.
func (r *ReviewRequest) Validate() error {
	decision, err := models.ParseReviewDecision(strings.TrimSpace(r.Decision))
	if err != nil {
		return err
	}
	r.parsedDecision = decision
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}

// ParsedDecision returns the validated decision.
func (r *ReviewRequest) ParsedDecision() models.ReviewDecision {
	return r.parsedDecision
}
