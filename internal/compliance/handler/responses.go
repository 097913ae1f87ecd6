package handler

import (
	"time"

	"vetgate/internal/audit"
	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
)

// DocumentResponse is the HTTP response for document submission and review.
type DocumentResponse struct {
	CarerID         string     `json:"carer_id"`
	DocType         string     `json:"doc_type"`
	Status          string     `json:"status"`
	Expiry          *time.Time `json:"expiry,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	OverallStatus   string     `json:"overall_status"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
}

// FromCredentialRecord projects one document slice of a credential record.
func FromCredentialRecord(rec *models.CredentialRecord, docType models.DocType) *DocumentResponse {
	doc := rec.Document(docType)
	return &DocumentResponse{
		CarerID:         rec.CarerID.String(),
		DocType:         string(docType),
		Status:          string(doc.Status),
		Expiry:          doc.Expiry,
		RejectionReason: doc.RejectionReason,
		OverallStatus:   string(rec.OverallStatus),
		SubmittedAt:     doc.SubmittedAt,
		ReviewedAt:      doc.ReviewedAt,
	}
}

// ReferralResponse is the HTTP response for referral operations.
type ReferralResponse struct {
	ID          string              `json:"id"`
	CarerID     string              `json:"carer_id"`
	Slot        models.ReferralSlot `json:"slot"`
	Status      string              `json:"status"`
	Referee     RefereeResponse     `json:"referee"`
	SubmittedAt time.Time           `json:"submitted_at"`
	DecidedAt   *time.Time          `json:"decided_at,omitempty"`
}

// RefereeResponse echoes the referee contact details.
type RefereeResponse struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship"`
}

// FromReferral converts a domain referral to an HTTP response.
func FromReferral(ref *models.Referral) *ReferralResponse {
	return &ReferralResponse{
		ID:      ref.ID.String(),
		CarerID: ref.CarerID.String(),
		Slot:    ref.Slot,
		Status:  string(ref.Status),
		Referee: RefereeResponse{
			Name:         ref.Referee.Name,
			Email:        ref.Referee.Email,
			Phone:        ref.Referee.Phone,
			Relationship: ref.Referee.Relationship,
		},
		SubmittedAt: ref.SubmittedAt,
		DecidedAt:   ref.DecidedAt,
	}
}

// ListableResponse is the HTTP response for the visibility gate.
type ListableResponse struct {
	CarerID  string `json:"carer_id"`
	Listable bool   `json:"listable"`
}

// AuditEventResponse is one entry in the audit trail response.
type AuditEventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	FromState string    `json:"from_state,omitempty"`
	ToState   string    `json:"to_state,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// AuditTrailResponse is the HTTP response for GET /admin/carers/{carerID}/audit.
type AuditTrailResponse struct {
	CarerID string               `json:"carer_id"`
	Events  []AuditEventResponse `json:"events"`
}

// FromAuditEvents converts audit events to an HTTP response.
func FromAuditEvents(carerID id.CarerID, events []audit.Event) *AuditTrailResponse {
	resp := &AuditTrailResponse{
		CarerID: carerID.String(),
		Events:  make([]AuditEventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, AuditEventResponse{
			Timestamp: e.Timestamp,
			Actor:     e.Actor,
			Action:    string(e.Action),
			Subject:   e.Subject,
			FromState: e.FromState,
			ToState:   e.ToState,
			Reason:    e.Reason,
			ClientIP:  e.ClientIP,
			UserAgent: e.UserAgent,
			RequestID: e.RequestID,
		})
	}
	return resp
}
