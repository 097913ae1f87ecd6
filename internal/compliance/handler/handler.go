package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vetgate/internal/audit"
	"vetgate/internal/compliance/models"
	"vetgate/internal/compliance/service"
	"vetgate/internal/platform/middleware"
	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
	"vetgate/pkg/requestcontext"
)

// Service defines the compliance operations the handler needs.
type Service interface {
	SubmitDocument(ctx context.Context, carerID id.CarerID, docType models.DocType, ref string, expiry *time.Time) (*models.CredentialRecord, error)
	ReviewDocument(ctx context.Context, carerID id.CarerID, docType models.DocType, decision models.ReviewDecision, reason string) (*models.CredentialRecord, error)
	SubmitReferral(ctx context.Context, carerID id.CarerID, slot models.ReferralSlot, info models.RefereeInfo) (*models.Referral, error)
	NotifyReferral(ctx context.Context, referralID id.ReferralID) (*models.Referral, error)
	GetReferral(ctx context.Context, referralID id.ReferralID) (*models.Referral, error)
	ReviewReferral(ctx context.Context, referralID id.ReferralID, decision models.ReviewDecision) (*models.Referral, error)
	GetComplianceSummary(ctx context.Context, carerID id.CarerID) (*service.ComplianceSummary, error)
	IsListable(ctx context.Context, carerID id.CarerID) (bool, error)
	GetAuditTrail(ctx context.Context, carerID id.CarerID) ([]audit.Event, error)
}

// Handler wires the compliance endpoints to the compliance service.
type Handler struct {
	service   Service
	logger    *slog.Logger
	validator middleware.ReviewerValidator
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger, validator middleware.ReviewerValidator) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		validator: validator,
	}
}

// Register mounts the carer-facing and admin endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/carers/{carerID}/credentials/{docType}", h.HandleSubmitDocument)
	r.Post("/carers/{carerID}/referrals", h.HandleSubmitReferral)
	r.Post("/referrals/{referralID}/notify", h.HandleNotifyReferral)
	r.Get("/referrals/{referralID}", h.HandleGetReferral)
	r.Get("/carers/{carerID}/compliance", h.HandleGetCompliance)
	r.Get("/carers/{carerID}/listable", h.HandleIsListable)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireReviewer(h.validator, h.logger))
		r.Post("/admin/carers/{carerID}/credentials/{docType}/review", h.HandleReviewDocument)
		r.Post("/admin/referrals/{referralID}/review", h.HandleReviewReferral)
		r.Get("/admin/carers/{carerID}/audit", h.HandleGetAuditTrail)
	})
}

// HandleSubmitDocument handles POST /carers/{carerID}/credentials/{docType}.
func (h *Handler) HandleSubmitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	carerID, err := id.ParseCarerID(chi.URLParam(r, "carerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	docType, err := models.ParseDocType(chi.URLParam(r, "docType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitDocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.SubmitDocument(ctx, carerID, docType, req.Ref, req.ParsedExpiry())
	if err != nil {
		h.writeServiceError(ctx, w, err, "document submission failed",
			"carer_id", carerID, "doc_type", docType)
		return
	}

	h.logger.InfoContext(ctx, "document submitted",
		"request_id", requestID,
		"carer_id", carerID,
		"doc_type", docType,
	)
	httputil.WriteJSON(w, http.StatusAccepted, FromCredentialRecord(rec, docType))
}

// HandleSubmitReferral handles POST /carers/{carerID}/referrals.
func (h *Handler) HandleSubmitReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	carerID, err := id.ParseCarerID(chi.URLParam(r, "carerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitReferralRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ref, err := h.service.SubmitReferral(ctx, carerID, req.ParsedSlot(), req.Referee)
	if err != nil {
		h.writeServiceError(ctx, w, err, "referral submission failed",
			"carer_id", carerID, "slot", req.Slot)
		return
	}

	h.logger.InfoContext(ctx, "referral submitted",
		"request_id", requestID,
		"carer_id", carerID,
		"referral_id", ref.ID,
		"slot", ref.Slot,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromReferral(ref))
}

// HandleNotifyReferral handles POST /referrals/{referralID}/notify, the
// referee-contact callback. Replays are accepted and return the current
// state.
func (h *Handler) HandleNotifyReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	referralID, err := id.ParseReferralID(chi.URLParam(r, "referralID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ref, err := h.service.NotifyReferral(ctx, referralID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "referral notify failed",
			"referral_id", referralID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReferral(ref))
}

// HandleGetReferral handles GET /referrals/{referralID}.
func (h *Handler) HandleGetReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	referralID, err := id.ParseReferralID(chi.URLParam(r, "referralID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ref, err := h.service.GetReferral(ctx, referralID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "referral fetch failed",
			"referral_id", referralID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReferral(ref))
}

// HandleGetCompliance handles GET /carers/{carerID}/compliance.
func (h *Handler) HandleGetCompliance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	carerID, err := id.ParseCarerID(chi.URLParam(r, "carerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.service.GetComplianceSummary(ctx, carerID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "compliance summary failed",
			"carer_id", carerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleIsListable handles GET /carers/{carerID}/listable, the search
// visibility gate.
func (h *Handler) HandleIsListable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	carerID, err := id.ParseCarerID(chi.URLParam(r, "carerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	listable, err := h.service.IsListable(ctx, carerID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "listable check failed",
			"carer_id", carerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListableResponse{
		CarerID:  carerID.String(),
		Listable: listable,
	})
}

// HandleReviewDocument handles POST /admin/carers/{carerID}/credentials/{docType}/review.
func (h *Handler) HandleReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	carerID, err := id.ParseCarerID(chi.URLParam(r, "carerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	docType, err := models.ParseDocType(chi.URLParam(r, "docType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ReviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.ReviewDocument(ctx, carerID, docType, req.ParsedDecision(), req.Reason)
	if err != nil {
		h.writeServiceError(ctx, w, err, "document review failed",
			"carer_id", carerID, "doc_type", docType)
		return
	}

	h.logger.InfoContext(ctx, "document reviewed",
		"request_id", requestID,
		"carer_id", carerID,
		"doc_type", docType,
		"decision", req.Decision,
		"reviewer_id", requestcontext.ReviewerID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, FromCredentialRecord(rec, docType))
}

// HandleReviewReferral handles POST /admin/referrals/{referralID}/review.
func (h *Handler) HandleReviewReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	referralID, err := id.ParseReferralID(chi.URLParam(r, "referralID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[ReviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ref, err := h.service.ReviewReferral(ctx, referralID, req.ParsedDecision())
	if err != nil {
		h.writeServiceError(ctx, w, err, "referral review failed",
			"referral_id", referralID)
		return
	}

	h.logger.InfoContext(ctx, "referral reviewed",
		"request_id", requestID,
		"referral_id", referralID,
		"decision", req.Decision,
		"reviewer_id", requestcontext.ReviewerID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReferral(ref))
}

// HandleGetAuditTrail handles GET /admin/carers/{carerID}/audit.
func (h *Handler) HandleGetAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	carerID, err := id.ParseCarerID(chi.URLParam(r, "carerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.service.GetAuditTrail(ctx, carerID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "audit trail fetch failed",
			"carer_id", carerID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAuditEvents(carerID, events))
}

// writeServiceError logs unexpected failures and writes the coded error.
// Expected domain outcomes (validation, state conflicts) are logged at warn.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string, args ...any) {
	args = append(args, "request_id", requestcontext.RequestID(ctx), "error", err.Error())
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}
