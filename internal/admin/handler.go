// Package admin exposes the reviewer login endpoint. Reviewers exchange the
// shared operations secret for a short-lived bearer token accepted by the
// review endpoints.
package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/httputil"
	"vetgate/pkg/requestcontext"
	"vetgate/pkg/secrets"
)

// TokenMinter mints reviewer bearer tokens.
type TokenMinter interface {
	GenerateReviewerToken(reviewerID id.ReviewerID) (string, error)
}

// Handler handles reviewer authentication.
type Handler struct {
	minter     TokenMinter
	secretHash string
	logger     *slog.Logger
}

// New constructs the admin handler. secretHash is the bcrypt hash of the
// shared reviewer secret.
func New(minter TokenMinter, secretHash string, logger *slog.Logger) *Handler {
	return &Handler{
		minter:     minter,
		secretHash: secretHash,
		logger:     logger,
	}
}

// Register mounts the login endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/login", h.HandleLogin)
}

// LoginRequest is the HTTP request body for POST /admin/login.
type LoginRequest struct {
	ReviewerID string `json:"reviewer_id"`
	Secret     string `json:"secret"`

	parsedReviewerID id.ReviewerID
}

// Validate validates and parses the request.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Secret) == "" {
		return dErrors.New(dErrors.CodeValidation, "secret is required")
	}
	reviewerID, err := id.ParseReviewerID(strings.TrimSpace(r.ReviewerID))
	if err != nil {
		return err
	}
	r.parsedReviewerID = reviewerID
	return nil
}

// LoginResponse carries the minted token.
type LoginResponse struct {
	Token string `json:"token"`
}

// HandleLogin verifies the shared secret and mints a reviewer token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if h.secretHash == "" {
		h.logger.ErrorContext(ctx, "reviewer login unavailable: no admin secret configured",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "reviewer login unavailable"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := secrets.Verify(req.Secret, h.secretHash); err != nil {
		h.logger.WarnContext(ctx, "reviewer login rejected",
			"request_id", requestID,
			"reviewer_id", req.parsedReviewerID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))
		return
	}

	token, err := h.minter.GenerateReviewerToken(req.parsedReviewerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "reviewer token minting failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "token minting failed"))
		return
	}

	h.logger.InfoContext(ctx, "reviewer logged in",
		"request_id", requestID,
		"reviewer_id", req.parsedReviewerID,
	)
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Token: token})
}
