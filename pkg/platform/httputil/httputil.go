// Package httputil centralizes JSON encoding and domain error translation so
// every handler produces the same envelopes.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "vetgate/pkg/domain-errors"
)

// errorResponse is the wire envelope for failures.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures are ignored;
// by that point the status line is already written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded domain error into an HTTP response.
// Internal errors omit the description so infrastructure details never leak
// to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		resp.ErrorDescription = dErrors.MessageOf(err)
	}
	WriteJSON(w, ToHTTPStatus(code), resp)
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidInput, dErrors.CodeValidation, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeInvalidState, dErrors.CodeConflict, dErrors.CodeInvariantViolation:
		return http.StatusConflict
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Validatable is implemented by request types that validate and parse
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// DecodeAndPrepare decodes a JSON body into T and runs its Validate method,
// writing the error response and returning ok=false on failure so handlers
// stay flat.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "invalid request body",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		var zero T
		return zero, false
	}
	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "request validation failed",
					"request_id", requestID,
					"error", err.Error(),
				)
			}
			WriteError(w, err)
			var zero T
			return zero, false
		}
	}
	return req, true
}
