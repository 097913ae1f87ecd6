package testutil

import (
	"net/http"
	"time"

	id "vetgate/pkg/domain"
	"vetgate/pkg/requestcontext"
)

// WithReviewerID adds a reviewer identity to the request context, simulating
// what the reviewer auth middleware does for authenticated requests.
// Invalid IDs are silently ignored.
func WithReviewerID(req *http.Request, reviewerID string) *http.Request {
	parsed, err := id.ParseReviewerID(reviewerID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithReviewerID(req.Context(), parsed))
}

// WithRequestTime pins the request-scoped clock, simulating the request time
// middleware. Expiry and evaluation tests rely on this instead of sleeping.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithClientMetadata adds client IP and User-Agent to the request context.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent))
}
