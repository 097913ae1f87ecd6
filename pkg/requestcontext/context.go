// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services and stores read them without
// importing net/http. Tests inject values directly, most importantly a fixed
// time via WithTime so evaluator and expiry behavior can be exercised
// without sleeping.
package requestcontext

import (
	"context"
	"time"

	id "vetgate/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	reviewerIDKey  struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// ReviewerID retrieves the authenticated reviewer ID from the context.
// Returns the zero value (nil UUID) if not set.
func ReviewerID(ctx context.Context) id.ReviewerID {
	if rid, ok := ctx.Value(reviewerIDKey{}).(id.ReviewerID); ok {
		return rid
	}
	return id.ReviewerID{}
}

// WithReviewerID injects a reviewer ID into the context.
func WithReviewerID(ctx context.Context, rid id.ReviewerID) context.Context {
	return context.WithValue(ctx, reviewerIDKey{}, rid)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	ctx = context.WithValue(ctx, userAgentKey{}, userAgent)
	return ctx
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers,
// CLI, tests). The compliance evaluator takes its "now" from here so a whole
// request observes one consistent instant.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for:
//   - Service unit tests that don't run the full HTTP middleware chain
//   - The reconciler, which needs one consistent sweep time per batch
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
