package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "vetgate/pkg/domain"
	"vetgate/pkg/requestcontext"
)

// ReviewerValidator validates reviewer bearer tokens.
type ReviewerValidator interface {
	ValidateToken(tokenString string) (id.ReviewerID, error)
}

// RequireReviewer guards the admin review surface. A valid bearer token puts
// the reviewer identity into the context; anything else is a 401.
func RequireReviewer(validator ReviewerValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			reviewerID, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithReviewerID(ctx, reviewerID)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + desc + `"}`))
}
