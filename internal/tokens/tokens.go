// Package tokens mints and validates the HS256 reviewer tokens that gate
// the admin review endpoints.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
)

// ReviewerClaims are the claims carried by a reviewer access token.
type ReviewerClaims struct {
	ReviewerID string `json:"reviewer_id"`
	jwt.RegisteredClaims
}

// Service signs and validates reviewer tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewService(signingKey, issuer string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// GenerateReviewerToken mints a token for an authenticated reviewer.
func (s *Service) GenerateReviewerToken(reviewerID id.ReviewerID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ReviewerClaims{
		ReviewerID: reviewerID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a reviewer token, returning the reviewer
// identity.
func (s *Service) ValidateToken(tokenString string) (id.ReviewerID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ReviewerClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return id.ReviewerID{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid reviewer token")
	}
	claims, ok := token.Claims.(*ReviewerClaims)
	if !ok || !token.Valid {
		return id.ReviewerID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid reviewer token")
	}
	reviewerID, err := id.ParseReviewerID(claims.ReviewerID)
	if err != nil {
		return id.ReviewerID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid reviewer identity in token")
	}
	return reviewerID, nil
}
