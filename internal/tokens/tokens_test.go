package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
)

func newReviewerID(t *testing.T) id.ReviewerID {
	t.Helper()
	reviewerID, err := id.ParseReviewerID(uuid.NewString())
	require.NoError(t, err)
	return reviewerID
}

func TestTokenRoundtrip(t *testing.T) {
	svc := NewService("test-signing-key", "vetgate-test", time.Hour)
	reviewerID := newReviewerID(t)

	token, err := svc.GenerateReviewerToken(reviewerID)
	require.NoError(t, err)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, reviewerID, got)
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewService("test-signing-key", "vetgate-test", time.Hour)
	reviewerID := newReviewerID(t)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewService("a-different-key", "vetgate-test", time.Hour)
		token, err := other.GenerateReviewerToken(reviewerID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewService("test-signing-key", "someone-else", time.Hour)
		token, err := other.GenerateReviewerToken(reviewerID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("expired", func(t *testing.T) {
		short := NewService("test-signing-key", "vetgate-test", -time.Minute)
		token, err := short.GenerateReviewerToken(reviewerID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
