package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func futureExpiry() *time.Time {
	expiry := now.Add(365 * 24 * time.Hour)
	return &expiry
}

func TestParseDocType(t *testing.T) {
	for _, docType := range AllDocTypes() {
		parsed, err := ParseDocType(string(docType))
		require.NoError(t, err)
		assert.Equal(t, docType, parsed)
	}

	_, err := ParseDocType("passport")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestDocStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to DocStatus
		allowed  bool
	}{
		{DocStatusNotSubmitted, DocStatusPending, true},
		{DocStatusNotSubmitted, DocStatusVerified, false},
		{DocStatusPending, DocStatusVerified, true},
		{DocStatusPending, DocStatusRejected, true},
		{DocStatusPending, DocStatusExpired, false},
		{DocStatusVerified, DocStatusExpired, true},
		{DocStatusVerified, DocStatusPending, false},
		{DocStatusRejected, DocStatusPending, true},
		{DocStatusRejected, DocStatusVerified, false},
		{DocStatusExpired, DocStatusPending, true},
		{DocStatusExpired, DocStatusVerified, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCanSubmit(t *testing.T) {
	rec := NewCredentialRecord(id.NewCarerID(), now)

	t.Run("requires a reference", func(t *testing.T) {
		err := rec.CanSubmit(DocInsurance, "", futureExpiry())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("insurance requires an expiry", func(t *testing.T) {
		err := rec.CanSubmit(DocInsurance, "doc-ref", nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("identity must not carry an expiry", func(t *testing.T) {
		err := rec.CanSubmit(DocIdentity, "doc-ref", futureExpiry())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("fresh submission is accepted", func(t *testing.T) {
		require.NoError(t, rec.CanSubmit(DocInsurance, "doc-ref", futureExpiry()))
		require.NoError(t, rec.CanSubmit(DocIdentity, "doc-ref", nil))
	})

	t.Run("pending and verified documents reject resubmission", func(t *testing.T) {
		rec := NewCredentialRecord(id.NewCarerID(), now)
		rec.ApplySubmission(DocInsurance, "doc-ref", futureExpiry(), now)

		err := rec.CanSubmit(DocInsurance, "doc-ref-2", futureExpiry())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

		rec.ApplyReview(DocInsurance, DecisionApprove, "", now)
		err = rec.CanSubmit(DocInsurance, "doc-ref-2", futureExpiry())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("rejected and expired documents accept resubmission", func(t *testing.T) {
		rec := NewCredentialRecord(id.NewCarerID(), now)
		rec.ApplySubmission(DocInsurance, "doc-ref", futureExpiry(), now)
		rec.ApplyReview(DocInsurance, DecisionReject, "illegible", now)
		require.NoError(t, rec.CanSubmit(DocInsurance, "doc-ref-2", futureExpiry()))
	})
}

func TestApplySubmissionResetsSubRecord(t *testing.T) {
	rec := NewCredentialRecord(id.NewCarerID(), now)
	rec.ApplySubmission(DocInsurance, "doc-ref", futureExpiry(), now)
	rec.ApplyReview(DocInsurance, DecisionReject, "illegible", now)
	rec.MarkExpiryWarned(DocInsurance, now)

	later := now.Add(time.Hour)
	rec.ApplySubmission(DocInsurance, "doc-ref-2", futureExpiry(), later)

	doc := rec.Document(DocInsurance)
	assert.Equal(t, DocStatusPending, doc.Status)
	assert.Equal(t, "doc-ref-2", doc.Ref)
	assert.Empty(t, doc.RejectionReason, "rejection reason must reset on resubmission")
	assert.Nil(t, doc.ExpiryWarnedAt, "warning stamp must reset on resubmission")
	assert.Nil(t, doc.ReviewedAt)
	require.NotNil(t, doc.SubmittedAt)
	assert.Equal(t, later, *doc.SubmittedAt)
}

func TestCanReview(t *testing.T) {
	rec := NewCredentialRecord(id.NewCarerID(), now)

	t.Run("cannot review an unsubmitted document", func(t *testing.T) {
		err := rec.CanReview(DocIdentity, DecisionApprove, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		err := rec.CanReview(DocIdentity, DecisionReject, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("cannot review a verified document", func(t *testing.T) {
		rec := NewCredentialRecord(id.NewCarerID(), now)
		rec.ApplySubmission(DocIdentity, "doc-ref", nil, now)
		rec.ApplyReview(DocIdentity, DecisionApprove, "", now)

		err := rec.CanReview(DocIdentity, DecisionApprove, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func TestApplyLapse(t *testing.T) {
	rec := NewCredentialRecord(id.NewCarerID(), now)
	expiry := now.Add(time.Hour)
	rec.ApplySubmission(DocInsurance, "doc-ref", &expiry, now)
	rec.ApplyReview(DocInsurance, DecisionApprove, "", now)

	t.Run("no-op before expiry", func(t *testing.T) {
		assert.False(t, rec.ApplyLapse(DocInsurance, now))
		assert.Equal(t, DocStatusVerified, rec.Document(DocInsurance).Status)
	})

	t.Run("flips after expiry, idempotently", func(t *testing.T) {
		later := now.Add(2 * time.Hour)
		assert.True(t, rec.ApplyLapse(DocInsurance, later))
		assert.Equal(t, DocStatusExpired, rec.Document(DocInsurance).Status)

		assert.False(t, rec.ApplyLapse(DocInsurance, later))
		assert.Equal(t, DocStatusExpired, rec.Document(DocInsurance).Status)
	})
}

func TestSetOverallStampsLastVerified(t *testing.T) {
	rec := NewCredentialRecord(id.NewCarerID(), now)

	rec.SetOverall(OverallPendingReview, now)
	assert.Nil(t, rec.LastVerifiedAt)

	verifiedAt := now.Add(time.Hour)
	rec.SetOverall(OverallVerified, verifiedAt)
	require.NotNil(t, rec.LastVerifiedAt)
	assert.Equal(t, verifiedAt, *rec.LastVerifiedAt)

	// Staying verified keeps the original stamp.
	rec.SetOverall(OverallVerified, now.Add(2*time.Hour))
	assert.Equal(t, verifiedAt, *rec.LastVerifiedAt)

	// Dropping out and returning re-stamps.
	rec.SetOverall(OverallExpired, now.Add(3*time.Hour))
	reverifiedAt := now.Add(4 * time.Hour)
	rec.SetOverall(OverallVerified, reverifiedAt)
	assert.Equal(t, reverifiedAt, *rec.LastVerifiedAt)
}

func TestCloneIsDeep(t *testing.T) {
	rec := NewCredentialRecord(id.NewCarerID(), now)
	cp := rec.Clone()

	cp.ApplySubmission(DocIdentity, "doc-ref", nil, now)
	assert.Equal(t, DocStatusNotSubmitted, rec.Document(DocIdentity).Status)
}
