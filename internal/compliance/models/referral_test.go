package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
)

func validReferee() RefereeInfo {
	return RefereeInfo{
		Name:         "Dana Osei",
		Email:        "dana.osei@example.org",
		Phone:        "+44 20 7946 0000",
		Relationship: "former manager",
	}
}

func TestParseReferralSlot(t *testing.T) {
	for _, n := range []int{1, 2} {
		slot, err := ParseReferralSlot(n)
		require.NoError(t, err)
		assert.Equal(t, ReferralSlot(n), slot)
	}
	for _, n := range []int{0, 3, -1} {
		_, err := ParseReferralSlot(n)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "slot %d", n)
	}
}

func TestRefereeInfoValidate(t *testing.T) {
	t.Run("valid referee passes", func(t *testing.T) {
		require.NoError(t, validReferee().Validate())
	})

	t.Run("phone is optional", func(t *testing.T) {
		info := validReferee()
		info.Phone = ""
		require.NoError(t, info.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*RefereeInfo)
	}{
		{"missing name", func(i *RefereeInfo) { i.Name = " " }},
		{"missing email", func(i *RefereeInfo) { i.Email = "" }},
		{"malformed email", func(i *RefereeInfo) { i.Email = "not-an-email" }},
		{"missing relationship", func(i *RefereeInfo) { i.Relationship = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := validReferee()
			tc.mutate(&info)
			err := info.Validate()
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestNewReferral(t *testing.T) {
	ref, err := NewReferral(id.NewReferralID(), id.NewCarerID(), 1, validReferee(), now)
	require.NoError(t, err)
	assert.Equal(t, ReferralPending, ref.Status)
	assert.True(t, ref.OccupiesSlot())

	_, err = NewReferral(id.NewReferralID(), id.NewCarerID(), 1, RefereeInfo{}, now)
	require.Error(t, err)
}

func TestNotifyTransition(t *testing.T) {
	ref, err := NewReferral(id.NewReferralID(), id.NewCarerID(), 1, validReferee(), now)
	require.NoError(t, err)

	changed, err := ref.CanNotify()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ReferralPending, ref.Status, "CanNotify must not mutate")

	ref.ApplyNotified()
	assert.Equal(t, ReferralNotified, ref.Status)

	t.Run("replaying the callback is a no-op", func(t *testing.T) {
		changed, err := ref.CanNotify()
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, ReferralNotified, ref.Status)
	})

	t.Run("decided referrals cannot be notified", func(t *testing.T) {
		ref.ApplyDecision(DecisionApprove, now)
		_, err := ref.CanNotify()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func TestReferralDecisions(t *testing.T) {
	t.Run("pending referral can be decided directly", func(t *testing.T) {
		ref, err := NewReferral(id.NewReferralID(), id.NewCarerID(), 1, validReferee(), now)
		require.NoError(t, err)
		require.NoError(t, ref.CanDecide())

		ref.ApplyDecision(DecisionApprove, now)
		assert.Equal(t, ReferralVerified, ref.Status)
		require.NotNil(t, ref.DecidedAt)
	})

	t.Run("rejected referral frees its slot", func(t *testing.T) {
		ref, err := NewReferral(id.NewReferralID(), id.NewCarerID(), 2, validReferee(), now)
		require.NoError(t, err)

		ref.ApplyDecision(DecisionReject, now)
		assert.Equal(t, ReferralRejected, ref.Status)
		assert.False(t, ref.OccupiesSlot())
	})

	t.Run("decided referral cannot be re-decided", func(t *testing.T) {
		ref, err := NewReferral(id.NewReferralID(), id.NewCarerID(), 1, validReferee(), now)
		require.NoError(t, err)
		ref.ApplyDecision(DecisionApprove, now)

		err = ref.CanDecide()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}
