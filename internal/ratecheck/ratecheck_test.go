package ratecheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	id "vetgate/pkg/domain"
)

func TestAboveMinimum(t *testing.T) {
	ctx := context.Background()
	source := NewMemorySource()
	checker := NewMinimumRateChecker(source, 10)
	carerID := id.NewCarerID()

	t.Run("no rate on file means not listable", func(t *testing.T) {
		ok, err := checker.AboveMinimum(ctx, carerID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("below minimum", func(t *testing.T) {
		source.SetRate(carerID, 9.99)
		ok, err := checker.AboveMinimum(ctx, carerID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("exactly at minimum passes", func(t *testing.T) {
		source.SetRate(carerID, 10)
		ok, err := checker.AboveMinimum(ctx, carerID)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("above minimum", func(t *testing.T) {
		source.SetRate(carerID, 42.50)
		ok, err := checker.AboveMinimum(ctx, carerID)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

type failingSource struct{ err error }

func (s failingSource) HourlyRate(context.Context, id.CarerID) (float64, error) {
	return 0, s.err
}

func TestAboveMinimumSourceFailure(t *testing.T) {
	boom := errors.New("profile service down")
	checker := NewMinimumRateChecker(failingSource{err: boom}, 10)

	_, err := checker.AboveMinimum(context.Background(), id.NewCarerID())
	require.ErrorIs(t, err, boom)
}
