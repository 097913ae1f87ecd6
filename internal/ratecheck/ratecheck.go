// Package ratecheck adapts the external minimum-rate predicate to the
// visibility gate's port. Rate data lives outside this engine; the adapters
// here only answer "is this carer's rate at or above the marketplace
// minimum".
package ratecheck

import (
	"context"
	"errors"
	"sync"

	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

// RateSource exposes the carer's current hourly rate, owned by the profile
// system.
type RateSource interface {
	HourlyRate(ctx context.Context, carerID id.CarerID) (float64, error)
}

// MinimumRateChecker compares a carer's rate against a fixed marketplace
// minimum.
type MinimumRateChecker struct {
	source  RateSource
	minimum float64
}

func NewMinimumRateChecker(source RateSource, minimum float64) *MinimumRateChecker {
	return &MinimumRateChecker{source: source, minimum: minimum}
}

func (c *MinimumRateChecker) AboveMinimum(ctx context.Context, carerID id.CarerID) (bool, error) {
	rate, err := c.source.HourlyRate(ctx, carerID)
	if err != nil {
		// No rate on file means not listable, not an internal failure.
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return rate >= c.minimum, nil
}

// MemorySource keeps rates in process for development and tests.
type MemorySource struct {
	mu    sync.RWMutex
	rates map[id.CarerID]float64
}

func NewMemorySource() *MemorySource {
	return &MemorySource{rates: make(map[id.CarerID]float64)}
}

func (s *MemorySource) SetRate(carerID id.CarerID, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[carerID] = rate
}

func (s *MemorySource) HourlyRate(_ context.Context, carerID id.CarerID) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.rates[carerID]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return rate, nil
}
