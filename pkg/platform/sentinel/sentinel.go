package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so services can translate them into domain
// errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: write lost an optimistic-concurrency race
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrSlotOccupied: referral slot already holds a live record
// - ErrUnavailable: service or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrSlotOccupied = errors.New("slot occupied")
	ErrUnavailable  = errors.New("unavailable")
)
