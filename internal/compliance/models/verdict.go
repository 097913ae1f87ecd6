package models

// OverallStatus is the aggregate compliance verdict for a carer.
type OverallStatus string

const (
	// OverallIncomplete: at least one required item has never been submitted
	// or is failing outright (rejected) and needs carer action.
	OverallIncomplete OverallStatus = "incomplete"

	// OverallPendingReview: everything outstanding is waiting on an
	// administrator or referee, not on the carer.
	OverallPendingReview OverallStatus = "pending_review"

	// OverallVerified: all four documents verified and unexpired, and at
	// least two referrals verified.
	OverallVerified OverallStatus = "verified"

	// OverallExpired: a previously verified document has lapsed. Dominates
	// every other consideration.
	OverallExpired OverallStatus = "expired"
)
