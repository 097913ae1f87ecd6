// Package service orchestrates the compliance engine: document and referral
// submissions, administrator review, the visibility gate, and the expiry
// sweep. Every mutation re-runs the evaluator before persisting; every read
// that matters (summary, gate) re-runs it again and never trusts the stored
// verdict.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"vetgate/internal/audit"
	compliancemetrics "vetgate/internal/compliance/metrics"
	"vetgate/internal/compliance/models"
	"vetgate/internal/notify"
	id "vetgate/pkg/domain"
	dErrors "vetgate/pkg/domain-errors"
	"vetgate/pkg/platform/sentinel"
)

// DefaultExpiryWarningWindow is how far ahead the sweep warns about upcoming
// document expiry. Multi-month expiry horizons make 30 days a comfortable
// lead time for carers to renew.
const DefaultExpiryWarningWindow = 30 * 24 * time.Hour

// CredentialStore persists per-carer credential records. Execute must
// serialize mutations per carer (lock or FOR UPDATE) for the duration of
// both callbacks.
type CredentialStore interface {
	Ensure(ctx context.Context, carerID id.CarerID, now time.Time) (*models.CredentialRecord, error)
	FindByCarer(ctx context.Context, carerID id.CarerID) (*models.CredentialRecord, error)
	Execute(ctx context.Context, carerID id.CarerID,
		validate func(*models.CredentialRecord) error,
		mutate func(*models.CredentialRecord)) (*models.CredentialRecord, error)
	ListByOverallStatus(ctx context.Context, status models.OverallStatus) ([]id.CarerID, error)
}

// ReferralStore persists referral submissions.
type ReferralStore interface {
	CreateIfSlotFree(ctx context.Context, ref *models.Referral) error
	FindByID(ctx context.Context, referralID id.ReferralID) (*models.Referral, error)
	ListByCarer(ctx context.Context, carerID id.CarerID) ([]*models.Referral, error)
	Execute(ctx context.Context, referralID id.ReferralID,
		validate func(*models.Referral) error,
		mutate func(*models.Referral)) (*models.Referral, error)
}

// RateChecker is the externally supplied minimum-rate predicate consumed by
// the visibility gate. The engine never looks at rates itself.
type RateChecker interface {
	AboveMinimum(ctx context.Context, carerID id.CarerID) (bool, error)
}

// Notifier hands abstract notification events to the delivery collaborator.
type Notifier interface {
	Publish(ctx context.Context, event notify.Event) error
}

// AuditPublisher records the compliance audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	List(ctx context.Context, carerID id.CarerID) ([]audit.Event, error)
}

// Service wires the stores, the evaluator, and the collaborators together.
type Service struct {
	credentials CredentialStore
	referrals   ReferralStore
	rate        RateChecker
	notifier    Notifier
	auditTrail  AuditPublisher
	metrics     *compliancemetrics.Metrics
	logger      *slog.Logger
	warnWindow  time.Duration
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *compliancemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditTrail = p }
}

// WithExpiryWarningWindow overrides how far ahead expiring-soon warnings go
// out.
func WithExpiryWarningWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.warnWindow = window
		}
	}
}

// New constructs the compliance service. The stores and the rate predicate
// are required; everything else defaults to a no-op or discard collaborator.
func New(credentials CredentialStore, referrals ReferralStore, rate RateChecker, opts ...Option) (*Service, error) {
	if credentials == nil {
		return nil, errors.New("credential store is required")
	}
	if referrals == nil {
		return nil, errors.New("referral store is required")
	}
	if rate == nil {
		return nil, errors.New("rate checker is required")
	}
	s := &Service{
		credentials: credentials,
		referrals:   referrals,
		rate:        rate,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		warnWindow:  DefaultExpiryWarningWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// wrapStoreErr translates store sentinels into coded domain errors at the
// operation boundary.
func wrapStoreErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", what)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Newf(dErrors.CodeConflict, "%s was modified concurrently", what)
	case errors.Is(err, sentinel.ErrSlotOccupied):
		return dErrors.New(dErrors.CodeInvalidState, "referral slot is already occupied")
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}

func (s *Service) observeEvaluation(status models.OverallStatus) {
	if s.metrics != nil {
		s.metrics.ObserveEvaluation(string(status))
	}
}

// emitAudit appends to the audit trail. Failures are logged, not returned:
// a storage hiccup on the trail must not roll back a completed review.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditTrail == nil {
		return
	}
	if err := s.auditTrail.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emission failed",
			"carer_id", event.CarerID,
			"action", event.Action,
			"error", err,
		)
	}
}

// emitNotification publishes a notification event. Best-effort: delivery is
// an external concern and the next sweep re-derives anything that matters.
func (s *Service) emitNotification(ctx context.Context, event notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "notification publish failed",
			"carer_id", event.CarerID,
			"kind", event.Kind,
			"error", err,
		)
	}
}

// GetAuditTrail returns the append-only audit history for one carer.
func (s *Service) GetAuditTrail(ctx context.Context, carerID id.CarerID) ([]audit.Event, error) {
	if s.auditTrail == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "audit trail is not configured")
	}
	events, err := s.auditTrail.List(ctx, carerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load audit trail")
	}
	return events, nil
}
