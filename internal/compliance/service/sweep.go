package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"vetgate/internal/audit"
	"vetgate/internal/compliance/evaluator"
	"vetgate/internal/compliance/models"
	"vetgate/internal/notify"
	id "vetgate/pkg/domain"
	"vetgate/pkg/requestcontext"
)

// sweepConcurrency bounds how many carers one sweep touches in parallel.
// Per-carer mutations are independent, so parallelism is safe; the bound
// keeps the sweep from monopolizing the connection pool.
const sweepConcurrency = 8

// SweepResult summarizes one reconciliation pass.
type SweepResult struct {
	Candidates int
	Expired    int
	Warned     int
	Failed     int
}

// SweepExpirations is the expiry reconciler pass: every record whose cached
// verdict is verified gets re-evaluated at the sweep time; newly lapsed
// documents flip to expired and raise notifications, documents inside the
// warning window raise a one-time expiring-soon warning.
//
// The sweep only tightens. It never re-verifies anything, so racing a
// concurrent approval is harmless: the worst case is a verdict one cycle
// stale, corrected on the next pass - and the gate recomputes at query time
// regardless. Failures on one carer are logged and do not abort the sweep;
// the next scheduled pass retries them.
func (s *Service) SweepExpirations(ctx context.Context) (SweepResult, error) {
	now := requestcontext.Now(ctx)
	start := time.Now()

	candidates, err := s.credentials.ListByOverallStatus(ctx, models.OverallVerified)
	if err != nil {
		return SweepResult{}, wrapStoreErr(err, "credential records")
	}

	var result SweepResult
	result.Candidates = len(candidates)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	type carerOutcome struct {
		expired bool
		warned  int
		failed  bool
	}
	outcomes := make([]carerOutcome, len(candidates))

	for i, carerID := range candidates {
		g.Go(func() error {
			expired, warned, err := s.sweepCarer(gctx, carerID, now)
			if err != nil {
				s.logger.ErrorContext(gctx, "sweep failed for carer",
					"carer_id", carerID,
					"error", err,
				)
				outcomes[i] = carerOutcome{failed: true}
				return nil // isolate per-carer failures
			}
			outcomes[i] = carerOutcome{expired: expired, warned: warned}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, o := range outcomes {
		if o.failed {
			result.Failed++
			continue
		}
		if o.expired {
			result.Expired++
		}
		result.Warned += o.warned
	}

	if s.metrics != nil {
		s.metrics.ObserveSweep(start)
		if result.Expired > 0 {
			s.metrics.SweepExpiredTotal.Add(float64(result.Expired))
		}
	}
	s.logger.InfoContext(ctx, "expiry sweep finished",
		"candidates", result.Candidates,
		"expired", result.Expired,
		"warned", result.Warned,
		"failed", result.Failed,
	)
	return result, nil
}

// sweepCarer re-evaluates one carer at the sweep time, persisting any lapse
// transitions and warning stamps. Running it twice with no intervening
// mutation changes nothing: lapsed documents are already expired and warning
// stamps are already set.
func (s *Service) sweepCarer(ctx context.Context, carerID id.CarerID, now time.Time) (expired bool, warned int, err error) {
	referrals, err := s.referrals.ListByCarer(ctx, carerID)
	if err != nil {
		return false, 0, wrapStoreErr(err, "referrals")
	}

	var lapsed, expiring []models.DocType
	rec, err := s.credentials.Execute(ctx, carerID, nil,
		func(r *models.CredentialRecord) {
			lapsed = evaluator.LapsedDocs(r, now)
			for _, t := range lapsed {
				r.ApplyLapse(t, now)
			}
			expiring = evaluator.ExpiringDocs(r, now, s.warnWindow)
			for _, t := range expiring {
				r.MarkExpiryWarned(t, now)
			}
			r.SetOverall(evaluator.Evaluate(r, referrals, now), now)
		},
	)
	if err != nil {
		return false, 0, wrapStoreErr(err, "credential record")
	}
	s.observeEvaluation(rec.OverallStatus)

	for _, t := range lapsed {
		s.emitAudit(ctx, audit.Event{
			Timestamp: now,
			CarerID:   carerID,
			Actor:     audit.ActorReconciler,
			Action:    audit.ActionDocumentExpired,
			Subject:   string(t),
			FromState: string(models.DocStatusVerified),
			ToState:   string(models.DocStatusExpired),
		})
		s.emitNotification(ctx, notify.Event{
			Kind:     notify.KindCredentialExpired,
			CarerID:  carerID,
			DocType:  t,
			NewState: string(models.DocStatusExpired),
			At:       now,
		})
	}
	for _, t := range expiring {
		s.emitNotification(ctx, notify.Event{
			Kind:     notify.KindCredentialExpiring,
			CarerID:  carerID,
			DocType:  t,
			NewState: string(models.DocStatusVerified),
			At:       now,
		})
	}
	return len(lapsed) > 0, len(expiring), nil
}
