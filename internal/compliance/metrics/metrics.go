package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module: how often
// verdicts are computed and what they are, review throughput, and sweep
// behavior.
type Metrics struct {
	EvaluationsTotal  *prometheus.CounterVec
	SubmissionsTotal  *prometheus.CounterVec
	ReviewsTotal      *prometheus.CounterVec
	ListableChecks    *prometheus.CounterVec
	SweepDuration     prometheus.Histogram
	SweepExpiredTotal prometheus.Counter
}

// New creates a Metrics instance with all compliance module metrics
// registered on the default registerer.
func New() *Metrics {
	return &Metrics{
		EvaluationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_evaluations_total",
			Help: "Compliance verdict computations by outcome",
		}, []string{"outcome"}),
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_submissions_total",
			Help: "Document and referral submissions by kind",
		}, []string{"kind"}),
		ReviewsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_reviews_total",
			Help: "Administrator review decisions by kind and decision",
		}, []string{"kind", "decision"}),
		ListableChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_listable_checks_total",
			Help: "Visibility gate checks by result",
		}, []string{"result"}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vetgate_sweep_duration_seconds",
			Help:    "Duration of expiry reconciliation sweeps",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		}),
		SweepExpiredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vetgate_sweep_expired_total",
			Help: "Credential records flipped to expired by the reconciler",
		}),
	}
}

// ObserveEvaluation records one verdict computation.
func (m *Metrics) ObserveEvaluation(outcome string) {
	m.EvaluationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSweep records the duration of one reconciler sweep.
// Call with time.Now() at the start of the sweep.
func (m *Metrics) ObserveSweep(start time.Time) {
	m.SweepDuration.Observe(time.Since(start).Seconds())
}
