// Package metrics exposes Prometheus counters for the pledge engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// ─── Payments ───────────────────────────────────────────────────────────────

var PaymentsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pledge",
	Subsystem: "payments",
	Name:      "applied_total",
	Help:      "Payments applied, by payment type.",
}, []string{"type"})

var PaymentAmount = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "pledge",
	Subsystem: "payments",
	Name:      "amount",
	Help:      "Amount of each applied payment.",
	Buckets:   []float64{1000, 5000, 10000, 25000, 50000, 100000, 250000, 1000000},
})

var PaymentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pledge",
	Subsystem: "payments",
	Name:      "rejected_total",
	Help:      "Payments rejected, by error code.",
}, []string{"code"})

// ─── Pledges ────────────────────────────────────────────────────────────────

var PledgesCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pledge",
	Subsystem: "pledges",
	Name:      "created_total",
	Help:      "Pledges created.",
})

var PledgesClosed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pledge",
	Subsystem: "pledges",
	Name:      "closed_total",
	Help:      "Pledges moved to CLOSED, by trigger (payment or sweep).",
}, []string{"trigger"})

var Conflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pledge",
	Subsystem: "pledges",
	Name:      "version_conflicts_total",
	Help:      "Saves rejected because the pledge changed underneath.",
})

// ─── Sweep ──────────────────────────────────────────────────────────────────

var SweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pledge",
	Subsystem: "sweep",
	Name:      "runs_total",
	Help:      "Auto-close sweeps, by result.",
}, []string{"result"})

var SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "pledge",
	Subsystem: "sweep",
	Name:      "duration_seconds",
	Help:      "Wall time of one auto-close sweep.",
	Buckets:   prometheus.DefBuckets,
})

// Trigger labels for PledgesClosed.
const (
	TriggerPayment = "payment"
	TriggerSweep   = "sweep"
)

// ObservePayment records one applied payment.
func ObservePayment(paymentType string, amount decimal.Decimal, closed bool) {
	PaymentsApplied.WithLabelValues(paymentType).Inc()
	PaymentAmount.Observe(amount.InexactFloat64())
	if closed {
		PledgesClosed.WithLabelValues(TriggerPayment).Inc()
	}
}

// ObserveSweep records one sweep run that closed n pledges.
func ObserveSweep(n int, started time.Time, err error) {
	SweepDuration.Observe(time.Since(started).Seconds())
	PledgesClosed.WithLabelValues(TriggerSweep).Add(float64(n))
	if err != nil {
		SweepRuns.WithLabelValues("error").Inc()
		return
	}
	SweepRuns.WithLabelValues("ok").Inc()
}
