// Package observability provides the run logger and Prometheus metrics.
package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"keeper-ledger/internal/domain"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "keeper_ledger"

// Metrics holds the Prometheus metrics of a reconciliation run.
type Metrics struct {
	registry *prometheus.Registry

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration *prometheus.HistogramVec

	// Board metrics
	TradesApplied prometheus.Counter
	TradesSkipped prometheus.Counter
	MovesApplied  *prometheus.CounterVec
	Discrepancies prometheus.Gauge

	// Keeper metrics
	KeepersChecked *prometheus.CounterVec
	Corrections    prometheus.Gauge

	// Health
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a Metrics instance on its own registry so repeated
// construction in tests does not collide.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "total",
			Help:      "Total number of reconciliation runs by mode and status",
		}, []string{"mode", "status"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Reconciliation run duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"mode"}),

		TradesApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "trades_applied_total",
			Help:      "Total number of trades replayed onto the ledger",
		}),
		TradesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "trades_skipped_total",
			Help:      "Total number of trades listed but marked skipped",
		}),
		MovesApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "moves_applied_total",
			Help:      "Total number of pick moves applied by move kind",
		}, []string{"kind"}),
		Discrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "discrepancies",
			Help:      "Picks whose computed owner differs from the persisted board in the last run",
		}),

		KeepersChecked: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keepers",
			Name:      "checked_total",
			Help:      "Total number of keeper records audited by outcome",
		}, []string{"outcome"}),
		Corrections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "keepers",
			Name:      "corrections",
			Help:      "Keeper cost corrections proposed by the last run",
		}),

		LastSuccessfulRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of the last successful run",
		}),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun records the outcome and duration of a run.
func (m *Metrics) RecordRun(mode, status string, durationSeconds float64, finishedUnix int64) {
	m.RunsTotal.WithLabelValues(mode, status).Inc()
	m.RunDuration.WithLabelValues(mode).Observe(durationSeconds)
	if status == domain.RunStatusSucceeded {
		m.LastSuccessfulRun.Set(float64(finishedUnix))
	}
}

// RecordMove counts one applied pick move.
func (m *Metrics) RecordMove(kind string) {
	m.MovesApplied.WithLabelValues(kind).Inc()
}

// RecordKeeperOutcome counts one audited keeper record.
func (m *Metrics) RecordKeeperOutcome(outcome string) {
	m.KeepersChecked.WithLabelValues(outcome).Inc()
}

// Push sends every metric to a Prometheus pushgateway, replacing the job's group.
func (m *Metrics) Push(ctx context.Context, gatewayURL, job string) error {
	if gatewayURL == "" {
		return nil
	}
	if err := push.New(gatewayURL, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
