// Package monitoring provides Prometheus instrumentation for the planner:
// solver outcomes and durations, selector durations and substitution
// outcomes.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the planner's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	solverSolves     *prometheus.CounterVec
	solverDuration   prometheus.Histogram
	selectorDuration prometheus.Histogram
	substitutions    *prometheus.CounterVec
	menusGenerated   *prometheus.CounterVec
}

// NewMetrics creates and registers the planner collectors on a fresh
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		solverSolves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platewise_solver_solves_total",
			Help: "Integer-program solves by final status",
		}, []string{"status"}),
		solverDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "platewise_solver_duration_seconds",
			Help:    "Wall-clock duration of integer-program solves",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
		selectorDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "platewise_selector_duration_seconds",
			Help:    "Wall-clock duration of heuristic menu selection",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		substitutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platewise_substitutions_total",
			Help: "Slot substitutions by outcome",
		}, []string{"outcome"}),
		menusGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platewise_menus_generated_total",
			Help: "Menus generated by profile and selection path",
		}, []string{"profile", "path"}),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveSolve records one integer-program solve.
func (m *Metrics) ObserveSolve(status string, d time.Duration) {
	m.solverSolves.WithLabelValues(status).Inc()
	m.solverDuration.Observe(d.Seconds())
}

// ObserveSelection records one heuristic selection.
func (m *Metrics) ObserveSelection(d time.Duration) {
	m.selectorDuration.Observe(d.Seconds())
}

// CountSubstitution records a substitution outcome ("replaced" or
// "no_candidate").
func (m *Metrics) CountSubstitution(outcome string) {
	m.substitutions.WithLabelValues(outcome).Inc()
}

// CountMenu records a generated menu by profile and path ("heuristic" or
// "milp").
func (m *Metrics) CountMenu(profile, path string) {
	m.menusGenerated.WithLabelValues(profile, path).Inc()
}
