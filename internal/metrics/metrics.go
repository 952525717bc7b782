// Package metrics holds the Prometheus instruments for calculator evaluations.
//
// esgcalc is a short-lived CLI, so metrics live in a dedicated registry that is
// written out as a node_exporter textfile at the end of a batch run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

const namespace = "esgcalc"

// Evaluation outcomes used as the "outcome" label.
const (
	OutcomeOK                 = "ok"
	OutcomeValidationError    = "validation_error"
	OutcomeConfigurationError = "configuration_error"
	OutcomeError              = "error"
)

// Registry is the registry every esgcalc instrument is registered with.
//
//nolint:gochecknoglobals // Process-wide metrics registry.
var Registry = prometheus.NewRegistry()

//nolint:gochecknoglobals // Factory bound to Registry.
var factory = promauto.With(Registry)

// Evaluation metrics
//
//nolint:gochecknoglobals // Prometheus instruments are package-level by convention.
var (
	EvaluationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of calculator evaluations",
		},
		[]string{"kind", "outcome"},
	)

	EvaluationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Calculator evaluation latency distribution",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{"kind"},
	)

	ClassificationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Total number of results by kind and class",
		},
		[]string{"kind", "class"},
	)
)

// Batch metrics
//
//nolint:gochecknoglobals // Prometheus instruments are package-level by convention.
var (
	BatchItemsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_items_in_flight",
			Help:      "Current number of batch items being evaluated",
		},
	)

	BatchRunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Total number of batch runs",
		},
		[]string{"status"},
	)
)

// Outcome maps an evaluation error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case calcerr.IsValidation(err):
		return OutcomeValidationError
	case calcerr.IsConfiguration(err):
		return OutcomeConfigurationError
	default:
		return OutcomeError
	}
}

// ObserveEvaluation records one evaluation of kind that started at start.
// class is the result's classification and is ignored when err is non-nil or class is "".
func ObserveEvaluation(kind string, start time.Time, class string, err error) {
	EvaluationsTotal.WithLabelValues(kind, Outcome(err)).Inc()
	EvaluationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err == nil && class != "" {
		ClassificationsTotal.WithLabelValues(kind, class).Inc()
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus text format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
