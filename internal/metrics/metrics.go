// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mind-engage/mindengage-psychometrics/internal/scoring"
)

var (
	Scored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psychometrics_scored_total",
			Help: "Answer sets scored, by resolved algorithm",
		},
		[]string{"algorithm"},
	)

	Fallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "psychometrics_algorithm_fallback_total",
			Help: "Definitions that did not resolve to a known algorithm",
		},
	)

	Anomalies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psychometrics_absorbed_answers_total",
			Help: "Answers absorbed during normalization, by kind",
		},
		[]string{"kind"},
	)

	ScoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "psychometrics_score_duration_seconds",
			Help:    "Time spent in the scoring engine",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"algorithm"},
	)

	SubmissionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psychometrics_submission_errors_total",
			Help: "Submission failures, by stage",
		},
		[]string{"stage"},
	)
)

// ObserveResult records one engine call.
func ObserveResult(res scoring.Result, took time.Duration) {
	alg, _ := res.Metadata[scoring.MetaAlgorithm].(string)
	Scored.WithLabelValues(alg).Inc()
	ScoreDuration.WithLabelValues(alg).Observe(took.Seconds())
	if fb, _ := res.Metadata[scoring.MetaFallback].(bool); fb {
		Fallbacks.Inc()
	}
	for _, kind := range []string{scoring.MetaUnmapped, scoring.MetaClamped, scoring.MetaInvalid} {
		if ids, ok := res.Metadata[kind].([]string); ok && len(ids) > 0 {
			Anomalies.WithLabelValues(kind).Add(float64(len(ids)))
		}
	}
}

func Handler() http.Handler { return promhttp.Handler() }
