/*
Package metrics defines the prometheus instrumentation for zbuild.
*/
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindLabel    = "kind"
	outcomeLabel = "outcome"
)

// State reports the lifecycle state of a serving process.
var State = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "zbuild_state",
	Help: "State of the zbuild service: 0 initializing, 1 ready, 2 erroring",
})

// Values for the State gauge.
const (
	Initializing float64 = iota
	Ready
	Erroring
)

var buildsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zbuild_builds_total",
		Help: "Count of distribution builds by kind and outcome",
	},
	[]string{kindLabel, outcomeLabel},
)

var buildDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "zbuild_build_duration_seconds",
		Help:    "Histogram of distribution build durations in seconds",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{kindLabel},
)

// ObserveBuild records the outcome and duration of a distribution build. kind is the
// distribution kind, "wheel" or "sdist".
func ObserveBuild(kind string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	buildsTotal.WithLabelValues(kind, outcome).Inc()
	buildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
