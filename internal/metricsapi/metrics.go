package metricsapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var upstreamRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ci_metrics_dashboard_upstream_request_duration_seconds",
		Help:    "metrics API request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"operation", "outcome"},
)

// Must happen in init(), otherwise running tests with count > 1 fails on
// duplicate registration.
func init() {
	prometheus.MustRegister(upstreamRequestDuration)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsDecode(err):
		return "decode_error"
	case IsBadResponse(err):
		return "bad_response"
	default:
		return "unreachable"
	}
}

func observe(operation string, start time.Time, err error) {
	upstreamRequestDuration.WithLabelValues(operation, outcome(err)).Observe(time.Since(start).Seconds())
}
