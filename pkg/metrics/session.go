package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SessionRoutingTotal counts /pos outcomes. decision is authenticated,
	// unauthenticated or pending (loading page served).
	SessionRoutingTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "routing_total",
			Help:      "POS entry routing decisions",
		},
		[]string{"decision"},
	)

	SessionHydrationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "hydration_wait_seconds",
			Help:      "Time /pos waited for a routing decision",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)

func init() {
	Registry.MustRegister(SessionRoutingTotal, SessionHydrationDuration)
}
