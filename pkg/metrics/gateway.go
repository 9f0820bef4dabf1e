package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// GatewayRequestDuration tracks outbound calls to the payment gateway.
	// status_code is "error" when no response was received.
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Payment gateway request latency in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation", "status_code"},
	)

	PaymentInitializeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "initialize_total",
			Help:      "Payment initialization attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(GatewayRequestDuration, PaymentInitializeTotal)
}
