package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "servery",
			Name:      "http_requests_total",
			Help:      "Count of API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	statusEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "servery",
			Name:      "status_evaluated_total",
			Help:      "Count of open-status evaluations by result.",
		},
		[]string{"status"},
	)

	slotsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "servery",
			Name:      "slots_generated_total",
			Help:      "Count of slot lists generated by kind.",
		},
		[]string{"kind"},
	)

	upstreamFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "servery",
			Name:      "upstream_fetch_total",
			Help:      "Count of restaurant detail fetches by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, statusEvaluated, slotsGenerated, upstreamFetches)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncStatus(status string) {
	statusEvaluated.WithLabelValues(status).Inc()
}

func IncSlots(kind string) {
	slotsGenerated.WithLabelValues(kind).Inc()
}

func IncUpstream(outcome string) {
	upstreamFetches.WithLabelValues(outcome).Inc()
}
