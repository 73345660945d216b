package opendata

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	operationFetchSchools    = "fetch_schools"
	operationFetchSATDetails = "fetch_sat_details"

	outcomeOK = "ok"
)

type clientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) clientMetrics {
	m := clientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nycschools",
			Subsystem: "opendata",
			Name:      "requests_total",
			Help:      "Open data API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nycschools",
			Subsystem: "opendata",
			Name:      "request_duration_seconds",
			Help:      "Open data API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}

	return m
}

func (m clientMetrics) observe(operation, outcome string, start time.Time) {
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
