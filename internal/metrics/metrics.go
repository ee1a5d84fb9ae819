package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Form submission outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeDuplicate = "duplicate"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes HTTP request counters and latencies, form submission outcomes,
// and a histogram of database query durations.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	FormSubmissions *prometheus.CounterVec
	InflightForms   prometheus.Gauge
	DBQueryDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_http_requests_total",
			Help: "Total HTTP requests served, by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athena_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		FormSubmissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "athena_form_submissions_total",
			Help: "Form submissions by entity, operation and outcome.",
		}, []string{"entity", "operation", "outcome"}),
		InflightForms: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "athena_form_submissions_inflight",
			Help: "Form submissions currently being processed.",
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "athena_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'create_sick_leave', 'find_employees'
	}

	return metrics
}

// ObserveSubmission records one form submission outcome.
func (m *Metrics) ObserveSubmission(entity, operation, outcome string) {
	if m == nil {
		return
	}
	m.FormSubmissions.WithLabelValues(entity, operation, outcome).Inc()
}
