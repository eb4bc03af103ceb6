package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "civicreport_http_requests_total",
	Help: "The total number of HTTP requests served",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "civicreport_http_request_duration_seconds",
	Help:    "A histogram of HTTP request latencies",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
}, []string{"method", "route"})

// ReportTransitions counts lifecycle operations that changed a report.
var ReportTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "civicreport_report_transitions_total",
	Help: "The total number of report lifecycle transitions",
}, []string{"transition"})

var ReportsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "civicreport_reports_created_total",
	Help: "The total number of reports created",
})

var StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "civicreport_storage_errors_total",
	Help: "Storage failures surfaced to the service layer",
}, []string{"operation"})
