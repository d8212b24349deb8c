package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "eclub"

// HTTPRequestDuration tracks HTTP request latency.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)

// SettingsSavesTotal counts saved settings sections.
var SettingsSavesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "settings",
		Name:      "saves_total",
		Help:      "Settings sections saved, by section.",
	},
	[]string{"section"},
)

// SettingsCacheLookupsTotal counts settings bag cache lookups by result (hit, miss, error).
var SettingsCacheLookupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "settings",
		Name:      "cache_lookups_total",
		Help:      "Settings bag cache lookups, by result.",
	},
	[]string{"result"},
)

// PageSectionSavesTotal counts saved CMS page sections.
var PageSectionSavesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "content",
		Name:      "section_saves_total",
		Help:      "CMS page sections saved, by page.",
	},
	[]string{"page"},
)

// StatusUpdatesTotal counts status updates on meetings and callback requests.
var StatusUpdatesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "status_updates_total",
		Help:      "Record status updates, by resource and new status.",
	},
	[]string{"resource", "status"},
)

// RequestsCreatedTotal counts meetings and callback requests created from the storefront.
var RequestsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "created_total",
		Help:      "Customer requests created, by resource.",
	},
	[]string{"resource"},
)

// NotificationsSentTotal counts staff notifications by outcome (sent, failed, skipped).
var NotificationsSentTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "sent_total",
		Help:      "Staff notifications, by outcome.",
	},
	[]string{"outcome"},
)

// NewMetricsRegistry creates a Prometheus registry with default and custom collectors.
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		SettingsSavesTotal,
		SettingsCacheLookupsTotal,
		PageSectionSavesTotal,
		StatusUpdatesTotal,
		RequestsCreatedTotal,
		NotificationsSentTotal,
	)
	return reg
}
