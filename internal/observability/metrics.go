package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: route, status
	HTTPDuration *prometheus.HistogramVec // labels: route

	// Notification engine metrics.
	NotificationsGenerated *prometheus.CounterVec // labels: type={warning,activity,seasonal,agricultural}
	BundlesGenerated       prometheus.Counter
	BundlesPublished       prometheus.Counter
	PublishErrors          prometheus.Counter

	// Weather provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: call={weather,forecast,air_quality}, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: call
	ProviderCache    *prometheus.CounterVec   // labels: call, result={hit,miss}

	ScrapeRequests *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_insights",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		NotificationsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "notifications_generated_total",
			Help:      "Notifications produced by the rule engine, by type.",
		}, []string{"type"}),
		BundlesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "bundles_generated_total",
			Help:      "Total notification bundles generated.",
		}),
		BundlesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "bundles_published_total",
			Help:      "Total notification bundles published to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "publish_errors_total",
			Help:      "Total failed bundle publishes.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "provider_requests_total",
			Help:      "Weather provider calls by endpoint and outcome.",
		}, []string{"call", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_insights",
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"call"}),
		ProviderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "provider_cache_total",
			Help:      "Provider cache lookups by endpoint and result.",
		}, []string{"call", "result"}),
		ScrapeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insights",
			Name:      "scrape_requests_total",
			Help:      "Web scrape attempts by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.NotificationsGenerated,
		m.BundlesGenerated,
		m.BundlesPublished,
		m.PublishErrors,
		m.ProviderRequests,
		m.ProviderDuration,
		m.ProviderCache,
		m.ScrapeRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_insights", Name: "http_requests_total"}, []string{"route", "status"}),
		HTTPDuration:           prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_insights", Name: "http_request_duration_seconds"}, []string{"route"}),
		NotificationsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_insights", Name: "notifications_generated_total"}, []string{"type"}),
		BundlesGenerated:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_insights", Name: "bundles_generated_total"}),
		BundlesPublished:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_insights", Name: "bundles_published_total"}),
		PublishErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_insights", Name: "publish_errors_total"}),
		ProviderRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_insights", Name: "provider_requests_total"}, []string{"call", "outcome"}),
		ProviderDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_insights", Name: "provider_request_duration_seconds"}, []string{"call"}),
		ProviderCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_insights", Name: "provider_cache_total"}, []string{"call", "result"}),
		ScrapeRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_insights", Name: "scrape_requests_total"}, []string{"outcome"}),
	}
}
