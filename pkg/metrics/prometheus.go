package metrics

import (
	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements metrics collection using Prometheus
type PrometheusCollector struct {
	serviceName string

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysisTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	overallScore     prometheus.Histogram
	factorScore      *prometheus.HistogramVec
}

var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// NewPrometheusCollector creates a new Prometheus metrics collector
func NewPrometheusCollector(serviceName string) *PrometheusCollector {
	constLabels := prometheus.Labels{"service": serviceName}

	return &PrometheusCollector{
		serviceName: serviceName,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "http_requests_in_flight",
				Help:        "Number of HTTP requests currently being processed",
				ConstLabels: constLabels,
			},
		),

		analysisTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "aeo_analysis_total",
				Help:        "Total number of AEO analyses",
				ConstLabels: constLabels,
			},
			[]string{"status"},
		),

		analysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "aeo_analysis_duration_seconds",
				Help:        "AEO analysis duration in seconds, fetch included",
				ConstLabels: constLabels,
				Buckets:     []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),

		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "aeo_cache_lookups_total",
				Help:        "Stored analysis lookups by result",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),

		overallScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "aeo_overall_score",
				Help:        "Distribution of overall AEO scores",
				ConstLabels: constLabels,
				Buckets:     scoreBuckets,
			},
		),

		factorScore: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "aeo_factor_score",
				Help:        "Distribution of per-factor AEO scores",
				ConstLabels: constLabels,
				Buckets:     scoreBuckets,
			},
			[]string{"factor"},
		),
	}
}

// GetCollectors returns all Prometheus collectors for registration
func (p *PrometheusCollector) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.analysisTotal,
		p.analysisDuration,
		p.cacheLookups,
		p.overallScore,
		p.factorScore,
	}
}

// RecordRequest records HTTP request metrics
func (p *PrometheusCollector) RecordRequest(method, path string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)

	p.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	p.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordAnalysis records analysis outcome and duration
func (p *PrometheusCollector) RecordAnalysis(success bool, duration float64) {
	status := "success"
	if !success {
		status = "failure"
	}

	p.analysisTotal.WithLabelValues(status).Inc()
	p.analysisDuration.WithLabelValues(status).Observe(duration)
}

// RecordCacheLookup counts stored-analysis hits and misses
func (p *PrometheusCollector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(result).Inc()
}

// RecordScores observes the overall score and every factor score
func (p *PrometheusCollector) RecordScores(overall int, breakdown []models.ScoreBreakdown) {
	p.overallScore.Observe(float64(overall))
	for _, b := range breakdown {
		p.factorScore.WithLabelValues(b.Factor).Observe(float64(b.Score))
	}
}

// IncRequestsInFlight increments the in-flight requests gauge
func (p *PrometheusCollector) IncRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

// DecRequestsInFlight decrements the in-flight requests gauge
func (p *PrometheusCollector) DecRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

// statusCodeToString converts HTTP status code to string category
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// Collector is the full surface main wires up, registration included
type Collector interface {
	interfaces.MetricsCollector
	GetCollectors() []prometheus.Collector
	IncRequestsInFlight()
	DecRequestsInFlight()
}

// Nop discards every measurement. Used by the CLI, which has no scrape endpoint.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, float64) {}
func (Nop) RecordAnalysis(bool, float64)               {}
func (Nop) RecordCacheLookup(bool)                     {}
func (Nop) RecordScores(int, []models.ScoreBreakdown)  {}

// Ensure PrometheusCollector implements the interfaces
var (
	_ interfaces.MetricsCollector = (*PrometheusCollector)(nil)
	_ Collector                   = (*PrometheusCollector)(nil)
	_ interfaces.MetricsCollector = Nop{}
)
