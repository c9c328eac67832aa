package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	alertSends      *prometheus.CounterVec
	subscriberGauge prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	persistDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shadow_persist_duration_seconds",
		Help:    "Duration of shadow collection writes",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	alertSends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_alert_sends_total",
		Help: "Outbound job alert sends by outcome",
	}, []string{"kind", "outcome"})

	subscriberGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "subscribers_total",
		Help: "Current size of the job alert roster",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, persistDuration, alertSends, subscriberGauge, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		persistDuration: persistDuration,
		alertSends:      alertSends,
		subscriberGauge: subscriberGauge,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObservePersist records a shadow collection write.
func (m *MetricsService) ObservePersist(collection string, duration time.Duration) {
	if m == nil {
		return
	}
	m.persistDuration.WithLabelValues(collection).Observe(duration.Seconds())
}

// RecordAlertSend counts one outbound alert send.
func (m *MetricsService) RecordAlertSend(kind string, success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.alertSends.WithLabelValues(kind, outcome).Inc()
}

// SetSubscriberCount updates the roster size gauge.
func (m *MetricsService) SetSubscriberCount(n int) {
	if m == nil {
		return
	}
	m.subscriberGauge.Set(float64(n))
}
