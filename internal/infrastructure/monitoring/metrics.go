package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Channel metrics
	ChannelCalls    *prometheus.CounterVec
	ChannelDuration *prometheus.HistogramVec

	// Volume discovery metrics
	MountRoots        prometheus.Gauge
	CandidatesSkipped prometheus.Counter
	SourceErrors      *prometheus.CounterVec

	// Transport metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
	GRPCCalls     *prometheus.CounterVec

	startTime time.Time

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the health endpoint
type Snapshot struct {
	TotalRequests      int64   `json:"total_requests"`
	TotalErrors        int64   `json:"total_errors"`
	ChannelCalls       int64   `json:"channel_calls"`
	NotImplemented     int64   `json:"not_implemented"`
	LastMountRoots     int64   `json:"last_mount_roots"`
	ActiveConnections  int64   `json:"active_connections"`
	AvgRequestSeconds  float64 `json:"avg_request_seconds"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
	totalDuration      float64
	requestsForAverage int64
}

// NewMetrics creates a metrics collector backed by a fresh registry that
// also exports Go runtime and process collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return New(reg)
}

// New creates a metrics collector registered against reg
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		ChannelCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_channel_calls_total",
				Help: "Total number of method channel calls by outcome",
			},
			[]string{"channel", "method", "status"},
		),
		ChannelDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_channel_call_duration_seconds",
				Help:    "Method channel call duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"channel", "method"},
		),

		MountRoots: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bridge_storage_mount_roots",
				Help: "Number of distinct mount roots returned by the last resolution",
			},
		),
		CandidatesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bridge_storage_candidates_skipped_total",
				Help: "Total number of absent volume candidates skipped",
			},
		),
		SourceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_storage_source_errors_total",
				Help: "Total number of volume enumeration failures",
			},
			[]string{"source"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bridge_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
		GRPCCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_grpc_calls_total",
				Help: "Total number of gRPC bridge calls",
			},
			[]string{"method", "code"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "bridge_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the metrics are registered against
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus exposition handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	m.snapshot.requestsForAverage++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordChannelCall records one method channel call and its outcome
func (m *Metrics) RecordChannelCall(channel, method, status string, duration time.Duration) {
	m.ChannelCalls.WithLabelValues(channel, method, status).Inc()
	m.ChannelDuration.WithLabelValues(channel, method).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.ChannelCalls++
	if status == "not_implemented" {
		m.snapshot.NotImplemented++
	}
	m.mu.Unlock()
}

// RecordResolution records the outcome of one mount root resolution
func (m *Metrics) RecordResolution(roots, skipped int) {
	m.MountRoots.Set(float64(roots))
	m.CandidatesSkipped.Add(float64(skipped))

	m.mu.Lock()
	m.snapshot.LastMountRoots = int64(roots)
	m.mu.Unlock()
}

// RecordSourceError records a failed volume enumeration
func (m *Metrics) RecordSourceError(source string) {
	m.SourceErrors.WithLabelValues(source).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// RecordGRPCCall records a gRPC bridge call
func (m *Metrics) RecordGRPCCall(method, code string) {
	m.GRPCCalls.WithLabelValues(method, code).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.requestsForAverage > 0 {
		s.AvgRequestSeconds = s.totalDuration / float64(s.requestsForAverage)
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
