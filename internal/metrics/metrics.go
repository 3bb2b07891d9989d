// Package metrics implements the observability hooks on top of Prometheus.
//
// Collectors are registered on a private registry so tests and embedders can
// build more than one set without tripping duplicate registration.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/forcegraph/pkg/observability"
)

const namespace = "forcegraph"

// Metrics holds every collector the binary exports.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	runsActive    prometheus.Gauge
	runDuration   prometheus.Histogram
	runNodes      prometheus.Histogram
	stepsTotal    prometheus.Counter
	stepDuration  prometheus.Histogram
	rendersTotal  *prometheus.CounterVec
	renderBytes   *prometheus.HistogramVec
	renderLatency *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	httpInFlight  prometheus.Gauge
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		runsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_runs_total",
			Help:      "Layout runs by result",
		}, []string{"result"}),
		runsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_runs_active",
			Help:      "Layout runs currently stepping",
		}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_run_duration_seconds",
			Help:      "Wall time of a layout run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4m
		}),
		runNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_run_nodes",
			Help:      "Node count per layout run",
			Buckets:   []float64{2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000},
		}),
		stepsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_steps_total",
			Help:      "Simulation steps executed",
		}),
		stepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_step_duration_seconds",
			Help:      "Duration of a single simulation step",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
		}),
		rendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Frames rendered by format and result",
		}, []string{"format", "result"}),
		renderBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_bytes",
			Help:      "Size of rendered frames",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"format"}),
		renderLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Frame render latency",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"format"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests being served",
		}),
	}
}

// Register installs m as the process-wide layout, render and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetLayoutHooks(Layout{m})
	observability.SetRenderHooks(Render{m})
	observability.SetHTTPHooks(HTTP{m})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Layout implements [observability.LayoutHooks].
type Layout struct{ m *Metrics }

func (h Layout) OnRunStart(_ context.Context, _ string, nodeCount int) {
	h.m.runsActive.Inc()
	h.m.runNodes.Observe(float64(nodeCount))
}

func (h Layout) OnStep(_ context.Context, d time.Duration) {
	h.m.stepsTotal.Inc()
	h.m.stepDuration.Observe(d.Seconds())
}

func (h Layout) OnRunComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	h.m.runsActive.Dec()
	h.m.runsTotal.WithLabelValues(result(err)).Inc()
	h.m.runDuration.Observe(d.Seconds())
}

// Render implements [observability.RenderHooks].
type Render struct{ m *Metrics }

func (Render) OnRenderStart(context.Context, string) {}

func (h Render) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.m.rendersTotal.WithLabelValues(format, result(err)).Inc()
	h.m.renderLatency.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		h.m.renderBytes.WithLabelValues(format).Observe(float64(size))
	}
}

// HTTP implements [observability.HTTPHooks].
type HTTP struct{ m *Metrics }

func (h HTTP) OnRequest(context.Context, string, string) {
	h.m.httpInFlight.Inc()
}

func (h HTTP) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.m.httpInFlight.Dec()
	h.m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
