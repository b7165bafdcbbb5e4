package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements every hook interface with Prometheus metrics.
type Prometheus struct {
	FilterRemoved     prometheus.Counter
	Crossings         *prometheus.HistogramVec
	LayoutsTotal      *prometheus.CounterVec
	LayoutDuration    *prometheus.HistogramVec
	LayoutNodes       prometheus.Histogram
	LayoutChords      prometheus.Histogram
	RendersTotal      *prometheus.CounterVec
	RenderDuration    *prometheus.HistogramVec
	RenderSizeBytes   *prometheus.HistogramVec
	CacheRequests     *prometheus.CounterVec
	CacheWrittenBytes *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewPrometheus registers the chordviz metrics with reg.
func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		FilterRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "chordviz_filter_removed_total",
			Help: "Variables removed by the relevance filter",
		}),
		Crossings: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chordviz_order_crossings",
			Help:    "Chord crossings before and after reordering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"stage"}),
		LayoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chordviz_layouts_total",
			Help: "Layouts computed",
		}, []string{"viz_type", "status"}),
		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chordviz_layout_duration_seconds",
			Help:    "Layout latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"viz_type"}),
		LayoutNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "chordviz_layout_nodes",
			Help:    "Nodes per layout",
			Buckets: prometheus.ExponentialBuckets(2, 2, 8),
		}),
		LayoutChords: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "chordviz_layout_chords",
			Help:    "Chords per layout",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chordviz_renders_total",
			Help: "Artifacts rendered",
		}, []string{"format", "status"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chordviz_render_duration_seconds",
			Help:    "Render latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		RenderSizeBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chordviz_render_size_bytes",
			Help:    "Rendered artifact size in bytes",
			Buckets: []float64{1e3, 1e4, 1e5, 1e6, 1e7},
		}, []string{"format"}),
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chordviz_cache_requests_total",
			Help: "Cache lookups by result",
		}, []string{"key_type", "result"}),
		CacheWrittenBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chordviz_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}, []string{"key_type"}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chordviz_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chordviz_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registry: reg,
	}
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnFilter(_ context.Context, before, after int) {
	if before > after {
		p.FilterRemoved.Add(float64(before - after))
	}
}

func (p *Prometheus) OnOrder(_ context.Context, _ int, before, after int, _ time.Duration) {
	p.Crossings.WithLabelValues("before").Observe(float64(before))
	p.Crossings.WithLabelValues("after").Observe(float64(after))
}

func (p *Prometheus) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	p.LayoutNodes.Observe(float64(nodeCount))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, vizType string, chordCount int, d time.Duration, err error) {
	p.LayoutsTotal.WithLabelValues(vizType, status(err)).Inc()
	p.LayoutDuration.WithLabelValues(vizType).Observe(d.Seconds())
	if err == nil {
		p.LayoutChords.Observe(float64(chordCount))
	}
}

func (p *Prometheus) OnRenderStart(context.Context, string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	p.RendersTotal.WithLabelValues(format, status(err)).Inc()
	p.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		p.RenderSizeBytes.WithLabelValues(format).Observe(float64(size))
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	p.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ APIHooks      = (*Prometheus)(nil)
)
