package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnFilter(ctx, 10, 7)
	p.OnOrder(ctx, 7, 12, 3, time.Millisecond)
	p.OnLayoutStart(ctx, "chord", 7)
	p.OnLayoutComplete(ctx, "chord", 21, time.Second, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopAPIHooks{}.OnRequest(ctx, "POST", "/v1/render", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customAPI := &testAPIHooks{}
	SetAPIHooks(customAPI)
	if API() != customAPI {
		t.Error("SetAPIHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestPrometheus(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheus(prometheus.NewRegistry())

	p.OnFilter(ctx, 10, 7)
	p.OnFilter(ctx, 3, 3)
	if got := counterValue(t, p.FilterRemoved); got != 3 {
		t.Errorf("filter removed = %v, want 3", got)
	}

	p.OnLayoutStart(ctx, "chord", 5)
	p.OnLayoutComplete(ctx, "chord", 10, time.Millisecond, nil)
	p.OnLayoutComplete(ctx, "chord", 0, time.Millisecond, errors.New("boom"))
	if got := counterValue(t, p.LayoutsTotal.WithLabelValues("chord", "ok")); got != 1 {
		t.Errorf("ok layouts = %v", got)
	}
	if got := counterValue(t, p.LayoutsTotal.WithLabelValues("chord", "error")); got != 1 {
		t.Errorf("failed layouts = %v", got)
	}

	p.OnRenderComplete(ctx, "png", 4096, time.Millisecond, nil)
	if got := counterValue(t, p.RendersTotal.WithLabelValues("png", "ok")); got != 1 {
		t.Errorf("png renders = %v", got)
	}

	p.OnCacheHit(ctx, "layout")
	p.OnCacheMiss(ctx, "layout")
	p.OnCacheMiss(ctx, "layout")
	p.OnCacheSet(ctx, "artifact", 512)
	if got := counterValue(t, p.CacheRequests.WithLabelValues("layout", "miss")); got != 2 {
		t.Errorf("layout misses = %v", got)
	}
	if got := counterValue(t, p.CacheWrittenBytes.WithLabelValues("artifact")); got != 512 {
		t.Errorf("artifact bytes = %v", got)
	}

	p.OnRequest(ctx, "POST", "/v1/render", 200, time.Millisecond)
	if got := counterValue(t, p.HTTPRequestsTotal.WithLabelValues("POST", "/v1/render", "200")); got != 1 {
		t.Errorf("requests = %v", got)
	}
}

func TestPrometheusHandler(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry())
	p.OnCacheHit(context.Background(), "layout")

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `chordviz_cache_requests_total{key_type="layout",result="hit"} 1`) {
		t.Errorf("metrics output missing cache hit:\n%s", body)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testAPIHooks struct{ NoopAPIHooks }
