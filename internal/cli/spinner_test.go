package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chordviz/pkg/observability"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStop(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Preparing 4 variables...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop() // idempotent

	if !strings.Contains(out.String(), "Preparing 4 variables...") {
		t.Errorf("output = %q, want the message drawn", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("line not cleared after Stop")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "idle")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
	if out.String() != "" {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestSpinnerParentContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancelled", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 50*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinner(ctx, &syncBuffer{}, "Computing layout...")
			s.Start()
			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner kept running after its parent context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStages(t *testing.T) {
	ctx := context.Background()
	s := newSpinner(ctx, &syncBuffer{}, "Preparing 4 variables...")

	tests := []struct {
		name  string
		event func()
		want  string
	}{
		{"filter", func() { s.OnFilter(ctx, 4, 3) }, "Kept 3 of 4 variables..."},
		{"order", func() { s.OnOrder(ctx, 3, 2, 0, time.Millisecond) }, "Ordered 3 nodes (2 → 0 crossings)..."},
		{"layout", func() { s.OnLayoutStart(ctx, "chord", 3) }, "Computing chord layout for 3 nodes..."},
		{"layout done", func() { s.OnLayoutComplete(ctx, "chord", 3, time.Millisecond, nil) }, "Computing chord layout for 3 nodes..."},
		{"render", func() { s.OnRenderStart(ctx, "png") }, "Rendering png..."},
	}
	for _, tt := range tests {
		tt.event()
		if got := s.Message(); got != tt.want {
			t.Errorf("%s: Message() = %q, want %q", tt.name, got, tt.want)
		}
	}

	// Nothing filtered keeps the previous text.
	s.OnFilter(ctx, 3, 3)
	if got := s.Message(); got != "Rendering png..." {
		t.Errorf("Message() = %q after a no-op filter", got)
	}
}

// countingHooks counts the pipeline events it receives.
type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	renders int
}

func (h *countingHooks) OnRenderStart(context.Context, string) {
	h.mu.Lock()
	h.renders++
	h.mu.Unlock()
}

func TestSpinnerAttach(t *testing.T) {
	t.Cleanup(observability.Reset)
	inner := &countingHooks{}
	observability.SetPipelineHooks(inner)

	s := newSpinner(context.Background(), &syncBuffer{}, "start")
	detach := s.Attach()
	if observability.Pipeline() != observability.PipelineHooks(s) {
		t.Fatal("spinner not registered while attached")
	}

	observability.Pipeline().OnRenderStart(context.Background(), "svg")
	if s.Message() != "Rendering svg..." {
		t.Errorf("Message() = %q", s.Message())
	}
	if inner.renders != 1 {
		t.Errorf("forwarded renders = %d, want 1", inner.renders)
	}

	detach()
	if observability.Pipeline() != observability.PipelineHooks(inner) {
		t.Error("previous hooks not restored")
	}
}
