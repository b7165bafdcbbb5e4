package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/chordviz/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a one-line progress indicator. While attached it receives the
// pipeline events and names the stage that is running.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	started bool
	message string
	width   int // widest line written, for clearing
	next    observability.PipelineHooks
}

// newSpinner creates a spinner that draws on w and stops with ctx.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: message,
		next:    observability.NoopPipelineHooks{},
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(s.message)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Spinner) setMessage(format string, args ...any) {
	s.mu.Lock()
	s.message = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

// StopWithError stops the spinner and prints message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Attach routes pipeline events through the spinner until the returned
// function is called. Events are forwarded to the hooks registered before.
func (s *Spinner) Attach() (detach func()) {
	prev := observability.Pipeline()
	s.mu.Lock()
	s.next = prev
	s.mu.Unlock()
	observability.SetPipelineHooks(s)
	return func() { observability.SetPipelineHooks(prev) }
}

func (s *Spinner) OnFilter(ctx context.Context, before, after int) {
	if after < before {
		s.setMessage("Kept %d of %d variables...", after, before)
	}
	s.next.OnFilter(ctx, before, after)
}

func (s *Spinner) OnOrder(ctx context.Context, nodeCount, crossingsBefore, crossingsAfter int, d time.Duration) {
	s.setMessage("Ordered %d nodes (%d → %d crossings)...", nodeCount, crossingsBefore, crossingsAfter)
	s.next.OnOrder(ctx, nodeCount, crossingsBefore, crossingsAfter, d)
}

func (s *Spinner) OnLayoutStart(ctx context.Context, vizType string, nodeCount int) {
	s.setMessage("Computing %s layout for %d nodes...", vizType, nodeCount)
	s.next.OnLayoutStart(ctx, vizType, nodeCount)
}

func (s *Spinner) OnLayoutComplete(ctx context.Context, vizType string, chordCount int, d time.Duration, err error) {
	s.next.OnLayoutComplete(ctx, vizType, chordCount, d, err)
}

func (s *Spinner) OnRenderStart(ctx context.Context, format string) {
	s.setMessage("Rendering %s...", format)
	s.next.OnRenderStart(ctx, format)
}

func (s *Spinner) OnRenderComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	s.next.OnRenderComplete(ctx, format, size, d, err)
}
