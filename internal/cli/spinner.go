package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerInterval = 80 * time.Millisecond
	// spinnerShowElapsed is how long a step runs before the spinner shows
	// its elapsed time.
	spinnerShowElapsed = time.Second
)

// Spinner animates a status line on stderr while a pipeline step runs.
// It stops on Stop or when its context is cancelled.
type Spinner struct {
	message string
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc

	start   sync.Once
	stop    sync.Once
	running chan struct{} // closed when the animation goroutine exits

	mu    sync.Mutex
	width int // runes written on the last draw
}

// newSpinnerWithContext creates a spinner on stderr that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     out,
		ctx:     sctx,
		cancel:  cancel,
		running: make(chan struct{}),
	}
}

// Start begins the animation. Calls after the first are ignored.
func (s *Spinner) Start() {
	s.start.Do(func() {
		go s.animate(time.Now())
	})
}

func (s *Spinner) animate(began time.Time) {
	defer close(s.running)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			return
		case now := <-tick.C:
			s.draw(frame, now.Sub(began))
		}
	}
}

func (s *Spinner) draw(frame int, elapsed time.Duration) {
	line := s.message
	if elapsed >= spinnerShowElapsed {
		line = fmt.Sprintf("%s %s", s.message, elapsed.Truncate(time.Second))
	}
	icon := spinnerFrames[frame%len(spinnerFrames)]

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(icon), StyleDim.Render(line))
	s.width = len([]rune(line)) + 2
}

// Stop halts the animation and erases the status line. It is safe to call
// more than once, and before Start.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		s.start.Do(func() { close(s.running) })
		<-s.running

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context is done, either because
// the parent context was cancelled or because Stop was called.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
