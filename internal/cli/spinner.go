package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const spinnerTick = 100 * time.Millisecond

// Spinner animates a status line on statusOut until it is stopped or its
// context ends. With a positive total the line also shows how many of the
// total units have been reported through Advance.
type Spinner struct {
	label string
	total int
	done  atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	quit    chan struct{}
	exited  chan struct{}
	started atomic.Bool
	once    sync.Once

	mu    sync.Mutex
	width int
}

func newSpinner(ctx context.Context, label string, total int) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:  label,
		total:  total,
		ctx:    ctx,
		cancel: cancel,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	if s.started.CompareAndSwap(false, true) {
		go s.run()
	}
}

func (s *Spinner) run() {
	defer close(s.exited)
	tick := time.NewTicker(spinnerTick)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

// Advance records n finished units. It is safe to call from any goroutine.
func (s *Spinner) Advance(n int) {
	s.done.Add(int64(n))
}

func (s *Spinner) text() string {
	if s.total <= 0 {
		return s.label
	}
	return fmt.Sprintf("%s %d/%d", s.label, s.done.Load(), s.total)
}

func (s *Spinner) draw(frame string) {
	text := s.text()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(statusOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(text))
	s.width = max(s.width, len(text)+2)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(statusOut, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// Stop ends the animation and erases the status line. Calling Stop more
// than once is harmless.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		s.cancel()
		if s.started.Load() {
			<-s.exited
		}
		s.clear()
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	printSuccess(format, args...)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(format string, args ...any) {
	s.Stop()
	printError(format, args...)
}

// Cancelled reports whether the spinner's context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
