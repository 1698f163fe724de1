package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner draws a one-line progress indicator on stderr. The message can be
// changed while it runs; it erases itself when stopped or when ctx ends.
type Spinner struct {
	w      io.Writer
	parent context.Context

	mu    sync.Mutex
	msg   string
	width int // widest line drawn, for erasing

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newSpinner(ctx context.Context, msg string) *Spinner {
	return &Spinner{
		w:      os.Stderr,
		parent: ctx,
		msg:    msg,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins drawing in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.quit:
				return
			case <-s.parent.Done():
				s.erase()
				return
			case <-tick.C:
				s.draw(spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the message shown next to the spinner.
func (s *Spinner) SetMessage(format string, args ...any) {
	s.mu.Lock()
	s.msg = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

// Stop halts drawing and erases the line. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
		s.erase()
	})
}

// Fail stops the spinner and prints msg as an error.
func (s *Spinner) Fail(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Interrupted reports whether the spinner ended because its context did.
func (s *Spinner) Interrupted() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.msg)
	s.width = max(s.width, runewidth.StringWidth(s.msg)+2)
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}
