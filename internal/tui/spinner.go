package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// spinnerFrames are the animation frames for the spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"} //nolint:gochecknoglobals // animation frames

// SpinnerInterval is the update interval for the spinner animation.
const SpinnerInterval = 100 * time.Millisecond

// ElapsedTimeThreshold is the duration after which elapsed time is appended
// to the spinner message. Slow fetches over bad networks cross it often.
const ElapsedTimeThreshold = 10 * time.Second

// Spinner shows progress while a network action runs.
type Spinner interface {
	Stop()
}

// safeWriter serializes writes from the animation goroutine and the caller.
type safeWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *safeWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// TerminalSpinner animates a single status line.
type TerminalSpinner struct {
	w       *safeWriter
	styles  *OutputStyles
	message string
	started time.Time
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewTerminalSpinner creates a spinner that writes to w.
func NewTerminalSpinner(w io.Writer) *TerminalSpinner {
	return &TerminalSpinner{w: &safeWriter{w: w}, styles: NewOutputStyles()}
}

// Start begins the animation. Calling Start on a running spinner only
// replaces the message.
func (s *TerminalSpinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.running {
		return
	}
	s.started = time.Now()
	s.running = true
	s.done = make(chan struct{})

	done := s.done
	go s.animate(ctx, done)
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done := s.done
	s.mu.Unlock()

	close(done)
	_, _ = fmt.Fprint(s.w, "\r\033[K")
}

func (s *TerminalSpinner) animate(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			s.Stop()
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			msg := s.message
			if elapsed := time.Since(s.started); elapsed > ElapsedTimeThreshold {
				msg = fmt.Sprintf("%s %s", msg, formatElapsedTime(elapsed))
			}
			msg = truncateToWidth(msg, terminalWidth()-4)
			icon := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])
			// Written under the lock so a frame never lands after Stop clears the line.
			_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s", icon, msg)
			s.mu.Unlock()
			frame++
		}
	}
}

// NoopSpinner is used for JSON output and non-terminal writers.
type NoopSpinner struct{}

// Stop does nothing.
func (NoopSpinner) Stop() {}

// StartSpinner starts a TerminalSpinner on w when it is a terminal and the
// format is text; otherwise it returns a NoopSpinner.
func StartSpinner(ctx context.Context, w io.Writer, format, message string) Spinner {
	f, ok := w.(*os.File)
	if format == FormatJSON || !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		return NoopSpinner{}
	}
	s := NewTerminalSpinner(w)
	s.Start(ctx, message)
	return s
}

func formatElapsedTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%ds elapsed)", int(d.Seconds()))
	}
	return fmt.Sprintf("(%dm %ds elapsed)", int(d.Minutes()), int(d.Seconds())%60)
}

// terminalWidth returns the stderr width, or 80 when unknown.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd())) //nolint:gosec // fd fits in int
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncateToWidth shortens s to maxWidth runes, ending in "...".
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}
