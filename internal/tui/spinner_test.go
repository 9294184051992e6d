package tui

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartSpinner_NonTerminalIsNoop(t *testing.T) {
	var buf bytes.Buffer
	s := StartSpinner(context.Background(), &buf, FormatText, "Pulling")
	assert.IsType(t, NoopSpinner{}, s)
	s.Stop()
	assert.Empty(t, buf.String())
}

func TestTerminalSpinner_AnimatesAndClears(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf lockedBuffer
	s := NewTerminalSpinner(&buf)
	s.Start(context.Background(), "Pushing to origin")

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Pushing to origin")
	}, 2*time.Second, 20*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))
}

func TestTerminalSpinner_StopsOnCancel(t *testing.T) {
	var buf lockedBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := NewTerminalSpinner(&buf)
	s.Start(ctx, "Fetching")
	cancel()

	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.running
	}, time.Second, 10*time.Millisecond)
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "short", truncateToWidth("short", 10))
	assert.Equal(t, "abcd...", truncateToWidth("abcdefghij", 7))
	assert.Equal(t, "...", truncateToWidth("abcdef", 2))
}

func TestFormatElapsedTime(t *testing.T) {
	assert.Equal(t, "(12s elapsed)", formatElapsedTime(12*time.Second))
	assert.Equal(t, "(2m 5s elapsed)", formatElapsedTime(125*time.Second))
}
