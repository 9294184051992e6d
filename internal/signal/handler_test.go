package signal

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_SignalCancelsContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGINT)

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	select {
	case <-h.Interrupted():
	default:
		t.Fatal("interrupted channel should be closed")
	}
}

func TestHandler_FirstSignalWins(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGTERM)
	h.handleSignal(syscall.SIGINT)

	assert.Equal(t, syscall.SIGTERM, h.Received())
	assert.Equal(t, 143, h.ExitCode())
}

func TestHandler_ExitCode(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	assert.Equal(t, 0, h.ExitCode())
	assert.Nil(t, h.Received())

	h.handleSignal(syscall.SIGINT)
	assert.Equal(t, 130, h.ExitCode())
}

func TestHandler_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()

	require.Eventually(t, func() bool { return h.Context().Err() != nil }, time.Second, 10*time.Millisecond)
	select {
	case <-h.Interrupted():
		t.Fatal("parent cancel is not an interrupt")
	default:
	}
}

func TestHandler_StopIsIdempotent(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()
	h.Stop()

	require.Error(t, h.Context().Err())
	assert.Equal(t, 0, h.ExitCode())
}
