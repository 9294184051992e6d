package git

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

func TestExecutor_Run(t *testing.T) {
	t.Run("captures stdout on success", func(t *testing.T) {
		e := NewExecutor(t.TempDir())

		res, err := e.Run(context.Background(), "--version")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.Success())
		assert.Equal(t, 0, res.ExitCode)
		assert.Contains(t, res.Stdout, "git version")
		assert.False(t, res.TimedOut)
	})

	t.Run("non-zero exit is a result, not an error", func(t *testing.T) {
		e := NewExecutor(t.TempDir())

		res, err := e.Run(context.Background(), "rev-parse", "--is-inside-work-tree")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.False(t, res.Success())
		assert.NotEqual(t, 0, res.ExitCode)
		assert.NotEmpty(t, res.Stderr)
	})

	t.Run("missing binary is a spawn error", func(t *testing.T) {
		e := NewExecutor(t.TempDir(), WithBinary("gitsync-no-such-binary"))

		res, err := e.Run(context.Background(), "status")
		assert.Nil(t, res)
		require.Error(t, err)
		require.ErrorIs(t, err, gserrors.ErrSpawnFailed)

		var execErr *ExecError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, KindSpawn, execErr.Kind)
	})

	t.Run("missing working directory is a spawn error", func(t *testing.T) {
		e := NewExecutor("/nonexistent/gitsync/dir")

		res, err := e.Run(context.Background(), "status")
		assert.Nil(t, res)
		require.ErrorIs(t, err, gserrors.ErrSpawnFailed)
	})

	t.Run("exceeding the timeout kills the process", func(t *testing.T) {
		e := NewExecutor(t.TempDir(), WithBinary("sleep"), WithTimeout(100*time.Millisecond))

		start := time.Now()
		res, err := e.Run(context.Background(), "30")
		elapsed := time.Since(start)

		require.Error(t, err)
		require.ErrorIs(t, err, gserrors.ErrCommandTimeout)
		var execErr *ExecError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, KindTimeout, execErr.Kind)
		require.NotNil(t, res)
		assert.True(t, res.TimedOut)
		assert.False(t, res.Success())
		assert.Less(t, elapsed, 10*time.Second)
	})

	t.Run("canceled context is reported as interrupted", func(t *testing.T) {
		e := NewExecutor(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := e.Run(ctx, "status")
		assert.Nil(t, res)
		require.ErrorIs(t, err, context.Canceled)
		var execErr *ExecError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, KindInterrupted, execErr.Kind)
	})
}

func TestNewExecutor_Defaults(t *testing.T) {
	e := NewExecutor("/repo", WithTimeout(0), WithBinary(""))
	assert.Equal(t, "/repo", e.Dir())
	assert.Equal(t, 60*time.Second, e.Timeout())
	assert.Equal(t, "git", e.binary)
}

func TestDecodeOutput(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii", []byte("hello"), "hello"},
		{"valid utf8", []byte("文件.txt"), "文件.txt"},
		{"invalid byte replaced", []byte{'a', 0xff, 'b'}, "a\uFFFDb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeOutput(tc.in))
		})
	}

	t.Run("truncated sequence never fails", func(t *testing.T) {
		got := decodeOutput([]byte{'x', 0xe6, 0x96})
		assert.True(t, strings.HasPrefix(got, "x"))
		assert.Contains(t, got, "\uFFFD")
	})
}

func TestFormatCommandLine(t *testing.T) {
	assert.Equal(t, "git push -u origin main", FormatCommandLine([]string{"push", "-u", "origin", "main"}))
	assert.Equal(t, `git commit -m "Sync from Home - 2025-01-02 18:30"`,
		FormatCommandLine([]string{"commit", "-m", "Sync from Home - 2025-01-02 18:30"}))
	assert.Equal(t, `git branch ""`, FormatCommandLine([]string{"branch", ""}))
}

func TestExecErrorKind_String(t *testing.T) {
	assert.Equal(t, "spawn_error", KindSpawn.String())
	assert.Equal(t, "timeout", KindTimeout.String())
	assert.Equal(t, "interrupted", KindInterrupted.String())
	assert.Equal(t, "unknown", ExecErrorKind(99).String())
}
