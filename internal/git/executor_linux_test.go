//go:build linux

package git

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processAlive reports whether pid is running. Zombies awaiting reaping count as gone.
func processAlive(pid int) bool {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return false
	}
	// Format: pid (comm) state ...
	fields := strings.Fields(string(data[strings.LastIndex(string(data), ")")+1:]))
	return len(fields) > 0 && fields[0] != "Z"
}

func TestExecutor_TimeoutKillsProcessGroup(t *testing.T) {
	e := NewExecutor(t.TempDir(), WithBinary("sh"), WithTimeout(300*time.Millisecond))

	// The shell starts a grandchild and reports its pid before blocking.
	res, err := e.Run(context.Background(), "-c", "sleep 30 & echo $!; wait")
	require.Error(t, err)
	require.NotNil(t, res)
	require.True(t, res.TimedOut)

	pid, convErr := strconv.Atoi(strings.TrimSpace(res.Stdout))
	require.NoError(t, convErr, "expected child pid on stdout, got %q", res.Stdout)

	assert.Eventually(t, func() bool {
		return !processAlive(pid)
	}, 3*time.Second, 50*time.Millisecond, "child process %d still running after timeout", pid)
}
