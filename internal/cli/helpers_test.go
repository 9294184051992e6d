package cli

import (
	"bytes"
	"context"
	"testing"
)

// isolate points gitsync's home at a temp dir and clears env overrides.
// Tests that call it cannot run in parallel.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("GITSYNC_HOME", home)
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{
		"GITSYNC_OUTPUT",
		"GITSYNC_SYNC_LOCATION",
		"GITSYNC_SYNC_REMOTE",
		"GITSYNC_SYNC_LOCATIONS",
		"GITSYNC_LOG_FILE_ENABLED",
	} {
		t.Setenv(key, "")
	}
	t.Cleanup(CloseLogFile)
	return home
}

// execute runs the root command with args and returns stdout, stderr, and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "test"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	printError(cmd, flags, err)
	return stdout.String(), stderr.String(), err
}
