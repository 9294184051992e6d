package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runGit runs a git command in dir for fixture setup and returns trimmed stdout.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// configureUser sets the identity and signing options every fixture repo needs.
func configureUser(t *testing.T, dir string) {
	t.Helper()

	runGit(t, dir, "config", "user.email", "test@gitsync.local")
	runGit(t, dir, "config", "user.name", "gitsync Test")
	runGit(t, dir, "config", "commit.gpgsign", "false")
}

// setupTestRepo creates a temporary git repository on branch main.
// Returns the path to the repo.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	runGit(t, tmpDir, "init", "-q")
	runGit(t, tmpDir, "symbolic-ref", "HEAD", "refs/heads/main")
	configureUser(t, tmpDir)

	return tmpDir
}

// createFile creates a file with content in the repo, creating parent directories.
func createFile(t *testing.T, repoPath, filename, content string) {
	t.Helper()

	path := filepath.Join(repoPath, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to create file")
}

// commitAll stages and commits all changes in the repo.
func commitAll(t *testing.T, repoPath, message string) {
	t.Helper()

	runGit(t, repoPath, "add", "-A")
	runGit(t, repoPath, "commit", "-q", "-m", message)
}

// commitInitial creates and commits a README so the repo has a HEAD.
func commitInitial(t *testing.T, repoPath string) {
	t.Helper()

	createFile(t, repoPath, "README.md", "# test\n")
	commitAll(t, repoPath, "initial commit")
}

// setupTrackedRepo creates a bare remote plus a clone whose main branch tracks origin/main.
// Returns the working repository path and the bare remote path.
func setupTrackedRepo(t *testing.T) (repo, remote string) {
	t.Helper()

	remote = t.TempDir()
	runGit(t, remote, "init", "-q", "--bare")
	runGit(t, remote, "symbolic-ref", "HEAD", "refs/heads/main")

	repo = setupTestRepo(t)
	commitInitial(t, repo)
	runGit(t, repo, "remote", "add", "origin", remote)
	runGit(t, repo, "push", "-q", "-u", "origin", "main")

	return repo, remote
}

// cloneRepo clones remote into a fresh directory and configures its identity.
func cloneRepo(t *testing.T, remote string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "clone")
	runGit(t, filepath.Dir(dir), "clone", "-q", remote, dir)
	configureUser(t, dir)
	return dir
}

// recordingRunner is a Runner fake that returns scripted results and records every call.
type recordingRunner struct {
	dir     string
	calls   [][]string
	results map[string]*CommandResult
	errs    map[string]error
}

func newRecordingRunner() *recordingRunner {
	return &recordingRunner{
		dir:     "/repo",
		results: make(map[string]*CommandResult),
		errs:    make(map[string]error),
	}
}

// on scripts the result for an exact argument list.
func (r *recordingRunner) on(result *CommandResult, args ...string) {
	result.Args = args
	r.results[strings.Join(args, " ")] = result
}

func (r *recordingRunner) Run(_ context.Context, args ...string) (*CommandResult, error) {
	r.calls = append(r.calls, args)
	key := strings.Join(args, " ")
	if err, ok := r.errs[key]; ok {
		return nil, err
	}
	if res, ok := r.results[key]; ok {
		return res, nil
	}
	return &CommandResult{Args: args, ExitCode: 1, Stderr: "unscripted"}, nil
}

func (r *recordingRunner) Dir() string { return r.dir }
