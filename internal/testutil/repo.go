package testutil

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RunGit runs git in dir for fixture setup and returns trimmed output.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// ConfigureUser sets the identity every fixture repository needs.
func ConfigureUser(t *testing.T, dir string) {
	t.Helper()

	RunGit(t, dir, "config", "user.email", "test@gitsync.local")
	RunGit(t, dir, "config", "user.name", "gitsync Test")
	RunGit(t, dir, "config", "commit.gpgsign", "false")
}

// SetupRepo creates an empty repository on branch main.
func SetupRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	RunGit(t, dir, "init", "-q")
	RunGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	ConfigureUser(t, dir)
	return dir
}

// WriteFile writes content to a repository-relative path.
func WriteFile(t *testing.T, repo, name, content string) {
	t.Helper()

	path := filepath.Join(repo, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// CommitAll stages everything and commits it.
func CommitAll(t *testing.T, repo, message string) {
	t.Helper()

	RunGit(t, repo, "add", "-A")
	RunGit(t, repo, "commit", "-q", "-m", message)
}

// SetupRemote creates a bare repository whose default branch is main.
func SetupRemote(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	RunGit(t, dir, "init", "-q", "--bare")
	RunGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	return dir
}

// SetupTracked creates a repository with one commit whose main branch
// tracks origin/main in a fresh bare remote.
func SetupTracked(t *testing.T) (repo, remote string) {
	t.Helper()

	remote = SetupRemote(t)
	repo = SetupRepo(t)
	WriteFile(t, repo, "README.md", "# fixture\n")
	CommitAll(t, repo, "initial commit")
	RunGit(t, repo, "remote", "add", "origin", remote)
	RunGit(t, repo, "push", "-q", "-u", "origin", "main")
	return repo, remote
}

// Clone clones remote into a fresh directory.
func Clone(t *testing.T, remote string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "clone")
	RunGit(t, filepath.Dir(dir), "clone", "-q", remote, dir)
	ConfigureUser(t, dir)
	return dir
}
