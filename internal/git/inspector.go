package git

import (
	"context"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitsync/internal/constants"
)

// Inspector answers read-only questions about a repository.
// Every query runs git afresh; failures degrade to conservative defaults
// (false, "unknown", empty lists, zero counts) so status display always renders.
type Inspector struct {
	runner Runner
	remote string
	logger zerolog.Logger
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithRemote sets the remote name used by remote queries (default "origin").
func WithRemote(remote string) InspectorOption {
	return func(i *Inspector) {
		if remote != "" {
			i.remote = remote
		}
	}
}

// WithInspectorLogger attaches a logger for degraded-query diagnostics.
func WithInspectorLogger(logger zerolog.Logger) InspectorOption {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// NewInspector creates an Inspector over runner.
func NewInspector(runner Runner, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		runner: runner,
		remote: constants.DefaultRemote,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Remote returns the configured remote name.
func (i *Inspector) Remote() string {
	return i.remote
}

// query runs a read-only command and returns trimmed stdout on success.
func (i *Inspector) query(ctx context.Context, args ...string) (string, bool) {
	res, err := i.runner.Run(ctx, args...)
	if err != nil {
		i.logger.Debug().Err(err).Strs("args", args).Msg("inspection query failed to run")
		return "", false
	}
	if !res.Success() {
		i.logger.Debug().
			Strs("args", args).
			Int("exit_code", res.ExitCode).
			Str("stderr", strings.TrimSpace(res.Stderr)).
			Msg("inspection query exited non-zero")
		return "", false
	}
	return strings.TrimSpace(res.Stdout), true
}

// IsRepository reports whether the working directory is inside a work tree.
func (i *Inspector) IsRepository(ctx context.Context) bool {
	out, ok := i.query(ctx, "rev-parse", "--is-inside-work-tree")
	return ok && out == "true"
}

// CurrentBranch returns the checked-out branch name, or "unknown" when it cannot
// be determined (detached HEAD, not a repository, git unavailable).
func (i *Inspector) CurrentBranch(ctx context.Context) string {
	out, ok := i.query(ctx, "branch", "--show-current")
	if !ok || out == "" {
		return constants.UnknownBranch
	}
	return out
}

// RemoteURL returns the fetch URL of remote, or ok=false when no such remote exists.
// An empty remote name means the configured default.
func (i *Inspector) RemoteURL(ctx context.Context, remote string) (string, bool) {
	if remote == "" {
		remote = i.remote
	}
	out, ok := i.query(ctx, "remote", "get-url", remote)
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

// Status returns the dirty entries of the working tree in porcelain order.
func (i *Inspector) Status(ctx context.Context) []FileChange {
	res, err := i.runner.Run(ctx, "-c", "core.quotepath=off", "status", "--porcelain", "-uall")
	if err != nil || !res.Success() {
		return []FileChange{}
	}
	return ParseStatus(res.Stdout)
}

// Upstream returns the tracking reference of the current branch (e.g. "origin/main").
func (i *Inspector) Upstream(ctx context.Context) (string, bool) {
	out, ok := i.query(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

// HasUpstream reports whether the current branch tracks a remote branch.
func (i *Inspector) HasUpstream(ctx context.Context) bool {
	_, ok := i.Upstream(ctx)
	return ok
}

// AheadBehind returns commits only on HEAD (ahead) and only on the upstream (behind).
// It returns (0, 0) when there is no upstream or the count fails; use Divergence
// to tell that apart from a branch that is truly in sync.
func (i *Inspector) AheadBehind(ctx context.Context) (ahead, behind int) {
	out, ok := i.query(ctx, "rev-list", "--count", "--left-right", "@{upstream}...HEAD")
	if !ok {
		return 0, 0
	}
	a, b, parsed := parseAheadBehind(out)
	if !parsed {
		return 0, 0
	}
	return a, b
}

// Divergence combines upstream detection with ahead/behind counts.
func (i *Inspector) Divergence(ctx context.Context) Divergence {
	upstream, ok := i.Upstream(ctx)
	if !ok {
		return Divergence{}
	}
	ahead, behind := i.AheadBehind(ctx)
	return Divergence{Upstream: upstream, HasUpstream: true, Ahead: ahead, Behind: behind}
}

// HasUncommittedChanges reports whether Status is non-empty.
func (i *Inspector) HasUncommittedChanges(ctx context.Context) bool {
	return len(i.Status(ctx)) > 0
}

// RemoteHasUpdates reports whether the upstream has commits HEAD does not.
func (i *Inspector) RemoteHasUpdates(ctx context.Context) bool {
	_, behind := i.AheadBehind(ctx)
	return behind > 0
}

// LocalBranches lists local branches.
func (i *Inspector) LocalBranches(ctx context.Context) []Branch {
	out, ok := i.query(ctx, "branch", "--no-color")
	if !ok {
		return []Branch{}
	}
	return ParseLocalBranches(out)
}

// RemoteBranches lists remote-tracking branches with their remote qualifier stripped.
func (i *Inspector) RemoteBranches(ctx context.Context) []Branch {
	out, ok := i.query(ctx, "branch", "-r", "--no-color")
	if !ok {
		return []Branch{}
	}
	return ParseRemoteBranches(out)
}

// AllBranches lists local branches followed by remote-only branches.
func (i *Inspector) AllBranches(ctx context.Context) []Branch {
	out, ok := i.query(ctx, "branch", "-a", "--no-color")
	if !ok {
		return []Branch{}
	}
	return ParseAllBranches(out)
}

// ChangedConfigFiles returns dirty paths whose file name is in watchList.
func (i *Inspector) ChangedConfigFiles(ctx context.Context, watchList []string) []string {
	paths := make([]string, 0)
	for _, change := range i.Status(ctx) {
		paths = append(paths, change.Path)
	}
	return MatchWatched(paths, watchList)
}

// Head returns the commit HEAD points at.
func (i *Inspector) Head(ctx context.Context) (string, bool) {
	return i.query(ctx, "rev-parse", "HEAD")
}

// ChangedBetween lists paths that differ between two commits.
func (i *Inspector) ChangedBetween(ctx context.Context, from, to string) []string {
	out, ok := i.query(ctx, "-c", "core.quotepath=off", "diff", "--name-only", from, to, "--")
	if !ok || out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}

// Snapshot gathers a full RepositoryStatus.
func (i *Inspector) Snapshot(ctx context.Context) *RepositoryStatus {
	s := &RepositoryStatus{
		CurrentBranch: constants.UnknownBranch,
		DirtyEntries:  []FileChange{},
	}
	if !i.IsRepository(ctx) {
		return s
	}
	s.IsValidRepo = true
	s.CurrentBranch = i.CurrentBranch(ctx)
	s.RemoteURL, s.HasRemote = i.RemoteURL(ctx, "")
	s.DirtyEntries = i.Status(ctx)
	s.Divergence = i.Divergence(ctx)
	return s
}

// MatchWatched returns the entries of paths whose base name is in watchList,
// preserving the order of paths.
func MatchWatched(paths, watchList []string) []string {
	watched := make(map[string]struct{}, len(watchList))
	for _, w := range watchList {
		watched[w] = struct{}{}
	}
	matched := make([]string, 0)
	for _, p := range paths {
		if _, ok := watched[path.Base(strings.TrimSuffix(p, "/"))]; ok {
			matched = append(matched, p)
		}
	}
	return matched
}
