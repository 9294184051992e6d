package engine

import (
	"context"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitsync/internal/action"
	"github.com/mrz1836/gitsync/internal/clock"
	"github.com/mrz1836/gitsync/internal/constants"
	"github.com/mrz1836/gitsync/internal/ctxutil"
	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/session"
)

// PushOptions controls the push step of a sync.
type PushOptions struct {
	// Force appends --force to the push command.
	Force bool
	// SetUpstream pushes with -u <remote> <branch> when the branch has no upstream.
	SetUpstream bool
}

// Orchestrator runs the guarded sync sequences against one repository.
type Orchestrator struct {
	rec       recorder
	inspector *git.Inspector
	clock     clock.Clock
	remote    string
	watched   []string
	template  *template.Template
	logger    zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock sets the clock used for commit timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = c
	}
}

// WithRemote sets the remote fetched from and pushed to.
func WithRemote(remote string) Option {
	return func(o *Orchestrator) {
		if remote != "" {
			o.remote = remote
		}
	}
}

// WithWatchedFiles sets the manifest names reported after a pull.
func WithWatchedFiles(names []string) Option {
	return func(o *Orchestrator) {
		o.watched = names
	}
}

// WithCommitTemplate sets a parsed commit message template.
func WithCommitTemplate(tmpl *template.Template) Option {
	return func(o *Orchestrator) {
		if tmpl != nil {
			o.template = tmpl
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator issuing commands through runner.
func NewOrchestrator(runner git.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		clock:   clock.RealClock{},
		remote:  constants.DefaultRemote,
		watched: constants.DefaultWatchedFiles(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.template == nil {
		o.template, _ = ParseCommitTemplate("")
	}
	o.logger = o.logger.With().Str("component", "engine").Logger()
	o.rec = recorder{runner: runner, logger: o.logger}
	o.inspector = git.NewInspector(runner, git.WithRemote(o.remote), git.WithInspectorLogger(o.logger))
	return o
}

// Inspector returns the inspector bound to the same runner and remote.
func (o *Orchestrator) Inspector() *git.Inspector {
	return o.inspector
}

// Remote returns the remote name actions target.
func (o *Orchestrator) Remote() string {
	return o.remote
}

func (o *Orchestrator) begin(s *session.Session, kind action.Kind) {
	s.Begin(string(kind), o.clock.Now())
	o.logger.Debug().Str("action", string(kind)).Str("session", s.ID).Msg("action started")
}

func (o *Orchestrator) finish(s *session.Session, out *action.Outcome) *action.Outcome {
	s.Finish(string(out.Status), out.Message, o.clock.Now())
	event := o.logger.Info()
	if !out.OK() {
		event = o.logger.Warn()
	}
	event.Str("action", string(out.Action)).
		Str("status", string(out.Status)).
		Str("session", s.ID).
		Msg("action finished")
	return out
}

func (o *Orchestrator) interrupted(ctx context.Context, s *session.Session, kind, category action.Kind) (*action.Outcome, bool) {
	if err := ctxutil.Canceled(ctx); err != nil {
		s.Log.Error(string(category), err.Error())
		return o.finish(s, action.Failure(kind, category, err.Error(), err)), true
	}
	return nil, false
}

// Fetch refreshes remote-tracking refs without touching the work tree.
func (o *Orchestrator) Fetch(ctx context.Context, s *session.Session) *action.Outcome {
	o.begin(s, action.Fetch)
	if out, stop := o.interrupted(ctx, s, action.Fetch, action.Fetch); stop {
		return out
	}

	st := o.rec.run(ctx, s, string(action.Fetch), "fetch", o.remote)
	if !st.ok() {
		return o.finish(s, action.Failure(action.Fetch, action.Fetch, st.detail(), st.err))
	}
	return o.finish(s, action.Success(action.Fetch, "Fetched "+o.remote+"."))
}

// Pull fetches then pulls. A fetch failure is tolerated: pull runs regardless
// and reports connectivity problems itself. On success the outcome lists
// watched manifests that changed between the old and new HEAD.
func (o *Orchestrator) Pull(ctx context.Context, s *session.Session) *action.Outcome {
	o.begin(s, action.Pull)
	if out, stop := o.interrupted(ctx, s, action.Pull, action.Pull); stop {
		return out
	}

	before, hadHead := o.inspector.Head(ctx)

	if st := o.rec.run(ctx, s, string(action.Fetch), "fetch", o.remote); !st.ok() {
		o.logger.Warn().Str("remote", o.remote).Msg("fetch failed, continuing with pull")
	}

	if out, stop := o.interrupted(ctx, s, action.Pull, action.Pull); stop {
		return out
	}

	st := o.rec.run(ctx, s, string(action.Pull), "pull")
	if !st.ok() {
		return o.finish(s, action.Failure(action.Pull, action.Pull, st.detail(), st.err))
	}

	out := action.Success(action.Pull, "Pulled the latest changes.")
	if hadHead {
		if after, ok := o.inspector.Head(ctx); ok && after != before {
			out.ChangedManifests = git.MatchWatched(o.inspector.ChangedBetween(ctx, before, after), o.watched)
		}
	}
	return o.finish(s, out)
}

// Push runs the guarded sync: refuse when behind, no-op when clean, otherwise
// stage everything, commit, and push exactly once.
func (o *Orchestrator) Push(ctx context.Context, s *session.Session, opts PushOptions) *action.Outcome {
	o.begin(s, action.Push)
	if out, stop := o.interrupted(ctx, s, action.Push, action.Push); stop {
		return out
	}

	// Gate: never mutate while the upstream has commits we lack.
	if _, behind := o.inspector.AheadBehind(ctx); behind > 0 {
		out := action.Refusal(action.Push, behind)
		s.Log.Error(string(action.Refused), out.Message)
		return o.finish(s, out)
	}

	if !o.inspector.HasUncommittedChanges(ctx) {
		s.Log.Output(string(action.Push), action.MessageUpToDate)
		return o.finish(s, action.NoOp(action.Push, action.MessageUpToDate))
	}

	if st := o.rec.run(ctx, s, string(action.Stage), "add", "-A"); !st.ok() {
		return o.finish(s, action.Failure(action.Push, action.Stage, st.detail(), st.err))
	}

	message, err := RenderCommitMessage(o.template, s.Location, o.clock.Now())
	if err != nil {
		o.logger.Warn().Err(err).Msg("commit template failed, using default message")
		message = DefaultCommitMessage(s.Location, o.clock.Now())
	}

	// A failed commit does not stop the push: earlier local commits still need to go out.
	if st := o.rec.run(ctx, s, string(action.Commit), "commit", "-m", message); !st.ok() {
		o.logger.Warn().Str("detail", st.detail()).Msg("commit failed, continuing with push")
	}

	if out, stop := o.interrupted(ctx, s, action.Push, action.Push); stop {
		return out
	}

	args := o.pushArgs(ctx, opts)
	st := o.rec.run(ctx, s, string(action.Push), args...)
	if !st.ok() {
		out := action.Failure(action.Push, action.Push, st.detail(), st.err)
		out.CommitMessage = message
		out.PushArgs = args
		return o.finish(s, out)
	}

	out := action.Success(action.Push, "Changes pushed to "+o.remote+".")
	out.CommitMessage = message
	out.PushArgs = args
	return o.finish(s, out)
}

// pushArgs builds the single push invocation: the upstream-setting form when
// the branch has no upstream and setUpstream is requested, plain push otherwise.
func (o *Orchestrator) pushArgs(ctx context.Context, opts PushOptions) []string {
	args := []string{"push"}
	if opts.SetUpstream && !o.inspector.HasUpstream(ctx) {
		branch := o.inspector.CurrentBranch(ctx)
		if branch != constants.UnknownBranch {
			args = append(args, "-u", o.remote, branch)
		}
	}
	if opts.Force {
		args = append(args, "--force")
	}
	return args
}

// SetRemoteURL points remote at url, adding the remote when it does not
// exist. An unchanged URL is a no-op.
func (o *Orchestrator) SetRemoteURL(ctx context.Context, s *session.Session, url, remote string) *action.Outcome {
	o.begin(s, action.Remote)
	if remote == "" {
		remote = o.remote
	}
	url = strings.TrimSpace(url)

	if err := git.ValidateRemoteURL(url); err != nil {
		s.Log.Error(string(action.Remote), err.Error())
		return o.finish(s, action.Failure(action.Remote, action.Remote, err.Error(), err))
	}
	if out, stop := o.interrupted(ctx, s, action.Remote, action.Remote); stop {
		return out
	}

	current, exists := o.inspector.RemoteURL(ctx, remote)
	if exists && current == url {
		s.Log.Output(string(action.Remote), action.MessageRemoteCurrent)
		return o.finish(s, action.NoOp(action.Remote, action.MessageRemoteCurrent))
	}

	args := []string{"remote", "set-url", remote, url}
	if !exists {
		args = []string{"remote", "add", remote, url}
	}

	st := o.rec.run(ctx, s, string(action.Remote), args...)
	if !st.ok() {
		return o.finish(s, action.Failure(action.Remote, action.Remote, st.detail(), st.err))
	}
	return o.finish(s, action.Success(action.Remote, "Remote "+remote+" updated."))
}
