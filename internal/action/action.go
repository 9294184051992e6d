// Package action names the user-triggered actions gitsync performs and the
// terminal outcome each one reports.
package action

import (
	"fmt"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

// Kind identifies an action, or the step of an action that failed.
type Kind string

// Action kinds.
const (
	Fetch    Kind = "fetch"
	Pull     Kind = "pull"
	Push     Kind = "push"
	Stage    Kind = "stage"
	Commit   Kind = "commit"
	Remote   Kind = "remote"
	Switch   Kind = "switch"
	Create   Kind = "create"
	Checkout Kind = "checkout"
	Delete   Kind = "delete"
	Refused  Kind = "refused"
)

// Status is the terminal state of an action.
type Status string

// Terminal states.
const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusRefused Status = "refused"
	StatusNoOp    Status = "noop"
)

// Messages reported for non-failure outcomes.
const (
	MessageUpToDate      = "Already up to date. There are no local changes to push."
	MessageRemoteCurrent = "The remote already points at that address."
)

var failureMessages = map[Kind]string{ //nolint:gochecknoglobals // read-only lookup table
	Fetch:    "Fetch failed. Check your network connection.",
	Pull:     "Pull failed. Check your network connection or resolve conflicts manually.",
	Push:     "Push failed. Check your network connection, repository permissions, or conflicts that need resolving.",
	Stage:    "Staging files failed. Check file permissions and repository state.",
	Commit:   "Commit failed. Check the repository state.",
	Remote:   "Updating the remote failed. Check that the address is valid.",
	Switch:   "Switching branches failed. Check for uncommitted changes.",
	Create:   "Creating the branch failed. Check that the branch name is valid.",
	Checkout: "Checking out the branch failed. Check that it exists on the remote.",
	Delete:   "Deleting the branch failed. It may contain unmerged changes.",
	Refused:  "The remote has new commits. Pull first to avoid conflicts.",
}

// FailureInfo returns the generic category message for a failed action.
func FailureInfo(kind Kind) string {
	if msg, ok := failureMessages[kind]; ok {
		return msg
	}
	return fmt.Sprintf("The %s action failed.", kind)
}

// Outcome is the single terminal result of one action.
type Outcome struct {
	Action           Kind     `json:"action"`
	Status           Status   `json:"status"`
	Category         Kind     `json:"category,omitempty"`
	Message          string   `json:"message"`
	Detail           string   `json:"detail,omitempty"`
	CommitMessage    string   `json:"commit_message,omitempty"`
	PushArgs         []string `json:"push_args,omitempty"`
	ChangedManifests []string `json:"changed_manifests,omitempty"`
	Err              error    `json:"-"`
}

// OK reports whether the action succeeded or had nothing to do.
func (o *Outcome) OK() bool {
	return o != nil && (o.Status == StatusSuccess || o.Status == StatusNoOp)
}

// AsError returns nil for OK outcomes and an error describing the failure otherwise.
func (o *Outcome) AsError() error {
	if o.OK() {
		return nil
	}
	if o == nil {
		return gserrors.ErrGitOperation
	}
	if o.Err != nil {
		return o.Err
	}
	if o.Status == StatusRefused {
		return gserrors.ErrRemoteAhead
	}
	return fmt.Errorf("%s: %w", o.Category, gserrors.ErrCommandFailed)
}

// Success builds a success outcome.
func Success(kind Kind, message string) *Outcome {
	return &Outcome{Action: kind, Status: StatusSuccess, Message: message}
}

// NoOp builds an outcome for an action that had nothing to do.
func NoOp(kind Kind, message string) *Outcome {
	return &Outcome{Action: kind, Status: StatusNoOp, Message: message}
}

// Failure builds a failure outcome for kind whose failing step was category.
// detail carries the raw captured output.
func Failure(kind, category Kind, detail string, err error) *Outcome {
	if err == nil {
		err = fmt.Errorf("%s: %w", category, gserrors.ErrCommandFailed)
	}
	return &Outcome{
		Action:   kind,
		Status:   StatusFailure,
		Category: category,
		Message:  FailureInfo(category),
		Detail:   detail,
		Err:      err,
	}
}

// Refusal builds the outcome for a push refused by the divergence gate.
func Refusal(kind Kind, behind int) *Outcome {
	return &Outcome{
		Action:   kind,
		Status:   StatusRefused,
		Category: Refused,
		Message:  FailureInfo(Refused),
		Detail:   fmt.Sprintf("local branch is %d commit(s) behind its upstream", behind),
		Err:      gserrors.Wrapf(gserrors.ErrRemoteAhead, "%d commit(s) behind", behind),
	}
}
