package action

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

func TestFailureInfo(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Pull, "Pull failed. Check your network connection or resolve conflicts manually."},
		{Stage, "Staging files failed. Check file permissions and repository state."},
		{Delete, "Deleting the branch failed. It may contain unmerged changes."},
		{Refused, "The remote has new commits. Pull first to avoid conflicts."},
		{Kind("rebase"), "The rebase action failed."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, FailureInfo(tt.kind))
		})
	}
}

func TestOutcome_OK(t *testing.T) {
	assert.True(t, Success(Push, "pushed").OK())
	assert.True(t, NoOp(Push, MessageUpToDate).OK())
	assert.False(t, Failure(Push, Stage, "", nil).OK())
	assert.False(t, Refusal(Push, 2).OK())

	var nilOutcome *Outcome
	assert.False(t, nilOutcome.OK())
}

func TestOutcome_AsError(t *testing.T) {
	t.Run("ok outcomes have no error", func(t *testing.T) {
		require.NoError(t, Success(Pull, "").AsError())
		require.NoError(t, NoOp(Push, "").AsError())
	})

	t.Run("failure defaults to command failed", func(t *testing.T) {
		err := Failure(Push, Stage, "fatal: unable to write", nil).AsError()
		require.ErrorIs(t, err, gserrors.ErrCommandFailed)
		assert.Contains(t, err.Error(), "stage")
	})

	t.Run("failure keeps cause", func(t *testing.T) {
		cause := errors.New("boom")
		require.ErrorIs(t, Failure(Pull, Pull, "", cause).AsError(), cause)
	})

	t.Run("refusal wraps remote ahead", func(t *testing.T) {
		o := Refusal(Push, 3)
		require.ErrorIs(t, o.AsError(), gserrors.ErrRemoteAhead)
		assert.Equal(t, StatusRefused, o.Status)
		assert.Contains(t, o.Detail, "3 commit(s) behind")
	})

	t.Run("nil outcome", func(t *testing.T) {
		var o *Outcome
		require.ErrorIs(t, o.AsError(), gserrors.ErrGitOperation)
	})
}

func TestFailure_Fields(t *testing.T) {
	o := Failure(Push, Stage, "detail text", nil)
	assert.Equal(t, Push, o.Action)
	assert.Equal(t, Stage, o.Category)
	assert.Equal(t, FailureInfo(Stage), o.Message)
	assert.Equal(t, "detail text", o.Detail)
}
