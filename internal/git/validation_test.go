package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

func TestIsValidBranchName(t *testing.T) {
	valid := []string{
		"main",
		"feature/login",
		"fix-123",
		"release_2.0",
		"user/alice/wip",
		"功能分支",
	}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.True(t, IsValidBranchName(name))
		})
	}

	invalid := []string{
		"",
		"@",
		"-rf",
		"--force",
		".hidden",
		"/abs",
		"trailing/",
		"trailing.",
		"name.lock",
		"dir/.dot",
		"a..b",
		"a//b",
		"ref@{1}",
		"with space",
		"tilde~1",
		"caret^",
		"colon:x",
		"what?",
		"star*",
		"brack[et",
		"back\\slash",
		"tab\tname",
		"semi;rm -rf",
	}
	for _, name := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			assert.False(t, IsValidBranchName(name))
		})
	}
}

func TestValidateBranchName(t *testing.T) {
	require.NoError(t, ValidateBranchName("feature/x"))
	require.ErrorIs(t, ValidateBranchName(""), gserrors.ErrEmptyValue)
	require.ErrorIs(t, ValidateBranchName("-x"), gserrors.ErrInvalidBranchName)
}

func TestValidateRevision(t *testing.T) {
	for _, rev := range []string{"HEAD~1", "v1.0^0", "abc123^", "origin/main", "main@{1}"} {
		require.NoError(t, ValidateRevision(rev), rev)
	}
	require.ErrorIs(t, ValidateRevision(""), gserrors.ErrEmptyValue)
	require.ErrorIs(t, ValidateRevision("--orphan"), gserrors.ErrInvalidBranchName)
	require.ErrorIs(t, ValidateRevision("main\n"), gserrors.ErrInvalidBranchName)
}

func TestValidateRemoteURL(t *testing.T) {
	require.NoError(t, ValidateRemoteURL("https://github.com/user/repo.git"))
	require.NoError(t, ValidateRemoteURL("git@github.com:user/repo.git"))
	require.NoError(t, ValidateRemoteURL("/srv/git/repo.git"))

	require.ErrorIs(t, ValidateRemoteURL(""), gserrors.ErrEmptyValue)
	require.ErrorIs(t, ValidateRemoteURL("   "), gserrors.ErrEmptyValue)
	require.ErrorIs(t, ValidateRemoteURL("--upload-pack=evil"), gserrors.ErrInvalidRemoteURL)
	require.ErrorIs(t, ValidateRemoteURL("https://x.com/a b"), gserrors.ErrInvalidRemoteURL)
	require.ErrorIs(t, ValidateRemoteURL("https://x.com/\nrepo"), gserrors.ErrInvalidRemoteURL)
}
