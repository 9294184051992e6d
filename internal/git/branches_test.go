package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocalBranches(t *testing.T) {
	output := "  feature/login\n" +
		"* main\n" +
		"+ worktree-branch\n" +
		"\n"

	assert.Equal(t, []Branch{
		{Name: "feature/login"},
		{Name: "main", IsCurrent: true},
		{Name: "worktree-branch"},
	}, ParseLocalBranches(output))
}

func TestParseLocalBranches_DetachedHead(t *testing.T) {
	output := "* (HEAD detached at 1a2b3c4)\n  main\n"

	assert.Equal(t, []Branch{{Name: "main"}}, ParseLocalBranches(output))
}

func TestParseRemoteBranches(t *testing.T) {
	t.Run("strips remote and excludes HEAD", func(t *testing.T) {
		output := "  origin/HEAD -> origin/main\n" +
			"  origin/feature/login\n" +
			"  origin/main\n"

		branches := ParseRemoteBranches(output)
		assert.Equal(t, []string{"feature/login", "main"}, BranchNames(branches))
		for _, b := range branches {
			assert.True(t, b.IsRemote)
			assert.False(t, b.IsCurrent)
		}
	})

	t.Run("duplicates across remotes keep first", func(t *testing.T) {
		output := "  origin/main\n" +
			"  upstream/main\n" +
			"  upstream/HEAD\n" +
			"  upstream/release\n"

		assert.Equal(t, []string{"main", "release"}, BranchNames(ParseRemoteBranches(output)))
	})

	t.Run("empty output", func(t *testing.T) {
		assert.Empty(t, ParseRemoteBranches(""))
	})
}

func TestParseAllBranches(t *testing.T) {
	output := "  develop\n" +
		"* main\n" +
		"  remotes/origin/HEAD -> origin/main\n" +
		"  remotes/origin/develop\n" +
		"  remotes/origin/main\n" +
		"  remotes/origin/hotfix\n"

	assert.Equal(t, []Branch{
		{Name: "develop"},
		{Name: "main", IsCurrent: true},
		{Name: "hotfix", IsRemote: true},
	}, ParseAllBranches(output))
}

func TestBranchNames(t *testing.T) {
	assert.Empty(t, BranchNames(nil))
	assert.Equal(t, []string{"a", "b"}, BranchNames([]Branch{{Name: "a"}, {Name: "b"}}))
}
