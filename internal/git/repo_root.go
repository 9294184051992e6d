package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

// FindRoot returns the top-level work tree directory containing path.
// It reads repository metadata directly and never spawns git, so it also
// works when the git binary is missing. Returns ErrNotGitRepo outside a repository.
func FindRoot(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty: %w", gserrors.ErrEmptyValue)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%s: %w", absPath, gserrors.ErrNotGitRepo)
		}
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to sync.
		return "", fmt.Errorf("%s has no work tree: %w", absPath, gserrors.ErrNotGitRepo)
	}

	return wt.Filesystem.Root(), nil
}
