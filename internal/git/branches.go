package git

import (
	"strings"

	"github.com/mrz1836/gitsync/internal/constants"
)

// parseBranchLine splits one `git branch` line into its name and current marker.
// Returns ok=false for blank lines and detached-HEAD placeholders.
func parseBranchLine(line string) (name string, current, ok bool) {
	line = strings.TrimRight(line, "\r")
	if len(strings.TrimSpace(line)) == 0 {
		return "", false, false
	}
	current = strings.HasPrefix(line, "*")
	// "*" marks the current branch, "+" a branch checked out in another worktree.
	name = strings.TrimSpace(strings.TrimLeft(line, "*+ "))
	if name == "" || strings.HasPrefix(name, "(") {
		return "", false, false
	}
	return name, current, true
}

// stripRemote removes the leading "<remote>/" qualifier from a remote-tracking name.
func stripRemote(name string) string {
	if _, rest, ok := strings.Cut(name, "/"); ok {
		return rest
	}
	return name
}

// isHeadPointer reports whether a remote listing entry is the HEAD pseudo-ref,
// in either the "origin/HEAD -> origin/main" or bare "origin/HEAD" form.
func isHeadPointer(name string) bool {
	if strings.Contains(name, " -> ") {
		return true
	}
	return stripRemote(name) == constants.HeadRef
}

// ParseLocalBranches parses `git branch` output.
func ParseLocalBranches(output string) []Branch {
	branches := []Branch{}
	seen := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		name, current, ok := parseBranchLine(line)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		branches = append(branches, Branch{Name: name, IsCurrent: current})
	}
	return branches
}

// ParseRemoteBranches parses `git branch -r` output. Remote qualifiers are stripped,
// the HEAD pseudo-ref is excluded, and a name seen under several remotes is kept once.
func ParseRemoteBranches(output string) []Branch {
	branches := []Branch{}
	seen := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		raw, _, ok := parseBranchLine(line)
		if !ok || isHeadPointer(raw) {
			continue
		}
		name := stripRemote(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		branches = append(branches, Branch{Name: name, IsRemote: true})
	}
	return branches
}

// ParseAllBranches parses `git branch -a` output. Local branches come first in listing
// order; remote-tracking branches whose name already exists locally are dropped.
func ParseAllBranches(output string) []Branch {
	branches := []Branch{}
	seen := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		raw, current, ok := parseBranchLine(line)
		if !ok {
			continue
		}
		b := Branch{Name: raw, IsCurrent: current}
		if rest, isRemote := strings.CutPrefix(raw, "remotes/"); isRemote {
			if isHeadPointer(rest) {
				continue
			}
			b = Branch{Name: stripRemote(rest), IsRemote: true}
		}
		if _, dup := seen[b.Name]; dup {
			continue
		}
		seen[b.Name] = struct{}{}
		branches = append(branches, b)
	}
	return branches
}

// BranchNames returns the names of branches in order.
func BranchNames(branches []Branch) []string {
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	return names
}
