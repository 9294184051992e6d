// Package git provides the version-control layer for gitsync.
// This file defines the repository state types produced by the Inspector.
package git

// ChangeKind classifies one entry of the working tree status.
type ChangeKind string

// Change kinds, listed in classification priority order (highest first).
const (
	ChangeUntracked      ChangeKind = "untracked"
	ChangeDeleted        ChangeKind = "deleted"
	ChangeAdded          ChangeKind = "added"
	ChangeRenamed        ChangeKind = "renamed"
	ChangeStagedModified ChangeKind = "staged-modified"
	ChangeModified       ChangeKind = "modified"
)

// FileChange is one dirty path in the working tree.
type FileChange struct {
	Path    string     `json:"path"`               // Path relative to the repository root
	Kind    ChangeKind `json:"kind"`               // Classified change kind
	Code    string     `json:"code"`               // Raw two-character porcelain code, e.g. " M"
	OldPath string     `json:"old_path,omitempty"` // Source path for renames
}

// Branch is one entry of a branch listing.
type Branch struct {
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
	IsRemote  bool   `json:"is_remote"`
}

// Divergence describes how the current branch relates to its upstream.
// Ahead and Behind are only meaningful when HasUpstream is true.
type Divergence struct {
	Upstream    string `json:"upstream,omitempty"`
	HasUpstream bool   `json:"has_upstream"`
	Ahead       int    `json:"ahead"`
	Behind      int    `json:"behind"`
}

// InSync reports whether the branch has an upstream and neither side has unique commits.
// A branch without an upstream is never in sync.
func (d Divergence) InSync() bool {
	return d.HasUpstream && d.Ahead == 0 && d.Behind == 0
}

// RepositoryStatus is a point-in-time snapshot of the repository.
// It is recomputed on every call and never cached.
type RepositoryStatus struct {
	IsValidRepo   bool         `json:"is_valid_repo"`
	CurrentBranch string       `json:"current_branch"`
	RemoteURL     string       `json:"remote_url,omitempty"`
	HasRemote     bool         `json:"has_remote"`
	DirtyEntries  []FileChange `json:"dirty_entries"`
	Divergence    Divergence   `json:"divergence"`
}

// IsClean returns true if the working tree has no changes.
func (s *RepositoryStatus) IsClean() bool {
	return len(s.DirtyEntries) == 0
}
