package git

import (
	"strconv"
	"strings"
)

// classifyPriority is the order in which status codes are matched.
// Within one kind, the index (first) character is inspected before the work tree character.
//
//nolint:gochecknoglobals // Fixed classification table
var classifyPriority = []struct {
	kind  ChangeKind
	code  byte
	xOnly bool
}{
	{ChangeUntracked, '?', false},
	{ChangeDeleted, 'D', false},
	{ChangeAdded, 'A', false},
	{ChangeRenamed, 'R', false},
	{ChangeStagedModified, 'M', true},
}

// ClassifyStatus maps a two-character porcelain code to a ChangeKind.
// Priority: untracked > deleted > added > renamed > staged-modified > modified.
// Only an index-side 'M' counts as staged-modified; every other code falls back to modified.
func ClassifyStatus(code string) ChangeKind {
	if len(code) < 2 {
		return ChangeModified
	}
	x, y := code[0], code[1]
	for _, p := range classifyPriority {
		if x == p.code || (!p.xOnly && y == p.code) {
			return p.kind
		}
	}
	return ChangeModified
}

// ParseStatus parses `git status --porcelain` (v1) output into ordered FileChanges.
// Lines shorter than the "XY path" form are skipped.
func ParseStatus(output string) []FileChange {
	changes := []FileChange{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		path := line[3:]

		var oldPath string
		if from, to, ok := strings.Cut(path, " -> "); ok {
			oldPath = unquotePath(from)
			path = to
		}

		changes = append(changes, FileChange{
			Path:    unquotePath(path),
			Kind:    ClassifyStatus(code),
			Code:    code,
			OldPath: oldPath,
		})
	}
	return changes
}

// unquotePath undoes git's C-style quoting of unusual path names.
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}

// parseAheadBehind parses `rev-list --count --left-right @{upstream}...HEAD`
// output, which is "<behind>\t<ahead>".
func parseAheadBehind(output string) (ahead, behind int, ok bool) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, false
	}
	b, err := strconv.Atoi(fields[0])
	if err != nil || b < 0 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(fields[1])
	if err != nil || a < 0 {
		return 0, 0, false
	}
	return a, b, true
}
