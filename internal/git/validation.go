package git

import (
	"strings"
	"unicode"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

// forbiddenRefChars are rejected anywhere in a branch name by git check-ref-format.
const forbiddenRefChars = " ~^:?*[\\"

// IsValidBranchName reports whether name is an acceptable new branch name.
// It follows git's ref-format rules and also refuses a leading '-' so a name can
// never be parsed as a command-line option.
func IsValidBranchName(name string) bool {
	if name == "" || name == "@" {
		return false
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "/") {
		return false
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "//") || strings.Contains(name, "@{") {
		return false
	}
	if strings.ContainsAny(name, forbiddenRefChars) {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return false
		}
	}
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".lock") {
			return false
		}
	}
	return true
}

// ValidateBranchName returns ErrInvalidBranchName (or ErrEmptyValue) when name is unusable.
func ValidateBranchName(name string) error {
	if name == "" {
		return gserrors.Wrap(gserrors.ErrEmptyValue, "branch name")
	}
	if !IsValidBranchName(name) {
		return gserrors.Wrapf(gserrors.ErrInvalidBranchName, "%q", name)
	}
	return nil
}

// ValidateRevision accepts any revision expression git might resolve
// (HEAD~1, v1.0^0, origin/main) but rejects values that could be read as an
// option or carry control characters. Git decides whether the revision exists.
func ValidateRevision(rev string) error {
	if rev == "" {
		return gserrors.Wrap(gserrors.ErrEmptyValue, "revision")
	}
	if strings.HasPrefix(rev, "-") {
		return gserrors.Wrapf(gserrors.ErrInvalidBranchName, "revision %q", rev)
	}
	for _, r := range rev {
		if unicode.IsControl(r) {
			return gserrors.Wrapf(gserrors.ErrInvalidBranchName, "revision %q", rev)
		}
	}
	return nil
}

// ValidateRemoteURL rejects empty URLs and values that could be read as options.
// The URL format itself is left for git to judge.
func ValidateRemoteURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return gserrors.Wrap(gserrors.ErrEmptyValue, "remote url")
	}
	if strings.HasPrefix(url, "-") {
		return gserrors.Wrapf(gserrors.ErrInvalidRemoteURL, "%q", url)
	}
	for _, r := range url {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return gserrors.Wrapf(gserrors.ErrInvalidRemoteURL, "%q", url)
		}
	}
	return nil
}
