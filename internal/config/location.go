package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/gitsync/internal/errors"
)

// titleLocation capitalises each word of a location tag while leaving
// existing capitals alone ("home office" -> "Home Office", "HQ" -> "HQ").
func titleLocation(name string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.TrimSpace(name))
}

// NormalizeLocations title-cases each entry and drops blanks and duplicates.
func NormalizeLocations(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	fold := cases.Fold()
	for _, n := range names {
		t := titleLocation(n)
		if t == "" {
			continue
		}
		key := fold.String(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ResolveLocation matches name case-insensitively against allowed and returns
// the canonical spelling from allowed.
func ResolveLocation(name string, allowed []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Wrap(errors.ErrEmptyValue, "location")
	}
	fold := cases.Fold()
	want := fold.String(name)
	for _, a := range allowed {
		if fold.String(a) == want {
			return a, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInvalidLocation, "%q is not one of %s", name, strings.Join(allowed, ", "))
}
