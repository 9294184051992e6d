package git

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeOutput converts captured bytes to a string, replacing invalid UTF-8
// sequences with U+FFFD. Paths with non-UTF-8 names must never fail a command.
func decodeOutput(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
