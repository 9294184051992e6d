// Package tui renders gitsync's terminal output with Lip Gloss.
//
// All colors use AdaptiveColor for light/dark terminal support. Every
// status shown to the user carries an icon and text as well as color, so
// output stays readable with NO_COLOR set.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/session"
)

//nolint:gochecknoglobals // package-level style palette
var (
	// ColorPrimary is blue, used for branch names and commands.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for successful actions and added files.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for modified files and divergence.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failures and deleted files.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Command lipgloss.Style
	Header  lipgloss.Style
	Card    lipgloss.Style
}

// NewOutputStyles creates the output palette.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Command: lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Header:  lipgloss.NewStyle().Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1),
	}
}

// CheckNoColor disables color output when NO_COLOR is set or TERM=dumb.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport follows https://no-color.org/: NO_COLOR with any value,
// including empty, disables color, as does TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// ChangeIcon returns the short marker shown next to a dirty entry.
func ChangeIcon(kind git.ChangeKind) string {
	switch kind {
	case git.ChangeUntracked:
		return "?"
	case git.ChangeDeleted:
		return "D"
	case git.ChangeAdded:
		return "A"
	case git.ChangeRenamed:
		return "R"
	case git.ChangeStagedModified:
		return "M"
	default:
		return "m"
	}
}

// ChangeColor returns the color used for a dirty entry.
func ChangeColor(kind git.ChangeKind) lipgloss.AdaptiveColor {
	switch kind {
	case git.ChangeUntracked, git.ChangeAdded:
		return ColorSuccess
	case git.ChangeDeleted:
		return ColorError
	case git.ChangeRenamed:
		return ColorPrimary
	default:
		return ColorWarning
	}
}

// EntryStyle returns the style for an operation log entry of kind.
func (s *OutputStyles) EntryStyle(kind session.EntryKind) lipgloss.Style {
	switch kind {
	case session.KindCommand:
		return s.Command
	case session.KindError:
		return s.Error
	default:
		return lipgloss.NewStyle()
	}
}

// indent prefixes every line of text with pad.
func indent(text, pad string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
