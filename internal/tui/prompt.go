package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
}

// Theme returns a huh theme using the gitsync palette.
func Theme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// locationSelect builds the select field; split out so tests can inspect it
// without a terminal.
func locationSelect(options []string, selected *string) *huh.Select[string] {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o).Selected(o == *selected))
	}
	return huh.NewSelect[string]().
		Title("Where are you syncing from?").
		Options(opts...).
		Value(selected)
}

// SelectLocation asks the user to pick one of options, preselecting current.
// It returns ErrInteractiveRequired without a terminal and ErrPromptCanceled
// when the user aborts.
func SelectLocation(options []string, current string) (string, error) {
	if len(options) == 0 {
		return "", gserrors.Wrap(gserrors.ErrEmptyValue, "locations")
	}
	if !IsInteractive() {
		return "", gserrors.ErrInteractiveRequired
	}

	selected := current
	_, accessible := os.LookupEnv("ACCESSIBLE")
	form := huh.NewForm(huh.NewGroup(locationSelect(options, &selected))).
		WithTheme(Theme()).
		WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", gserrors.ErrPromptCanceled
		}
		return "", fmt.Errorf("location prompt: %w", err)
	}
	return selected, nil
}
