package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mrz1836/gitsync/internal/action"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/session"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output writes command results in the selected format.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error with its suggested fix.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
	// Table prints rows under headers.
	Table(headers []string, rows [][]string)
	// Status prints a repository status card.
	Status(view StatusView)
	// Log prints an operation log.
	Log(entries []session.Entry)
	// Outcome prints an action result followed by its operation log.
	Outcome(out *action.Outcome, entries []session.Entry)
}

// NewOutput creates the output for format ("json" or anything else for text).
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

// TTYOutput writes styled text for terminals.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a TTYOutput. NO_COLOR is honored.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{w: w, styles: NewOutputStyles()}
}

// Success prints a success message with a ✓ icon.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints the user-facing message for err and, when known, the fix.
func (o *TTYOutput) Error(err error) {
	if err == nil {
		return
	}
	msg, hint := gserrors.Actionable(err)
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+msg))
	if msg != err.Error() {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  "+err.Error()))
	}
	if hint != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+hint))
	}
}

// Warning prints a warning message with a ⚠ icon.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints an informational message.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// JSON outputs a value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// Table prints rows with columns padded to their widest cell.
func (o *TTYOutput) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = o.styles.Header.Render(padRight(h, widths[i]))
	}
	_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(parts, "  "), " "))

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padRight(cell, widths[i])
		}
		_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// Status prints the repository card.
func (o *TTYOutput) Status(view StatusView) {
	_, _ = fmt.Fprintln(o.w, renderStatusCard(o.styles, view))
}

// Log prints each entry tagged by its kind.
func (o *TTYOutput) Log(entries []session.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("(no commands recorded)"))
		return
	}
	_, _ = fmt.Fprintln(o.w, renderLog(o.styles, entries))
}

// Outcome prints the operation log, then the terminal message and any raw detail.
func (o *TTYOutput) Outcome(out *action.Outcome, entries []session.Entry) {
	if out == nil {
		return
	}
	if len(entries) > 0 {
		_, _ = fmt.Fprintln(o.w, renderLog(o.styles, entries))
	}

	switch out.Status {
	case action.StatusSuccess:
		o.Success(out.Message)
	case action.StatusNoOp:
		o.Info(out.Message)
	case action.StatusRefused:
		o.Warning(out.Message)
	default:
		_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+out.Message))
	}
	if !out.OK() && out.Detail != "" && len(entries) == 0 {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render(indent(out.Detail, "  ")))
	}
	for _, m := range out.ChangedManifests {
		o.Warning(m + " changed. Dependencies may need to be installed.")
	}
}

// JSONOutput writes machine-readable JSON only.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// Success is a no-op for JSON output.
func (o *JSONOutput) Success(_ string) {}

// Error writes {"error": ..., "message": ..., "action": ...}.
func (o *JSONOutput) Error(err error) {
	if err == nil {
		return
	}
	msg, hint := gserrors.Actionable(err)
	_ = encodeJSON(o.w, errorView{Error: err.Error(), Message: msg, Action: hint})
}

// Warning is a no-op for JSON output.
func (o *JSONOutput) Warning(_ string) {}

// Info is a no-op for JSON output.
func (o *JSONOutput) Info(_ string) {}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// Table writes one object per row keyed by header.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			key := strings.ToLower(strings.ReplaceAll(h, " ", "_"))
			if i < len(row) {
				m[key] = row[i]
			}
		}
		out = append(out, m)
	}
	_ = encodeJSON(o.w, out)
}

// Status writes the status view.
func (o *JSONOutput) Status(view StatusView) {
	_ = encodeJSON(o.w, view)
}

// Log writes the entries as an array.
func (o *JSONOutput) Log(entries []session.Entry) {
	if entries == nil {
		entries = []session.Entry{}
	}
	_ = encodeJSON(o.w, entries)
}

// Outcome writes the outcome with its log.
func (o *JSONOutput) Outcome(out *action.Outcome, entries []session.Entry) {
	if out == nil {
		return
	}
	if entries == nil {
		entries = []session.Entry{}
	}
	_ = encodeJSON(o.w, OutcomeView{Outcome: out, Log: entries})
}

// OutcomeView is the JSON shape of an action result.
type OutcomeView struct {
	*action.Outcome
	Log []session.Entry `json:"log"`
}

type errorView struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

var (
	_ Output = (*TTYOutput)(nil)
	_ Output = (*JSONOutput)(nil)
)
