// Package session holds the per-action context gitsync threads through every
// operation: the sync location tag and the operation log of issued commands.
// The caller owns a Session; the sync engine only appends to it.
package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrz1836/gitsync/internal/logging"
)

// EntryKind tags an operation log entry for rendering.
type EntryKind string

// Entry kinds.
const (
	KindCommand EntryKind = "command"
	KindOutput  EntryKind = "output"
	KindError   EntryKind = "error"
)

// Entry is one line item of an operation log.
type Entry struct {
	Label string    `json:"label"`
	Body  string    `json:"body"`
	Kind  EntryKind `json:"kind"`
}

// Log is an append-only trace of what one action did.
// Bodies are credential-filtered on append so the log is safe to persist and display.
type Log struct {
	entries []Entry
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{entries: []Entry{}}
}

func (l *Log) add(kind EntryKind, label, body string) {
	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		return
	}
	l.entries = append(l.entries, Entry{
		Label: label,
		Body:  logging.FilterSensitiveValue(body),
		Kind:  kind,
	})
}

// Command records an issued command line.
func (l *Log) Command(label, line string) {
	l.add(KindCommand, label, line)
}

// Output records captured output. Blank output is dropped.
func (l *Log) Output(label, body string) {
	l.add(KindOutput, label, body)
}

// Error records an error message or failing command's stderr. Blank text is dropped.
func (l *Log) Error(label, body string) {
	l.add(KindError, label, body)
}

// Entries returns a copy of the recorded entries in order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Commands returns the bodies of command entries in order.
func (l *Log) Commands() []string {
	var cmds []string
	for _, e := range l.entries {
		if e.Kind == KindCommand {
			cmds = append(cmds, e.Body)
		}
	}
	return cmds
}

// HasErrors reports whether any error entry was recorded.
func (l *Log) HasErrors() bool {
	for _, e := range l.entries {
		if e.Kind == KindError {
			return true
		}
	}
	return false
}

// Reset clears the log.
func (l *Log) Reset() {
	l.entries = []Entry{}
}

// MarshalJSON encodes the log as a JSON array of entries.
func (l *Log) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Entries())
}

// UnmarshalJSON decodes a JSON array of entries.
func (l *Log) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	l.entries = entries
	return nil
}

// Session is the request context for one user-triggered action.
type Session struct {
	ID         string    `json:"id"`
	Location   string    `json:"location"`
	Action     string    `json:"action,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	Message    string    `json:"message,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Log        *Log      `json:"log"`
}

// New creates a session tagged with location.
func New(location string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Location: location,
		Log:      NewLog(),
	}
}

// Begin starts a new action: it assigns a fresh ID and resets the log.
func (s *Session) Begin(action string, now time.Time) {
	if s.Log == nil {
		s.Log = NewLog()
	}
	s.ID = uuid.NewString()
	s.Action = action
	s.Outcome = ""
	s.Message = ""
	s.StartedAt = now
	s.FinishedAt = time.Time{}
	s.Log.Reset()
}

// Finish records the terminal outcome of the current action.
func (s *Session) Finish(outcome, message string, now time.Time) {
	s.Outcome = outcome
	s.Message = message
	s.FinishedAt = now
}
