package engine

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mrz1836/gitsync/internal/constants"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

// CommitData is what a commit message template can reference.
type CommitData struct {
	Location  string
	Timestamp string
	Time      time.Time
}

// ParseCommitTemplate parses a commit message template. An empty string
// selects the default "Sync from {{.Location}} - {{.Timestamp}}".
func ParseCommitTemplate(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		text = constants.DefaultCommitTemplate
	}
	tmpl, err := template.New("commit").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid commit template: %w", err)
	}
	return tmpl, nil
}

// RenderCommitMessage renders tmpl for location at now.
func RenderCommitMessage(tmpl *template.Template, location string, now time.Time) (string, error) {
	var buf bytes.Buffer
	data := CommitData{
		Location:  location,
		Timestamp: now.Format(constants.CommitTimestampLayout),
		Time:      now,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render commit message: %w", err)
	}
	msg := strings.TrimSpace(buf.String())
	if msg == "" {
		return "", fmt.Errorf("rendered commit message: %w", gserrors.ErrEmptyValue)
	}
	return msg, nil
}

// DefaultCommitMessage renders "Sync from {location} - {YYYY-MM-DD HH:MM}".
func DefaultCommitMessage(location string, now time.Time) string {
	return fmt.Sprintf("Sync from %s - %s", location, now.Format(constants.CommitTimestampLayout))
}
