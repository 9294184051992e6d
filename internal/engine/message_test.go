package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

func TestRenderCommitMessage(t *testing.T) {
	at := time.Date(2025, 1, 2, 8, 5, 59, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		location string
		want     string
	}{
		{"default", "", "Office", "Sync from Office - 2025-01-02 08:05"},
		{"whitespace selects default", "  \n", "Home", "Sync from Home - 2025-01-02 08:05"},
		{"custom", "[{{.Location}}] sync", "Other", "[Other] sync"},
		{"time field", "{{.Time.Year}} {{.Location}}", "Home", "2025 Home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseCommitTemplate(tt.template)
			require.NoError(t, err)

			got, err := RenderCommitMessage(tmpl, tt.location, at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderCommitMessage_MatchesDefault(t *testing.T) {
	tmpl, err := ParseCommitTemplate("")
	require.NoError(t, err)

	got, err := RenderCommitMessage(tmpl, "Home", pinned)
	require.NoError(t, err)
	assert.Equal(t, DefaultCommitMessage("Home", pinned), got)
	assert.Regexp(t, `^Sync from Home - \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, got)
}

func TestParseCommitTemplate_Invalid(t *testing.T) {
	_, err := ParseCommitTemplate("{{.Location")
	require.Error(t, err)
}

func TestRenderCommitMessage_Errors(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		tmpl, err := ParseCommitTemplate("{{.Branch}}")
		require.NoError(t, err)
		_, err = RenderCommitMessage(tmpl, "Home", pinned)
		require.Error(t, err)
	})

	t.Run("empty result", func(t *testing.T) {
		tmpl, err := ParseCommitTemplate("{{if false}}x{{end}}")
		require.NoError(t, err)
		_, err = RenderCommitMessage(tmpl, "Home", pinned)
		require.ErrorIs(t, err, gserrors.ErrEmptyValue)
	})
}
