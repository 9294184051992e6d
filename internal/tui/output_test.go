package tui

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitsync/internal/action"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/session"
)

func newTestTTY(t *testing.T) (*TTYOutput, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	return NewTTYOutput(&buf), &buf
}

func sampleEntries() []session.Entry {
	log := session.NewLog()
	log.Command("push", ">>> git push")
	log.Error("push", "rejected")
	return log.Entries()
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, FormatText))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func TestTTYOutput_Messages(t *testing.T) {
	out, buf := newTestTTY(t)

	out.Success("pushed")
	out.Warning("careful")
	out.Info("fyi")

	got := buf.String()
	assert.Contains(t, got, "✓ pushed")
	assert.Contains(t, got, "⚠ careful")
	assert.Contains(t, got, "fyi")
}

func TestTTYOutput_Error(t *testing.T) {
	t.Run("known error shows hint", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Error(gserrors.ErrRemoteAhead)

		got := buf.String()
		assert.Contains(t, got, "✗ The remote has new commits.")
		assert.Contains(t, got, "▸ Try: Run 'gitsync pull' first")
	})

	t.Run("wrapped error shows raw text", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Error(gserrors.Wrap(gserrors.ErrInvalidLocation, "Moon"))

		got := buf.String()
		assert.Contains(t, got, "Unknown sync location.")
		assert.Contains(t, got, "Moon")
	})

	t.Run("nil prints nothing", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Error(nil)
		assert.Empty(t, buf.String())
	})
}

func TestTTYOutput_Table(t *testing.T) {
	out, buf := newTestTTY(t)
	out.Table([]string{"BRANCH", "CURRENT"}, [][]string{
		{"main", "*"},
		{"feature/long-name", ""},
	})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "BRANCH")
	assert.Equal(t, "main               *", string(lines[1]))
	assert.Equal(t, "feature/long-name", string(lines[2]))
}

func TestTTYOutput_Log(t *testing.T) {
	t.Run("renders entries", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Log(sampleEntries())

		got := buf.String()
		assert.Contains(t, got, ">>> git push")
		assert.Contains(t, got, "  rejected")
	})

	t.Run("empty", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Log(nil)
		assert.Contains(t, buf.String(), "no commands recorded")
	})
}

func TestTTYOutput_Outcome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		out, buf := newTestTTY(t)
		o := action.Success(action.Pull, "Pulled.")
		o.ChangedManifests = []string{"go.mod"}
		out.Outcome(o, nil)

		got := buf.String()
		assert.Contains(t, got, "✓ Pulled.")
		assert.Contains(t, got, "⚠ go.mod changed.")
	})

	t.Run("noop", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Outcome(action.NoOp(action.Push, action.MessageUpToDate), nil)
		assert.Contains(t, buf.String(), action.MessageUpToDate)
	})

	t.Run("refusal", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Outcome(action.Refusal(action.Push, 2), nil)

		got := buf.String()
		assert.Contains(t, got, "⚠ The remote has new commits.")
		assert.NotContains(t, got, "behind", "refusal is not a failure, detail is not printed")
	})

	t.Run("failure with log omits detail", func(t *testing.T) {
		out, buf := newTestTTY(t)
		o := action.Failure(action.Push, action.Push, "rejected", nil)
		out.Outcome(o, sampleEntries())

		got := buf.String()
		assert.Contains(t, got, "✗ Push failed.")
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("rejected")))
	})

	t.Run("failure without log prints detail", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Outcome(action.Failure(action.Pull, action.Pull, "could not resolve host", nil), nil)
		assert.Contains(t, buf.String(), "  could not resolve host")
	})

	t.Run("nil", func(t *testing.T) {
		out, buf := newTestTTY(t)
		out.Outcome(nil, nil)
		assert.Empty(t, buf.String())
	})
}

func TestJSONOutput_SilentMessages(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("a")
	out.Warning("b")
	out.Info("c")

	assert.Empty(t, buf.String())
}

func TestJSONOutput_Error(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Error(gserrors.ErrInvalidBranchName)

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "invalid branch name", got["error"])
	assert.Equal(t, "The branch name is not valid.", got["message"])
	assert.NotEmpty(t, got["action"])
}

func TestJSONOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Table([]string{"Name", "Is Current"}, [][]string{{"main", "true"}, {"dev"}})

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "main", got[0]["name"])
	assert.Equal(t, "true", got[0]["is_current"])
	assert.NotContains(t, got[1], "is_current")
}

func TestJSONOutput_Log(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Log(nil)
	assert.JSONEq(t, "[]", buf.String())
}

func TestJSONOutput_Outcome(t *testing.T) {
	var buf bytes.Buffer
	o := action.Failure(action.Push, action.Stage, "permission denied", nil)
	NewJSONOutput(&buf).Outcome(o, sampleEntries())

	var got struct {
		Action   string          `json:"action"`
		Status   string          `json:"status"`
		Category string          `json:"category"`
		Detail   string          `json:"detail"`
		Log      []session.Entry `json:"log"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "push", got.Action)
	assert.Equal(t, "failure", got.Status)
	assert.Equal(t, "stage", got.Category)
	assert.Equal(t, "permission denied", got.Detail)
	require.Len(t, got.Log, 2)
	assert.Equal(t, session.KindCommand, got.Log[0].Kind)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
	assert.Equal(t, "✓ ", padRight("✓", 2))
}
