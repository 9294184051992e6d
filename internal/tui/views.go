package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/logging"
	"github.com/mrz1836/gitsync/internal/session"
)

// maxCardEntries caps the dirty entries listed on the status card.
const maxCardEntries = 20

// StatusView is everything the status card shows.
type StatusView struct {
	Repository      string           `json:"repository"`
	Location        string           `json:"location"`
	Branch          string           `json:"branch"`
	Remote          string           `json:"remote"`
	RemoteURL       string           `json:"remote_url,omitempty"`
	HasRemote       bool             `json:"has_remote"`
	Divergence      git.Divergence   `json:"divergence"`
	Changes         []git.FileChange `json:"changes"`
	ChangedManifest []string         `json:"changed_manifests"`
}

// NewStatusView builds a StatusView from an inspector snapshot. The remote
// URL is stripped of embedded credentials.
func NewStatusView(repo, location, remote string, st *git.RepositoryStatus, manifests []string) StatusView {
	v := StatusView{
		Repository:      repo,
		Location:        location,
		Remote:          remote,
		Changes:         []git.FileChange{},
		ChangedManifest: manifests,
	}
	if v.ChangedManifest == nil {
		v.ChangedManifest = []string{}
	}
	if st == nil {
		return v
	}
	v.Branch = st.CurrentBranch
	v.HasRemote = st.HasRemote
	v.RemoteURL = logging.RedactURLCredentials(st.RemoteURL)
	v.Divergence = st.Divergence
	if st.DirtyEntries != nil {
		v.Changes = st.DirtyEntries
	}
	return v
}

// SyncSummary describes divergence in words. A branch without an upstream
// is reported as such rather than as in sync.
func SyncSummary(d git.Divergence) string {
	switch {
	case !d.HasUpstream:
		return "no upstream"
	case d.Ahead == 0 && d.Behind == 0:
		return "in sync with " + d.Upstream
	case d.Behind == 0:
		return fmt.Sprintf("%d ahead of %s", d.Ahead, d.Upstream)
	case d.Ahead == 0:
		return fmt.Sprintf("%d behind %s", d.Behind, d.Upstream)
	default:
		return fmt.Sprintf("%d ahead, %d behind %s", d.Ahead, d.Behind, d.Upstream)
	}
}

func renderStatusCard(s *OutputStyles, v StatusView) string {
	label := func(name string) string { return s.Dim.Render(padRight(name, 9)) }

	var b strings.Builder
	b.WriteString(label("Repo") + v.Repository + "\n")
	b.WriteString(label("Branch") + s.Command.Render(v.Branch) + "\n")
	b.WriteString(label("Location") + v.Location + "\n")

	remote := s.Dim.Render("(none)")
	if v.HasRemote {
		remote = v.Remote + " " + s.Dim.Render(v.RemoteURL)
	}
	b.WriteString(label("Remote") + remote + "\n")

	syncColor := ColorSuccess
	if !v.Divergence.InSync() {
		syncColor = ColorWarning
	}
	b.WriteString(label("Sync") + lipgloss.NewStyle().Foreground(syncColor).Render(SyncSummary(v.Divergence)) + "\n")

	if len(v.Changes) == 0 {
		b.WriteString(label("Changes") + s.Success.Render("clean"))
	} else {
		b.WriteString(label("Changes") + fmt.Sprintf("%d file(s)", len(v.Changes)))
		for i, c := range v.Changes {
			if i == maxCardEntries {
				b.WriteString("\n" + s.Dim.Render(fmt.Sprintf("  … and %d more", len(v.Changes)-maxCardEntries)))
				break
			}
			icon := lipgloss.NewStyle().Foreground(ChangeColor(c.Kind)).Render(ChangeIcon(c.Kind))
			path := c.Path
			if c.OldPath != "" {
				path = c.OldPath + " → " + c.Path
			}
			b.WriteString("\n  " + icon + " " + path)
		}
	}

	for _, m := range v.ChangedManifest {
		b.WriteString("\n" + s.Warning.Render("⚠ "+m+" changed. Dependencies may need to be installed."))
	}

	return s.Card.Render(b.String())
}

func renderLog(s *OutputStyles, entries []session.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := s.EntryStyle(e.Kind)
		switch e.Kind {
		case session.KindCommand:
			lines = append(lines, style.Render(e.Body))
		case session.KindError:
			lines = append(lines, style.Render(indent(e.Body, "  ")))
		default:
			lines = append(lines, s.Dim.Render(indent(e.Body, "  ")))
		}
	}
	return strings.Join(lines, "\n")
}
