package status

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
)

// Model is the one-line status bar under the editor
type Model struct {
	theme    themes.Theme
	width    int
	version  string
	endpoint string
	mode     string
	state    string
	hint     string
}

// NewStatusBar creates a new status bar component
func NewStatusBar(th themes.Theme, version, endpoint, mode string) *Model {
	return &Model{
		theme:    th,
		version:  version,
		endpoint: endpoint,
		mode:     mode,
		state:    "idle",
	}
}

// SetTheme restyles the status bar
func (m *Model) SetTheme(th themes.Theme) {
	m.theme = th
}

// SetWidth sets the width of the status bar
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetState sets the submission state shown on the right
func (m *Model) SetState(state string) {
	m.state = state
}

// SetHint sets the key hint shown next to the endpoint
func (m *Model) SetHint(hint string) {
	m.hint = hint
}

func (m *Model) logo() string {
	bar := m.theme.StatusBar()
	verba := bar.Foreground(m.theme.Muted()).Padding(0).Render("verba")
	chat := bar.Foreground(m.theme.Foreground()).Bold(true).Padding(0).Render("chat ")
	version := bar.Foreground(m.theme.Muted()).Padding(0).Render(m.version)
	return bar.Padding(0, 1).Render(verba + chat + version)
}

func (m *Model) field(key, value string) string {
	return m.theme.StatusKey().Render(key) + m.theme.StatusValue().Render(value)
}

// View renders the status bar
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	stateStyle := m.theme.StatusBar().Foreground(m.theme.Success())
	if m.state != "idle" {
		stateStyle = m.theme.StatusBar().Foreground(m.theme.Warning())
	}
	state := stateStyle.Render("● " + m.state)

	left := m.logo() + m.field("mode", m.mode)
	room := m.width - lipgloss.Width(left) - lipgloss.Width(state) - 3
	endpoint := ""
	if room > 8 {
		endpoint = m.field("endpoint", ansi.Truncate(m.endpoint, room-10, "…"))
	}

	hint := ""
	if m.hint != "" {
		hint = m.theme.StatusKey().Render(m.hint)
	}

	used := lipgloss.Width(left) + lipgloss.Width(endpoint) + lipgloss.Width(state)
	if used+lipgloss.Width(hint) > m.width {
		hint = ""
	}
	spacer := m.theme.StatusBar().
		Padding(0).
		Width(max(0, m.width-used-lipgloss.Width(hint))).
		Render("")

	return ansi.Truncate(left+endpoint+hint+spacer+state, m.width, "")
}
