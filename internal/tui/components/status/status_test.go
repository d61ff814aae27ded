package status

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
)

func TestStatusView(t *testing.T) {
	m := NewStatusBar(themes.NewDefaultTheme(), "v0.1.0", "http://127.0.0.1:8000/", "multipart")
	assert.Empty(t, m.View())

	m.SetWidth(120)
	m.SetHint("f1 help")
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "verbachat v0.1.0")
	assert.Contains(t, view, "multipart")
	assert.Contains(t, view, "http://127.0.0.1:8000/")
	assert.Contains(t, view, "f1 help")
	assert.Contains(t, view, "● idle")
	assert.LessOrEqual(t, ansi.StringWidth(m.View()), 120)

	m.SetState("sending")
	assert.Contains(t, ansi.Strip(m.View()), "● sending")
}

func TestStatusViewNarrow(t *testing.T) {
	m := NewStatusBar(themes.NewDefaultTheme(), "dev", "https://a-very-long-host.example.com/chat/", "json")
	m.SetWidth(40)

	view := m.View()
	assert.LessOrEqual(t, ansi.StringWidth(view), 40)
	assert.Contains(t, ansi.Strip(view), "verbachat")
}
