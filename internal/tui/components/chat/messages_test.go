package chat

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/verbachat/internal/markdown"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func newTestMessages(t *testing.T) *MessagesModel {
	t.Helper()
	md, err := markdown.NewRenderer(markdown.PlainConfig())
	require.NoError(t, err)
	m := NewMessagesModel(themes.NewDefaultTheme(), md)
	m.SetSize(80, 10)
	return m
}

func TestMessagesEmptyHint(t *testing.T) {
	m := newTestMessages(t)
	assert.Contains(t, stripANSI(m.View()), "Say hello")
}

func TestMessagesAppendTailsNewest(t *testing.T) {
	m := newTestMessages(t)

	for i := 0; i < 6; i++ {
		m.Append(textMessage(string(rune('a'+i)), widget.SenderUser, "message "+string(rune('A'+i))))
	}

	view := stripANSI(m.View())
	assert.Contains(t, view, "message F")
	assert.NotContains(t, view, "message A")
	assert.Len(t, m.Messages(), 6)
}

func TestMessagesPageUpScrolls(t *testing.T) {
	m := newTestMessages(t)
	for i := 0; i < 6; i++ {
		m.Append(textMessage(string(rune('a'+i)), widget.SenderUser, "message "+string(rune('A'+i))))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Contains(t, stripANSI(m.View()), "message A")
}

func TestMessagesTypingIndicator(t *testing.T) {
	m := newTestMessages(t)

	cmd := m.SetTyping(true)
	require.NotNil(t, cmd)
	assert.True(t, m.Typing())
	assert.Contains(t, stripANSI(m.View()), "Assistant is typing")

	// a second show is a no-op
	assert.Nil(t, m.SetTyping(true))

	_, next := m.Update(cmd())
	assert.NotNil(t, next)

	assert.Nil(t, m.SetTyping(false))
	assert.NotContains(t, stripANSI(m.View()), "Assistant is typing")

	// ticks stop once hidden
	_, next = m.Update(spinner.TickMsg{})
	assert.Nil(t, next)
}

func TestMessagesSetTheme(t *testing.T) {
	m := newTestMessages(t)
	m.Append(textMessage("x", widget.SenderAssistant, "hello"))
	m.SetTheme(themes.NewCatppuccinTheme("latte"))
	assert.Contains(t, stripANSI(m.View()), "hello")
}
