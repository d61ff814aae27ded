package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrepeneur4lyf/verbachat/internal/markdown"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

// MessagesModel is the scrolling transcript with the typing indicator at
// its tail
type MessagesModel struct {
	theme    themes.Theme
	renderer *BubbleRenderer
	viewport viewport.Model
	spinner  spinner.Model
	messages []widget.Message
	typing   bool
	width    int
	height   int
}

// NewMessagesModel creates an empty transcript view
func NewMessagesModel(th themes.Theme, md *markdown.Renderer) *MessagesModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+↑", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+↓", "half page down"),
		),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.SecondaryText()

	return &MessagesModel{
		theme:    th,
		renderer: NewBubbleRenderer(th, md),
		viewport: vp,
		spinner:  sp,
	}
}

// KeyMap returns the scroll bindings, for the help dialog
func (m *MessagesModel) KeyMap() viewport.KeyMap {
	return m.viewport.KeyMap
}

// SetTheme restyles the transcript
func (m *MessagesModel) SetTheme(th themes.Theme) {
	m.theme = th
	m.spinner.Style = th.SecondaryText()
	m.renderer.SetTheme(th)
	m.refresh(false)
}

// SetSize resizes the viewport and re-renders the transcript
func (m *MessagesModel) SetSize(width, height int) {
	atBottom := m.viewport.AtBottom()
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh(atBottom)
}

// Append adds a message and scrolls to it
func (m *MessagesModel) Append(msg widget.Message) {
	m.messages = append(m.messages, msg)
	m.refresh(true)
}

// Messages returns the rendered messages
func (m *MessagesModel) Messages() []widget.Message {
	return m.messages
}

// SetTyping shows or hides the typing indicator. The returned command starts
// the spinner when it becomes visible.
func (m *MessagesModel) SetTyping(visible bool) tea.Cmd {
	if m.typing == visible {
		return nil
	}
	m.typing = visible
	m.refresh(true)
	if visible {
		return m.spinner.Tick
	}
	return nil
}

// Typing reports whether the typing indicator is visible
func (m *MessagesModel) Typing() bool {
	return m.typing
}

func (m *MessagesModel) Update(msg tea.Msg) (*MessagesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(m.viewport.AtBottom())
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *MessagesModel) View() string {
	return m.viewport.View()
}

// refresh rebuilds the viewport content, optionally tailing the newest line
func (m *MessagesModel) refresh(tail bool) {
	if m.width == 0 {
		return
	}

	var content strings.Builder
	if len(m.messages) == 0 && !m.typing {
		content.WriteString(m.theme.MutedText().Render("Say hello. Enter sends, ctrl+f attaches a file, f1 lists shortcuts."))
	}
	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(m.renderer.Render(msg, m.width))
	}
	if m.typing {
		if len(m.messages) > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(m.spinner.View() + " " + m.theme.MutedText().Render("Assistant is typing…"))
	}

	m.viewport.SetContent(content.String())
	if tail {
		m.viewport.GotoBottom()
	}
}
