package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
)

// SubmitMsg carries the editor content when the user presses Enter
type SubmitMsg struct {
	Text string
}

// EditorModel is the multi-line message input
type EditorModel struct {
	width    int
	height   int
	textarea textarea.Model
	theme    themes.Theme
	enabled  bool
}

type EditorKeyMaps struct {
	Send    key.Binding
	NewLine key.Binding
}

var editorKeys = EditorKeyMaps{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send message"),
	),
	NewLine: key.NewBinding(
		key.WithKeys("alt+enter", "ctrl+j"),
		key.WithHelp("alt+enter/ctrl+j", "new line"),
	),
}

// EditorKeys returns the editor bindings, for the help dialog
func EditorKeys() EditorKeyMaps {
	return editorKeys
}

func NewEditorModel(th themes.Theme) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Enter to send, Alt+Enter for new line)"
	ta.CharLimit = 10000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(80)
	ta.SetHeight(3)
	// newlines are inserted by the editor itself; Enter always sends
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	m := &EditorModel{
		textarea: ta,
		enabled:  true,
	}
	m.SetTheme(th)
	return m
}

// SetTheme restyles the editor
func (m *EditorModel) SetTheme(th themes.Theme) {
	m.theme = th
	m.textarea.FocusedStyle.Base = th.Base()
	m.textarea.FocusedStyle.CursorLine = lipgloss.NewStyle()
	m.textarea.FocusedStyle.Placeholder = th.MutedText()
	m.textarea.BlurredStyle.Base = th.MutedText()
	m.textarea.BlurredStyle.Placeholder = th.MutedText()
}

func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if !m.enabled {
			return m, nil
		}

		switch {
		case key.Matches(keyMsg, editorKeys.NewLine):
			m.textarea.InsertString("\n")
			return m, nil

		case key.Matches(keyMsg, editorKeys.Send):
			text := m.textarea.Value()
			return m, func() tea.Msg { return SubmitMsg{Text: text} }
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *EditorModel) View() string {
	style := m.theme.BorderActive()
	prompt := m.theme.PrimaryText().Bold(true).Render("> ")
	if !m.enabled {
		style = m.theme.Border()
		prompt = m.theme.MutedText().Render("> ")
	}

	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, prompt, m.textarea.View()))
}

// Height is the number of lines View occupies
func (m *EditorModel) Height() int {
	return m.textarea.Height() + 2
}

func (m *EditorModel) SetWidth(width int) {
	m.width = width
	// border and prompt
	m.textarea.SetWidth(max(width-4, 10))
}

func (m *EditorModel) SetHeight(height int) {
	m.height = height
	m.textarea.SetHeight(height)
}

// SetEnabled toggles input. A disabled editor is blurred and ignores keys.
func (m *EditorModel) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.textarea.Blur()
	}
}

func (m *EditorModel) Enabled() bool {
	return m.enabled
}

// Focus focuses the textarea if the editor is enabled
func (m *EditorModel) Focus() tea.Cmd {
	if !m.enabled {
		return nil
	}
	return m.textarea.Focus()
}

func (m *EditorModel) Focused() bool {
	return m.textarea.Focused()
}

func (m *EditorModel) Value() string {
	return m.textarea.Value()
}

func (m *EditorModel) SetValue(s string) {
	m.textarea.SetValue(s)
}

func (m *EditorModel) Reset() {
	m.textarea.Reset()
}
