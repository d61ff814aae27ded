package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/components/chat"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/components/dialogs"
)

type keyMap struct {
	Quit             key.Binding
	Help             key.Binding
	Attach           key.Binding
	RemoveAttachment key.Binding
	CopyReply        key.Binding
	CopyCode         key.Binding
	Theme            key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+c/q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Attach: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "attach file"),
	),
	RemoveAttachment: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "remove attachment"),
	),
	CopyReply: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy last reply"),
	),
	CopyCode: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "copy last code block"),
	),
	Theme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "next theme"),
	),
}

func (m *Model) helpSections() []dialogs.HelpSection {
	editor := chat.EditorKeys()
	scroll := m.messages.KeyMap()
	return []dialogs.HelpSection{
		{
			Title:    "Chat",
			Bindings: []key.Binding{editor.Send, editor.NewLine, keys.Attach, keys.RemoveAttachment, keys.CopyReply, keys.CopyCode},
		},
		{
			Title:    "View",
			Bindings: []key.Binding{scroll.PageUp, scroll.PageDown, scroll.HalfPageUp, scroll.HalfPageDown, keys.Theme},
		},
		{
			Title:    "General",
			Bindings: []key.Binding{keys.Help, keys.Quit},
		},
	}
}
