package themes

import (
	"github.com/charmbracelet/lipgloss"
)

// DefaultTheme is a palette-driven theme; the other themes reuse it with
// their own colors
type DefaultTheme struct {
	name       string
	primary    lipgloss.Color
	secondary  lipgloss.Color
	background lipgloss.Color
	surface    lipgloss.Color
	foreground lipgloss.Color
	error      lipgloss.Color
	success    lipgloss.Color
	warning    lipgloss.Color
	info       lipgloss.Color
	muted      lipgloss.Color
	border     lipgloss.Border
}

// NewDefaultTheme creates a new default theme
func NewDefaultTheme() Theme {
	return &DefaultTheme{
		name:       "default",
		primary:    lipgloss.Color("#00D9FF"), // Cyan
		secondary:  lipgloss.Color("#FF79C6"), // Pink
		background: lipgloss.Color("#282A36"),
		surface:    lipgloss.Color("#44475A"),
		foreground: lipgloss.Color("#F8F8F2"),
		error:      lipgloss.Color("#FF5555"),
		success:    lipgloss.Color("#50FA7B"),
		warning:    lipgloss.Color("#FFB86C"),
		info:       lipgloss.Color("#8BE9FD"),
		muted:      lipgloss.Color("#6272A4"),
		border:     lipgloss.RoundedBorder(),
	}
}

func (t *DefaultTheme) Name() string { return t.name }

func (t *DefaultTheme) Base() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.foreground)
}

func (t *DefaultTheme) PrimaryText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.primary)
}

func (t *DefaultTheme) SecondaryText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.secondary)
}

func (t *DefaultTheme) MutedText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.muted)
}

func (t *DefaultTheme) ErrorText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.error)
}

func (t *DefaultTheme) SuccessText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.success)
}

func (t *DefaultTheme) Border() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.muted)
}

func (t *DefaultTheme) BorderActive() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.primary)
}

func (t *DefaultTheme) UserBubble() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.primary).
		Foreground(t.foreground).
		Padding(0, 1)
}

func (t *DefaultTheme) AssistantBubble() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.secondary).
		Foreground(t.foreground).
		Padding(0, 1)
}

func (t *DefaultTheme) FailedBubble() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.error).
		Foreground(t.error).
		Padding(0, 1)
}

func (t *DefaultTheme) DialogStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.border).
		BorderForeground(t.primary).
		Background(t.background).
		Padding(1, 2)
}

func (t *DefaultTheme) DialogTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.primary).
		Bold(true).
		MarginBottom(1)
}

func (t *DefaultTheme) ListItem() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.foreground).
		PaddingLeft(2)
}

func (t *DefaultTheme) ListItemActive() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.primary).
		Bold(true).
		PaddingLeft(2)
}

func (t *DefaultTheme) StatusBar() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.surface).
		Foreground(t.foreground).
		Padding(0, 1)
}

func (t *DefaultTheme) StatusKey() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.surface).
		Foreground(t.muted).
		MarginRight(1)
}

func (t *DefaultTheme) StatusValue() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(t.surface).
		Foreground(t.primary).
		MarginRight(2)
}

// Color getters
func (t *DefaultTheme) Primary() lipgloss.Color         { return t.primary }
func (t *DefaultTheme) Secondary() lipgloss.Color       { return t.secondary }
func (t *DefaultTheme) BackgroundColor() lipgloss.Color { return t.background }
func (t *DefaultTheme) Foreground() lipgloss.Color      { return t.foreground }
func (t *DefaultTheme) Muted() lipgloss.Color           { return t.muted }
func (t *DefaultTheme) Error() lipgloss.Color           { return t.error }
func (t *DefaultTheme) Success() lipgloss.Color         { return t.success }
func (t *DefaultTheme) Warning() lipgloss.Color         { return t.warning }
func (t *DefaultTheme) Info() lipgloss.Color            { return t.info }
