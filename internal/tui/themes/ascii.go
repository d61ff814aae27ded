package themes

import (
	"github.com/charmbracelet/lipgloss"
)

// NewASCIITheme creates a theme limited to the 16 ANSI colors and plain
// ASCII borders, for terminals without Unicode box drawing
func NewASCIITheme() Theme {
	return &DefaultTheme{
		name:       "ascii",
		primary:    lipgloss.Color("6"),
		secondary:  lipgloss.Color("5"),
		background: lipgloss.Color(""),
		surface:    lipgloss.Color("0"),
		foreground: lipgloss.Color("7"),
		error:      lipgloss.Color("1"),
		success:    lipgloss.Color("2"),
		warning:    lipgloss.Color("3"),
		info:       lipgloss.Color("4"),
		muted:      lipgloss.Color("8"),
		border:     asciiBorder,
	}
}

var asciiBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}
