package themes

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

func flavor(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

// NewCatppuccinTheme builds a theme from a Catppuccin flavor name
func NewCatppuccinTheme(name string) Theme {
	f := flavor(name)
	c := func(color catppuccin.Color) lipgloss.Color { return lipgloss.Color(color.Hex) }

	return &DefaultTheme{
		name:       name,
		primary:    c(f.Blue()),
		secondary:  c(f.Mauve()),
		background: c(f.Base()),
		surface:    c(f.Surface0()),
		foreground: c(f.Text()),
		error:      c(f.Red()),
		success:    c(f.Green()),
		warning:    c(f.Peach()),
		info:       c(f.Sky()),
		muted:      c(f.Overlay1()),
		border:     lipgloss.RoundedBorder(),
	}
}
