package themes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the interface for TUI themes
type Theme interface {
	Name() string

	// Base styles
	Base() lipgloss.Style

	// Text styles
	PrimaryText() lipgloss.Style
	SecondaryText() lipgloss.Style
	MutedText() lipgloss.Style
	ErrorText() lipgloss.Style
	SuccessText() lipgloss.Style

	// UI element styles
	Border() lipgloss.Style
	BorderActive() lipgloss.Style

	// Message bubbles
	UserBubble() lipgloss.Style
	AssistantBubble() lipgloss.Style
	FailedBubble() lipgloss.Style

	// Dialog styles
	DialogStyle() lipgloss.Style
	DialogTitleStyle() lipgloss.Style

	// List styles
	ListItem() lipgloss.Style
	ListItemActive() lipgloss.Style

	// Status styles
	StatusBar() lipgloss.Style
	StatusKey() lipgloss.Style
	StatusValue() lipgloss.Style

	// Colors
	Primary() lipgloss.Color
	Secondary() lipgloss.Color
	BackgroundColor() lipgloss.Color
	Foreground() lipgloss.Color
	Muted() lipgloss.Color
	Error() lipgloss.Color
	Success() lipgloss.Color
	Warning() lipgloss.Color
	Info() lipgloss.Color
}

var registry = map[string]func() Theme{
	"default":   NewDefaultTheme,
	"ascii":     NewASCIITheme,
	"latte":     func() Theme { return NewCatppuccinTheme("latte") },
	"frappe":    func() Theme { return NewCatppuccinTheme("frappe") },
	"macchiato": func() Theme { return NewCatppuccinTheme("macchiato") },
	"mocha":     func() Theme { return NewCatppuccinTheme("mocha") },
}

// Names lists the registered theme names in order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named theme
func Get(name string) (Theme, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// GetOrDefault returns the named theme, falling back to the default one
func GetOrDefault(name string) Theme {
	if t, err := Get(name); err == nil {
		return t
	}
	return NewDefaultTheme()
}
