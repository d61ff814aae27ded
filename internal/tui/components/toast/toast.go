package toast

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/layout"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
)

// ShowToastMsg is a message to display a toast notification
type ShowToastMsg struct {
	Message  string
	Title    *string
	Color    lipgloss.Color
	Duration time.Duration
}

// DismissToastMsg is a message to dismiss a specific toast
type DismissToastMsg struct {
	ID string
}

// Toast represents a single toast notification
type Toast struct {
	ID        string
	Message   string
	Title     *string
	Color     lipgloss.Color
	CreatedAt time.Time
	Duration  time.Duration
}

// ToastManager manages multiple toast notifications
type ToastManager struct {
	toasts []Toast
	theme  themes.Theme
	seq    int
}

// NewToastManager creates a new toast manager
func NewToastManager(th themes.Theme) *ToastManager {
	return &ToastManager{theme: th}
}

// SetTheme restyles future toasts
func (tm *ToastManager) SetTheme(th themes.Theme) {
	tm.theme = th
}

// Len returns the number of visible toasts
func (tm *ToastManager) Len() int {
	return len(tm.toasts)
}

// Update handles messages for the toast manager
func (tm *ToastManager) Update(msg tea.Msg) (*ToastManager, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowToastMsg:
		tm.seq++
		toast := Toast{
			ID:        fmt.Sprintf("toast-%d", tm.seq),
			Title:     msg.Title,
			Message:   msg.Message,
			Color:     msg.Color,
			CreatedAt: time.Now(),
			Duration:  msg.Duration,
		}
		tm.toasts = append(tm.toasts, toast)

		return tm, tea.Tick(toast.Duration, func(time.Time) tea.Msg {
			return DismissToastMsg{ID: toast.ID}
		})

	case DismissToastMsg:
		kept := tm.toasts[:0]
		for _, t := range tm.toasts {
			if t.ID != msg.ID {
				kept = append(kept, t)
			}
		}
		tm.toasts = kept
	}

	return tm, nil
}

func (tm *ToastManager) renderSingleToast(toast Toast, width int) string {
	maxWidth := max(30, width/3)

	var content strings.Builder
	if toast.Title != nil {
		content.WriteString(lipgloss.NewStyle().Foreground(toast.Color).Bold(true).Render(*toast.Title))
		content.WriteString("\n")
	}
	content.WriteString(toast.Message)

	return lipgloss.NewStyle().
		Foreground(tm.theme.Foreground()).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(toast.Color).
		Width(min(maxWidth, lipgloss.Width(toast.Message)+2)).
		Render(content.String())
}

// View renders all active toasts stacked vertically
func (tm *ToastManager) View(width int) string {
	if len(tm.toasts) == 0 {
		return ""
	}

	views := make([]string, 0, len(tm.toasts))
	for _, toast := range tm.toasts {
		views = append(views, tm.renderSingleToast(toast, width))
	}
	return lipgloss.JoinVertical(lipgloss.Right, views...)
}

// RenderOverlay renders the toasts in the top-right corner of background
func (tm *ToastManager) RenderOverlay(width, height int, background string) string {
	view := tm.View(width)
	if view == "" || lipgloss.Height(view) > height-2 {
		return background
	}
	return layout.PlaceOverlay(width, height, view, background, layout.TopRight)
}

type toastOptions struct {
	title    *string
	duration time.Duration
	color    lipgloss.Color
}

type ToastOption func(*toastOptions)

func WithTitle(title string) ToastOption {
	return func(t *toastOptions) {
		t.title = &title
	}
}

func WithDuration(duration time.Duration) ToastOption {
	return func(t *toastOptions) {
		t.duration = duration
	}
}

func withColor(color lipgloss.Color) ToastOption {
	return func(t *toastOptions) {
		t.color = color
	}
}

// NewToast returns a command that shows message for five seconds by default
func NewToast(message string, th themes.Theme, options ...ToastOption) tea.Cmd {
	opts := toastOptions{
		duration: 5 * time.Second,
		color:    th.Primary(),
	}
	for _, option := range options {
		option(&opts)
	}

	return func() tea.Msg {
		return ShowToastMsg{
			Message:  message,
			Title:    opts.title,
			Duration: opts.duration,
			Color:    opts.color,
		}
	}
}

func NewInfoToast(message string, th themes.Theme, options ...ToastOption) tea.Cmd {
	return NewToast(message, th, append(options, withColor(th.Info()))...)
}

func NewSuccessToast(message string, th themes.Theme, options ...ToastOption) tea.Cmd {
	return NewToast(message, th, append(options, withColor(th.Success()))...)
}

func NewWarningToast(message string, th themes.Theme, options ...ToastOption) tea.Cmd {
	return NewToast(message, th, append(options, withColor(th.Warning()))...)
}

func NewErrorToast(message string, th themes.Theme, options ...ToastOption) tea.Cmd {
	return NewToast(message, th, append(options, withColor(th.Error()))...)
}
