package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// RendererConfig holds configuration for markdown rendering
type RendererConfig struct {
	Width int
	// Style is a glamour standard style name ("dark", "light", "notty") or
	// "auto" to follow the terminal background.
	Style string
}

// DefaultConfig returns a configuration suited to chat bubbles
func DefaultConfig() *RendererConfig {
	return &RendererConfig{
		Width: 80,
		Style: "auto",
	}
}

// PlainConfig renders without colors, for piped output
func PlainConfig() *RendererConfig {
	return &RendererConfig{
		Width: 80,
		Style: "notty",
	}
}

// Renderer wraps glamour and rebuilds it when the width changes
type Renderer struct {
	mu              sync.Mutex
	glamourRenderer *glamour.TermRenderer
	config          RendererConfig
}

// NewRenderer creates a new markdown renderer with the given configuration
func NewRenderer(config *RendererConfig) (*Renderer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	r := &Renderer{config: *config}
	if err := r.rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) rebuild() error {
	style := glamour.WithAutoStyle()
	if r.config.Style != "" && r.config.Style != "auto" {
		style = glamour.WithStandardStyle(r.config.Style)
	}

	tr, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(r.config.Width),
	)
	if err != nil {
		return fmt.Errorf("failed to create glamour renderer: %w", err)
	}
	r.glamourRenderer = tr
	return nil
}

// SetWidth changes the wrap width
func (r *Renderer) SetWidth(width int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width < 1 || width == r.config.Width {
		return nil
	}
	r.config.Width = width
	return r.rebuild()
}

// SetStyle switches the glamour style
func (r *Renderer) SetStyle(style string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if style == r.config.Style {
		return nil
	}
	r.config.Style = style
	return r.rebuild()
}

// Width returns the current wrap width
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config.Width
}

// Render renders markdown content to styled terminal output
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	r.mu.Lock()
	rendered, err := r.glamourRenderer.Render(preprocessMarkdown(markdown))
	r.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return postprocessOutput(rendered), nil
}

// preprocessMarkdown trims trailing whitespace outside code fences
func preprocessMarkdown(markdown string) string {
	lines := strings.Split(markdown, "\n")
	inFence := false

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if !inFence {
			lines[i] = strings.TrimRight(line, " \t")
		}
	}

	return strings.Join(lines, "\n")
}

// postprocessOutput collapses blank runs and trims the outer padding glamour adds
func postprocessOutput(rendered string) string {
	lines := strings.Split(rendered, "\n")
	result := make([]string, 0, len(lines))
	blankCount := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blankCount++
			if blankCount <= 1 {
				result = append(result, "")
			}
			continue
		}
		blankCount = 0
		result = append(result, strings.TrimRight(line, " "))
	}

	return strings.Trim(strings.Join(result, "\n"), "\n")
}
