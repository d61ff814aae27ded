package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/entrepeneur4lyf/verbachat/internal/markdown"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

const (
	userAvatar      = "🧑"
	assistantAvatar = "🤖"
	attachmentIcon  = "📎"

	thumbnailCols = 48
	thumbnailRows = 12
)

// BubbleRenderer turns transcript messages into styled, aligned blocks
type BubbleRenderer struct {
	theme    themes.Theme
	markdown *markdown.Renderer
	cache    *RenderCache
}

// NewBubbleRenderer creates a renderer; md may be nil to show replies verbatim
func NewBubbleRenderer(th themes.Theme, md *markdown.Renderer) *BubbleRenderer {
	return &BubbleRenderer{
		theme:    th,
		markdown: md,
		cache:    NewRenderCache(500),
	}
}

// SetTheme switches the theme and drops every cached rendering
func (r *BubbleRenderer) SetTheme(th themes.Theme) {
	r.theme = th
	r.cache.Clear()
}

// Render returns m as a bubble placed in a row of the given width: user
// messages on the right, assistant messages on the left
func (r *BubbleRenderer) Render(m widget.Message, width int) string {
	if m.ID == "" {
		return r.render(m, width)
	}

	key := r.cache.Key(m.ID, width, r.theme.Name())
	if out, ok := r.cache.Get(key); ok {
		return out
	}
	out := r.render(m, width)
	r.cache.Set(key, out)
	return out
}

func (r *BubbleRenderer) render(m widget.Message, width int) string {
	bubbleWidth := width
	if width >= 40 {
		bubbleWidth = width * 3 / 4
	}
	inner := max(bubbleWidth-4, 8)

	align := lipgloss.Left
	style := r.theme.AssistantBubble()
	switch {
	case m.Sender == widget.SenderUser:
		align = lipgloss.Right
		style = r.theme.UserBubble()
	case m.Failed:
		style = r.theme.FailedBubble()
	}

	block := lipgloss.JoinVertical(align,
		r.header(m),
		style.Render(r.body(m, inner)),
	)
	return lipgloss.PlaceHorizontal(width, align, block)
}

func (r *BubbleRenderer) header(m widget.Message) string {
	stamp := r.theme.MutedText().Render(m.Timestamp())
	if m.Sender == widget.SenderUser {
		label := r.theme.PrimaryText().Bold(true).Render("You")
		return stamp + " " + label + " " + userAvatar
	}
	label := r.theme.SecondaryText().Bold(true).Render("Assistant")
	return assistantAvatar + " " + label + " " + stamp
}

func (r *BubbleRenderer) body(m widget.Message, inner int) string {
	if m.Kind == widget.KindFile {
		if m.IsImage() {
			thumb, err := ImageThumbnail(m.DataURL, min(inner, thumbnailCols), thumbnailRows)
			if err == nil {
				return thumb + "\n" + r.theme.MutedText().Render(m.DisplayName())
			}
			log.Debug("Image preview unavailable", "name", m.DisplayName(), "err", err)
		}
		return r.fileLink(m)
	}

	if m.Sender == widget.SenderAssistant && !m.Failed && r.markdown != nil && markdown.IsMarkdown(m.Text) {
		if err := r.markdown.SetWidth(inner); err == nil {
			if rendered, err := r.markdown.Render(m.Text); err == nil && rendered != "" {
				return rendered
			}
		}
	}
	return wrap(m.Text, inner)
}

func (r *BubbleRenderer) fileLink(m widget.Message) string {
	name := r.theme.PrimaryText().Underline(true).Render(m.DisplayName())
	target, err := LinkTarget(m)
	if err != nil {
		log.Debug("File link unavailable", "name", m.DisplayName(), "err", err)
	}

	line := attachmentIcon + " " + Hyperlink(name, target)
	if m.MIMEType != "" {
		line += " " + r.theme.MutedText().Render("("+m.MIMEType+")")
	}
	return line
}

func wrap(text string, width int) string {
	text = strings.TrimRight(text, "\n")
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
