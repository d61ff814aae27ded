package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

const (
	previewThumbRows  = 4
	previewThumbCols  = 16
	previewSnippetLen = 3
)

// PreviewModel shows the staged attachment above the editor
type PreviewModel struct {
	theme      themes.Theme
	attachment *widget.Attachment
	width      int
	// detail is the rendered thumbnail or snippet for the current attachment
	detail string
}

func NewPreviewModel(th themes.Theme) *PreviewModel {
	return &PreviewModel{theme: th}
}

// SetTheme restyles the preview
func (m *PreviewModel) SetTheme(th themes.Theme) {
	m.theme = th
	m.Set(m.attachment)
}

// Set shows a; nil hides the preview
func (m *PreviewModel) Set(a *widget.Attachment) {
	m.attachment = a
	m.detail = ""
	if a == nil {
		return
	}

	if a.IsImage() {
		if thumb, err := ImageThumbnail(a.DataURL(), previewThumbCols, previewThumbRows); err == nil {
			m.detail = thumb
		}
		return
	}
	if strings.HasPrefix(a.MIMEType, "text/") || a.MIMEType == "application/json" {
		m.detail = Snippet(a.Name, a.Data, previewSnippetLen, SnippetStyle(m.theme.Name()))
	}
}

func (m *PreviewModel) Attachment() *widget.Attachment {
	return m.attachment
}

func (m *PreviewModel) SetWidth(width int) {
	m.width = width
}

func (m *PreviewModel) View() string {
	if m.attachment == nil {
		return ""
	}

	a := m.attachment
	line := fmt.Sprintf("%s %s %s",
		attachmentIcon,
		m.theme.PrimaryText().Render(a.Name),
		m.theme.MutedText().Render(fmt.Sprintf("(%s, %s)", a.MIMEType, humanSize(a.Size))),
	)
	line += "  " + m.theme.MutedText().Render("ctrl+x remove")

	if m.detail == "" {
		return ansi.Truncate(line, m.width, "…")
	}

	lines := []string{ansi.Truncate(line, m.width, "…")}
	for _, l := range strings.Split(m.detail, "\n") {
		lines = append(lines, "   "+ansi.Truncate(l, max(m.width-3, 1), ""))
	}
	return strings.Join(lines, "\n")
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
