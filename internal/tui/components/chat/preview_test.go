package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

func TestPreviewHiddenWithoutAttachment(t *testing.T) {
	p := NewPreviewModel(themes.NewDefaultTheme())
	p.SetWidth(80)
	assert.Empty(t, p.View())
}

func TestPreviewTextAttachment(t *testing.T) {
	p := NewPreviewModel(themes.NewDefaultTheme())
	p.SetWidth(80)
	p.Set(widget.NewAttachment("notes.txt", []byte("line one\nline two\nline three\nline four\n")))

	view := stripANSI(p.View())
	assert.Contains(t, view, "📎 notes.txt (text/plain")
	assert.Contains(t, view, "ctrl+x remove")
	assert.Contains(t, view, "line three")
	assert.NotContains(t, view, "line four")
}

func TestPreviewImageAttachment(t *testing.T) {
	p := NewPreviewModel(themes.NewDefaultTheme())
	p.SetWidth(80)
	p.Set(widget.NewAttachment("dot.png", pngBytes(t, 4, 4)))

	view := stripANSI(p.View())
	assert.Contains(t, view, "dot.png (image/png, ")
	assert.Contains(t, view, upperHalf)

	p.Set(nil)
	assert.Empty(t, p.View())
	assert.Nil(t, p.Attachment())
}

func TestPreviewTruncatesToWidth(t *testing.T) {
	p := NewPreviewModel(themes.NewDefaultTheme())
	p.SetWidth(20)
	p.Set(widget.NewAttachment(strings.Repeat("long", 10)+".bin", []byte{0, 1, 2}))

	assert.LessOrEqual(t, len([]rune(stripANSI(p.View()))), 20)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "3 B", humanSize(3))
	assert.Equal(t, "1.0 KB", humanSize(1024))
}
