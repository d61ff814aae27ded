package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position represents where to place an overlay
type Position int

const (
	Center Position = iota
	Top
	Bottom
	TopRight
	BottomRight
)

// PlaceOverlay places content over a width x height background at the given
// position. Both strings may carry ANSI styling.
func PlaceOverlay(width, height int, overlay, background string, pos Position) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	var startX, startY int
	switch pos {
	case Center:
		startX = (width - overlayWidth) / 2
		startY = (height - overlayHeight) / 2
	case Top:
		startX = (width - overlayWidth) / 2
	case Bottom:
		startX = (width - overlayWidth) / 2
		startY = height - overlayHeight
	case TopRight:
		startX = width - overlayWidth - 1
		startY = 1
	case BottomRight:
		startX = width - overlayWidth - 1
		startY = height - overlayHeight - 1
	}
	startX = max(startX, 0)
	startY = max(startY, 0)

	return PlaceAt(startX, startY, height, overlay, background)
}

// PlaceAt splices overlay into background with its top-left corner at x, y.
// The result always has height lines.
func PlaceAt(x, y, height int, overlay, background string) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	bgLines = bgLines[:height]

	for i, line := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= height {
			continue
		}
		bgLines[row] = spliceLine(bgLines[row], line, x)
	}

	return strings.Join(bgLines, "\n")
}

func spliceLine(bg, fg string, x int) string {
	bgWidth := ansi.StringWidth(bg)
	if bgWidth < x {
		bg += strings.Repeat(" ", x-bgWidth)
		bgWidth = x
	}

	left := ansi.Truncate(bg, x, "")
	fgWidth := ansi.StringWidth(fg)
	right := ""
	if x+fgWidth < bgWidth {
		right = ansi.TruncateLeft(bg, x+fgWidth, "")
	}

	return left + ansi.ResetStyle + fg + ansi.ResetStyle + right
}
