package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPlaceAt(t *testing.T) {
	bg := strings.Join([]string{"..........", "..........", ".........."}, "\n")

	got := ansi.Strip(PlaceAt(2, 1, 3, "ab\ncd", bg))
	assert.Equal(t, "..........\n..ab......\n..cd......", got)
}

func TestPlaceAtPadsShortLines(t *testing.T) {
	got := ansi.Strip(PlaceAt(4, 0, 2, "xy", "ab"))
	assert.Equal(t, "ab  xy\n", got)
}

func TestPlaceOverlayCenter(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(" ", 10)+"\n", 4) + strings.Repeat(" ", 10)

	got := ansi.Strip(PlaceOverlay(10, 5, "##", bg, Center))
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "    ##    ", lines[2])
}

func TestPlaceOverlayKeepsStyledBackground(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("0123456789")

	got := ansi.Strip(PlaceAt(3, 0, 1, "XX", styled))
	assert.Equal(t, "012XX56789", got)
}
