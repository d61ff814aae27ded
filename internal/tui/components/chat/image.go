package chat

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// Thumbnail renders img with one half block per two vertical pixels, scaled
// down to fit cols x rows terminal cells
func Thumbnail(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	fit := imaging.Fit(img, cols, rows*2, imaging.Box)
	b := fit.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteString("\n")
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexColor(fit.At(x, y))
			bottom := ""
			if y+1 < b.Max.Y {
				bottom = hexColor(fit.At(x, y+1))
			}
			sb.WriteString(halfBlock(top, bottom))
		}
	}
	return sb.String()
}

// ImageThumbnail decodes an image data URL and renders it with Thumbnail
func ImageThumbnail(dataURL string, cols, rows int) (string, error) {
	_, data, err := widget.DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return Thumbnail(img, cols, rows), nil
}

// hexColor returns "" for fully transparent pixels
func hexColor(c color.Color) string {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return col.Hex()
}

func halfBlock(top, bottom string) string {
	switch {
	case top == "" && bottom == "":
		return " "
	case top == "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(bottom)).Render(lowerHalf)
	case bottom == "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Render(upperHalf)
	default:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(top)).
			Background(lipgloss.Color(bottom)).
			Render(upperHalf)
	}
}
