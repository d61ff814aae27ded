package chat

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

// tempDirName is created under os.TempDir for files received as data URLs
const tempDirName = "verbachat-files"

// Hyperlink wraps text in an OSC 8 hyperlink to target
func Hyperlink(text, target string) string {
	if target == "" {
		return text
	}
	return ansi.SetHyperlink(target) + text + ansi.ResetHyperlink()
}

// FileURL returns a file:// URL for a local path
func FileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// LinkTarget returns what a file message should open: the source file for
// local attachments, a temp copy for data URLs, or the content itself when it
// already is a web URL
func LinkTarget(m widget.Message) (string, error) {
	if m.SourcePath != "" {
		return FileURL(m.SourcePath), nil
	}
	if strings.HasPrefix(m.DataURL, "http://") || strings.HasPrefix(m.DataURL, "https://") {
		return m.DataURL, nil
	}
	path, err := SaveToTemp(m)
	if err != nil {
		return "", err
	}
	return FileURL(path), nil
}

// SaveToTemp writes the payload of a file message to a temporary file and
// returns its path
func SaveToTemp(m widget.Message) (string, error) {
	_, data, err := widget.DecodeDataURL(m.DataURL)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(os.TempDir(), tempDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	prefix := m.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	if prefix == "" {
		prefix = time.Now().Format("20060102-150405")
	}
	name := filepath.Base(m.DisplayName())
	path := filepath.Join(dir, prefix+"-"+name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}
