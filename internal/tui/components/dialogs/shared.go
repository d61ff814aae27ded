package dialogs

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DialogCloseMsg is sent when a dialog should close
type DialogCloseMsg struct{}

// truncate shortens s to maxWidth cells, ANSI aware
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

func formatFileSize(size int64) string {
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

// truncatePath keeps the tail of a path that does not fit
func truncatePath(path string, maxWidth int) string {
	if lipgloss.Width(path) <= maxWidth {
		return path
	}

	parts := strings.Split(path, string(os.PathSeparator))
	for i := 0; i < len(parts)-1; i++ {
		truncated := "…" + string(os.PathSeparator) + strings.Join(parts[i+1:], string(os.PathSeparator))
		if lipgloss.Width(truncated) <= maxWidth {
			return truncated
		}
	}

	return ansi.TruncateLeft(path, lipgloss.Width(path)-maxWidth+1, "…")
}
