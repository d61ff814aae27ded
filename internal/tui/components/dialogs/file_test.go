package dialogs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	for _, name := range []string{"readme.md", "photo.png", "notes.txt", ".hidden", "docs/guide.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}
	return root
}

// load runs the directory listing synchronously
func load(t *testing.T, f *FileDialog, path string) {
	t.Helper()
	f.Update(f.loadDirectory(path)())
}

func names(f *FileDialog) []string {
	out := make([]string, len(f.visible))
	for i, e := range f.visible {
		out[i] = e.Name()
	}
	return out
}

func typeText(f *FileDialog, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFileDialogListing(t *testing.T) {
	root := setupTree(t)
	f := NewFileDialog(themes.NewDefaultTheme(), root)
	load(t, f, root)

	assert.Equal(t, []string{"docs", "notes.txt", "photo.png", "readme.md"}, names(f))

	f.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	// toggling hidden returns a reload command; run it directly
	load(t, f, root)
	assert.Contains(t, names(f), ".hidden")
}

func TestFileDialogFuzzyFilter(t *testing.T) {
	root := setupTree(t)
	f := NewFileDialog(themes.NewDefaultTheme(), root)
	load(t, f, root)

	typeText(f, "rdm")
	assert.Equal(t, []string{"readme.md"}, names(f))

	typeText(f, "zzz")
	assert.Empty(t, names(f))
}

func TestFileDialogSelectFile(t *testing.T) {
	root := setupTree(t)
	f := NewFileDialog(themes.NewDefaultTheme(), root)
	load(t, f, root)

	typeText(f, "photo")
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(FileSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "photo.png"), msg.Path)
	assert.Equal(t, root, msg.Dir)
}

func TestFileDialogNavigation(t *testing.T) {
	root := setupTree(t)
	f := NewFileDialog(themes.NewDefaultTheme(), root)
	load(t, f, root)

	// "docs" sorts first
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	f.Update(cmd())
	assert.Equal(t, filepath.Join(root, "docs"), f.CurrentPath())
	assert.Equal(t, []string{"guide.md"}, names(f))

	_, cmd = f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.NotNil(t, cmd)
	f.Update(cmd())
	assert.Equal(t, root, f.CurrentPath())
}

func TestFileDialogBackspaceEditsFilter(t *testing.T) {
	root := setupTree(t)
	f := NewFileDialog(themes.NewDefaultTheme(), root)
	load(t, f, root)

	typeText(f, "no")
	f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "n", f.filter.Value())
	assert.Equal(t, root, f.CurrentPath())
}

func TestFileDialogCancel(t *testing.T) {
	f := NewFileDialog(themes.NewDefaultTheme(), t.TempDir())
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, DialogCloseMsg{}, cmd())
}

func TestFileDialogMissingStartDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	f := NewFileDialog(themes.NewDefaultTheme(), filepath.Join(t.TempDir(), "gone"))
	assert.Equal(t, cwd, f.CurrentPath())
}

func TestFileDialogView(t *testing.T) {
	root := setupTree(t)
	f := NewFileDialog(themes.NewDefaultTheme(), root)
	f.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	load(t, f, root)

	view := ansi.Strip(f.View())
	assert.Contains(t, view, "Attach a file")
	assert.Contains(t, view, "> 📁 docs/")
	assert.Contains(t, view, "readme.md (1 B)")
}

func TestHelpDialog(t *testing.T) {
	h := NewHelpDialog(themes.NewDefaultTheme(), []HelpSection{{
		Title: "Chat",
		Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled()),
		},
	}})
	h.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	view := ansi.Strip(h.View())
	assert.Contains(t, view, "Chat")
	assert.Contains(t, view, "send")
	assert.False(t, strings.Contains(view, "hidden"))

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, DialogCloseMsg{}, cmd())
}

func TestTruncatePath(t *testing.T) {
	path := filepath.Join("home", "someone", "projects", "verbachat")
	assert.Equal(t, path, truncatePath(path, 100))

	got := truncatePath(path, 20)
	assert.LessOrEqual(t, ansi.StringWidth(got), 20)
	assert.True(t, strings.HasSuffix(got, "verbachat"))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.5 KB", formatFileSize(1536))
	assert.Equal(t, "2.0 MB", formatFileSize(2*1024*1024))
}
