package dialogs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
)

// FileSelectedMsg is sent when a file is picked
type FileSelectedMsg struct {
	Path string
	// Dir is the directory the dialog was showing, for the next time it opens.
	Dir string
}

// FileDialog is a directory browser with a fuzzy name filter
type FileDialog struct {
	theme         themes.Theme
	width         int
	height        int
	currentPath   string
	entries       []fs.DirEntry
	visible       []fs.DirEntry
	selectedIndex int
	showHidden    bool
	filter        textinput.Model
	err           error
}

// NewFileDialog creates a file picker rooted at dir, or the working
// directory when dir is empty or missing
func NewFileDialog(theme themes.Theme, dir string) *FileDialog {
	if info, err := os.Stat(dir); dir == "" || err != nil || !info.IsDir() {
		dir, _ = os.Getwd()
	}

	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Focus()

	return &FileDialog{
		theme:       theme,
		currentPath: dir,
		filter:      ti,
	}
}

// CurrentPath returns the directory being shown
func (f *FileDialog) CurrentPath() string {
	return f.currentPath
}

func (f *FileDialog) Init() tea.Cmd {
	return tea.Batch(f.loadDirectory(f.currentPath), textinput.Blink)
}

func (f *FileDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		f.filter.Width = min(f.width-12, 60)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, fileKeys.Cancel):
			return f, func() tea.Msg { return DialogCloseMsg{} }

		case key.Matches(msg, fileKeys.Up):
			f.moveUp()
			return f, nil

		case key.Matches(msg, fileKeys.Down):
			f.moveDown()
			return f, nil

		case key.Matches(msg, fileKeys.Enter):
			return f, f.handleEnter()

		case key.Matches(msg, fileKeys.Back) && f.filter.Value() == "":
			return f, f.navigateUp()

		case key.Matches(msg, fileKeys.ToggleHidden):
			f.showHidden = !f.showHidden
			return f, f.loadDirectory(f.currentPath)

		case key.Matches(msg, fileKeys.Home):
			return f, f.navigateHome()
		}

		var cmd tea.Cmd
		before := f.filter.Value()
		f.filter, cmd = f.filter.Update(msg)
		if f.filter.Value() != before {
			f.applyFilter()
		}
		return f, cmd

	case directoryLoadedMsg:
		f.currentPath = msg.path
		f.entries = msg.entries
		f.err = nil
		f.filter.Reset()
		f.applyFilter()

	case directoryErrorMsg:
		f.err = msg.err
	}

	return f, nil
}

// applyFilter narrows the listing to fuzzy matches, best match first
func (f *FileDialog) applyFilter() {
	f.selectedIndex = 0

	query := strings.TrimSpace(f.filter.Value())
	if query == "" {
		f.visible = f.entries
		return
	}

	names := make([]string, len(f.entries))
	for i, entry := range f.entries {
		names[i] = entry.Name()
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	f.visible = make([]fs.DirEntry, 0, len(ranks))
	for _, rank := range ranks {
		f.visible = append(f.visible, f.entries[rank.OriginalIndex])
	}
}

func (f *FileDialog) View() string {
	if f.width == 0 || f.height == 0 {
		return ""
	}

	dialogWidth := min(f.width-4, 70)
	dialogHeight := min(f.height-4, 30)
	innerWidth := dialogWidth - 6

	var content strings.Builder

	titleStyle := f.theme.DialogTitleStyle().Width(innerWidth).Align(lipgloss.Center)
	content.WriteString(titleStyle.Render("Attach a file"))
	content.WriteString("\n")

	content.WriteString(f.theme.MutedText().Render(truncatePath(f.currentPath, innerWidth)))
	content.WriteString("\n")
	content.WriteString(f.filter.View())
	content.WriteString("\n\n")

	listHeight := max(dialogHeight-10, 3)
	content.WriteString(f.renderFileList(innerWidth, listHeight))
	content.WriteString("\n\n")

	helpStyle := f.theme.MutedText().Width(innerWidth).Align(lipgloss.Center)
	content.WriteString(helpStyle.Render(f.renderHelp()))

	dialogStyle := f.theme.DialogStyle().
		Width(dialogWidth).
		MaxWidth(dialogWidth).
		MaxHeight(dialogHeight)

	return dialogStyle.Render(content.String())
}

func (f *FileDialog) renderFileList(width, height int) string {
	if f.err != nil {
		return f.theme.ErrorText().Render(truncate(f.err.Error(), width))
	}
	if len(f.visible) == 0 {
		if f.filter.Value() != "" {
			return f.theme.MutedText().Render("No matches")
		}
		return f.theme.MutedText().Render("Empty directory")
	}

	startIdx := 0
	if f.selectedIndex >= height {
		startIdx = f.selectedIndex - height + 1
	}
	endIdx := min(startIdx+height, len(f.visible))

	lines := make([]string, 0, endIdx-startIdx)
	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, f.renderEntry(f.visible[i], i == f.selectedIndex, width))
	}

	return strings.Join(lines, "\n")
}

func (f *FileDialog) renderEntry(entry fs.DirEntry, selected bool, width int) string {
	marker := " "
	if selected {
		marker = ">"
	}

	name := entry.Name()
	icon := fileIcon(name)
	if entry.IsDir() {
		name += "/"
		icon = "📁"
	}

	line := fmt.Sprintf("%s %s %s", marker, icon, name)
	if info, err := entry.Info(); err == nil && !entry.IsDir() {
		line += fmt.Sprintf(" (%s)", formatFileSize(info.Size()))
	}

	style := f.theme.ListItem()
	if selected {
		style = f.theme.ListItemActive()
	}

	return style.Render(truncate(line, width-2))
}

func (f *FileDialog) renderHelp() string {
	helps := []string{
		"↑/↓: navigate",
		"enter: open/attach",
		"backspace: up",
		"ctrl+t: hidden",
		"esc: cancel",
	}
	return strings.Join(helps, " • ")
}

func (f *FileDialog) loadDirectory(path string) tea.Cmd {
	showHidden := f.showHidden
	return func() tea.Msg {
		entries, err := os.ReadDir(path)
		if err != nil {
			return directoryErrorMsg{err: err}
		}

		if !showHidden {
			filtered := entries[:0]
			for _, entry := range entries {
				if !strings.HasPrefix(entry.Name(), ".") {
					filtered = append(filtered, entry)
				}
			}
			entries = filtered
		}

		// Directories first, then alphabetically
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return entries[i].IsDir()
			}
			return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
		})

		return directoryLoadedMsg{path: path, entries: entries}
	}
}

func (f *FileDialog) handleEnter() tea.Cmd {
	if f.selectedIndex < 0 || f.selectedIndex >= len(f.visible) {
		return nil
	}

	entry := f.visible[f.selectedIndex]
	path := filepath.Join(f.currentPath, entry.Name())
	if entry.IsDir() {
		return f.loadDirectory(path)
	}

	dir := f.currentPath
	return func() tea.Msg {
		return FileSelectedMsg{Path: path, Dir: dir}
	}
}

func (f *FileDialog) navigateUp() tea.Cmd {
	parent := filepath.Dir(f.currentPath)
	if parent == f.currentPath {
		return nil
	}
	return f.loadDirectory(parent)
}

func (f *FileDialog) navigateHome() tea.Cmd {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return f.loadDirectory(home)
}

func (f *FileDialog) moveUp() {
	if f.selectedIndex > 0 {
		f.selectedIndex--
	}
}

func (f *FileDialog) moveDown() {
	if f.selectedIndex < len(f.visible)-1 {
		f.selectedIndex++
	}
}

func fileIcon(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg":
		return "🖼️"
	case ".zip", ".tar", ".gz", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	default:
		return "📄"
	}
}

type directoryLoadedMsg struct {
	path    string
	entries []fs.DirEntry
}

type directoryErrorMsg struct {
	err error
}

type fileKeyMap struct {
	Cancel       key.Binding
	Up           key.Binding
	Down         key.Binding
	Enter        key.Binding
	Back         key.Binding
	ToggleHidden key.Binding
	Home         key.Binding
}

var fileKeys = fileKeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/attach"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "parent directory"),
	),
	ToggleHidden: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle hidden files"),
	),
	Home: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "go home"),
	),
}
