package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/entrepeneur4lyf/verbachat/internal/config"
	"github.com/entrepeneur4lyf/verbachat/internal/markdown"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/components/chat"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/components/dialogs"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/components/status"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/components/toast"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/layout"
	"github.com/entrepeneur4lyf/verbachat/internal/tui/themes"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

// Options configures the interactive chat
type Options struct {
	Controller *widget.Controller
	// Theme overrides the remembered theme when set.
	Theme    string
	Version  string
	Endpoint string
	Mode     string
	// StatePath is the TOML state file; empty disables persistence.
	StatePath string
}

// replyMsg carries the outcome of Deliver back to the update loop
type replyMsg struct {
	reply widget.Message
}

// Model is the root bubbletea model. It is also the widget.View the
// controller drives; the controller only calls it from Update.
type Model struct {
	ctx  context.Context
	ctrl *widget.Controller

	theme    themes.Theme
	markdown *markdown.Renderer
	messages *chat.MessagesModel
	editor   *chat.EditorModel
	preview  *chat.PreviewModel
	status   *status.Model
	toasts   *toast.ToastManager

	fileDialog     *dialogs.FileDialog
	helpDialog     *dialogs.HelpDialog
	showFileDialog bool
	showHelpDialog bool

	state     *config.State
	statePath string

	width  int
	height int

	// pending collects commands produced by View callbacks during Update
	pending []tea.Cmd
	copy    func(string) error
}

var _ widget.View = (*Model)(nil)

// New builds the model and binds it to the controller
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.Controller == nil {
		return nil, errors.New("tui: controller is required")
	}

	state := config.NewState()
	if opts.StatePath != "" {
		loaded, err := config.LoadState(opts.StatePath)
		if err != nil {
			log.Warn("Ignoring unreadable state file", "file", opts.StatePath, "err", err)
		} else {
			state = loaded
		}
	}

	themeName := opts.Theme
	if themeName == "" {
		themeName = state.Theme
	}
	th, err := themes.Get(themeName)
	if err != nil {
		log.Warn("Falling back to default theme", "err", err)
		th = themes.NewDefaultTheme()
	}

	md, err := markdown.NewRenderer(&markdown.RendererConfig{Width: 80, Style: glamourStyle(th)})
	if err != nil {
		return nil, err
	}

	m := &Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		theme:     th,
		markdown:  md,
		messages:  chat.NewMessagesModel(th, md),
		editor:    chat.NewEditorModel(th),
		preview:   chat.NewPreviewModel(th),
		status:    status.NewStatusBar(th, opts.Version, opts.Endpoint, opts.Mode),
		toasts:    toast.NewToastManager(th),
		state:     state,
		statePath: opts.StatePath,
		copy:      clipboard.WriteAll,
	}
	m.state.Theme = th.Name()
	if opts.Endpoint != "" {
		m.state.LastEndpoint = opts.Endpoint
	}
	m.status.SetHint("f1 help")
	m.helpDialog = dialogs.NewHelpDialog(th, m.helpSections())

	// replay anything rendered before the UI existed
	for _, msg := range m.ctrl.Transcript() {
		m.messages.Append(msg)
	}
	m.preview.Set(m.ctrl.Staged())
	m.ctrl.SetView(m)

	return m, nil
}

// glamourStyle picks the markdown style matching a theme's background
func glamourStyle(th themes.Theme) string {
	switch th.Name() {
	case "latte":
		return "light"
	case "ascii":
		return "ascii"
	default:
		return "dark"
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), tea.SetWindowTitle("verbachat"))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.helpDialog.Update(msg)
		if m.fileDialog != nil {
			m.fileDialog.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showFileDialog || m.showHelpDialog {
			return m, m.updateDialog(msg)
		}

		scroll := m.messages.KeyMap()
		switch {
		case key.Matches(msg, keys.Quit):
			m.saveState()
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			m.showHelpDialog = true
			return m, nil

		case key.Matches(msg, keys.Attach):
			return m, m.openFileDialog()

		case key.Matches(msg, keys.RemoveAttachment):
			if m.ctrl.Staged() == nil {
				return m, nil
			}
			if err := m.ctrl.ClearSelection(); err != nil {
				return m, toast.NewWarningToast(err.Error(), m.theme)
			}
			return m, m.flush()

		case key.Matches(msg, keys.CopyReply):
			return m, m.copyLastReply()

		case key.Matches(msg, keys.CopyCode):
			return m, m.copyLastCode()

		case key.Matches(msg, keys.Theme):
			return m, m.cycleTheme()

		case key.Matches(msg, scroll.PageUp, scroll.PageDown, scroll.HalfPageUp, scroll.HalfPageDown):
			var cmd tea.Cmd
			m.messages, cmd = m.messages.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.messages, cmd = m.messages.Update(msg)
		return m, cmd

	case chat.SubmitMsg:
		return m, m.submit(msg.Text)

	case replyMsg:
		m.ctrl.Finish(msg.reply)
		return m, m.flush()

	case dialogs.FileSelectedMsg:
		m.showFileDialog = false
		m.state.AttachmentDir = msg.Dir
		m.saveState()
		if err := m.ctrl.SelectFile(msg.Path); err != nil {
			log.Warn("Attachment rejected", "path", msg.Path, "err", err)
			return m, tea.Batch(m.flush(), toast.NewErrorToast(err.Error(), m.theme, toast.WithTitle("Attachment")))
		}
		return m, m.flush()

	case dialogs.DialogCloseMsg:
		m.showFileDialog = false
		m.showHelpDialog = false
		return m, m.editor.Focus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.messages, cmd = m.messages.Update(msg)
		return m, cmd

	case toast.ShowToastMsg, toast.DismissToastMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Update(msg)
		return m, cmd
	}

	if m.showFileDialog {
		_, cmd := m.fileDialog.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs Begin on the update loop and Deliver in a command
func (m *Model) submit(text string) tea.Cmd {
	sub, err := m.ctrl.Begin(text)
	switch {
	case errors.Is(err, widget.ErrNothingToSend):
		return nil
	case err != nil:
		return tea.Batch(m.flush(), toast.NewWarningToast(err.Error(), m.theme))
	}

	ctx, ctrl := m.ctx, m.ctrl
	deliver := func() tea.Msg {
		return replyMsg{reply: ctrl.Deliver(ctx, sub)}
	}
	return tea.Batch(m.flush(), deliver)
}

func (m *Model) openFileDialog() tea.Cmd {
	if !m.ctrl.AttachmentsEnabled() {
		return toast.NewWarningToast(widget.ErrAttachmentsUnsupported.Error(), m.theme)
	}
	if m.ctrl.State() != widget.StateIdle {
		return toast.NewWarningToast(widget.ErrBusy.Error(), m.theme)
	}

	m.fileDialog = dialogs.NewFileDialog(m.theme, m.state.AttachmentDir)
	m.fileDialog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.showFileDialog = true
	return m.fileDialog.Init()
}

func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		m.saveState()
		return tea.Quit
	}

	var cmd tea.Cmd
	if m.showFileDialog {
		_, cmd = m.fileDialog.Update(msg)
	} else if m.showHelpDialog {
		_, cmd = m.helpDialog.Update(msg)
	}
	return cmd
}

// lastReply returns the newest successful assistant text
func (m *Model) lastReply() (string, bool) {
	transcript := m.ctrl.Transcript()
	for i := len(transcript) - 1; i >= 0; i-- {
		msg := transcript[i]
		if msg.Sender == widget.SenderAssistant && msg.Kind == widget.KindText && !msg.Failed {
			return msg.Text, true
		}
	}
	return "", false
}

func (m *Model) copyLastReply() tea.Cmd {
	reply, ok := m.lastReply()
	if !ok {
		return toast.NewInfoToast("No reply to copy yet", m.theme)
	}
	return m.copyText(reply, "Copied last reply")
}

func (m *Model) copyLastCode() tea.Cmd {
	reply, _ := m.lastReply()
	blocks := markdown.CodeBlocks(reply)
	if len(blocks) == 0 {
		return toast.NewInfoToast("No code block in the last reply", m.theme)
	}
	last := blocks[len(blocks)-1]
	return m.copyText(last.Code, fmt.Sprintf("Copied %s code block", last.Language))
}

func (m *Model) copyText(text, done string) tea.Cmd {
	if err := m.copy(text); err != nil {
		log.Warn("Clipboard write failed", "err", err)
		return toast.NewErrorToast(fmt.Sprintf("Clipboard unavailable: %v", err), m.theme)
	}
	return toast.NewSuccessToast(done, m.theme, toast.WithDuration(2*time.Second))
}

func (m *Model) cycleTheme() tea.Cmd {
	names := themes.Names()
	next := names[(slices.Index(names, m.theme.Name())+1)%len(names)]

	m.applyTheme(themes.GetOrDefault(next))
	m.state.Theme = next
	m.saveState()
	return toast.NewInfoToast("Theme: "+next, m.theme, toast.WithDuration(2*time.Second))
}

func (m *Model) applyTheme(th themes.Theme) {
	m.theme = th
	if err := m.markdown.SetStyle(glamourStyle(th)); err != nil {
		log.Warn("Markdown style unavailable", "err", err)
	}
	m.editor.SetTheme(th)
	m.preview.SetTheme(th)
	m.status.SetTheme(th)
	m.toasts.SetTheme(th)
	m.messages.SetTheme(th)
	m.helpDialog = dialogs.NewHelpDialog(th, m.helpSections())
	m.helpDialog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.layout()
}

func (m *Model) saveState() {
	if m.statePath == "" {
		return
	}
	if err := config.SaveState(m.statePath, m.state); err != nil {
		log.Warn("Failed to save state", "err", err)
	}
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.editor.SetWidth(m.width)
	m.preview.SetWidth(m.width)
	m.status.SetWidth(m.width)

	used := m.editor.Height() + 1
	if pv := m.preview.View(); pv != "" {
		used += lipgloss.Height(pv)
	}
	m.messages.SetSize(m.width, max(m.height-used, 1))
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	parts := []string{m.messages.View()}
	if pv := m.preview.View(); pv != "" {
		parts = append(parts, pv)
	}
	parts = append(parts, m.editor.View(), m.status.View())
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	content = m.toasts.RenderOverlay(m.width, m.height, content)

	switch {
	case m.showFileDialog:
		return layout.PlaceOverlay(m.width, m.height, m.fileDialog.View(), content, layout.Center)
	case m.showHelpDialog:
		return layout.PlaceOverlay(m.width, m.height, m.helpDialog.View(), content, layout.Center)
	}
	return content
}

// RenderMessage appends a controller message to the transcript view
func (m *Model) RenderMessage(msg widget.Message) {
	m.messages.Append(msg)
}

func (m *Model) ShowPreview(a *widget.Attachment) {
	m.preview.Set(a)
	m.layout()
}

func (m *Model) SetInputEnabled(enabled bool) {
	m.editor.SetEnabled(enabled)
}

func (m *Model) SetTyping(visible bool) {
	m.queue(m.messages.SetTyping(visible))
	m.status.SetState(m.ctrl.State().String())
}

func (m *Model) ClearInput() {
	m.editor.Reset()
}

func (m *Model) FocusInput() {
	m.queue(m.editor.Focus())
}

// Run starts the interactive chat and blocks until it exits
func Run(ctx context.Context, opts Options) error {
	model, err := New(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	model.saveState()
	return nil
}
