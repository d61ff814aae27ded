package widget

// View is the surface the controller drives: the transcript, the text input,
// the typing indicator and the attachment preview.
type View interface {
	// RenderMessage appends m to the transcript and scrolls to it.
	RenderMessage(m Message)
	// ShowPreview displays the staged attachment; nil removes the preview.
	ShowPreview(a *Attachment)
	SetInputEnabled(enabled bool)
	SetTyping(visible bool)
	ClearInput()
	FocusInput()
}

// NopView discards every update. Useful for headless callers.
type NopView struct{}

func (NopView) RenderMessage(Message)   {}
func (NopView) ShowPreview(*Attachment) {}
func (NopView) SetInputEnabled(bool)    {}
func (NopView) SetTyping(bool)          {}
func (NopView) ClearInput()             {}
func (NopView) FocusInput()             {}
