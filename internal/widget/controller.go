package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/entrepeneur4lyf/verbachat/internal/client"
)

// State is the submission state of the controller.
type State int

const (
	StateIdle State = iota
	StateSending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

var (
	// ErrNothingToSend is returned when there is neither text nor an attachment.
	ErrNothingToSend = errors.New("nothing to send")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a message is already being sent")
	// ErrAttachmentsUnsupported is returned when the submission mode is text only.
	ErrAttachmentsUnsupported = errors.New("attachments are not supported in this mode")
)

const (
	unexpectedReply = "Unexpected response"
	failurePrefix   = "Something went wrong: "
	errorPrefix     = "Error: "
)

// Submitter delivers one submission to the backend.
type Submitter interface {
	Submit(ctx context.Context, r client.Request) (client.Reply, error)
}

// Options configures a Controller.
type Options struct {
	Submitter Submitter
	View      View
	// AttachmentsEnabled is false for text-only submission modes.
	AttachmentsEnabled bool
	// KeepAttachment leaves the staged attachment in place after a send.
	KeepAttachment bool
	Clock          func() time.Time
}

// Submission is the request built by Begin and carried to Deliver.
type Submission struct {
	Text       string
	Attachment *Attachment
}

func (s Submission) request() client.Request {
	r := client.Request{Text: s.Text}
	if s.Attachment != nil {
		r.File = s.Attachment.wireFile()
	}
	return r
}

// Controller owns the transcript, the staged attachment and the submission
// state machine for one chat session.
type Controller struct {
	submitter          Submitter
	view               View
	attachmentsEnabled bool
	keepAttachment     bool
	clock              func() time.Time

	mu         sync.Mutex
	state      State
	staged     *Attachment
	transcript []Message
}

// New creates a controller. A nil View is replaced by NopView.
func New(opts Options) *Controller {
	view := opts.View
	if view == nil {
		view = NopView{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Controller{
		submitter:          opts.Submitter,
		view:               view,
		attachmentsEnabled: opts.AttachmentsEnabled,
		keepAttachment:     opts.KeepAttachment,
		clock:              clock,
	}
}

// SetView rebinds the controller to a different view.
func (c *Controller) SetView(v View) {
	if v == nil {
		v = NopView{}
	}
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Staged returns the staged attachment, or nil.
func (c *Controller) Staged() *Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.staged
}

// Transcript returns a copy of every message rendered so far.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// AttachmentsEnabled reports whether files can be staged.
func (c *Controller) AttachmentsEnabled() bool {
	return c.attachmentsEnabled
}

// SelectFile reads path and stages it, replacing any previous selection.
func (c *Controller) SelectFile(path string) error {
	if !c.attachmentsEnabled {
		return ErrAttachmentsUnsupported
	}
	if c.State() != StateIdle {
		return ErrBusy
	}
	a, err := LoadAttachment(path)
	if err != nil {
		return err
	}
	return c.Stage(a)
}

// Stage puts an in-memory attachment in the staged slot. The slot is locked
// while a submission is in flight.
func (c *Controller) Stage(a *Attachment) error {
	if !c.attachmentsEnabled {
		return ErrAttachmentsUnsupported
	}
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.staged = a
	view := c.view
	c.mu.Unlock()

	log.Debug("Attachment staged", "name", a.Name, "mime", a.MIMEType, "size", a.Size)
	view.ShowPreview(a)
	return nil
}

// ClearSelection drops the staged attachment. Safe to call repeatedly; returns
// ErrBusy while a submission is in flight.
func (c *Controller) ClearSelection() error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.staged = nil
	view := c.view
	c.mu.Unlock()

	view.ShowPreview(nil)
	return nil
}

// Submit runs a full round trip: Begin, Deliver, Finish. ErrNothingToSend and
// ErrBusy are the only errors; backend failures end up in the transcript.
func (c *Controller) Submit(ctx context.Context, text string) error {
	sub, err := c.Begin(text)
	if err != nil {
		return err
	}
	c.Finish(c.Deliver(ctx, sub))
	return nil
}

// Begin validates the input, moves the controller to Sending and renders the
// outgoing message: text first, then the attachment.
func (c *Controller) Begin(text string) (Submission, error) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return Submission{}, ErrBusy
	}
	if text == "" && c.staged == nil {
		c.mu.Unlock()
		return Submission{}, ErrNothingToSend
	}
	c.state = StateSending
	sub := Submission{Text: text, Attachment: c.staged}
	if !c.keepAttachment {
		c.staged = nil
	}
	view := c.view
	c.mu.Unlock()

	log.Debug("Submission started", "text", len(sub.Text) > 0, "attachment", sub.Attachment != nil)

	view.SetInputEnabled(false)
	view.SetTyping(true)

	if sub.Text != "" {
		c.RenderMessage(sub.Text, SenderUser, false, "")
	}
	if sub.Attachment != nil {
		a := sub.Attachment
		c.render(Message{
			Sender:     SenderUser,
			Kind:       KindFile,
			DataURL:    a.DataURL(),
			FileName:   a.Name,
			MIMEType:   a.MIMEType,
			SourcePath: a.Path,
		})
	}

	view.ClearInput()
	if !c.keepAttachment && sub.Attachment != nil {
		view.ShowPreview(nil)
	}
	return sub, nil
}

// Deliver sends the submission and turns the outcome into the assistant
// message to render. It never fails; errors become the message text.
func (c *Controller) Deliver(ctx context.Context, sub Submission) Message {
	reply := Message{Sender: SenderAssistant, Kind: KindText}

	if c.submitter == nil {
		reply.Text = failurePrefix + "no endpoint configured"
		reply.Failed = true
		return reply
	}

	resp, err := c.submitter.Submit(ctx, sub.request())
	switch {
	case err != nil:
		log.Error("Submission failed", "err", err)
		reply.Text = failurePrefix + err.Error()
		reply.Failed = true
	case resp.BotResponse != "":
		reply.Text = resp.BotResponse
	default:
		reason := resp.Error
		if reason == "" {
			reason = unexpectedReply
		}
		log.Warn("Endpoint returned no reply", "error", resp.Error)
		reply.Text = errorPrefix + reason
		reply.Failed = true
	}
	return reply
}

// Finish renders the reply and returns the controller to Idle with the input
// enabled and focused. It runs after every Deliver, success or not.
func (c *Controller) Finish(reply Message) {
	c.render(reply)

	c.mu.Lock()
	c.state = StateIdle
	view := c.view
	c.mu.Unlock()

	view.SetInputEnabled(true)
	view.SetTyping(false)
	view.FocusInput()
	log.Debug("Submission finished", "failed", reply.Failed)
}

// RenderMessage appends a timestamped message. For file content, content is a
// data URL and fileName the original name.
func (c *Controller) RenderMessage(content string, sender Sender, isFile bool, fileName string) Message {
	m := Message{Sender: sender, Kind: KindText, Text: content}
	if isFile {
		m = Message{
			Sender:   sender,
			Kind:     KindFile,
			DataURL:  content,
			FileName: fileName,
			MIMEType: mimeFromDataURL(content),
		}
	}
	return c.render(m)
}

func (c *Controller) render(m Message) Message {
	m.ID = uuid.NewString()
	m.Time = c.clock()

	c.mu.Lock()
	c.transcript = append(c.transcript, m)
	view := c.view
	c.mu.Unlock()

	view.RenderMessage(m)
	return m
}
