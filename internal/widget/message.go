package widget

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"time"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Kind is the payload type of a message.
type Kind string

const (
	KindText Kind = "text"
	KindFile Kind = "file"
)

// TimestampLayout is the hour:minute, 12-hour display format.
const TimestampLayout = "03:04 PM"

// Message is one entry in the transcript. Messages are never changed once
// appended.
type Message struct {
	ID     string
	Sender Sender
	Kind   Kind
	// Text holds the body of a text message.
	Text string
	// DataURL, FileName and MIMEType describe a file message.
	DataURL  string
	FileName string
	MIMEType string
	// SourcePath is the local file a user attachment was read from, if any.
	SourcePath string
	// Failed marks an assistant message synthesized from a failed submission.
	Failed bool
	Time   time.Time
}

// Timestamp returns the display time of the message.
func (m Message) Timestamp() string {
	return m.Time.Format(TimestampLayout)
}

// IsImage reports whether a file message carries an image data URL.
func (m Message) IsImage() bool {
	return m.Kind == KindFile && strings.HasPrefix(m.DataURL, "data:image")
}

// DisplayName is the file name shown for a file message.
func (m Message) DisplayName() string {
	if m.FileName != "" {
		return m.FileName
	}
	if m.IsImage() {
		return "Uploaded image"
	}
	return "Download file"
}

// ErrNotDataURL is returned by DecodeDataURL for anything but a base64 data URL.
var ErrNotDataURL = errors.New("not a base64 data URL")

// DecodeDataURL splits "data:<mime>;base64,<payload>" into its MIME type and
// decoded bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, err
		}
		return mimeType, []byte(decoded), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}

func mimeFromDataURL(s string) string {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return ""
	}
	meta, _, _ := strings.Cut(rest, ",")
	mimeType, _, _ := strings.Cut(meta, ";")
	return mimeType
}
