package widget

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/entrepeneur4lyf/verbachat/internal/client"
)

// Attachment is the single file staged for the next submission.
type Attachment struct {
	Path     string
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// LoadAttachment reads path into memory. No size or type limits are applied.
func LoadAttachment(path string) (*Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment %s: %w", path, err)
	}

	a := NewAttachment(filepath.Base(path), data)
	a.Path = path
	return a, nil
}

// NewAttachment builds an in-memory attachment and detects its MIME type.
func NewAttachment(name string, data []byte) *Attachment {
	return &Attachment{
		Name:     name,
		MIMEType: DetectMIME(name, data),
		Size:     int64(len(data)),
		Data:     data,
	}
}

// DetectMIME sniffs the content first and falls back to the file extension.
func DetectMIME(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
		return byExt
	}
	return "application/octet-stream"
}

// IsImage reports whether the attachment is an image.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

// DataURL encodes the attachment for inline display.
func (a *Attachment) DataURL() string {
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

func (a *Attachment) wireFile() *client.File {
	return &client.File{Name: a.Name, ContentType: a.MIMEType, Data: a.Data}
}
