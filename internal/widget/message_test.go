package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	a := NewAttachment("hello.txt", []byte("hello"))
	mimeType, data, err := DecodeDataURL(a.DataURL())
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, []byte("hello"), data)

	mimeType, data, err = DecodeDataURL("data:text/plain,a%20b")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, []byte("a b"), data)

	_, _, err = DecodeDataURL("https://example.com/x.png")
	assert.ErrorIs(t, err, ErrNotDataURL)

	_, _, err = DecodeDataURL("data:image/png;base64")
	assert.ErrorIs(t, err, ErrNotDataURL)
}

func TestDetectMIME(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	assert.Equal(t, "image/png", DetectMIME("no-extension", png))
	assert.Equal(t, "text/plain", DetectMIME("readme.txt", []byte("plain")))
	assert.Equal(t, "application/octet-stream", DetectMIME("blob", []byte{0x00, 0x01}))
}

func TestMessageTimestamp(t *testing.T) {
	m := Message{Time: fixedTime}
	assert.Equal(t, "02:05 PM", m.Timestamp())

	m.Time = fixedTime.Add(-14 * time.Hour)
	assert.Equal(t, "12:05 AM", m.Timestamp())
}
