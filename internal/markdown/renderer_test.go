package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r, err := NewRenderer(PlainConfig())
	require.NoError(t, err)

	out, err := r.Render("# Title\n\nSome **bold** text.")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Title")
	assert.Contains(t, plain, "bold")
	assert.False(t, strings.HasPrefix(out, "\n"))
	assert.False(t, strings.Contains(plain, "\n\n\n"))
}

func TestRenderEmpty(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	out, err := r.Render("   \n")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSetWidth(t *testing.T) {
	r, err := NewRenderer(PlainConfig())
	require.NoError(t, err)

	require.NoError(t, r.SetWidth(40))
	assert.Equal(t, 40, r.Width())

	require.NoError(t, r.SetWidth(0))
	assert.Equal(t, 40, r.Width())
}

func TestPreprocessKeepsFencedWhitespace(t *testing.T) {
	in := "text   \n```\ncode   \n```\nmore\t"
	assert.Equal(t, "text\n```\ncode   \n```\nmore", preprocessMarkdown(in))
}
