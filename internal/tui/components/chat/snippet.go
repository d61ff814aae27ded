package chat

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// SnippetStyle maps a UI theme name to a chroma style; "" disables highlighting
func SnippetStyle(theme string) string {
	switch theme {
	case "ascii":
		return ""
	case "latte", "frappe", "macchiato", "mocha":
		return "catppuccin-" + theme
	default:
		return "dracula"
	}
}

// Snippet returns up to maxLines lines of a text file, highlighted with the
// named chroma style. Binary content yields "".
func Snippet(name string, data []byte, maxLines int, style string) string {
	if maxLines <= 0 || !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\t", "    "), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	text := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if style == "" {
		return text
	}

	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := formatters.Get("terminal256").Format(&buf, styles.Get(style), iterator); err != nil {
		return text
	}
	return strings.TrimRight(buf.String(), "\n")
}
