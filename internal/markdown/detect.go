package markdown

import (
	"regexp"
	"strings"
)

// markdownPatterns match syntax that renders differently from plain text
var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^#{1,6}\s+`),            // Headers
	regexp.MustCompile(`\*\*[^*\n]+\*\*`),           // Bold
	regexp.MustCompile(`__[^_\n]+__`),               // Bold (underscore)
	regexp.MustCompile("`[^`\n]+`"),                 // Inline code
	regexp.MustCompile("(?m)^\\s*```"),              // Code blocks
	regexp.MustCompile(`(?m)^\s*[-*+]\s+\S`),        // Unordered lists
	regexp.MustCompile(`(?m)^\s*\d+\.\s+\S`),        // Ordered lists
	regexp.MustCompile(`(?m)^\s*>\s+`),              // Blockquotes
	regexp.MustCompile(`!?\[[^\]\n]*\]\([^)\n]*\)`), // Links and images
	regexp.MustCompile(`(?m)^\s*\|.*\|\s*$`),        // Tables
	regexp.MustCompile(`(?m)^\s*[-=]{3,}\s*$`),      // Rules and setext headers
}

var codeBlockRegex = regexp.MustCompile("(?s)```([\\w+-]*)[^\\n]*\\n(.*?)```")

// IsMarkdown reports whether content uses markdown syntax worth rendering.
// Plain replies are shown as typed.
func IsMarkdown(content string) bool {
	for _, pattern := range markdownPatterns {
		if pattern.MatchString(content) {
			return true
		}
	}
	return false
}

// CodeBlock is a fenced block from a reply
type CodeBlock struct {
	Language string
	Code     string
}

// CodeBlocks extracts fenced code blocks in order of appearance
func CodeBlocks(content string) []CodeBlock {
	matches := codeBlockRegex.FindAllStringSubmatch(content, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, match := range matches {
		language := match[1]
		if language == "" {
			language = "text"
		}
		blocks = append(blocks, CodeBlock{
			Language: language,
			Code:     strings.TrimRight(match[2], "\n"),
		})
	}
	return blocks
}
