package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

const (
	plainLexer     = "plaintext"
	terminalFormat = "terminal16m"
	defaultStyle   = "monokai"
)

// SyntaxRenderer highlights entry bodies for the detail pane.
// Laravel bodies are often a message followed by a JSON context or a PHP
// stack trace, so the lexer is chosen from the content, not a filename.
type SyntaxRenderer struct {
	style string
}

// NewSyntaxRenderer creates a renderer using the named chroma style
func NewSyntaxRenderer(style string) *SyntaxRenderer {
	if style == "" {
		style = defaultStyle
	}
	return &SyntaxRenderer{style: style}
}

// LexerFor returns the name of the lexer chroma picks for body
func LexerFor(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return plainLexer
	}

	if i := strings.IndexAny(trimmed, "{["); i >= 0 && strings.HasSuffix(trimmed, string(closing(trimmed[i]))) {
		return "JSON"
	}

	lexer := lexers.Analyse(trimmed)
	if lexer == nil {
		return plainLexer
	}
	return lexer.Config().Name
}

// Highlight returns body with terminal color codes.
// On any highlighting failure the body is returned unchanged.
func (r *SyntaxRenderer) Highlight(body string) string {
	if body == "" {
		return ""
	}

	lexer := LexerFor(body)
	if lexer == plainLexer {
		return body
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, body, lexer, terminalFormat, r.style); err != nil {
		return body
	}

	return buf.String()
}

func closing(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}
