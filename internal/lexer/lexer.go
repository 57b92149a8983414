package lexer

import (
	"strings"

	"github.com/KimNorgaard/go-hconf/internal/token"
)

// Lexer is a forward-only cursor over the lines of a config source.
// Each call to NextToken consumes exactly one line.
type Lexer struct {
	lines    []string
	position int // index of the next line to read
}

// New creates a new Lexer over input. Lines end with "\n", "\r\n" or a
// lone "\r".
func New(input []byte) *Lexer {
	if len(input) == 0 {
		return &Lexer{}
	}
	return &Lexer{lines: splitLines(string(input))}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// NewFromLines creates a Lexer over already split lines. Line terminators
// left on the elements are removed by trimming.
func NewFromLines(lines []string) *Lexer {
	return &Lexer{lines: lines}
}

// NextToken returns the token for the next line, or an EOF token once all
// lines are consumed.
func (l *Lexer) NextToken() token.Token {
	if l.position >= len(l.lines) {
		return token.Token{Type: token.EOF, Line: len(l.lines) + 1}
	}
	raw := l.lines[l.position]
	l.position++
	return classify(raw, l.position)
}

// Line returns the 1-based number of the last line returned.
func (l *Lexer) Line() int {
	return l.position
}

func classify(raw string, line int) token.Token {
	s := token.Trim(raw)
	tok := token.Token{Literal: s, Line: line}

	switch {
	case s == "":
		tok.Type = token.BLANK
	case strings.HasPrefix(s, "#"):
		tok.Type = token.COMMENT
	case strings.HasSuffix(s, "{"):
		tok.Type = token.OPEN
		// The name ends at the first brace, not the last.
		name, _, _ := strings.Cut(s, "{")
		tok.Key = token.Trim(name)
	case s == "}":
		tok.Type = token.CLOSE
	case strings.Contains(s, "="):
		tok.Type = token.ASSIGN
		key, value, _ := strings.Cut(s, "=")
		tok.Key = token.Trim(key)
		tok.Value = token.Trim(value)
	default:
		tok.Type = token.ILLEGAL
	}
	return tok
}

