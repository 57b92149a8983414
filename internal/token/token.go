package token

import (
	"strings"
	"unicode"
)

// Type is the type of a token.
type Type string

// Token represents one classified source line.
type Token struct {
	Type Type
	// Key is the trimmed text before '=' or '{'. Empty for other types.
	Key string
	// Value is the trimmed text after the first '='. Only set for ASSIGN.
	Value string
	// Literal is the trimmed source line.
	Literal string
	Line    int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // A non-empty line that matches no rule
	EOF     Type = "EOF"     // End of input

	// Ignored lines
	BLANK   Type = "BLANK"   // whitespace only
	COMMENT Type = "COMMENT" // # a comment

	// Structure
	OPEN   Type = "{"      // name {
	CLOSE  Type = "}"      // }
	ASSIGN Type = "ASSIGN" // key = value
)

// Trivia reports whether tokens of type t carry no content for the tree.
func (t Type) Trivia() bool {
	return t == BLANK || t == COMMENT
}

// Trim removes surrounding white space from a key, value or line. A byte
// order mark counts as white space so that one at the start of a file never
// ends up in a key.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
