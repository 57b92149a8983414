package hconf

import (
	"bytes"

	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/KimNorgaard/go-hconf/internal/lexer"
	"github.com/KimNorgaard/go-hconf/internal/parser"
)

// Parse parses a config source and returns its document.
//
// Parse never fails. Comments and blank lines are dropped, lines that match
// no rule are skipped, a stray top-level '}' is ignored and sections still
// open at the end of input are closed. Use Check to find out whether any of
// that happened.
func Parse(data []byte) *ast.Document {
	return parser.New(lexer.New(data)).Parse()
}

// ParseLines is like Parse but takes a source that is already split into
// lines. Trailing line terminators on the elements are ignored.
func ParseLines(lines []string) *ast.Document {
	return parser.New(lexer.NewFromLines(lines)).Parse()
}

// Check parses data the same way Parse does and reports every line that was
// skipped or repaired. It returns nil for a clean source, otherwise an
// errors.ParseErrors value.
func Check(data []byte) error {
	p := parser.New(lexer.New(data))
	p.Parse()
	if diags := p.Diagnostics(); len(diags) > 0 {
		return diags
	}
	return nil
}

// Marshal returns the canonical text of doc.
func Marshal(doc *ast.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
