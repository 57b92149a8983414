package hconf

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/KimNorgaard/go-hconf/internal/formatter"
)

// Encoder writes documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the canonical text of doc to the stream. A nil document
// writes nothing.
func (e *Encoder) Encode(doc *ast.Document) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	f := formatter.New(e.w, o.indentString())
	if err := f.Format(doc); err != nil {
		return fmt.Errorf("hconf: %w", err)
	}
	return nil
}
