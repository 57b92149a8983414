package hconf

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-hconf/ast"
)

// Decoder reads documents from an input stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder may buffer data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the rest of the input and parses it. Only read errors are
// returned; the parse itself never fails.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode() (*ast.Document, error) {
	if d.r == nil {
		return nil, fmt.Errorf("hconf: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}
