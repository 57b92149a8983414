package formatter

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-hconf/ast"
)

// DefaultIndent is the indentation written per nesting level.
const DefaultIndent = "    "

// Formatter writes a config AST to an output stream in canonical form.
type Formatter struct {
	w      io.Writer
	indent string
	depth  int
}

// New returns a new formatter that writes to w, indenting each nesting level
// with indent.
func New(w io.Writer, indent string) *Formatter {
	return &Formatter{w: w, indent: indent}
}

// Format writes the canonical text of node to the writer. node may be a
// *ast.Document or a single ast.Node. Every emitted line ends with '\n'.
func (f *Formatter) Format(node any) error {
	switch n := node.(type) {
	case *ast.Document:
		return f.writeNodes(n.Nodes)
	case ast.Node:
		return f.writeNode(n)
	default:
		return fmt.Errorf("hconf: unsupported node type for formatting: %T", n)
	}
}

func (f *Formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *Formatter) writeIndent() error {
	if f.indent == "" {
		return nil
	}
	for i := 0; i < f.depth; i++ {
		if err := f.write(f.indent); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeNodes(nodes []ast.Node) error {
	for _, n := range nodes {
		if err := f.writeNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeNode(node ast.Node) error {
	if err := f.writeIndent(); err != nil {
		return err
	}

	switch n := node.(type) {
	case *ast.Leaf:
		if n.Value == "" {
			return f.write(n.Key + " =\n")
		}
		return f.write(n.Key + " = " + n.Value + "\n")

	case *ast.Section:
		if err := f.write(n.Key + " {\n"); err != nil {
			return err
		}
		f.depth++
		if err := f.writeNodes(n.Children); err != nil {
			return err
		}
		f.depth--
		if err := f.writeIndent(); err != nil {
			return err
		}
		return f.write("}\n")

	default:
		return fmt.Errorf("hconf: unsupported node type for formatting: %T", n)
	}
}
