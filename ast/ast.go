package ast

import (
	"bytes"
	"strings"
)

// Node is the base interface for all configuration entries. It is
// implemented by *Leaf and *Section only.
type Node interface {
	// Name returns the key of a leaf or the name of a section.
	Name() string
	// Pos returns the 1-based source line the node was parsed from, or 0.
	Pos() int
	// String returns a compact single-line representation of the node.
	String() string
	node()
}

// Document is the root of a parsed config file. A config file has no single
// root, so the document holds an ordered forest of top-level nodes.
type Document struct {
	Nodes []Node
}

// String returns a compact representation of every top-level node, one per
// line.
func (d *Document) String() string {
	var out bytes.Buffer
	for _, n := range d.Nodes {
		out.WriteString(n.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Leaf is a `key = value` assignment. An empty Value is a legal leaf.
type Leaf struct {
	Key   string
	Value string
	Line  int
}

func (l *Leaf) node()          {}
func (l *Leaf) Name() string   { return l.Key }
func (l *Leaf) Pos() int       { return l.Line }
func (l *Leaf) String() string { return l.Key + " = " + l.Value }

// SetValue replaces the value of the leaf in place.
func (l *Leaf) SetValue(v string) { l.Value = v }

// Section is a named block of nested nodes. A section with no children is
// still a section.
type Section struct {
	Key      string
	Children []Node
	Line     int
}

func (s *Section) node()        {}
func (s *Section) Name() string { return s.Key }
func (s *Section) Pos() int     { return s.Line }
func (s *Section) String() string {
	var out bytes.Buffer
	children := []string{}
	for _, c := range s.Children {
		children = append(children, c.String())
	}
	out.WriteString(s.Key)
	out.WriteString(" {")
	if len(children) > 0 {
		out.WriteString(" ")
		out.WriteString(strings.Join(children, "; "))
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// Append adds n as the last child of the section.
func (s *Section) Append(n Node) {
	s.Children = append(s.Children, n)
}

// Rename sets the key of n.
func Rename(n Node, key string) {
	switch n := n.(type) {
	case *Leaf:
		n.Key = key
	case *Section:
		n.Key = key
	}
}
