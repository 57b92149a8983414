package tui

import (
	"strings"

	"github.com/KimNorgaard/go-hconf/ast"
)

// row is one line of the tree pane.
type row struct {
	node  ast.Node
	depth int
}

// flatten lists the nodes of doc in display order.
func flatten(doc *ast.Document) []row {
	var rows []row
	if doc == nil {
		return rows
	}
	doc.Walk(func(n ast.Node, depth int) bool {
		rows = append(rows, row{node: n, depth: depth})
		return true
	})
	return rows
}

// render returns the row text without selection styling. Sections show
// no value.
func (r row) render() string {
	indent := strings.Repeat("  ", r.depth)
	switch n := r.node.(type) {
	case *ast.Section:
		return indent + sectionStyle.Render("▾ "+n.Key)
	case *ast.Leaf:
		return indent + keyStyle.Render(n.Key) + " = " + valueStyle.Render(n.Value)
	}
	return indent
}

// plain is render without colors, for the selected row.
func (r row) plain() string {
	indent := strings.Repeat("  ", r.depth)
	switch n := r.node.(type) {
	case *ast.Section:
		return indent + "▾ " + n.Key
	case *ast.Leaf:
		return indent + n.Key + " = " + n.Value
	}
	return indent
}
