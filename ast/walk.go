package ast

// WalkFunc is called for every node visited by Walk. depth is 0 for
// top-level nodes. Returning false skips the children of a section.
type WalkFunc func(n Node, depth int) bool

// Walk visits the nodes of d depth-first in source order.
func (d *Document) Walk(fn WalkFunc) {
	walk(d.Nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn WalkFunc) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}
		if s, ok := n.(*Section); ok {
			walk(s.Children, depth+1, fn)
		}
	}
}

// Find returns the first node reached by following path, one key per level.
// It returns nil if no such node exists.
func (d *Document) Find(path ...string) Node {
	if len(path) == 0 {
		return nil
	}
	nodes := d.Nodes
	for i, key := range path {
		var next Node
		for _, n := range nodes {
			if n.Name() == key {
				next = n
				break
			}
		}
		if next == nil {
			return nil
		}
		if i == len(path)-1 {
			return next
		}
		s, ok := next.(*Section)
		if !ok {
			return nil
		}
		nodes = s.Children
	}
	return nil
}

// Contains reports whether n is one of the nodes of d. Identity, not
// equality, is compared.
func (d *Document) Contains(n Node) bool {
	found := false
	d.Walk(func(m Node, _ int) bool {
		if m == n {
			found = true
		}
		return !found
	})
	return found
}

// Len returns the total number of nodes in d.
func (d *Document) Len() int {
	count := 0
	d.Walk(func(Node, int) bool {
		count++
		return true
	})
	return count
}

// Equal reports whether a and b have the same shape: the same kinds, keys,
// values and ordering at every depth. Source lines are ignored.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalNodes(a.Nodes, b.Nodes)
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case *Leaf:
			y, ok := b[i].(*Leaf)
			if !ok || x.Key != y.Key || x.Value != y.Value {
				return false
			}
		case *Section:
			y, ok := b[i].(*Section)
			if !ok || x.Key != y.Key || !equalNodes(x.Children, y.Children) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
