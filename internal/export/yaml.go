// Package export converts config documents to other formats.
package export

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/KimNorgaard/go-hconf/ast"
)

// Tree converts doc into an ordered YAML mapping. Leaves become strings and
// sections become nested mappings. A key that repeats within one level, such
// as Hyprland's bind, becomes a single sequence placed where the key first
// appears; a repeated section key yields a sequence of mappings.
func Tree(doc *ast.Document) yaml.MapSlice {
	if doc == nil {
		return yaml.MapSlice{}
	}
	return mapNodes(doc.Nodes)
}

func mapNodes(nodes []ast.Node) yaml.MapSlice {
	out := yaml.MapSlice{}
	index := make(map[string]int)
	counts := make(map[string]int)
	for _, n := range nodes {
		counts[n.Name()]++
	}

	for _, n := range nodes {
		key := n.Name()
		v := value(n)
		if counts[key] == 1 {
			out = append(out, yaml.MapItem{Key: key, Value: v})
			continue
		}
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, yaml.MapItem{Key: key, Value: []interface{}{v}})
			continue
		}
		out[i].Value = append(out[i].Value.([]interface{}), v)
	}
	return out
}

func value(n ast.Node) interface{} {
	switch n := n.(type) {
	case *ast.Section:
		return mapNodes(n.Children)
	case *ast.Leaf:
		return n.Value
	}
	return nil
}

// YAML returns doc as a YAML document.
func YAML(doc *ast.Document) ([]byte, error) {
	out, err := yaml.Marshal(Tree(doc))
	if err != nil {
		return nil, errors.Wrap(err, "export yaml")
	}
	return out, nil
}
