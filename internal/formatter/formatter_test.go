package formatter_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/KimNorgaard/go-hconf/internal/formatter"
	"github.com/stretchr/testify/require"
)

// Centralized test cases to be used across different indent settings.
var testCases = []struct {
	name           string
	node           any
	expectedSpaces string // default 4 spaces
	expectedTabs   string
	expectedFlat   string // no indentation
}{
	{
		name:           "Leaf",
		node:           &ast.Leaf{Key: "gaps_in", Value: "5"},
		expectedSpaces: "gaps_in = 5\n",
		expectedTabs:   "gaps_in = 5\n",
		expectedFlat:   "gaps_in = 5\n",
	},
	{
		name:           "Empty Leaf",
		node:           &ast.Leaf{Key: "env"},
		expectedSpaces: "env =\n",
		expectedTabs:   "env =\n",
		expectedFlat:   "env =\n",
	},
	{
		name:           "Empty Section",
		node:           &ast.Section{Key: "animations"},
		expectedSpaces: "animations {\n}\n",
		expectedTabs:   "animations {\n}\n",
		expectedFlat:   "animations {\n}\n",
	},
	{
		name:           "Empty Document",
		node:           &ast.Document{},
		expectedSpaces: "",
		expectedTabs:   "",
		expectedFlat:   "",
	},
	{
		name: "Nested Document",
		node: &ast.Document{Nodes: []ast.Node{
			&ast.Leaf{Key: "monitor", Value: "eDP-1,1920x1080,0x0,1"},
			&ast.Section{Key: "general", Children: []ast.Node{
				&ast.Leaf{Key: "gaps_in", Value: "5"},
				&ast.Section{Key: "nested", Children: []ast.Node{
					&ast.Leaf{Key: "deep", Value: "x"},
				}},
				&ast.Leaf{Key: "gaps_out", Value: "10"},
			}},
		}},
		expectedSpaces: "monitor = eDP-1,1920x1080,0x0,1\ngeneral {\n    gaps_in = 5\n    nested {\n        deep = x\n    }\n    gaps_out = 10\n}\n",
		expectedTabs:   "monitor = eDP-1,1920x1080,0x0,1\ngeneral {\n\tgaps_in = 5\n\tnested {\n\t\tdeep = x\n\t}\n\tgaps_out = 10\n}\n",
		expectedFlat:   "monitor = eDP-1,1920x1080,0x0,1\ngeneral {\ngaps_in = 5\nnested {\ndeep = x\n}\ngaps_out = 10\n}\n",
	},
}

func TestFormatter_Indentation(t *testing.T) {
	t.Run("Default Indent (4 spaces)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				f := formatter.New(&buf, formatter.DefaultIndent)
				require.NoError(t, f.Format(tc.node))
				require.Equal(t, tc.expectedSpaces, buf.String())
			})
		}
	})

	t.Run("Tabs", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				f := formatter.New(&buf, "\t")
				require.NoError(t, f.Format(tc.node))
				require.Equal(t, tc.expectedTabs, buf.String())
			})
		}
	})

	t.Run("No Indent", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				f := formatter.New(&buf, "")
				require.NoError(t, f.Format(tc.node))
				require.Equal(t, tc.expectedFlat, buf.String())
			})
		}
	})
}

func TestFormatter_IndentMatchesDepth(t *testing.T) {
	doc := &ast.Document{Nodes: []ast.Node{
		&ast.Section{Key: "a", Children: []ast.Node{
			&ast.Section{Key: "b", Children: []ast.Node{
				&ast.Section{Key: "c", Children: []ast.Node{
					&ast.Leaf{Key: "d", Value: "1"},
				}},
			}},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, formatter.New(&buf, formatter.DefaultIndent).Format(doc))

	depths := []int{0, 1, 2, 3, 2, 1, 0}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(depths))
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		require.Equal(t, 4*depths[i], len(line)-len(trimmed), "line %d: %q", i, line)
	}
}

func TestFormatter_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := formatter.New(&buf, formatter.DefaultIndent).Format("not a node")
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFormatter_WriteError(t *testing.T) {
	doc := &ast.Document{Nodes: []ast.Node{&ast.Leaf{Key: "a", Value: "b"}}}
	err := formatter.New(failingWriter{}, formatter.DefaultIndent).Format(doc)
	require.EqualError(t, err, "disk full")
}
