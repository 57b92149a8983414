package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	return &Document{
		Nodes: []Node{
			&Leaf{Key: "monitor", Value: "eDP-1,1920x1080,0x0,1"},
			&Section{
				Key: "general",
				Children: []Node{
					&Leaf{Key: "gaps_in", Value: "5"},
					&Section{Key: "nested", Children: []Node{
						&Leaf{Key: "deep", Value: "yes"},
					}},
				},
			},
			&Section{Key: "empty"},
			&Leaf{Key: "blank"},
		},
	}
}

func TestString(t *testing.T) {
	expected := "monitor = eDP-1,1920x1080,0x0,1\n" +
		"general { gaps_in = 5; nested { deep = yes } }\n" +
		"empty {}\n" +
		"blank = \n"
	require.Equal(t, expected, testDocument().String())
}

func TestWalk(t *testing.T) {
	var visited []string
	var depths []int
	testDocument().Walk(func(n Node, depth int) bool {
		visited = append(visited, n.Name())
		depths = append(depths, depth)
		return true
	})
	require.Equal(t, []string{"monitor", "general", "gaps_in", "nested", "deep", "empty", "blank"}, visited)
	require.Equal(t, []int{0, 0, 1, 1, 2, 0, 0}, depths)
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	testDocument().Walk(func(n Node, _ int) bool {
		visited = append(visited, n.Name())
		return n.Name() != "general"
	})
	require.Equal(t, []string{"monitor", "general", "empty", "blank"}, visited)
}

func TestFind(t *testing.T) {
	doc := testDocument()

	n := doc.Find("general", "nested", "deep")
	require.NotNil(t, n)
	leaf, ok := n.(*Leaf)
	require.True(t, ok)
	require.Equal(t, "yes", leaf.Value)

	_, ok = doc.Find("general").(*Section)
	require.True(t, ok)

	require.Nil(t, doc.Find())
	require.Nil(t, doc.Find("general", "missing"))
	require.Nil(t, doc.Find("monitor", "child"))
}

func TestContains(t *testing.T) {
	doc := testDocument()
	require.True(t, doc.Contains(doc.Find("general", "nested", "deep")))
	require.False(t, doc.Contains(&Leaf{Key: "monitor", Value: "eDP-1,1920x1080,0x0,1"}))
	require.Equal(t, 7, doc.Len())
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(testDocument(), testDocument()))
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(testDocument(), nil))

	changed := testDocument()
	changed.Find("general", "gaps_in").(*Leaf).SetValue("8")
	require.False(t, Equal(testDocument(), changed))

	// An empty section and an empty-valued leaf are different kinds.
	a := &Document{Nodes: []Node{&Section{Key: "x"}}}
	b := &Document{Nodes: []Node{&Leaf{Key: "x"}}}
	require.False(t, Equal(a, b))

	lines := testDocument()
	lines.Nodes[0].(*Leaf).Line = 42
	require.True(t, Equal(testDocument(), lines))
}

func TestRename(t *testing.T) {
	doc := testDocument()
	Rename(doc.Find("general"), "decoration")
	Rename(doc.Find("monitor"), "workspace")
	require.NotNil(t, doc.Find("decoration", "gaps_in"))
	require.NotNil(t, doc.Find("workspace"))
}
