package hconf_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/KimNorgaard/go-hconf"
	"github.com/KimNorgaard/go-hconf/ast"
	hconferrors "github.com/KimNorgaard/go-hconf/errors"
	"github.com/stretchr/testify/require"
)

const example = `# comment
monitor = eDP-1,1920x1080,0x0,1

general {
    gaps_in = 5
    gaps_out = 10
}
`

const exampleCanonical = `monitor = eDP-1,1920x1080,0x0,1
general {
    gaps_in = 5
    gaps_out = 10
}
`

func TestParse_Example(t *testing.T) {
	doc := hconf.Parse([]byte(example))

	expected := &ast.Document{Nodes: []ast.Node{
		&ast.Leaf{Key: "monitor", Value: "eDP-1,1920x1080,0x0,1"},
		&ast.Section{Key: "general", Children: []ast.Node{
			&ast.Leaf{Key: "gaps_in", Value: "5"},
			&ast.Leaf{Key: "gaps_out", Value: "10"},
		}},
	}}
	require.True(t, ast.Equal(expected, doc), "got:\n%s", doc)

	out, err := hconf.Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, exampleCanonical, string(out))
}

func TestParseLines(t *testing.T) {
	lines := strings.SplitAfter(example, "\n")
	require.True(t, ast.Equal(hconf.Parse([]byte(example)), hconf.ParseLines(lines)))
}

func TestMarshal_SingleEdit(t *testing.T) {
	doc := hconf.Parse([]byte(example))
	doc.Find("general", "gaps_in").(*ast.Leaf).SetValue("8")

	out, err := hconf.Marshal(doc)
	require.NoError(t, err)

	before := strings.Split(exampleCanonical, "\n")
	after := strings.Split(string(out), "\n")
	require.Len(t, after, len(before))

	var changed []int
	for i := range before {
		if before[i] != after[i] {
			changed = append(changed, i)
		}
	}
	require.Equal(t, []int{2}, changed)
	require.Equal(t, "    gaps_in = 8", after[2])
}

func TestMarshal_Nil(t *testing.T) {
	out, err := hconf.Marshal(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMarshal_IndentOption(t *testing.T) {
	doc := hconf.Parse([]byte("a {\nb {\nc = 1\n}\n}"))

	t.Run("Default indentation (4 spaces)", func(t *testing.T) {
		out, err := hconf.Marshal(doc)
		require.NoError(t, err)
		require.Equal(t, "a {\n    b {\n        c = 1\n    }\n}\n", string(out))
	})

	t.Run("Indent(2)", func(t *testing.T) {
		out, err := hconf.Marshal(doc, hconf.Indent(2))
		require.NoError(t, err)
		require.Equal(t, "a {\n  b {\n    c = 1\n  }\n}\n", string(out))
	})

	t.Run("Indent(0)", func(t *testing.T) {
		out, err := hconf.Marshal(doc, hconf.Indent(0))
		require.NoError(t, err)
		require.Equal(t, "a {\nb {\nc = 1\n}\n}\n", string(out))
	})

	t.Run("IndentTabs", func(t *testing.T) {
		out, err := hconf.Marshal(doc, hconf.IndentTabs())
		require.NoError(t, err)
		require.Equal(t, "a {\n\tb {\n\t\tc = 1\n\t}\n}\n", string(out))
	})

	t.Run("Last option wins", func(t *testing.T) {
		out, err := hconf.Marshal(doc, hconf.IndentTabs(), hconf.Indent(1))
		require.NoError(t, err)
		require.Equal(t, "a {\n b {\n  c = 1\n }\n}\n", string(out))
	})

	t.Run("Invalid Indent option", func(t *testing.T) {
		_, err := hconf.Marshal(doc, hconf.Indent(-1))
		require.Error(t, err)
		require.Contains(t, err.Error(), "indent spaces cannot be negative")
	})
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		example,
		"",
		"a {\n}\n",
		"empty =\nsection {\n}\n",
		"timeout = 5 = extra\n",
		"  deeply {\n\tnested {\n  more {\nx=1\n}\n  }\n}\n",
		"bind = SUPER, Q, exec, kitty\nbind = SUPER, C, killactive\n",
		"stray\n}\nunclosed {\n  a = b\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := hconf.Parse([]byte(input))
			out, err := hconf.Marshal(first)
			require.NoError(t, err)

			second := hconf.Parse(out)
			require.True(t, ast.Equal(first, second), "first:\n%s\nsecond:\n%s", first, second)

			// Canonical text is a fixed point.
			again, err := hconf.Marshal(second)
			require.NoError(t, err)
			require.Equal(t, string(out), string(again))
		})
	}
}

func TestCommentErasure(t *testing.T) {
	out, err := hconf.Format([]byte(example))
	require.NoError(t, err)
	require.NotEqual(t, example, string(out))
	require.NotContains(t, string(out), "#")
	require.NotContains(t, string(out), "\n\n")

	canonical, err := hconf.Format([]byte(exampleCanonical))
	require.NoError(t, err)
	require.Equal(t, exampleCanonical, string(canonical))
}

func TestCheck(t *testing.T) {
	require.NoError(t, hconf.Check([]byte(example)))

	err := hconf.Check([]byte("a = 1\n}\nnonsense\nopen {\n"))
	require.Error(t, err)

	var perrs hconferrors.ParseErrors
	require.True(t, errors.As(err, &perrs))
	require.Len(t, perrs, 3)
	require.Equal(t, 2, perrs[0].Line)
	require.Equal(t, 3, perrs[1].Line)
	require.Equal(t, 4, perrs[2].Line)
	require.Contains(t, err.Error(), "line 2")
	require.Contains(t, err.Error(), "and 2 more")
}

func TestEncoderDecoder(t *testing.T) {
	doc, err := hconf.NewDecoder(strings.NewReader(example)).Decode()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hconf.NewEncoder(&buf).Encode(doc))
	require.Equal(t, exampleCanonical, buf.String())

	_, err = hconf.NewDecoder(nil).Decode()
	require.Error(t, err)

	_, err = hconf.NewDecoder(iotest.ErrReader(errors.New("boom"))).Decode()
	require.EqualError(t, err, "boom")
}
