/*
Package hconf reads and writes hierarchical, brace-delimited configuration
files such as Hyprland's hyprland.conf.

The format is line oriented:

	# comments and blank lines are ignored
	monitor = eDP-1,1920x1080,0x0,1
	general {
	    gaps_in = 5
	    decoration {
	        rounding = 10
	    }
	}

A line ending in '{' opens a section named by the text before the brace, a
line holding only '}' closes it, and any other line containing '=' is an
assignment split on its first '='. Indentation on input is cosmetic.

Parsing and Writing

Parse turns a source into an *ast.Document, an ordered forest of *ast.Leaf
and *ast.Section nodes. It is deliberately lenient and never returns an
error; Check reports what Parse had to skip or repair.

	doc := hconf.Parse(data)
	doc.Find("general", "gaps_in").(*ast.Leaf).SetValue("8")

	out, err := hconf.Marshal(doc)
	if err != nil {
		// handle error
	}

Marshal writes canonical form: comments and blank lines are gone and every
nesting level is indented with four spaces (see the Indent and IndentTabs
options). For any document returned by Parse, parsing the output of Marshal
yields an equal document.

Comments are not kept in the tree, so a Parse and Marshal round trip of a
hand-written file will drop them.
*/
package hconf
