package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
)

// dump parses input with default options and returns the text dump.
func dump(input string) string {
	return parser.Parse(input).String()
}

// leafDump returns the text dump of the first paragraph or heading.
func leafDump(t *testing.T, tree *mdast.Tree) string {
	t.Helper()

	leaf := tree.FindFirst(tree.Root(), func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeParagraph || n.Kind == mdast.NodeHeading
	})
	require.NotEqual(t, mdast.NoNode, leaf, "no paragraph or heading in:\n%s", tree)

	var sb strings.Builder
	require.NoError(t, tree.WriteText(&sb, leaf, mdast.DumpOptions{}))
	return sb.String()
}

// inlines parses input and returns the dump of its first leaf block.
func inlines(t *testing.T, input string, opts ...parser.Option) string {
	t.Helper()
	return leafDump(t, parser.New(opts...).Parse(input))
}

// lines joins dump lines, each terminated by a newline.
func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

// checkLeafReparse parses input in place, then parses the raw text of every
// paragraph and heading again as a lone leaf with the same definitions, and
// reports any leaf whose inline dump differs.
func checkLeafReparse(t *testing.T, p *parser.Parser, input string) {
	t.Helper()

	tree := p.ParseBlocks(input)
	leaves := tree.FindByKind(tree.Root(), mdast.NodeParagraph, mdast.NodeHeading)
	raws := make([]string, len(leaves))
	for i, leaf := range leaves {
		raws[i] = string(tree.Node(leaf).Content)
	}
	p.ParseInlines(tree)

	for i, leaf := range leaves {
		var want strings.Builder
		require.NoError(t, tree.WriteText(&want, leaf, mdast.DumpOptions{}))

		alone := mdast.NewTree()
		alone.Refs = tree.Refs
		id := alone.NewNode(tree.Kind(leaf), mdast.SourcePosition{})
		alone.Node(id).Block = tree.Node(leaf).Block
		alone.Node(id).Content = []byte(raws[i])
		alone.AppendChild(alone.Root(), id)
		p.ParseInlines(alone)

		var got strings.Builder
		require.NoError(t, alone.WriteText(&got, id, mdast.DumpOptions{}))
		if got.String() != want.String() {
			t.Errorf("reparsing %q gave\n%s\nwant\n%s", raws[i], got.String(), want.String())
		}
	}
}
