package goldmark_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
	"github.com/yaklabco/gocmark/pkg/parser/goldmark"
)

func parse(t *testing.T, input string) *mdast.Tree {
	t.Helper()

	tree, err := goldmark.New().ParseSource(context.Background(), mdast.NewSource("test.md", []byte(input)))
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func first(t *testing.T, tree *mdast.Tree, kind mdast.NodeKind) *mdast.Node {
	t.Helper()

	ids := tree.FindByKind(tree.Root(), kind)
	require.NotEmpty(t, ids, "no %s in tree:\n%s", kind, tree)
	return tree.Node(ids[0])
}

func blockOutline(t *testing.T, tree *mdast.Tree) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, tree.WriteText(&sb, tree.Root(), mdast.DumpOptions{BlocksOnly: true}))
	return sb.String()
}

func TestParser_Parse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := goldmark.New().ParseSource(ctx, mdast.NewSource("test.md", []byte("# x")))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tree)
}

func TestParser_Parse_Empty(t *testing.T) {
	t.Parallel()

	tree := parse(t, "")
	root := tree.Node(tree.Root())
	assert.Equal(t, mdast.NodeDocument, root.Kind)
	assert.False(t, root.Open)
	assert.False(t, root.HasChildren())
}

func TestParser_Parse_Heading(t *testing.T) {
	t.Parallel()

	tree := parse(t, "## Hello *world*\n")
	heading := first(t, tree, mdast.NodeHeading)
	assert.Equal(t, 2, heading.Block.HeadingLevel)

	emph := first(t, tree, mdast.NodeEmphasis)
	assert.Equal(t, mdast.NodeText, tree.Node(emph.FirstChild).Kind)
	assert.Equal(t, "world", tree.Node(emph.FirstChild).Literal)
}

func TestParser_Parse_SoftBreakOrder(t *testing.T) {
	t.Parallel()

	tree := parse(t, "a\nb")
	want := "paragraph\n" +
		"  text \"a\"\n" +
		"  softbreak\n" +
		"  text \"b\"\n"

	para := tree.FindByKind(tree.Root(), mdast.NodeParagraph)
	require.Len(t, para, 1)

	var sb strings.Builder
	require.NoError(t, tree.WriteText(&sb, para[0], mdast.DumpOptions{}))
	assert.Equal(t, want, sb.String())
}

func TestParser_Parse_Lists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  mdast.ListAttrs
	}{
		{
			name:  "tight bullet",
			input: "- a\n- b\n",
			want:  mdast.ListAttrs{BulletChar: '-', Tight: true},
		},
		{
			name:  "loose bullet",
			input: "* a\n\n* b\n",
			want:  mdast.ListAttrs{BulletChar: '*'},
		},
		{
			name:  "ordered with paren",
			input: "3) a\n4) b\n",
			want:  mdast.ListAttrs{Ordered: true, StartNumber: 3, Delimiter: ')', Tight: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			list := first(t, parse(t, tc.input), mdast.NodeList)
			require.NotNil(t, list.ListData())
			assert.Equal(t, tc.want, *list.ListData())
		})
	}
}

func TestParser_Parse_CodeBlocks(t *testing.T) {
	t.Parallel()

	fenced := first(t, parse(t, "~~~~go\nx\n~~~~\n"), mdast.NodeCodeBlock)
	require.NotNil(t, fenced.CodeData())
	assert.True(t, fenced.CodeData().Fenced)
	assert.Equal(t, byte('~'), fenced.CodeData().FenceChar)
	assert.Equal(t, 4, fenced.CodeData().FenceLength)
	assert.Equal(t, "go", fenced.CodeData().Info)
	assert.Equal(t, "x\n", fenced.Literal)

	indented := first(t, parse(t, "    code\n"), mdast.NodeCodeBlock)
	require.NotNil(t, indented.CodeData())
	assert.False(t, indented.CodeData().Fenced)
	assert.Equal(t, "code\n", indented.Literal)
}

func TestParser_Parse_HTMLBlock(t *testing.T) {
	t.Parallel()

	html := first(t, parse(t, "<div>\nhi\n</div>\n"), mdast.NodeHTMLBlock)
	assert.Equal(t, 6, html.Block.HTMLBlockType)
	assert.Equal(t, "<div>\nhi\n</div>", html.Literal)
}

func TestParser_Parse_Links(t *testing.T) {
	t.Parallel()

	tree := parse(t, "[a](/u \"t\") <http://x.y>")
	links := tree.FindByKind(tree.Root(), mdast.NodeLink)
	require.Len(t, links, 2)

	inline := tree.Node(links[0]).LinkData()
	assert.Equal(t, "/u", inline.Destination)
	assert.Equal(t, "t", inline.Title)

	auto := tree.Node(links[1]).LinkData()
	assert.Equal(t, "http://x.y", auto.Destination)
	assert.Equal(t, mdast.RefStyleAutolink, auto.ReferenceStyle)
	assert.Equal(t, "http://x.y", tree.TextContent(links[1]))
}

func TestParser_Parse_Positions(t *testing.T) {
	t.Parallel()

	para := first(t, parse(t, "para\ntext"), mdast.NodeParagraph)
	assert.Equal(t, "1:1-2:4", para.Pos.String())
}

// The block structure of both parsers agrees on common documents.
func TestParser_MatchesNativeBlocks(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# One\n\ntext\n",
		"para\nmore\n\n---\n",
		"> quote\n> more\n",
		"- a\n- b\n\n1. c\n2. d\n",
		"- a\n\n- b\n",
		"```js\nx\n```\n",
		"    indented\n    code\n",
		"<div>\nhi\n</div>\n",
		"> - nested\n>   list\n",
		"[foo]: /url\n",
		"# Title\n\ntext\n\n[foo]: /url \"Foo\"\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, blockOutline(t, parser.Parse(input)), blockOutline(t, parse(t, input)))
		})
	}
}

func TestParser_Parse_References(t *testing.T) {
	t.Parallel()

	tree := parse(t, "[Foo Bar]: /u\n\n[foo bar]\n")

	ref, ok := tree.Refs.Lookup("foo bar")
	require.True(t, ok)
	assert.Equal(t, "Foo Bar", ref.Label)
	assert.Equal(t, "/u", ref.Destination)
}
