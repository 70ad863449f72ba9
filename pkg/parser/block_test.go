package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
)

func TestParse_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  lines("document"),
		},
		{
			name:  "blank lines only",
			input: "\n  \n\t\n",
			want:  lines("document"),
		},
		{
			name:  "ATX heading with closing sequence",
			input: "## foo ##",
			want: lines(
				"document",
				`  heading level="2"`,
				`    text "foo"`,
			),
		},
		{
			name:  "empty ATX heading",
			input: "#",
			want: lines(
				"document",
				`  heading level="1"`,
			),
		},
		{
			name:  "hash without space is a paragraph",
			input: "#5 bolt",
			want: lines(
				"document",
				"  paragraph",
				`    text "#5 bolt"`,
			),
		},
		{
			name:  "setext heading",
			input: "Foo\n===",
			want: lines(
				"document",
				`  heading level="1"`,
				`    text "Foo"`,
			),
		},
		{
			name:  "multi-line setext heading",
			input: "Foo\nbar\n---",
			want: lines(
				"document",
				`  heading level="2"`,
				`    text "Foo"`,
				"    softbreak",
				`    text "bar"`,
			),
		},
		{
			name:  "thematic breaks",
			input: "***\n---\n_ _ _",
			want: lines(
				"document",
				"  thematic_break",
				"  thematic_break",
				"  thematic_break",
			),
		},
		{
			name:  "blockquote with lazy continuation",
			input: "> foo\nbar",
			want: lines(
				"document",
				"  block_quote",
				"    paragraph",
				`      text "foo"`,
				"      softbreak",
				`      text "bar"`,
			),
		},
		{
			name:  "indented code drops trailing blank lines",
			input: "    a\n\n    b\n\n\n",
			want: lines(
				"document",
				`  code_block "a\n\nb\n"`,
			),
		},
		{
			name:  "fenced code with info string",
			input: "```go\nfmt\n```",
			want: lines(
				"document",
				`  code_block info="go" "fmt\n"`,
			),
		},
		{
			name:  "info string is unescaped",
			input: "~~~ a\\*b &amp; c\nx\n~~~",
			want: lines(
				"document",
				`  code_block info="a*b & c" "x\n"`,
			),
		},
		{
			name:  "shorter closing fence does not close",
			input: "````\nx\n```\n",
			want: lines(
				"document",
				"  code_block \"x\\n```\\n\"",
			),
		},
		{
			name:  "closing fence needs the same character",
			input: "```\nx\n~~~\n```\ny",
			want: lines(
				"document",
				`  code_block "x\n~~~\n"`,
				"  paragraph",
				`    text "y"`,
			),
		},
		{
			name:  "closing fence may not carry other text",
			input: "```\nx\n``` y\n```",
			want: lines(
				"document",
				"  code_block \"x\\n``` y\\n\"",
			),
		},
		{
			name:  "fence offset is removed from content",
			input: "  ```\n  a\n b\nc\n  ```",
			want: lines(
				"document",
				`  code_block "a\nb\nc\n"`,
			),
		},
		{
			name:  "HTML block type 6 ends at blank line",
			input: "<div>\n*hi*\n\n*there*",
			want: lines(
				"document",
				`  html_block "<div>\n*hi*"`,
				"  paragraph",
				"    emph",
				`      text "there"`,
			),
		},
		{
			name:  "HTML comment block spans lines",
			input: "<!-- a\nb -->\nfoo",
			want: lines(
				"document",
				`  html_block "<!-- a\nb -->"`,
				"  paragraph",
				`    text "foo"`,
			),
		},
		{
			name:  "HTML block type 7 cannot interrupt a paragraph",
			input: "foo\n<a href=\"x\">",
			want: lines(
				"document",
				"  paragraph",
				`    text "foo"`,
				"    softbreak",
				`    html_inline "<a href=\"x\">"`,
			),
		},
		{
			name:  "ordered list",
			input: "1. a\n2. b",
			want: lines(
				"document",
				`  list type="ordered" start="1" tight="true" delimiter="period"`,
				"    item",
				"      paragraph",
				`        text "a"`,
				"    item",
				"      paragraph",
				`        text "b"`,
			),
		},
		{
			name:  "ordered list with paren delimiter and start",
			input: "3) x",
			want: lines(
				"document",
				`  list type="ordered" start="3" tight="true" delimiter="paren"`,
				"    item",
				"      paragraph",
				`        text "x"`,
			),
		},
		{
			name:  "only start 1 interrupts a paragraph",
			input: "foo\n3. bar",
			want: lines(
				"document",
				"  paragraph",
				`    text "foo"`,
				"    softbreak",
				`    text "3. bar"`,
			),
		},
		{
			name:  "empty item cannot interrupt a paragraph",
			input: "foo\n*",
			want: lines(
				"document",
				"  paragraph",
				`    text "foo"`,
				"    softbreak",
				`    text "*"`,
			),
		},
		{
			name:  "changing bullet starts a new list",
			input: "- a\n+ b",
			want: lines(
				"document",
				`  list type="bullet" tight="true"`,
				"    item",
				"      paragraph",
				`        text "a"`,
				`  list type="bullet" tight="true"`,
				"    item",
				"      paragraph",
				`        text "b"`,
			),
		},
		{
			name:  "nested list",
			input: "- a\n  - b",
			want: lines(
				"document",
				`  list type="bullet" tight="true"`,
				"    item",
				"      paragraph",
				`        text "a"`,
				`      list type="bullet" tight="true"`,
				"        item",
				"          paragraph",
				`            text "b"`,
			),
		},
		{
			name:  "tab inside list item continuation",
			input: "- foo\n\n\tbar",
			want: lines(
				"document",
				`  list type="bullet" tight="false"`,
				"    item",
				"      paragraph",
				`        text "foo"`,
				"      paragraph",
				`        text "bar"`,
			),
		},
		{
			name:  "tabs in indented code are kept",
			input: "\tfoo\tbaz\t\tbim",
			want: lines(
				"document",
				`  code_block "foo\tbaz\t\tbim\n"`,
			),
		},
		{
			name:  "partially consumed tab after blockquote marker",
			input: ">\t\tfoo",
			want: lines(
				"document",
				"  block_quote",
				`    code_block "  foo\n"`,
			),
		},
		{
			name:  "definition alone leaves no paragraph",
			input: "[foo]: /url",
			want:  lines("document"),
		},
		{
			name:  "definition before setext underline",
			input: "[foo]: /url\n===",
			want: lines(
				"document",
				"  paragraph",
				`    text "==="`,
			),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, dump(tc.input))
		})
	}
}

func TestParse_ListTightness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		tight bool
	}{
		{"adjacent items", "- a\n- b", true},
		{"blank line between items", "- a\n\n- b", false},
		{"blank line inside item", "- a\n\n  b\n- c", false},
		{"blank line in nested list only", "- a\n  - b\n\n  - c\n- d", true},
		{"trailing blank line", "- a\n- b\n\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree := parser.Parse(tc.input)
			list := tree.Node(tree.Root()).FirstChild
			require.Equal(t, mdast.NodeList, tree.Kind(list))
			assert.Equal(t, tc.tight, tree.Node(list).ListData().Tight)
		})
	}
}

func TestParse_ListData(t *testing.T) {
	t.Parallel()

	tree := parser.Parse("  10.   foo\n")
	list := tree.Node(tree.Root()).FirstChild
	item := tree.Node(list).FirstChild

	data := tree.Node(item).ListData()
	require.NotNil(t, data)
	assert.True(t, data.Ordered)
	assert.Equal(t, 10, data.StartNumber)
	assert.Equal(t, byte('.'), data.Delimiter)
	assert.Equal(t, 2, data.MarkerOffset)
	assert.Equal(t, 6, data.Padding)

	// The list and the item hold separate copies.
	assert.NotSame(t, data, tree.Node(list).ListData())
}

func TestParse_CodeBlockData(t *testing.T) {
	t.Parallel()

	tree := parser.Parse(" ~~~~ ruby startline=3\ndef\n ~~~~~")
	code := tree.Node(tree.Node(tree.Root()).FirstChild)
	require.Equal(t, mdast.NodeCodeBlock, code.Kind)

	data := code.CodeData()
	require.NotNil(t, data)
	assert.True(t, data.Fenced)
	assert.Equal(t, byte('~'), data.FenceChar)
	assert.Equal(t, 4, data.FenceLength)
	assert.Equal(t, 1, data.FenceOffset)
	assert.Equal(t, "ruby startline=3", data.Info)
	assert.Equal(t, "def\n", code.Literal)
	assert.Nil(t, code.Content)
}

func TestParse_HTMLBlockType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  int
	}{
		{"<pre>\nx\n</pre>", 1},
		{"<!-- c -->", 2},
		{"<?php ?>", 3},
		{"<!DOCTYPE html>", 4},
		{"<![CDATA[x]]>", 5},
		{"<table>", 6},
		{"<custom-tag>", 7},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			tree := parser.Parse(tc.input)
			html := tree.Node(tree.Node(tree.Root()).FirstChild)
			require.Equal(t, mdast.NodeHTMLBlock, html.Kind)
			assert.Equal(t, tc.want, html.Block.HTMLBlockType)
			assert.Equal(t, tc.input, html.Literal)
		})
	}
}

func TestParse_SourcePositions(t *testing.T) {
	t.Parallel()

	tree := parser.Parse("# Foo\n\nbar\nbaz\n\n    code\n\n- a\n-\n")
	root := tree.Root()

	pos := func(id mdast.NodeID) string {
		return tree.Node(id).Pos.String()
	}
	children := tree.Children(root)
	require.Len(t, children, 4)

	assert.Equal(t, "1:1-9:1", pos(root))
	assert.Equal(t, "1:1-1:5", pos(children[0]), "heading")
	assert.Equal(t, "3:1-4:3", pos(children[1]), "paragraph")
	assert.Equal(t, "6:5-6:8", pos(children[2]), "indented code")
	assert.Equal(t, "8:1-9:2", pos(children[3]), "list")

	items := tree.Children(children[3])
	require.Len(t, items, 2)
	assert.Equal(t, "8:1-8:3", pos(items[0]))
	assert.Equal(t, "9:1-9:2", pos(items[1]), "empty item")
}

func TestParse_SourcePositionAfterDefinition(t *testing.T) {
	t.Parallel()

	tree := parser.Parse("[foo]: /url\n'title'\nbar")
	para := tree.Node(tree.Root()).FirstChild
	require.Equal(t, mdast.NodeParagraph, tree.Kind(para))
	assert.Equal(t, 3, tree.Node(para).Pos.StartLine)
	assert.Equal(t, "title", tree.Refs["foo"].Title)
}

func TestParse_LineEndings(t *testing.T) {
	t.Parallel()

	want := dump("a\nb\n\nc\n")
	assert.Equal(t, want, dump("a\r\nb\r\n\r\nc\r\n"))
	assert.Equal(t, want, dump("a\rb\r\rc\r"))
}

func TestParse_NULReplaced(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lines(
		"document",
		"  paragraph",
		"    text \"a�b\"",
	), dump("a\x00b"))
}
