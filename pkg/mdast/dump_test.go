package mdast_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// buildDumpTree creates a bullet list holding a paragraph with a link.
func buildDumpTree() *mdast.Tree {
	tree := mdast.NewTree()
	root := tree.Root()
	tree.Node(root).Pos = mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 12}

	list := tree.NewNode(mdast.NodeList, mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 12})
	tree.Node(list).Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{BulletChar: '-', Tight: true}}
	tree.AppendChild(root, list)

	item := tree.NewNode(mdast.NodeListItem, mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 12})
	tree.AppendChild(list, item)

	para := tree.NewNode(mdast.NodeParagraph, mdast.SourcePosition{StartLine: 1, StartColumn: 3, EndLine: 1, EndColumn: 12})
	tree.AppendChild(item, para)

	link := tree.NewNode(mdast.NodeLink, mdast.SourcePosition{})
	tree.Node(link).Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: "/a&b"}}
	tree.AppendChild(para, link)
	tree.AppendChild(link, tree.NewText("<x>"))

	tree.AppendChild(root, tree.NewNode(mdast.NodeThematicBreak, mdast.SourcePosition{}))
	tree.Refs.Define("x", mdast.Reference{Label: "X", Destination: "/x"})
	return tree
}

func TestTree_String(t *testing.T) {
	t.Parallel()

	want := `document
  list type="bullet" tight="true"
    item
      paragraph
        link destination="/a&b" title=""
          text "<x>"
  thematic_break
`
	assert.Equal(t, want, buildDumpTree().String())
}

func TestTree_WriteText_SourcePos(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tree := buildDumpTree()
	require.NoError(t, tree.WriteText(&buf, tree.Root(), mdast.DumpOptions{SourcePos: true}))

	assert.Contains(t, buf.String(), `paragraph sourcepos="1:3-1:12"`)
	assert.Contains(t, buf.String(), "\n        link destination=\"/a&b\" title=\"\"\n")
}

func TestTree_WriteXML(t *testing.T) {
	t.Parallel()

	want := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE document SYSTEM "CommonMark.dtd">
<document xmlns="http://commonmark.org/xml/1.0">
  <list type="bullet" tight="true">
    <item>
      <paragraph>
        <link destination="/a&amp;b" title="">
          <text>&lt;x&gt;</text>
        </link>
      </paragraph>
    </item>
  </list>
  <thematic_break />
</document>
`
	var buf bytes.Buffer
	tree := buildDumpTree()
	require.NoError(t, tree.WriteXML(&buf, tree.Root(), mdast.DumpOptions{}))
	assert.Equal(t, want, buf.String())
}

func TestTree_WriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, buildDumpTree().WriteJSON(&buf, mdast.DumpOptions{SourcePos: true}))

	var got mdast.JSONTree
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.NotNil(t, got.Document)
	assert.Equal(t, "document", got.Document.Type)
	require.Len(t, got.Document.Children, 2)

	list := got.Document.Children[0]
	assert.Equal(t, "list", list.Type)
	assert.Equal(t, "1:1-1:12", list.SourcePos)
	assert.Equal(t, "bullet", list.Attrs["type"])

	text := list.Children[0].Children[0].Children[0].Children[0]
	require.NotNil(t, text.Literal)
	assert.Equal(t, "<x>", *text.Literal)

	assert.Equal(t, "/x", got.References["x"].Destination)
}
