package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Tree.
type mapper struct {
	src  *mdast.Source
	tree *mdast.Tree
}

func newMapper(src *mdast.Source) *mapper {
	return &mapper{src: src, tree: mdast.NewTree()}
}

// mapDocument maps the children of a goldmark document under the root.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Tree {
	root := m.tree.Root()
	m.mapChildren(gmDoc, root)

	doc := m.tree.Node(root)
	doc.Open = false
	doc.Pos.EndLine = m.src.LineCount()
	if last := m.src.LineContent(doc.Pos.EndLine); last != nil {
		doc.Pos.EndColumn = len(last)
	}
	return m.tree
}

// mapChildren maps all children of gmParent and appends them to parent.
// Nodes without an mdast counterpart are flattened into parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent mdast.NodeID) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		id := m.mapNode(child)
		if id == mdast.NoNode {
			m.mapChildren(child, parent)
			continue
		}
		m.tree.AppendChild(parent, id)
		if t, ok := child.(*ast.Text); ok {
			m.appendBreak(t, parent)
		}
	}
}

// mapNode converts a single goldmark node.
func (m *mapper) mapNode(gmNode ast.Node) mdast.NodeID {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		id := m.newBlock(mdast.NodeHeading, gmn)
		m.tree.Node(id).Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		m.mapChildren(gmn, id)
		return id

	case *ast.Paragraph, *ast.TextBlock:
		// Extracting trailing reference definitions leaves an empty block.
		if gmn.Lines().Len() == 0 && !gmn.HasChildren() {
			return mdast.NoNode
		}
		id := m.newBlock(mdast.NodeParagraph, gmn)
		m.mapChildren(gmn, id)
		return id

	case *ast.List:
		return m.mapList(gmn)

	case *ast.ListItem:
		return m.container(mdast.NodeListItem, gmn)

	case *ast.Blockquote:
		return m.container(mdast.NodeBlockquote, gmn)

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		id := m.newBlock(mdast.NodeCodeBlock, gmn)
		n := m.tree.Node(id)
		n.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{}}
		n.Literal = m.linesText(gmn.Lines())
		return id

	case *ast.ThematicBreak:
		return m.newBlock(mdast.NodeThematicBreak, gmn)

	case *ast.HTMLBlock:
		id := m.newBlock(mdast.NodeHTMLBlock, gmn)
		n := m.tree.Node(id)
		n.Block = &mdast.BlockAttrs{HTMLBlockType: int(gmn.HTMLBlockType)}
		n.Literal = m.linesText(gmn.Lines())
		if gmn.HasClosure() {
			n.Literal += string(gmn.ClosureLine.Value(m.src.Content))
		}
		n.Literal = strings.TrimRight(n.Literal, "\n")
		return id

	// Inline-level nodes.
	case *ast.Text:
		return m.tree.NewText(string(gmn.Segment.Value(m.src.Content)))

	case *ast.String:
		return m.tree.NewText(string(gmn.Value))

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level == 2 {
			kind = mdast.NodeStrong
		}
		id := m.tree.NewNode(kind, mdast.SourcePosition{})
		m.mapChildren(gmn, id)
		return id

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn)

	case *ast.Link:
		return m.mapLink(mdast.NodeLink, gmn, gmn.Destination, gmn.Title)

	case *ast.Image:
		return m.mapLink(mdast.NodeImage, gmn, gmn.Destination, gmn.Title)

	case *ast.AutoLink:
		id := m.tree.NewNode(mdast.NodeLink, mdast.SourcePosition{})
		m.tree.Node(id).Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination:    string(gmn.URL(m.src.Content)),
			ReferenceStyle: mdast.RefStyleAutolink,
		}}
		m.tree.AppendChild(id, m.tree.NewText(string(gmn.Label(m.src.Content))))
		return id

	case *ast.RawHTML:
		id := m.tree.NewNode(mdast.NodeHTMLInline, mdast.SourcePosition{})
		var buf bytes.Buffer
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			buf.Write(seg.Value(m.src.Content))
		}
		m.tree.Node(id).Literal = buf.String()
		return id

	default:
		return mdast.NoNode
	}
}

// newBlock allocates a closed block node positioned from gmNode's lines.
func (m *mapper) newBlock(kind mdast.NodeKind, gmNode ast.Node) mdast.NodeID {
	return m.tree.NewNode(kind, m.linesPosition(gmNode.Lines()))
}

// container maps a container block. Its span runs from its first to its
// last descendant block.
func (m *mapper) container(kind mdast.NodeKind, gmNode ast.Node) mdast.NodeID {
	id := m.tree.NewNode(kind, mdast.SourcePosition{})
	m.mapChildren(gmNode, id)
	m.spanChildren(id)
	return id
}

func (m *mapper) spanChildren(id mdast.NodeID) {
	n := m.tree.Node(id)
	first, last := n.FirstChild, n.LastChild
	if first == mdast.NoNode {
		return
	}
	start, end := m.tree.Node(first).Pos, m.tree.Node(last).Pos
	n = m.tree.Node(id)
	n.Pos.StartLine, n.Pos.StartColumn = start.StartLine, start.StartColumn
	n.Pos.EndLine, n.Pos.EndColumn = end.EndLine, end.EndColumn
}

// linesPosition converts the first and last line segments to a span.
func (m *mapper) linesPosition(lines *text.Segments) mdast.SourcePosition {
	if lines == nil || lines.Len() == 0 {
		return mdast.SourcePosition{}
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)

	var pos mdast.SourcePosition
	pos.StartLine, pos.StartColumn = m.src.LineAt(first.Start)
	stop := last.Stop
	if stop > first.Start && stop <= len(m.src.Content) && m.src.Content[stop-1] == '\n' {
		stop--
	}
	if stop > first.Start {
		stop--
	}
	pos.EndLine, pos.EndColumn = m.src.LineAt(stop)
	return pos
}

// linesText concatenates the raw text of line segments.
func (m *mapper) linesText(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.src.Content))
	}
	return buf.String()
}

func (m *mapper) mapList(list *ast.List) mdast.NodeID {
	attrs := &mdast.ListAttrs{
		Ordered: list.IsOrdered(),
		Tight:   list.IsTight,
	}
	if attrs.Ordered {
		attrs.StartNumber = list.Start
		attrs.Delimiter = list.Marker
	} else {
		attrs.BulletChar = list.Marker
	}

	id := m.container(mdast.NodeList, list)
	m.tree.Node(id).Block = &mdast.BlockAttrs{List: attrs}
	return id
}

func (m *mapper) mapFencedCodeBlock(cb *ast.FencedCodeBlock) mdast.NodeID {
	id := m.newBlock(mdast.NodeCodeBlock, cb)

	attrs := &mdast.CodeBlockAttrs{Fenced: true}
	if cb.Info != nil {
		attrs.Info = string(cb.Info.Segment.Value(m.src.Content))
	}
	attrs.FenceChar, attrs.FenceLength = m.fenceStyle(cb)

	n := m.tree.Node(id)
	n.Block = &mdast.BlockAttrs{CodeBlock: attrs}
	n.Literal = m.linesText(cb.Lines())
	return id
}

// fenceStyle reads the opening fence from the line above the first content
// line. Blocks without content fall back to three backticks.
func (m *mapper) fenceStyle(cb *ast.FencedCodeBlock) (byte, int) {
	lines := cb.Lines()
	if lines.Len() == 0 {
		return '`', 3
	}
	line, _ := m.src.LineAt(lines.At(0).Start)
	fence := bytes.TrimLeft(m.src.LineContent(line-1), " \t>")
	if len(fence) == 0 || (fence[0] != '`' && fence[0] != '~') {
		return '`', 3
	}
	n := 0
	for n < len(fence) && fence[n] == fence[0] {
		n++
	}
	return fence[0], max(n, 3)
}

// appendBreak appends the line break goldmark records on the text before it.
func (m *mapper) appendBreak(t *ast.Text, parent mdast.NodeID) {
	switch {
	case t.HardLineBreak():
		m.tree.AppendChild(parent, m.tree.NewNode(mdast.NodeHardBreak, mdast.SourcePosition{}))
	case t.SoftLineBreak():
		m.tree.AppendChild(parent, m.tree.NewNode(mdast.NodeSoftBreak, mdast.SourcePosition{}))
	}
}

func (m *mapper) mapCodeSpan(cs *ast.CodeSpan) mdast.NodeID {
	var buf bytes.Buffer
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(m.src.Content))
		case *ast.String:
			buf.Write(c.Value)
		}
	}
	id := m.tree.NewNode(mdast.NodeCodeSpan, mdast.SourcePosition{})
	m.tree.Node(id).Literal = buf.String()
	return id
}

func (m *mapper) mapLink(kind mdast.NodeKind, gmNode ast.Node, dest, title []byte) mdast.NodeID {
	id := m.tree.NewNode(kind, mdast.SourcePosition{})
	m.tree.Node(id).Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination: string(dest),
		Title:       string(title),
	}}
	m.mapChildren(gmNode, id)
	return id
}
