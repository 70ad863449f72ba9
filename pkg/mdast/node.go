package mdast

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeBlockquote
	NodeList
	NodeListItem
	NodeHeading
	NodeThematicBreak
	NodeCodeBlock
	NodeHTMLBlock
	NodeParagraph

	// Inline-level nodes.
	NodeText
	NodeCodeSpan
	NodeEmphasis
	NodeStrong
	NodeLink
	NodeImage
	NodeHTMLInline
	NodeHardBreak
	NodeSoftBreak
)

// tagNames are the element names used by the CommonMark XML format.
var tagNames = [...]string{
	NodeDocument:      "document",
	NodeBlockquote:    "block_quote",
	NodeList:          "list",
	NodeListItem:      "item",
	NodeHeading:       "heading",
	NodeThematicBreak: "thematic_break",
	NodeCodeBlock:     "code_block",
	NodeHTMLBlock:     "html_block",
	NodeParagraph:     "paragraph",
	NodeText:          "text",
	NodeCodeSpan:      "code",
	NodeEmphasis:      "emph",
	NodeStrong:        "strong",
	NodeLink:          "link",
	NodeImage:         "image",
	NodeHTMLInline:    "html_inline",
	NodeHardBreak:     "linebreak",
	NodeSoftBreak:     "softbreak",
}

// Tag returns the snake_case element name of the kind, e.g. "block_quote".
func (k NodeKind) Tag() string {
	if int(k) < len(tagNames) {
		return tagNames[k]
	}
	return "unknown"
}

// IsBlock returns true for block-level kinds, including the document.
func (k NodeKind) IsBlock() bool {
	return k <= NodeParagraph
}

// IsInline returns true for inline-level kinds.
func (k NodeKind) IsInline() bool {
	return k >= NodeText && k <= NodeSoftBreak
}

// IsContainer reports whether blocks of this kind hold other blocks.
func (k NodeKind) IsContainer() bool {
	switch k {
	case NodeDocument, NodeBlockquote, NodeList, NodeListItem:
		return true
	default:
		return false
	}
}

// NodeID addresses a node inside its Tree.
type NodeID int32

// NoNode is the null NodeID.
const NoNode NodeID = -1

// Node is a single entry in a Tree's arena.
// Links to other nodes are NodeIDs into the same arena.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure links.
	Parent     NodeID
	FirstChild NodeID
	LastChild  NodeID
	Prev       NodeID
	Next       NodeID

	// Pos is the source span. Only block nodes carry positions.
	Pos SourcePosition

	// Open is true while a block still accepts content.
	Open bool

	// Literal holds the text of text, code, html and code block nodes.
	Literal string

	// Content accumulates the raw lines of a leaf block until the
	// inline phase consumes it.
	Content []byte

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind.IsBlock()
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind.IsInline()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != NoNode
}

// ListData returns the list attributes of a list or item node, or nil.
func (n *Node) ListData() *ListAttrs {
	if n.Block == nil {
		return nil
	}
	return n.Block.List
}

// CodeData returns the code block attributes of a code block node, or nil.
func (n *Node) CodeData() *CodeBlockAttrs {
	if n.Block == nil {
		return nil
	}
	return n.Block.CodeBlock
}

// LinkData returns the link attributes of a link or image node, or nil.
func (n *Node) LinkData() *LinkAttrs {
	if n.Inline == nil {
		return nil
	}
	return n.Inline.Link
}
