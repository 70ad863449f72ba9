package mdast

// Tree is an arena of nodes. Node 0 is always the document root.
// Nodes are never freed: unlinked nodes stay in the arena but are no
// longer reachable from the root.
type Tree struct {
	nodes []Node

	// Refs holds the link reference definitions collected by the block phase.
	Refs ReferenceMap
}

// NewTree creates a tree holding an open document node at line 1, column 1.
func NewTree() *Tree {
	t := &Tree{
		nodes: make([]Node, 0, 64),
		Refs:  ReferenceMap{},
	}
	doc := t.NewNode(NodeDocument, SourcePosition{StartLine: 1, StartColumn: 1})
	t.nodes[doc].Open = true
	return t
}

// Root returns the document node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of arena slots, including detached nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for id. The pointer stays valid until the next
// call to NewNode or NewText, which may grow the arena.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Kind returns the kind of node id.
func (t *Tree) Kind(id NodeID) NodeKind {
	return t.nodes[id].Kind
}

// NewNode allocates a detached node of the given kind.
func (t *Tree) NewNode(kind NodeKind, pos SourcePosition) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Kind:       kind,
		Parent:     NoNode,
		FirstChild: NoNode,
		LastChild:  NoNode,
		Prev:       NoNode,
		Next:       NoNode,
		Pos:        pos,
	})
	return id
}

// NewText allocates a detached text node.
func (t *Tree) NewText(literal string) NodeID {
	id := t.NewNode(NodeText, SourcePosition{})
	t.nodes[id].Literal = literal
	return id
}

// AppendChild appends child to parent, detaching it from any previous position.
func (t *Tree) AppendChild(parent, child NodeID) {
	if parent == NoNode || child == NoNode {
		return
	}
	t.Unlink(child)

	p := &t.nodes[parent]
	c := &t.nodes[child]
	c.Parent = parent
	c.Prev = p.LastChild
	if p.LastChild != NoNode {
		t.nodes[p.LastChild].Next = child
	} else {
		p.FirstChild = child
	}
	p.LastChild = child
}

// PrependChild inserts child as the first child of parent.
func (t *Tree) PrependChild(parent, child NodeID) {
	if parent == NoNode || child == NoNode {
		return
	}
	t.Unlink(child)

	p := &t.nodes[parent]
	c := &t.nodes[child]
	c.Parent = parent
	c.Next = p.FirstChild
	if p.FirstChild != NoNode {
		t.nodes[p.FirstChild].Prev = child
	} else {
		p.LastChild = child
	}
	p.FirstChild = child
}

// InsertAfter inserts node right after sibling. sibling must have a parent.
func (t *Tree) InsertAfter(sibling, node NodeID) {
	if sibling == NoNode || node == NoNode || t.nodes[sibling].Parent == NoNode {
		return
	}
	t.Unlink(node)

	s := &t.nodes[sibling]
	n := &t.nodes[node]
	n.Parent = s.Parent
	n.Prev = sibling
	n.Next = s.Next
	if s.Next != NoNode {
		t.nodes[s.Next].Prev = node
	} else {
		t.nodes[s.Parent].LastChild = node
	}
	s.Next = node
}

// InsertBefore inserts node right before sibling. sibling must have a parent.
func (t *Tree) InsertBefore(sibling, node NodeID) {
	if sibling == NoNode || node == NoNode || t.nodes[sibling].Parent == NoNode {
		return
	}
	t.Unlink(node)

	s := &t.nodes[sibling]
	n := &t.nodes[node]
	n.Parent = s.Parent
	n.Next = sibling
	n.Prev = s.Prev
	if s.Prev != NoNode {
		t.nodes[s.Prev].Next = node
	} else {
		t.nodes[s.Parent].FirstChild = node
	}
	s.Prev = node
}

// Unlink removes node from its parent and relinks its siblings.
// The node keeps its own children.
func (t *Tree) Unlink(node NodeID) {
	if node == NoNode {
		return
	}
	n := &t.nodes[node]
	if n.Prev != NoNode {
		t.nodes[n.Prev].Next = n.Next
	} else if n.Parent != NoNode {
		t.nodes[n.Parent].FirstChild = n.Next
	}
	if n.Next != NoNode {
		t.nodes[n.Next].Prev = n.Prev
	} else if n.Parent != NoNode {
		t.nodes[n.Parent].LastChild = n.Prev
	}
	n.Parent = NoNode
	n.Prev = NoNode
	n.Next = NoNode
}

// Children returns the direct children of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	var children []NodeID
	for child := t.nodes[id].FirstChild; child != NoNode; child = t.nodes[child].Next {
		children = append(children, child)
	}
	return children
}

// ChildCount returns the number of direct children of id.
func (t *Tree) ChildCount(id NodeID) int {
	count := 0
	for child := t.nodes[id].FirstChild; child != NoNode; child = t.nodes[child].Next {
		count++
	}
	return count
}

// TextContent concatenates the literals of all descendants of id.
// Soft and hard breaks contribute a newline.
func (t *Tree) TextContent(id NodeID) string {
	var buf []byte
	//nolint:errcheck,revive // callback never fails
	t.Walk(id, func(n NodeID) error {
		node := &t.nodes[n]
		switch node.Kind {
		case NodeText, NodeCodeSpan, NodeHTMLInline:
			buf = append(buf, node.Literal...)
		case NodeSoftBreak, NodeHardBreak:
			buf = append(buf, '\n')
		}
		return nil
	})
	return string(buf)
}
