package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id NodeID) error

// Walk performs a pre-order traversal of the subtree rooted at root.
// If walkFunc returns a non-nil error, the walk stops immediately and
// returns that error.
func (t *Tree) Walk(root NodeID, walkFunc WalkFunc) error {
	if root == NoNode {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for child := t.nodes[root].FirstChild; child != NoNode; child = t.nodes[child].Next {
		if err := t.Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func (t *Tree) WalkWithContext(root NodeID, enter, leave WalkFunc) error {
	if root == NoNode {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for child := t.nodes[root].FirstChild; child != NoNode; child = t.nodes[child].Next {
		if err := t.WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// WalkBlocks walks only block-level nodes.
func (t *Tree) WalkBlocks(root NodeID, fn WalkFunc) error {
	return t.Walk(root, func(id NodeID) error {
		if t.nodes[id].IsBlock() {
			return fn(id)
		}
		return nil
	})
}

// WalkInlines walks only inline-level nodes.
func (t *Tree) WalkInlines(root NodeID, fn WalkFunc) error {
	return t.Walk(root, func(id NodeID) error {
		if t.nodes[id].IsInline() {
			return fn(id)
		}
		return nil
	})
}

// FindAll returns all nodes under root matching the predicate, in document order.
func (t *Tree) FindAll(root NodeID, predicate func(n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	t.Walk(root, func(id NodeID) error {
		if predicate(&t.nodes[id]) {
			result = append(result, id)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or NoNode.
func (t *Tree) FindFirst(root NodeID, predicate func(n *Node) bool) NodeID {
	found := NoNode

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	t.Walk(root, func(id NodeID) error {
		if predicate(&t.nodes[id]) {
			found = id
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kinds.
func (t *Tree) FindByKind(root NodeID, kinds ...NodeKind) []NodeID {
	return t.FindAll(root, func(n *Node) bool {
		for _, k := range kinds {
			if n.Kind == k {
				return true
			}
		}
		return false
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
