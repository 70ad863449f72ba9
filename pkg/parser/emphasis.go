package parser

import (
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// delimiter is an entry of the emphasis delimiter stack. prev and next
// index into inlineParser.delims.
type delimiter struct {
	char       byte
	numDelims  int
	origDelims int
	node       mdast.NodeID
	prev       int
	next       int
	canOpen    bool
	canClose   bool
}

// openersBottomSlots covers both quotes plus, for each of '_' and '*',
// six classes keyed by whether the closer can open and its run length mod 3.
const openersBottomSlots = 14

// scanDelims measures the delimiter run at the current position and
// classifies it as left- and right-flanking. The position is left as is.
func (p *inlineParser) scanDelims(c byte) (numDelims int, canOpen, canClose bool) {
	startPos := p.pos
	if c == '\'' || c == '"' {
		numDelims = 1
	} else {
		numDelims = runLength(p.subject[startPos:], c)
	}
	if numDelims == 0 {
		return 0, false, false
	}

	charBefore := '\n'
	if startPos > 0 {
		charBefore, _ = utf8.DecodeLastRuneInString(p.subject[:startPos])
	}
	charAfter := '\n'
	if end := startPos + numDelims; end < len(p.subject) {
		charAfter, _ = utf8.DecodeRuneInString(p.subject[end:])
	}

	afterIsWhitespace := mdutil.IsUnicodeWhitespace(charAfter)
	afterIsPunctuation := mdutil.IsPunctuation(charAfter)
	beforeIsWhitespace := mdutil.IsUnicodeWhitespace(charBefore)
	beforeIsPunctuation := mdutil.IsPunctuation(charBefore)

	leftFlanking := !afterIsWhitespace &&
		(!afterIsPunctuation || beforeIsWhitespace || beforeIsPunctuation)
	rightFlanking := !beforeIsWhitespace &&
		(!beforeIsPunctuation || afterIsWhitespace || afterIsPunctuation)

	switch c {
	case '_':
		canOpen = leftFlanking && (!rightFlanking || beforeIsPunctuation)
		canClose = rightFlanking && (!leftFlanking || afterIsPunctuation)
	case '\'', '"':
		canOpen = leftFlanking && !rightFlanking
		canClose = rightFlanking
	default:
		canOpen = leftFlanking
		canClose = rightFlanking
	}
	return numDelims, canOpen, canClose
}

// handleDelim emits a delimiter run as text and records it on the
// delimiter stack when it can open or close.
func (p *inlineParser) handleDelim(c byte, block mdast.NodeID) bool {
	numDelims, canOpen, canClose := p.scanDelims(c)
	if numDelims == 0 {
		return false
	}
	startPos := p.pos
	p.pos += numDelims

	var contents string
	switch c {
	case '\'':
		contents = rightSingleQuote
	case '"':
		contents = leftDoubleQuote
	default:
		contents = p.subject[startPos:p.pos]
	}
	node := p.appendText(block, contents)

	isQuote := c == '\'' || c == '"'
	if (canOpen || canClose) && (p.smart || !isQuote) {
		p.delims = append(p.delims, delimiter{
			char:       c,
			numDelims:  numDelims,
			origDelims: numDelims,
			node:       node,
			prev:       p.delimTop,
			next:       noEntry,
			canOpen:    canOpen,
			canClose:   canClose,
		})
		idx := len(p.delims) - 1
		if p.delimTop != noEntry {
			p.delims[p.delimTop].next = idx
		}
		p.delimTop = idx
	}
	return true
}

func (p *inlineParser) removeDelimiter(idx int) {
	d := p.delims[idx]
	if d.prev != noEntry {
		p.delims[d.prev].next = d.next
	}
	if d.next != noEntry {
		p.delims[d.next].prev = d.prev
	} else {
		p.delimTop = d.prev
	}
}

func (p *inlineParser) removeDelimitersBetween(bottom, top int) {
	if p.delims[bottom].next != top {
		p.delims[bottom].next = top
		p.delims[top].prev = bottom
	}
}

func openersBottomIndex(d *delimiter) int {
	switch d.char {
	case '\'':
		return 0
	case '"':
		return 1
	}
	base := 2
	if d.char == '*' {
		base = 8
	}
	if d.canOpen {
		base += 3
	}
	return base + d.origDelims%3
}

// processEmphasis resolves the delimiters above stackBottom into emphasis,
// strong emphasis and smart quotes, then drops them from the stack.
func (p *inlineParser) processEmphasis(stackBottom int) {
	var openersBottom [openersBottomSlots]int
	for i := range openersBottom {
		openersBottom[i] = stackBottom
	}

	// Find the first closer above stackBottom.
	closer := p.delimTop
	for closer != noEntry && p.delims[closer].prev != stackBottom {
		closer = p.delims[closer].prev
	}

	for closer != noEntry {
		cl := &p.delims[closer]
		if !cl.canClose {
			closer = cl.next
			continue
		}

		// Look back for the first matching opener.
		bottomIdx := openersBottomIndex(cl)
		opener := cl.prev
		openerFound := false
		for opener != noEntry && opener != stackBottom && opener != openersBottom[bottomIdx] {
			op := &p.delims[opener]
			oddMatch := (cl.canOpen || op.canClose) &&
				cl.origDelims%3 != 0 &&
				(op.origDelims+cl.origDelims)%3 == 0
			if op.char == cl.char && op.canOpen && !oddMatch {
				openerFound = true
				break
			}
			opener = op.prev
		}

		oldCloser := closer
		switch cl.char {
		case '*', '_':
			if !openerFound {
				closer = cl.next
				break
			}
			closer = p.matchEmphasis(opener, closer)
		case '\'':
			p.tree.Node(cl.node).Literal = rightSingleQuote
			if openerFound {
				p.tree.Node(p.delims[opener].node).Literal = leftSingleQuote
			}
			closer = cl.next
		case '"':
			p.tree.Node(cl.node).Literal = rightDoubleQuote
			if openerFound {
				p.tree.Node(p.delims[opener].node).Literal = leftDoubleQuote
			}
			closer = cl.next
		}

		if !openerFound {
			// Later closers of this class need not look below here.
			openersBottom[bottomIdx] = p.delims[oldCloser].prev
			if !p.delims[oldCloser].canOpen {
				p.removeDelimiter(oldCloser)
			}
		}
	}

	for p.delimTop != noEntry && p.delimTop != stackBottom {
		p.removeDelimiter(p.delimTop)
	}
}

// matchEmphasis wraps the inlines between opener and closer in an emphasis
// node and returns the next closer to consider.
func (p *inlineParser) matchEmphasis(opener, closer int) int {
	op, cl := &p.delims[opener], &p.delims[closer]

	use := 1
	if cl.numDelims >= 2 && op.numDelims >= 2 {
		use = 2
	}
	op.numDelims -= use
	cl.numDelims -= use

	openerInl, closerInl := op.node, cl.node
	on := p.tree.Node(openerInl)
	on.Literal = on.Literal[:len(on.Literal)-use]
	cn := p.tree.Node(closerInl)
	cn.Literal = cn.Literal[:len(cn.Literal)-use]

	kind := mdast.NodeEmphasis
	if use == 2 {
		kind = mdast.NodeStrong
	}
	emph := p.tree.NewNode(kind, mdast.SourcePosition{})

	tmp := p.tree.Node(openerInl).Next
	for tmp != mdast.NoNode && tmp != closerInl {
		next := p.tree.Node(tmp).Next
		p.tree.Unlink(tmp)
		p.tree.AppendChild(emph, tmp)
		tmp = next
	}
	p.tree.InsertAfter(openerInl, emph)

	p.removeDelimitersBetween(opener, closer)

	if p.delims[opener].numDelims == 0 {
		p.tree.Unlink(openerInl)
		p.removeDelimiter(opener)
	}

	next := closer
	if p.delims[closer].numDelims == 0 {
		p.tree.Unlink(closerInl)
		next = p.delims[closer].next
		p.removeDelimiter(closer)
	}
	return next
}
