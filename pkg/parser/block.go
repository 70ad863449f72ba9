package parser

import (
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// codeIndent is the indentation that turns a line into indented code.
const codeIndent = 4

// blockParser holds the per-document state of the block phase.
// Offsets are byte indexes into currentLine; columns account for tab stops.
type blockParser struct {
	tree   *mdast.Tree
	inline *inlineParser

	tip    mdast.NodeID
	oldTip mdast.NodeID

	currentLine string
	lineNumber  int

	offset             int
	column             int
	nextNonspace       int
	nextNonspaceColumn int
	indent             int
	indented           bool
	blank              bool

	// partiallyConsumedTab is set when a tab has been only partly
	// consumed as indentation of an enclosing container.
	partiallyConsumedTab bool

	allClosed            bool
	lastMatchedContainer mdast.NodeID
	lastLineLength       int
}

func newBlockParser(tree *mdast.Tree, smart bool) *blockParser {
	return &blockParser{
		tree:                 tree,
		inline:               newInlineParser(tree, smart),
		tip:                  tree.Root(),
		oldTip:               tree.Root(),
		allClosed:            true,
		lastMatchedContainer: tree.Root(),
	}
}

func (p *blockParser) node(id mdast.NodeID) *mdast.Node {
	return p.tree.Node(id)
}

func (p *blockParser) kind(id mdast.NodeID) mdast.NodeKind {
	return p.tree.Kind(id)
}

// peek returns the byte at pos in s, or -1 past the end.
func peek(s string, pos int) int {
	if pos < len(s) {
		return int(s[pos])
	}
	return -1
}

func isSpaceOrTab(c int) bool {
	return c == ' ' || c == '\t'
}

// incorporateLine analyzes one line and updates the tree.
func (p *blockParser) incorporateLine(line string) {
	allMatched := true
	container := p.tree.Root()
	p.oldTip = p.tip
	p.offset = 0
	p.column = 0
	p.blank = false
	p.partiallyConsumedTab = false
	p.lineNumber++
	p.currentLine = line

	// Descend through open containers; each must accept the line start.
	for {
		lastChild := p.node(container).LastChild
		if lastChild == mdast.NoNode || !p.node(lastChild).Open {
			break
		}
		container = lastChild

		p.findNextNonspace()

		switch res := behaviorOf(p.kind(container)).continueFn(p, container); res {
		case continueMatched:
		case continueFailed:
			allMatched = false
		case continueLineDone:
			return
		default:
			panic("parser: continuation check returned illegal value " + res.String())
		}
		if !allMatched {
			container = p.node(container).Parent
			break
		}
	}

	p.allClosed = container == p.oldTip
	p.lastMatchedContainer = container

	ck := p.kind(container)
	matchedLeaf := ck != mdast.NodeParagraph && behaviorOf(ck).acceptsLines

	// Try new container starts unless the last matched container is a leaf.
	for !matchedLeaf {
		p.findNextNonspace()

		if !p.indented && !maybeSpecial(line, p.nextNonspace) {
			p.advanceNextNonspace()
			break
		}

		res := startNone
		for _, start := range blockStarts {
			res = start(p, container)
			if res != startNone {
				break
			}
		}

		if res == startNone {
			p.advanceNextNonspace()
			break
		}
		container = p.tip
		if res == startLeaf {
			matchedLeaf = true
		}
	}

	// What remains at the offset is a text line.
	if !p.allClosed && !p.blank && p.kind(p.tip) == mdast.NodeParagraph {
		// Lazy paragraph continuation.
		p.addLine()
	} else {
		p.closeUnmatchedBlocks()

		kind := p.kind(container)
		switch {
		case behaviorOf(kind).acceptsLines:
			p.addLine()
			if kind == mdast.NodeHTMLBlock {
				htmlType := p.node(container).Block.HTMLBlockType
				if htmlType >= 1 && htmlType <= 5 && reHTMLBlockClose[htmlType].MatchString(line[p.offset:]) {
					p.lastLineLength = len(line)
					p.finalize(container, p.lineNumber)
				}
			}
		case p.offset < len(line) && !p.blank:
			p.addChild(mdast.NodeParagraph, p.offset)
			p.advanceNextNonspace()
			p.addLine()
		}
	}
	p.lastLineLength = len(line)
}

// maybeSpecial reports whether the byte at pos could begin a block start.
func maybeSpecial(line string, pos int) bool {
	if pos >= len(line) {
		return false
	}
	switch c := line[pos]; c {
	case '#', '`', '~', '*', '+', '_', '=', '<', '>', '-':
		return true
	default:
		return c >= '0' && c <= '9'
	}
}

// findNextNonspace locates the first non-space byte at or after offset and
// derives the indentation.
func (p *blockParser) findNextNonspace() {
	line := p.currentLine
	i := p.offset
	cols := p.column
	for i < len(line) {
		c := line[i]
		if c == ' ' {
			i++
			cols++
		} else if c == '\t' {
			i++
			cols += 4 - cols%4
		} else {
			break
		}
	}
	p.blank = i >= len(line) || line[i] == '\n' || line[i] == '\r'
	p.nextNonspace = i
	p.nextNonspaceColumn = cols
	p.indent = p.nextNonspaceColumn - p.column
	p.indented = p.indent >= codeIndent
}

// advanceOffset moves forward count bytes, or count columns when columns
// is set. A tab wider than the remaining count is only partly consumed.
func (p *blockParser) advanceOffset(count int, columns bool) {
	line := p.currentLine
	for count > 0 && p.offset < len(line) {
		if line[p.offset] == '\t' {
			charsToTab := 4 - p.column%4
			if columns {
				p.partiallyConsumedTab = charsToTab > count
				advance := min(charsToTab, count)
				p.column += advance
				if !p.partiallyConsumedTab {
					p.offset++
				}
				count -= advance
			} else {
				p.partiallyConsumedTab = false
				p.column += charsToTab
				p.offset++
				count--
			}
		} else {
			p.partiallyConsumedTab = false
			p.offset++
			p.column++
			count--
		}
	}
}

func (p *blockParser) advanceNextNonspace() {
	p.offset = p.nextNonspace
	p.column = p.nextNonspaceColumn
	p.partiallyConsumedTab = false
}

// addLine appends the rest of the current line to the tip.
func (p *blockParser) addLine() {
	tip := p.node(p.tip)
	if p.partiallyConsumedTab {
		p.offset++
		charsToTab := 4 - p.column%4
		tip.Content = append(tip.Content, strings.Repeat(" ", charsToTab)...)
	}
	tip.Content = append(tip.Content, p.currentLine[p.offset:]...)
	tip.Content = append(tip.Content, '\n')
}

// addChild adds a block of the given kind under the tip, first closing
// blocks that cannot contain it.
func (p *blockParser) addChild(kind mdast.NodeKind, offset int) mdast.NodeID {
	for !behaviorOf(p.kind(p.tip)).canContain(kind) {
		p.finalize(p.tip, p.lineNumber-1)
	}

	child := p.tree.NewNode(kind, mdast.SourcePosition{
		StartLine:   p.lineNumber,
		StartColumn: offset + 1,
	})
	n := p.node(child)
	n.Open = true
	n.Block = &mdast.BlockAttrs{}
	p.tree.AppendChild(p.tip, child)
	p.tip = child
	return child
}

// closeUnmatchedBlocks finalizes the blocks that failed to match this line.
func (p *blockParser) closeUnmatchedBlocks() {
	if p.allClosed {
		return
	}
	for p.oldTip != p.lastMatchedContainer {
		parent := p.node(p.oldTip).Parent
		p.finalize(p.oldTip, p.lineNumber-1)
		p.oldTip = parent
	}
	p.allClosed = true
}

// finalize closes block, records its end position, runs its kind-specific
// post-processing and moves the tip to its parent.
func (p *blockParser) finalize(block mdast.NodeID, lineNumber int) {
	n := p.node(block)
	above := n.Parent
	n.Open = false
	n.Pos.EndLine = lineNumber
	n.Pos.EndColumn = p.lastLineLength

	behaviorOf(n.Kind).finalizeFn(p, block)

	p.tip = above
}

// removeLinkReferenceDefinitions strips definitions from the start of every
// paragraph under root and unlinks paragraphs left blank.
func (p *blockParser) removeLinkReferenceDefinitions(root mdast.NodeID) {
	var empty []mdast.NodeID

	for _, para := range p.tree.FindByKind(root, mdast.NodeParagraph) {
		n := p.node(para)
		hasDefs := false
		for len(n.Content) > 0 && n.Content[0] == '[' {
			consumed := p.inline.parseReference(string(n.Content), p.tree.Refs)
			if consumed == 0 {
				break
			}
			removed := n.Content[:consumed]
			n.Content = n.Content[consumed:]
			hasDefs = true
			n.Pos.StartLine += countNewlines(removed)
		}
		if hasDefs && mdutil.IsBlank(string(n.Content)) {
			empty = append(empty, para)
		}
	}

	for _, para := range empty {
		p.tree.Unlink(para)
	}
}

func countNewlines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
