package parser

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// continueResult is the outcome of a container's continuation check.
type continueResult uint8

const (
	// continueMatched: the line continues the block; descend into its children.
	continueMatched continueResult = iota
	// continueFailed: the block does not continue on this line.
	continueFailed
	// continueLineDone: the line has been consumed entirely.
	continueLineDone
)

func (r continueResult) String() string {
	switch r {
	case continueMatched:
		return "matched"
	case continueFailed:
		return "failed"
	case continueLineDone:
		return "line-done"
	default:
		return "continueResult(" + strconv.Itoa(int(r)) + ")"
	}
}

// blockBehavior is the rule set of one block kind.
type blockBehavior struct {
	continueFn   func(p *blockParser, container mdast.NodeID) continueResult
	finalizeFn   func(p *blockParser, block mdast.NodeID)
	canContain   func(child mdast.NodeKind) bool
	acceptsLines bool
}

// behaviorOf returns the rules for kind. Inline kinds never reach the
// block phase and get the rules of a closed leaf.
func behaviorOf(kind mdast.NodeKind) blockBehavior {
	switch kind {
	case mdast.NodeDocument:
		return blockBehavior{
			continueFn: alwaysContinue,
			finalizeFn: func(p *blockParser, block mdast.NodeID) {
				p.removeLinkReferenceDefinitions(block)
			},
			canContain: notItem,
		}
	case mdast.NodeList:
		return blockBehavior{
			continueFn: alwaysContinue,
			finalizeFn: finalizeList,
			canContain: func(child mdast.NodeKind) bool { return child == mdast.NodeListItem },
		}
	case mdast.NodeBlockquote:
		return blockBehavior{
			continueFn: continueBlockquote,
			finalizeFn: finalizeNothing,
			canContain: notItem,
		}
	case mdast.NodeListItem:
		return blockBehavior{
			continueFn: continueItem,
			finalizeFn: finalizeItem,
			canContain: notItem,
		}
	case mdast.NodeCodeBlock:
		return blockBehavior{
			continueFn:   continueCodeBlock,
			finalizeFn:   finalizeCodeBlock,
			canContain:   containsNothing,
			acceptsLines: true,
		}
	case mdast.NodeHTMLBlock:
		return blockBehavior{
			continueFn:   continueHTMLBlock,
			finalizeFn:   finalizeHTMLBlock,
			canContain:   containsNothing,
			acceptsLines: true,
		}
	case mdast.NodeParagraph:
		return blockBehavior{
			continueFn: func(p *blockParser, _ mdast.NodeID) continueResult {
				if p.blank {
					return continueFailed
				}
				return continueMatched
			},
			finalizeFn:   finalizeNothing,
			canContain:   containsNothing,
			acceptsLines: true,
		}
	default:
		// Headings and thematic breaks never span more than one line.
		return blockBehavior{
			continueFn: func(*blockParser, mdast.NodeID) continueResult { return continueFailed },
			finalizeFn: finalizeNothing,
			canContain: containsNothing,
		}
	}
}

func alwaysContinue(*blockParser, mdast.NodeID) continueResult { return continueMatched }

func finalizeNothing(*blockParser, mdast.NodeID) {}

func notItem(child mdast.NodeKind) bool { return child != mdast.NodeListItem }

func containsNothing(mdast.NodeKind) bool { return false }

func continueBlockquote(p *blockParser, _ mdast.NodeID) continueResult {
	line := p.currentLine
	if p.indented || peek(line, p.nextNonspace) != '>' {
		return continueFailed
	}
	p.advanceNextNonspace()
	p.advanceOffset(1, false)
	if isSpaceOrTab(peek(line, p.offset)) {
		p.advanceOffset(1, true)
	}
	return continueMatched
}

func continueItem(p *blockParser, container mdast.NodeID) continueResult {
	n := p.node(container)
	data := n.ListData()
	switch {
	case p.blank:
		if n.FirstChild == mdast.NoNode {
			// Blank line after an empty item.
			return continueFailed
		}
		p.advanceNextNonspace()
	case p.indent >= data.MarkerOffset+data.Padding:
		p.advanceOffset(data.MarkerOffset+data.Padding, true)
	default:
		return continueFailed
	}
	return continueMatched
}

func continueCodeBlock(p *blockParser, container mdast.NodeID) continueResult {
	line := p.currentLine
	code := p.node(container).CodeData()

	if !code.Fenced {
		switch {
		case p.indent >= codeIndent:
			p.advanceOffset(codeIndent, true)
		case p.blank:
			p.advanceNextNonspace()
		default:
			return continueFailed
		}
		return continueMatched
	}

	if p.indent <= 3 && peek(line, p.nextNonspace) == int(code.FenceChar) {
		if n := closingFenceLength(line[p.nextNonspace:]); n >= code.FenceLength {
			// Closing fence: the rest of the line belongs to nobody.
			p.lastLineLength = p.offset + p.indent + n
			p.finalize(container, p.lineNumber)
			return continueLineDone
		}
	}

	// Skip optional spaces of the fence offset.
	for i := code.FenceOffset; i > 0 && isSpaceOrTab(peek(line, p.offset)); i-- {
		p.advanceOffset(1, true)
	}
	return continueMatched
}

func continueHTMLBlock(p *blockParser, container mdast.NodeID) continueResult {
	htmlType := p.node(container).Block.HTMLBlockType
	if p.blank && (htmlType == 6 || htmlType == 7) {
		return continueFailed
	}
	return continueMatched
}

// endsWithBlankLine reports whether a blank line separates block from its
// next sibling.
func (p *blockParser) endsWithBlankLine(block mdast.NodeID) bool {
	n := p.node(block)
	if n.Next == mdast.NoNode {
		return false
	}
	return n.Pos.EndLine != p.node(n.Next).Pos.StartLine-1
}

func finalizeList(p *blockParser, block mdast.NodeID) {
	n := p.node(block)
	data := n.ListData()

loose:
	for item := n.FirstChild; item != mdast.NoNode; item = p.node(item).Next {
		if p.endsWithBlankLine(item) {
			data.Tight = false
			break
		}
		for sub := p.node(item).FirstChild; sub != mdast.NoNode; sub = p.node(sub).Next {
			if p.endsWithBlankLine(sub) {
				data.Tight = false
				break loose
			}
		}
	}

	if n.LastChild != mdast.NoNode {
		last := p.node(n.LastChild).Pos
		n.Pos.EndLine, n.Pos.EndColumn = last.EndLine, last.EndColumn
	}
}

func finalizeItem(p *blockParser, block mdast.NodeID) {
	n := p.node(block)
	if n.LastChild != mdast.NoNode {
		last := p.node(n.LastChild).Pos
		n.Pos.EndLine, n.Pos.EndColumn = last.EndLine, last.EndColumn
		return
	}
	// Empty list item.
	data := n.ListData()
	n.Pos.EndLine = n.Pos.StartLine
	n.Pos.EndColumn = data.MarkerOffset + data.Padding
}

func finalizeCodeBlock(p *blockParser, block mdast.NodeID) {
	n := p.node(block)
	code := n.CodeData()
	content := string(n.Content)
	n.Content = nil

	if code.Fenced {
		// The first line becomes the info string.
		firstLine, rest, _ := strings.Cut(content, "\n")
		code.Info = mdutil.UnescapeString(strings.TrimSpace(firstLine))
		n.Literal = rest
		return
	}

	lines := strings.Split(content, "\n")
	for len(lines) > 0 && isSpaceOrTabOnly(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		n.Literal = "\n"
		return
	}
	n.Literal = strings.Join(lines, "\n") + "\n"
	n.Pos.EndLine = n.Pos.StartLine + len(lines) - 1
	n.Pos.EndColumn = n.Pos.StartColumn + len(lines[len(lines)-1]) - 1
}

func finalizeHTMLBlock(p *blockParser, block mdast.NodeID) {
	n := p.node(block)
	n.Literal = strings.TrimSuffix(string(n.Content), "\n")
	n.Content = nil
}

func isSpaceOrTabOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}
