package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// startResult is the outcome of a block start matcher.
type startResult uint8

const (
	startNone      startResult = iota
	startContainer             // matched a container; keep looking for starts
	startLeaf                  // matched a leaf; no more starts on this line
)

type blockStartFunc func(p *blockParser, container mdast.NodeID) startResult

// blockStarts are tried in order; the first match wins.
var blockStarts = []blockStartFunc{
	startBlockquote,
	startATXHeading,
	startHTMLBlock,
	startSetextHeading,
	startThematicBreak,
	startListItem,
	startIndentedCode,
	startFencedCode,
}

var (
	reHTMLBlockOpen = [...]*regexp.Regexp{
		nil,
		regexp.MustCompile(`(?i)^<(?:script|pre|textarea|style)(?:\s|>|$)`),
		regexp.MustCompile(`^<!--`),
		regexp.MustCompile(`^<[?]`),
		regexp.MustCompile(`^<![A-Za-z]`),
		regexp.MustCompile(`^<!\[CDATA\[`),
		regexp.MustCompile(`(?i)^</?(?:address|article|aside|base|basefont|blockquote|body|caption|center|col|colgroup|dd|details|dialog|dir|div|dl|dt|fieldset|figcaption|figure|footer|form|frame|frameset|h[123456]|head|header|hr|html|iframe|legend|li|link|main|menu|menuitem|nav|noframes|ol|optgroup|option|p|param|section|search|summary|table|tbody|td|tfoot|th|thead|title|tr|track|ul)(?:\s|/?>|$)`),
		regexp.MustCompile(`(?i)^(?:` + mdutil.OpenTag + `|` + mdutil.CloseTag + `)\s*$`),
	}

	reHTMLBlockClose = [...]*regexp.Regexp{
		nil,
		regexp.MustCompile(`(?i)</(?:script|pre|textarea|style)>`),
		regexp.MustCompile(`-->`),
		regexp.MustCompile(`\?>`),
		regexp.MustCompile(`>`),
		regexp.MustCompile(`\]\]>`),
	}

	reThematicBreak      = regexp.MustCompile(`^(?:\*[ \t]*){3,}$|^(?:_[ \t]*){3,}$|^(?:-[ \t]*){3,}$`)
	reATXHeadingMarker   = regexp.MustCompile(`^#{1,6}(?:[ \t]+|$)`)
	reATXClosingOnly     = regexp.MustCompile(`^[ \t]*#+[ \t]*$`)
	reATXClosingSequence = regexp.MustCompile(`[ \t]+#+[ \t]*$`)
	reSetextHeadingLine  = regexp.MustCompile(`^(?:=+|-+)[ \t]*$`)
	reOrderedListMarker  = regexp.MustCompile(`^(\d{1,9})([.)])`)
)

func startBlockquote(p *blockParser, _ mdast.NodeID) startResult {
	if p.indented || peek(p.currentLine, p.nextNonspace) != '>' {
		return startNone
	}
	p.advanceNextNonspace()
	p.advanceOffset(1, false)
	if isSpaceOrTab(peek(p.currentLine, p.offset)) {
		p.advanceOffset(1, true)
	}
	p.closeUnmatchedBlocks()
	p.addChild(mdast.NodeBlockquote, p.nextNonspace)
	return startContainer
}

func startATXHeading(p *blockParser, _ mdast.NodeID) startResult {
	if p.indented {
		return startNone
	}
	marker := reATXHeadingMarker.FindString(p.currentLine[p.nextNonspace:])
	if marker == "" {
		return startNone
	}
	p.advanceNextNonspace()
	p.advanceOffset(len(marker), false)
	p.closeUnmatchedBlocks()

	heading := p.addChild(mdast.NodeHeading, p.nextNonspace)
	content := p.currentLine[p.offset:]
	content = reATXClosingOnly.ReplaceAllString(content, "")
	content = reATXClosingSequence.ReplaceAllString(content, "")

	n := p.node(heading)
	n.Block.HeadingLevel = len(strings.TrimSpace(marker))
	n.Content = []byte(content)

	p.advanceOffset(len(p.currentLine)-p.offset, false)
	return startLeaf
}

func startHTMLBlock(p *blockParser, container mdast.NodeID) startResult {
	if p.indented || peek(p.currentLine, p.nextNonspace) != '<' {
		return startNone
	}
	s := p.currentLine[p.nextNonspace:]
	for blockType := 1; blockType <= 7; blockType++ {
		if !reHTMLBlockOpen[blockType].MatchString(s) {
			continue
		}
		// Type 7 cannot interrupt a paragraph, lazy or not.
		if blockType == 7 {
			if p.kind(container) == mdast.NodeParagraph {
				continue
			}
			if !p.allClosed && !p.blank && p.kind(p.tip) == mdast.NodeParagraph {
				continue
			}
		}
		p.closeUnmatchedBlocks()
		// Leading spaces are part of the HTML block, so the offset stays.
		block := p.addChild(mdast.NodeHTMLBlock, p.offset)
		p.node(block).Block.HTMLBlockType = blockType
		return startLeaf
	}
	return startNone
}

func startSetextHeading(p *blockParser, container mdast.NodeID) startResult {
	if p.indented || p.kind(container) != mdast.NodeParagraph {
		return startNone
	}
	underline := reSetextHeadingLine.FindString(p.currentLine[p.nextNonspace:])
	if underline == "" {
		return startNone
	}
	p.closeUnmatchedBlocks()

	// Definitions at the start of the paragraph are not heading text.
	para := p.node(container)
	for len(para.Content) > 0 && para.Content[0] == '[' {
		consumed := p.inline.parseReference(string(para.Content), p.tree.Refs)
		if consumed == 0 {
			break
		}
		para.Content = para.Content[consumed:]
	}
	if len(para.Content) == 0 {
		return startNone
	}

	level := 2
	if underline[0] == '=' {
		level = 1
	}
	content := para.Content
	pos := para.Pos

	heading := p.tree.NewNode(mdast.NodeHeading, pos)
	h := p.node(heading)
	h.Open = true
	h.Block = &mdast.BlockAttrs{HeadingLevel: level}
	h.Content = content

	p.tree.InsertAfter(container, heading)
	p.tree.Unlink(container)
	p.tip = heading
	p.advanceOffset(len(p.currentLine)-p.offset, false)
	return startLeaf
}

func startThematicBreak(p *blockParser, _ mdast.NodeID) startResult {
	if p.indented || !reThematicBreak.MatchString(p.currentLine[p.nextNonspace:]) {
		return startNone
	}
	p.closeUnmatchedBlocks()
	p.addChild(mdast.NodeThematicBreak, p.nextNonspace)
	p.advanceOffset(len(p.currentLine)-p.offset, false)
	return startLeaf
}

func startListItem(p *blockParser, container mdast.NodeID) startResult {
	if p.indented && p.kind(container) != mdast.NodeList {
		return startNone
	}
	data := p.parseListMarker(container)
	if data == nil {
		return startNone
	}
	p.closeUnmatchedBlocks()

	if p.kind(p.tip) != mdast.NodeList || !p.node(p.tip).ListData().Matches(data) {
		list := p.addChild(mdast.NodeList, p.nextNonspace)
		listData := *data
		p.node(list).Block.List = &listData
	}

	item := p.addChild(mdast.NodeListItem, p.nextNonspace)
	p.node(item).Block.List = data
	return startContainer
}

func startIndentedCode(p *blockParser, _ mdast.NodeID) startResult {
	if !p.indented || p.kind(p.tip) == mdast.NodeParagraph || p.blank {
		return startNone
	}
	p.advanceOffset(codeIndent, true)
	p.closeUnmatchedBlocks()
	block := p.addChild(mdast.NodeCodeBlock, p.offset)
	p.node(block).Block.CodeBlock = &mdast.CodeBlockAttrs{}
	return startLeaf
}

func startFencedCode(p *blockParser, _ mdast.NodeID) startResult {
	if p.indented {
		return startNone
	}
	fenceLength, fenceChar := openingFence(p.currentLine[p.nextNonspace:])
	if fenceLength == 0 {
		return startNone
	}
	p.closeUnmatchedBlocks()
	block := p.addChild(mdast.NodeCodeBlock, p.nextNonspace)
	p.node(block).Block.CodeBlock = &mdast.CodeBlockAttrs{
		Fenced:      true,
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		FenceOffset: p.indent,
	}
	p.advanceNextNonspace()
	p.advanceOffset(fenceLength, false)
	return startLeaf
}

// openingFence returns the length and character of a code fence at the
// start of s, or 0. A backtick fence's remainder may not contain backticks.
func openingFence(s string) (int, byte) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	c := s[0]
	n := runLength(s, c)
	if n < 3 {
		return 0, 0
	}
	if c == '`' && strings.IndexByte(s[n:], '`') >= 0 {
		return 0, 0
	}
	return n, c
}

// closingFenceLength returns the length of the fence run at the start of s
// when only spaces and tabs follow it, or 0.
func closingFenceLength(s string) int {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0
	}
	n := runLength(s, s[0])
	if n < 3 || !isSpaceOrTabOnly(s[n:]) {
		return 0
	}
	return n
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// parseListMarker parses a list marker at the next non-space position and
// advances past it, returning nil when there is none.
func (p *blockParser) parseListMarker(container mdast.NodeID) *mdast.ListAttrs {
	if p.indent >= codeIndent {
		return nil
	}
	line := p.currentLine
	rest := line[p.nextNonspace:]
	data := &mdast.ListAttrs{
		Tight:        true,
		MarkerOffset: p.indent,
	}
	inParagraph := p.kind(container) == mdast.NodeParagraph

	var markerLen int
	switch {
	case rest != "" && (rest[0] == '*' || rest[0] == '+' || rest[0] == '-'):
		data.BulletChar = rest[0]
		markerLen = 1
	default:
		m := reOrderedListMarker.FindStringSubmatch(rest)
		if m == nil {
			return nil
		}
		start, _ := strconv.Atoi(m[1])
		// Only lists starting at 1 may interrupt a paragraph.
		if inParagraph && start != 1 {
			return nil
		}
		data.Ordered = true
		data.StartNumber = start
		data.Delimiter = m[2][0]
		markerLen = len(m[0])
	}

	// The marker must be followed by whitespace or the end of the line.
	if next := peek(line, p.nextNonspace+markerLen); next != -1 && !isSpaceOrTab(next) {
		return nil
	}

	// An empty item cannot interrupt a paragraph.
	if inParagraph && mdutil.IsBlank(line[p.nextNonspace+markerLen:]) {
		return nil
	}

	p.advanceNextNonspace()
	p.advanceOffset(markerLen, true)
	spacesStartCol := p.column
	spacesStartOffset := p.offset
	for {
		p.advanceOffset(1, true)
		if p.column-spacesStartCol >= 5 || !isSpaceOrTab(peek(line, p.offset)) {
			break
		}
	}
	blankItem := peek(line, p.offset) == -1
	spacesAfterMarker := p.column - spacesStartCol

	if spacesAfterMarker >= 5 || spacesAfterMarker < 1 || blankItem {
		data.Padding = markerLen + 1
		p.column = spacesStartCol
		p.offset = spacesStartOffset
		if isSpaceOrTab(peek(line, p.offset)) {
			p.advanceOffset(1, true)
		}
	} else {
		data.Padding = markerLen + spacesAfterMarker
	}
	return data
}
