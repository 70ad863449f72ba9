package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

var (
	reTicksHere      = regexp.MustCompile("^`+")
	reTicks          = regexp.MustCompile("`+")
	reEllipses       = regexp.MustCompile(`\.\.\.`)
	reDash           = regexp.MustCompile(`--+`)
	reEmailAutolink  = regexp.MustCompile(`^<([a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*)>`)
	reAutolink       = regexp.MustCompile(`(?i)^<[A-Za-z][A-Za-z0-9.+-]{1,31}:[^<>\x00-\x20]*>`)
	reSpnl           = regexp.MustCompile(`^ *(?:\n *)?`)
	reInitialSpace   = regexp.MustCompile(`^ *`)
	reSpaceAtLineEnd = regexp.MustCompile(`^ *(?:\n|$)`)
	reMain           = regexp.MustCompile("^[^\n`\\[\\]\\\\!<&*_'\"]+")
)

// Typographic replacements used in smart mode.
const (
	leftSingleQuote  = "‘"
	rightSingleQuote = "’"
	leftDoubleQuote  = "“"
	rightDoubleQuote = "”"
	ellipsis         = "…"
	enDash           = "–"
	emDash           = "—"
)

// noEntry terminates the delimiter and bracket lists.
const noEntry = -1

// inlineParser holds the state of the inline phase for one leaf at a time.
// The delimiter and bracket stacks are doubly linked lists threaded
// through slices; entries are never reused within one leaf.
type inlineParser struct {
	tree  *mdast.Tree
	smart bool

	subject string
	pos     int

	delims     []delimiter
	delimTop   int
	brackets   []bracket
	bracketTop int
}

func newInlineParser(tree *mdast.Tree, smart bool) *inlineParser {
	return &inlineParser{
		tree:       tree,
		smart:      smart,
		delimTop:   noEntry,
		bracketTop: noEntry,
	}
}

// reset prepares the parser for a new subject.
func (p *inlineParser) reset(subject string) {
	p.subject = subject
	p.pos = 0
	p.delims = p.delims[:0]
	p.delimTop = noEntry
	p.brackets = p.brackets[:0]
	p.bracketTop = noEntry
}

// parse replaces the raw content of leaf with inline children.
func (p *inlineParser) parse(leaf mdast.NodeID) {
	n := p.tree.Node(leaf)
	p.reset(trimASCIISpace(string(n.Content)))
	n.Content = nil

	for p.parseInline(leaf) {
	}
	p.processEmphasis(noEntry)
}

// trimASCIISpace trims spaces, tabs, line feeds and carriage returns only.
func trimASCIISpace(s string) string {
	return strings.Trim(s, " \t\n\r")
}

// match advances past re if it matches at the current position.
func (p *inlineParser) match(re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(p.subject[p.pos:])
	if loc == nil {
		return "", false
	}
	m := p.subject[p.pos+loc[0] : p.pos+loc[1]]
	p.pos += loc[1]
	return m, true
}

// peek returns the rune at the current position, or -1 at the end.
func (p *inlineParser) peek() rune {
	if p.pos >= len(p.subject) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(p.subject[p.pos:])
	return r
}

// peekByte returns the byte at the current position, or -1 at the end.
func (p *inlineParser) peekByte() int {
	return peek(p.subject, p.pos)
}

// spnl skips spaces and at most one newline.
func (p *inlineParser) spnl() {
	p.match(reSpnl)
}

func (p *inlineParser) appendText(block mdast.NodeID, s string) mdast.NodeID {
	text := p.tree.NewText(s)
	p.tree.AppendChild(block, text)
	return text
}

func (p *inlineParser) appendNode(block mdast.NodeID, kind mdast.NodeKind) mdast.NodeID {
	node := p.tree.NewNode(kind, mdast.SourcePosition{})
	p.tree.AppendChild(block, node)
	return node
}

// parseInline parses the next inline element and appends it to block.
// It returns false at the end of the subject.
func (p *inlineParser) parseInline(block mdast.NodeID) bool {
	c := p.peek()
	if c == -1 {
		return false
	}

	var res bool
	switch c {
	case '\n':
		res = p.parseNewline(block)
	case '\\':
		res = p.parseBackslash(block)
	case '`':
		res = p.parseBackticks(block)
	case '*', '_':
		res = p.handleDelim(byte(c), block)
	case '\'', '"':
		res = p.smart && p.handleDelim(byte(c), block)
	case '[':
		res = p.parseOpenBracket(block)
	case '!':
		res = p.parseBang(block)
	case ']':
		res = p.parseCloseBracket(block)
	case '<':
		res = p.parseAutolink(block) || p.parseHTMLTag(block)
	case '&':
		res = p.parseEntity(block)
	default:
		res = p.parseString(block)
	}

	if !res {
		_, size := utf8.DecodeRuneInString(p.subject[p.pos:])
		p.appendText(block, p.subject[p.pos:p.pos+size])
		p.pos += size
	}
	return true
}

// parseNewline emits a hard break after two or more trailing spaces and a
// soft break otherwise.
func (p *inlineParser) parseNewline(block mdast.NodeID) bool {
	p.pos++

	kind := mdast.NodeSoftBreak
	if last := p.tree.Node(block).LastChild; last != mdast.NoNode {
		n := p.tree.Node(last)
		if lit := n.Literal; n.Kind == mdast.NodeText && strings.HasSuffix(lit, " ") {
			if strings.HasSuffix(lit, "  ") {
				kind = mdast.NodeHardBreak
			}
			n.Literal = strings.TrimRight(lit, " ")
		}
	}
	p.appendNode(block, kind)

	// Leading spaces of the next line are dropped.
	p.match(reInitialSpace)
	return true
}

// parseBackslash handles an escape or a backslash hard break.
func (p *inlineParser) parseBackslash(block mdast.NodeID) bool {
	p.pos++
	switch c := p.peekByte(); {
	case c == '\n':
		p.pos++
		p.appendNode(block, mdast.NodeHardBreak)
	case c != -1 && mdutil.IsEscapable(byte(c)):
		p.appendText(block, p.subject[p.pos:p.pos+1])
		p.pos++
	default:
		p.appendText(block, `\`)
	}
	return true
}

// parseBackticks parses a code span, or emits the opening backticks as text
// when no closing run of the same length follows.
func (p *inlineParser) parseBackticks(block mdast.NodeID) bool {
	ticks, ok := p.match(reTicksHere)
	if !ok {
		return false
	}
	afterOpenTicks := p.pos

	for {
		closing, ok := p.match(reTicks)
		if !ok {
			break
		}
		if closing != ticks {
			continue
		}
		contents := strings.ReplaceAll(p.subject[afterOpenTicks:p.pos-len(ticks)], "\n", " ")
		if len(contents) > 2 && contents[0] == ' ' && contents[len(contents)-1] == ' ' &&
			strings.Trim(contents, " ") != "" {
			contents = contents[1 : len(contents)-1]
		}
		code := p.appendNode(block, mdast.NodeCodeSpan)
		p.tree.Node(code).Literal = contents
		return true
	}

	p.pos = afterOpenTicks
	p.appendText(block, ticks)
	return true
}

// parseAutolink parses a URI or email autolink.
func (p *inlineParser) parseAutolink(block mdast.NodeID) bool {
	var dest, label string
	if m, ok := p.match(reEmailAutolink); ok {
		label = m[1 : len(m)-1]
		dest = mdutil.NormalizeURI("mailto:" + label)
	} else if m, ok := p.match(reAutolink); ok {
		label = m[1 : len(m)-1]
		dest = mdutil.NormalizeURI(label)
	} else {
		return false
	}

	link := p.appendNode(block, mdast.NodeLink)
	p.tree.Node(link).Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination:    dest,
		ReferenceStyle: mdast.RefStyleAutolink,
	}}
	p.appendText(link, label)
	return true
}

// parseHTMLTag parses raw inline HTML.
func (p *inlineParser) parseHTMLTag(block mdast.NodeID) bool {
	m, ok := p.match(mdutil.ReHTMLTag)
	if !ok {
		return false
	}
	html := p.appendNode(block, mdast.NodeHTMLInline)
	p.tree.Node(html).Literal = m
	return true
}

// parseEntity decodes an entity reference.
func (p *inlineParser) parseEntity(block mdast.NodeID) bool {
	m, ok := p.match(mdutil.ReEntityHere)
	if !ok {
		return false
	}
	p.appendText(block, mdutil.DecodeEntity(m))
	return true
}

// parseString emits a run of ordinary characters.
func (p *inlineParser) parseString(block mdast.NodeID) bool {
	m, ok := p.match(reMain)
	if !ok {
		return false
	}
	if p.smart {
		m = reEllipses.ReplaceAllLiteralString(m, ellipsis)
		m = reDash.ReplaceAllStringFunc(m, smartDashes)
	}
	p.appendText(block, m)
	return true
}

// smartDashes converts a run of hyphens into em and en dashes, preferring
// em dashes and keeping the run's rhythm even.
func smartDashes(run string) string {
	n := len(run)
	var em, en int
	switch {
	case n%3 == 0:
		em = n / 3
	case n%2 == 0:
		en = n / 2
	case n%3 == 2:
		en = 1
		em = (n - 2) / 3
	default:
		en = 2
		em = (n - 4) / 3
	}
	return strings.Repeat(emDash, em) + strings.Repeat(enDash, en)
}
