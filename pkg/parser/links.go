package parser

import (
	"regexp"
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// maxLinkLabel is the longest link label, in characters, between the brackets.
const maxLinkLabel = 999

var (
	reLinkDestinationBraces = regexp.MustCompile(`^(?:<(?:[^<>\n\\\x00]|\\.)*>)`)

	reLinkTitle = regexp.MustCompile(
		`^(?:"(?:\\` + mdutil.EscapableClass + `|\\[^\\]|[^\\"\x00])*"` +
			`|'(?:\\` + mdutil.EscapableClass + `|\\[^\\]|[^\\'\x00])*'` +
			`|\((?:\\` + mdutil.EscapableClass + `|\\[^\\]|[^\\()\x00])*\))`)
)

// bracket is an entry of the bracket stack. prev indexes into
// inlineParser.brackets and prevDelimiter into inlineParser.delims.
type bracket struct {
	node          mdast.NodeID
	prev          int
	prevDelimiter int
	// index is the subject offset of the '['.
	index        int
	image        bool
	active       bool
	bracketAfter bool
}

func isWhitespaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (p *inlineParser) addBracket(node mdast.NodeID, index int, image bool) {
	if p.bracketTop != noEntry {
		p.brackets[p.bracketTop].bracketAfter = true
	}
	p.brackets = append(p.brackets, bracket{
		node:          node,
		prev:          p.bracketTop,
		prevDelimiter: p.delimTop,
		index:         index,
		image:         image,
		active:        true,
	})
	p.bracketTop = len(p.brackets) - 1
}

func (p *inlineParser) removeBracket() {
	p.bracketTop = p.brackets[p.bracketTop].prev
}

// parseOpenBracket emits '[' and pushes it as a potential link opener.
func (p *inlineParser) parseOpenBracket(block mdast.NodeID) bool {
	startPos := p.pos
	p.pos++
	node := p.appendText(block, "[")
	p.addBracket(node, startPos, false)
	return true
}

// parseBang emits '!' or, before '[', a potential image opener.
func (p *inlineParser) parseBang(block mdast.NodeID) bool {
	startPos := p.pos
	p.pos++
	if p.peekByte() == '[' {
		p.pos++
		node := p.appendText(block, "![")
		p.addBracket(node, startPos+1, true)
	} else {
		p.appendText(block, "!")
	}
	return true
}

// parseCloseBracket tries to close the innermost open bracket as a link or
// image, inline or by reference. When that fails a literal ']' is emitted.
func (p *inlineParser) parseCloseBracket(block mdast.NodeID) bool {
	p.pos++
	startPos := p.pos

	opener := p.bracketTop
	if opener == noEntry {
		p.appendText(block, "]")
		return true
	}
	if !p.brackets[opener].active {
		p.appendText(block, "]")
		p.removeBracket()
		return true
	}
	ob := p.brackets[opener]

	var (
		dest, title string
		matched     bool
		link        = mdast.LinkAttrs{ReferenceStyle: mdast.RefStyleInline}
	)

	// Inline link: (destination "title")
	savePos := p.pos
	if p.peekByte() == '(' {
		p.pos++
		p.spnl()
		if d, ok := p.parseLinkDestination(); ok {
			dest = d
			p.spnl()
			if isWhitespaceByte(p.subject[p.pos-1]) {
				title, _ = p.parseLinkTitle()
			}
			p.spnl()
			if p.peekByte() == ')' {
				p.pos++
				matched = true
			}
		}
		if !matched {
			p.pos = savePos
		}
	}

	if !matched {
		// Reference link: full, collapsed or shortcut.
		beforeLabel := p.pos
		n := p.parseLinkLabel()
		var refLabel string
		switch {
		case n > 2:
			refLabel = p.subject[beforeLabel : beforeLabel+n]
			link.ReferenceStyle = mdast.RefStyleFull
		case !ob.bracketAfter:
			// The bracketed text itself is the label.
			refLabel = p.subject[ob.index:startPos]
			link.ReferenceStyle = mdast.RefStyleShortcut
			if n == 2 {
				link.ReferenceStyle = mdast.RefStyleCollapsed
			}
		}
		if n == 0 {
			p.pos = savePos
		}

		if refLabel != "" {
			key := mdutil.NormalizeReference(refLabel[1 : len(refLabel)-1])
			if ref, ok := p.tree.Refs.Lookup(key); ok {
				dest, title = ref.Destination, ref.Title
				link.ReferenceLabel = key
				matched = true
			}
		}
	}

	if !matched {
		p.removeBracket()
		p.pos = startPos
		p.appendText(block, "]")
		return true
	}

	kind := mdast.NodeLink
	if ob.image {
		kind = mdast.NodeImage
	}
	link.Destination = dest
	link.Title = title
	node := p.tree.NewNode(kind, mdast.SourcePosition{})
	p.tree.Node(node).Inline = &mdast.InlineAttrs{Link: &link}

	tmp := p.tree.Node(ob.node).Next
	for tmp != mdast.NoNode {
		next := p.tree.Node(tmp).Next
		p.tree.Unlink(tmp)
		p.tree.AppendChild(node, tmp)
		tmp = next
	}
	p.tree.AppendChild(block, node)

	p.processEmphasis(ob.prevDelimiter)
	p.removeBracket()
	p.tree.Unlink(ob.node)

	// Links may not contain other links.
	if !ob.image {
		for b := p.bracketTop; b != noEntry; b = p.brackets[b].prev {
			if !p.brackets[b].image {
				p.brackets[b].active = false
			}
		}
	}
	return true
}

// parseLinkDestination parses a link destination in angle brackets or a
// raw destination with balanced parentheses.
func (p *inlineParser) parseLinkDestination() (string, bool) {
	if m, ok := p.match(reLinkDestinationBraces); ok {
		return mdutil.NormalizeURI(mdutil.UnescapeString(m[1 : len(m)-1])), true
	}
	if p.peekByte() == '<' {
		return "", false
	}

	savePos := p.pos
	openParens := 0
	c := p.peekByte()
scan:
	for ; c != -1; c = p.peekByte() {
		switch {
		case c == '\\' && p.pos+1 < len(p.subject) && mdutil.IsEscapable(p.subject[p.pos+1]):
			p.pos += 2
		case c == '(':
			p.pos++
			openParens++
		case c == ')':
			if openParens < 1 {
				break scan
			}
			p.pos++
			openParens--
		case isWhitespaceByte(byte(c)):
			break scan
		default:
			p.pos++
		}
	}

	if p.pos == savePos && c != ')' {
		return "", false
	}
	if openParens != 0 {
		p.pos = savePos
		return "", false
	}
	return mdutil.NormalizeURI(mdutil.UnescapeString(p.subject[savePos:p.pos])), true
}

// parseLinkTitle parses a quoted or parenthesized title.
func (p *inlineParser) parseLinkTitle() (string, bool) {
	m, ok := p.match(reLinkTitle)
	if !ok {
		return "", false
	}
	return mdutil.UnescapeString(m[1 : len(m)-1]), true
}

// parseLinkLabel returns the byte length of the bracketed label at the
// current position and advances past it, or returns 0 without moving.
func (p *inlineParser) parseLinkLabel() int {
	s := p.subject[p.pos:]
	if s == "" || s[0] != '[' {
		return 0
	}
	chars := 0
	for i := 1; i < len(s); {
		switch s[i] {
		case ']':
			p.pos += i + 1
			return i + 1
		case '[':
			return 0
		case '\\':
			if i+1 >= len(s) {
				return 0
			}
			_, size := utf8.DecodeRuneInString(s[i+1:])
			i += 1 + size
			chars += 2
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			chars++
		}
		if chars > maxLinkLabel {
			return 0
		}
	}
	return 0
}
