package parser

import (
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// parseReference parses a link reference definition at the start of s and
// adds it to refs unless its label is already defined. It returns the
// number of bytes consumed, or 0 when s does not start with a definition.
func (p *inlineParser) parseReference(s string, refs mdast.ReferenceMap) int {
	p.subject = s
	p.pos = 0

	labelLen := p.parseLinkLabel()
	if labelLen == 0 {
		return 0
	}
	rawLabel := s[:labelLen]

	if p.peekByte() != ':' {
		p.pos = 0
		return 0
	}
	p.pos++

	p.spnl()
	dest, ok := p.parseLinkDestination()
	if !ok {
		p.pos = 0
		return 0
	}

	beforeTitle := p.pos
	p.spnl()
	var (
		title    string
		hasTitle bool
	)
	if p.pos != beforeTitle {
		title, hasTitle = p.parseLinkTitle()
	}
	if !hasTitle {
		p.pos = beforeTitle
	}

	// The definition must end the line, with or without its title.
	_, atLineEnd := p.match(reSpaceAtLineEnd)
	if !atLineEnd && hasTitle {
		title = ""
		p.pos = beforeTitle
		_, atLineEnd = p.match(reSpaceAtLineEnd)
	}
	if !atLineEnd {
		p.pos = 0
		return 0
	}

	label := rawLabel[1 : len(rawLabel)-1]
	key := mdutil.NormalizeReference(label)
	if key == "" {
		p.pos = 0
		return 0
	}

	refs.Define(key, mdast.Reference{
		Label:       label,
		Destination: dest,
		Title:       title,
	})
	return p.pos
}
