// Package goldmark parses Markdown with goldmark and maps the result into an
// mdast.Tree. It serves as an independent CommonMark implementation that the
// native parser's output can be checked against.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// Parser parses CommonMark with goldmark. It holds no per-document state.
type Parser struct {
	md goldmark.Markdown
}

// New creates a goldmark-backed parser with no extensions enabled.
func New() *Parser {
	return &Parser{md: goldmark.New()}
}

// ParseSource parses src and returns the mapped tree. Reference
// definitions collected by goldmark are copied into the tree's Refs with
// their destinations as written.
//
// Returns an error only if ctx is cancelled.
func (p *Parser) ParseSource(ctx context.Context, src *mdast.Source) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	pc := parser.NewContext()
	gmDoc := p.md.Parser().Parse(text.NewReader(src.Content), parser.WithContext(pc))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	tree := newMapper(src).mapDocument(gmDoc)
	for _, ref := range pc.References() {
		label := string(ref.Label())
		tree.Refs.Define(mdutil.NormalizeReference(label), mdast.Reference{
			Label:       label,
			Destination: string(ref.Destination()),
			Title:       string(ref.Title()),
		})
	}
	return tree, nil
}
