// Package parser converts CommonMark text into an mdast.Tree.
//
// Parsing runs in two phases. The block phase consumes the input one line
// at a time and builds the tree of containers and leaf blocks, collecting
// link reference definitions on the way. The inline phase then rewrites the
// raw text of every paragraph and heading into inline nodes.
//
// Parsing is total: every input produces a tree.
package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// Parser holds parse options. A Parser carries no per-document state and
// may be used from several goroutines at once.
type Parser struct {
	smart  bool
	logger *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSmart enables typographic punctuation: curly quotes, dashes and
// ellipses.
func WithSmart(smart bool) Option {
	return func(p *Parser) {
		p.smart = smart
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Smart reports whether typographic punctuation is enabled.
func (p *Parser) Smart() bool {
	return p.smart
}

// Parse parses input into a complete tree. Link reference definitions are
// available in the returned tree's Refs.
func (p *Parser) Parse(input string) *mdast.Tree {
	tree := p.ParseBlocks(input)
	p.ParseInlines(tree)
	return tree
}

// ParseBlocks runs the block phase only. Paragraphs and headings keep their
// raw text in Node.Content, and reference definitions at the start of
// paragraphs have been moved into tree.Refs.
func (p *Parser) ParseBlocks(input string) *mdast.Tree {
	lines := splitLines(input)
	p.logger.Debug("block phase", "lines", len(lines))

	bp := newBlockParser(mdast.NewTree(), p.smart)
	for _, line := range lines {
		bp.incorporateLine(line)
	}
	for bp.tip != mdast.NoNode {
		bp.finalize(bp.tip, len(lines))
	}

	p.logger.Debug("block phase done", "nodes", bp.tree.Len(), "refs", len(bp.tree.Refs))
	return bp.tree
}

// ExtractReferences moves link reference definitions found at the start of
// paragraphs into tree.Refs and returns how many new definitions were
// added. ParseBlocks already does this; running it again is a no-op.
func (p *Parser) ExtractReferences(tree *mdast.Tree) int {
	before := len(tree.Refs)
	bp := newBlockParser(tree, p.smart)
	bp.removeLinkReferenceDefinitions(tree.Root())
	return len(tree.Refs) - before
}

// ParseInlines parses the raw text of every paragraph and heading into
// inline children, resolving references against tree.Refs.
func (p *Parser) ParseInlines(tree *mdast.Tree) {
	leaves := tree.FindByKind(tree.Root(), mdast.NodeParagraph, mdast.NodeHeading)
	ip := newInlineParser(tree, p.smart)
	for _, leaf := range leaves {
		ip.parse(leaf)
	}
	p.logger.Debug("inline phase done", "leaves", len(leaves), "nodes", tree.Len())
}

// SourceParser turns a Source into a tree. The native parser and the
// goldmark adapter both implement it.
type SourceParser interface {
	ParseSource(ctx context.Context, src *mdast.Source) (*mdast.Tree, error)
}

// ParseSource parses the content of src. It fails only when ctx is done.
func (p *Parser) ParseSource(ctx context.Context, src *mdast.Source) (*mdast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Path, err)
	}
	p.logger.Debug("parsing", "path", src.Path, "bytes", len(src.Content))
	return p.Parse(string(src.Content)), nil
}

// Parse parses input with default options.
func Parse(input string) *mdast.Tree {
	return New().Parse(input)
}
