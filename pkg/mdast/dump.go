package mdast

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gocmark/pkg/mdutil"
)

// DumpOptions controls the tree dumps.
type DumpOptions struct {
	// SourcePos adds block source positions to the output.
	SourcePos bool

	// BlocksOnly leaves inline nodes out of the text dump.
	BlocksOnly bool
}

// Attr is a name/value pair in a dump.
type Attr struct {
	Name, Value string
}

// Attrs returns the kind-specific attributes of a node in the order used by
// the CommonMark XML format.
func (t *Tree) Attrs(id NodeID, opts DumpOptions) []Attr {
	n := &t.nodes[id]
	var out []Attr

	switch n.Kind {
	case NodeList:
		if data := n.ListData(); data != nil {
			if data.Ordered {
				out = append(out,
					Attr{"type", "ordered"},
					Attr{"start", strconv.Itoa(data.StartNumber)})
			} else {
				out = append(out, Attr{"type", "bullet"})
			}
			out = append(out, Attr{"tight", strconv.FormatBool(data.Tight)})
			if data.Ordered {
				delim := "period"
				if data.Delimiter == ')' {
					delim = "paren"
				}
				out = append(out, Attr{"delimiter", delim})
			}
		}
	case NodeHeading:
		out = append(out, Attr{"level", strconv.Itoa(n.Block.HeadingLevel)})
	case NodeCodeBlock:
		if code := n.CodeData(); code != nil {
			if code.Info != "" {
				out = append(out, Attr{"info", code.Info})
			}
			if code.Language != "" {
				out = append(out, Attr{"language", code.Language})
			}
		}
	case NodeLink, NodeImage:
		if link := n.LinkData(); link != nil {
			out = append(out,
				Attr{"destination", link.Destination},
				Attr{"title", link.Title})
		}
	}

	if opts.SourcePos && n.IsBlock() && n.Pos.IsValid() {
		out = append(out, Attr{"sourcepos", n.Pos.String()})
	}
	return out
}

// HasLiteral reports whether nodes of kind k print their literal.
func HasLiteral(k NodeKind) bool {
	switch k {
	case NodeText, NodeCodeSpan, NodeHTMLInline, NodeCodeBlock, NodeHTMLBlock:
		return true
	default:
		return false
	}
}

// String returns the text dump of the whole tree without positions.
func (t *Tree) String() string {
	var sb strings.Builder
	_ = t.WriteText(&sb, t.Root(), DumpOptions{})
	return sb.String()
}

// WriteText writes an indented outline of the subtree at root, one node
// per line:
//
//	document
//	  paragraph
//	    text "foo"
func (t *Tree) WriteText(w io.Writer, root NodeID, opts DumpOptions) error {
	bw := bufio.NewWriter(w)
	depth := 0

	_ = t.WalkWithContext(root,
		func(id NodeID) error {
			n := &t.nodes[id]
			if opts.BlocksOnly && n.IsInline() {
				return nil
			}
			bw.WriteString(strings.Repeat("  ", depth))
			bw.WriteString(n.Kind.Tag())
			for _, a := range t.Attrs(id, opts) {
				bw.WriteString(" " + a.Name + "=" + strconv.Quote(a.Value))
			}
			if HasLiteral(n.Kind) {
				bw.WriteString(" " + strconv.Quote(n.Literal))
			}
			bw.WriteByte('\n')
			depth++
			return nil
		},
		func(id NodeID) error {
			if !opts.BlocksOnly || !t.nodes[id].IsInline() {
				depth--
			}
			return nil
		})

	return bw.Flush()
}

// WriteXML writes the subtree at root in the CommonMark XML format.
func (t *Tree) WriteXML(w io.Writer, root NodeID, opts DumpOptions) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	bw.WriteString("<!DOCTYPE document SYSTEM \"CommonMark.dtd\">\n")

	depth := 0
	writeTag := func(id NodeID, selfClosing bool) {
		n := &t.nodes[id]
		bw.WriteString("<" + n.Kind.Tag())
		if n.Kind == NodeDocument {
			bw.WriteString(` xmlns="http://commonmark.org/xml/1.0"`)
		}
		for _, a := range t.Attrs(id, opts) {
			bw.WriteString(" " + a.Name + "=\"" + mdutil.EscapeXML(a.Value) + "\"")
		}
		if selfClosing {
			bw.WriteString(" />")
		} else {
			bw.WriteString(">")
		}
	}

	_ = t.WalkWithContext(root,
		func(id NodeID) error {
			n := &t.nodes[id]
			bw.WriteString(strings.Repeat("  ", depth))
			switch {
			case HasLiteral(n.Kind):
				writeTag(id, false)
				bw.WriteString(mdutil.EscapeXML(n.Literal))
				bw.WriteString("</" + n.Kind.Tag() + ">\n")
			case n.Kind == NodeThematicBreak || n.Kind == NodeHardBreak || n.Kind == NodeSoftBreak:
				writeTag(id, true)
				bw.WriteByte('\n')
			default:
				writeTag(id, false)
				bw.WriteByte('\n')
				depth++
			}
			return nil
		},
		func(id NodeID) error {
			n := &t.nodes[id]
			if HasLiteral(n.Kind) || n.Kind == NodeThematicBreak ||
				n.Kind == NodeHardBreak || n.Kind == NodeSoftBreak {
				return nil
			}
			depth--
			bw.WriteString(strings.Repeat("  ", depth))
			bw.WriteString("</" + n.Kind.Tag() + ">\n")
			return nil
		})

	return bw.Flush()
}

// JSONNode is the JSON form of a node.
type JSONNode struct {
	Type      string            `json:"type"`
	SourcePos string            `json:"sourcepos,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Literal   *string           `json:"literal,omitempty"`
	Children  []*JSONNode       `json:"children,omitempty"`
}

// JSONTree is the JSON form of a tree.
type JSONTree struct {
	Document   *JSONNode            `json:"document"`
	References map[string]Reference `json:"references,omitempty"`
}

// ToJSON converts the subtree at root into its JSON form.
func (t *Tree) ToJSON(root NodeID, opts DumpOptions) *JSONNode {
	n := &t.nodes[root]
	out := &JSONNode{Type: n.Kind.Tag()}

	for _, a := range t.Attrs(root, opts) {
		if a.Name == "sourcepos" {
			out.SourcePos = a.Value
			continue
		}
		if out.Attrs == nil {
			out.Attrs = make(map[string]string)
		}
		out.Attrs[a.Name] = a.Value
	}
	if HasLiteral(n.Kind) {
		lit := n.Literal
		out.Literal = &lit
	}
	for child := n.FirstChild; child != NoNode; child = t.nodes[child].Next {
		out.Children = append(out.Children, t.ToJSON(child, opts))
	}
	return out
}

// WriteJSON writes the tree and its reference definitions as indented JSON.
func (t *Tree) WriteJSON(w io.Writer, opts DumpOptions) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(JSONTree{
		Document:   t.ToJSON(t.Root(), opts),
		References: t.Refs,
	}); err != nil {
		return err
	}
	return bw.Flush()
}
