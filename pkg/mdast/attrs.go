package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds marker data for NodeList and NodeListItem.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// HTMLBlockType is the start condition (1-7) that opened a NodeHTMLBlock.
	HTMLBlockType int
}

// ListAttrs describes a list marker.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2), etc.).
	Ordered bool

	// BulletChar is the bullet character ('-', '+', '*') of bullet lists.
	BulletChar byte

	// StartNumber is the ordinal of the first item of ordered lists.
	StartNumber int

	// Delimiter is the delimiter of ordered lists ('.' or ')').
	Delimiter byte

	// Padding is the number of columns taken by the marker and the
	// spaces that follow it.
	Padding int

	// MarkerOffset is the indentation of the marker.
	MarkerOffset int

	// Tight is false once any item is separated from a sibling by a blank line.
	Tight bool
}

// Matches reports whether an item with marker other may join a list
// described by a.
func (a *ListAttrs) Matches(other *ListAttrs) bool {
	return a.Ordered == other.Ordered &&
		a.Delimiter == other.Delimiter &&
		a.BulletChar == other.BulletChar
}

// CodeBlockAttrs holds code block attributes.
type CodeBlockAttrs struct {
	// Fenced is false for indented code blocks.
	Fenced bool

	// FenceChar is the fence character ('`' or '~').
	FenceChar byte

	// FenceLength is the number of fence characters of the opening fence.
	FenceLength int

	// FenceOffset is the indentation of the opening fence.
	FenceOffset int

	// Info is the unescaped info string.
	Info string

	// Language is a guessed language for blocks without an info string.
	// The parser never sets it.
	Language string
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleFull represents full reference links: [text][label] or ![alt][label].
	RefStyleFull

	// RefStyleCollapsed represents collapsed reference links: [label][] or ![label][].
	RefStyleCollapsed

	// RefStyleShortcut represents shortcut reference links: [label] or ![label].
	RefStyleShortcut

	// RefStyleAutolink represents autolinks: <https://example.com>.
	RefStyleAutolink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	case RefStyleAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the normalized link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// ReferenceLabel is the normalized label for reference-style links.
	// Empty for inline links and autolinks.
	ReferenceLabel string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle
}

// Reference is a link reference definition.
type Reference struct {
	// Label is the label as written, without brackets.
	Label string `json:"label"`

	Destination string `json:"destination"`
	Title       string `json:"title,omitempty"`
}

// ReferenceMap maps normalized labels to definitions.
type ReferenceMap map[string]Reference

// Define adds a definition unless the key is already present.
// It reports whether the definition was added.
func (m ReferenceMap) Define(key string, ref Reference) bool {
	if _, ok := m[key]; ok {
		return false
	}
	m[key] = ref
	return true
}

// Lookup returns the definition for key.
func (m ReferenceMap) Lookup(key string) (Reference, bool) {
	ref, ok := m[key]
	return ref, ok
}
