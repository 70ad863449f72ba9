// Package mdutil holds the character classes, HTML grammar and escaping
// helpers shared by the block and inline parsers. Everything here is pure.
package mdutil

import "regexp"

// HTML tag grammar building blocks.
const (
	TagName        = `[A-Za-z][A-Za-z0-9-]*`
	AttributeName  = `[a-zA-Z_:][a-zA-Z0-9:._-]*`
	UnquotedValue  = "[^\"'=<>`\\x00-\\x20]+"
	SingleQuoted   = `'[^']*'`
	DoubleQuoted   = `"[^"]*"`
	AttributeValue = `(?:` + UnquotedValue + `|` + SingleQuoted + `|` + DoubleQuoted + `)`

	attributeValueSpec = `(?:\s*=\s*` + AttributeValue + `)`
	attribute          = `(?:\s+` + AttributeName + attributeValueSpec + `?)`

	// OpenTag matches an HTML open tag.
	OpenTag = `<` + TagName + attribute + `*\s*/?>`

	// CloseTag matches an HTML closing tag.
	CloseTag = `</` + TagName + `\s*[>]`

	htmlComment           = `<!-->|<!--->|<!--[\s\S]*?-->`
	processingInstruction = `[<][?][\s\S]*?[?][>]`
	declaration           = `<![A-Za-z]+[^>]*>`
	cdata                 = `<!\[CDATA\[[\s\S]*?\]\]>`

	// HTMLTag matches any raw inline HTML construct.
	HTMLTag = `(?:` + OpenTag + `|` + CloseTag + `|` + htmlComment + `|` +
		processingInstruction + `|` + declaration + `|` + cdata + `)`

	// Entity matches a named, decimal or hexadecimal character reference.
	Entity = `&(?:#x[a-f0-9]{1,6}|#[0-9]{1,7}|[a-z][a-z0-9]{1,31});`
)

var (
	// ReHTMLTag matches a raw HTML construct at the start of the input.
	ReHTMLTag = regexp.MustCompile(`^` + HTMLTag)

	// ReEntityHere matches an entity at the start of the input.
	ReEntityHere = regexp.MustCompile(`(?i)^` + Entity)

	reEntityOrEscapedChar = regexp.MustCompile(`(?i)\\` + EscapableClass + `|` + Entity)
)
