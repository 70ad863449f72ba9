package mdutil

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// UnescapeString replaces backslash escapes and entity references in s
// with the characters they stand for.
func UnescapeString(s string) string {
	if !strings.ContainsAny(s, `\&`) {
		return s
	}
	return reEntityOrEscapedChar.ReplaceAllStringFunc(s, func(m string) string {
		if m[0] == '\\' {
			return m[1:]
		}
		return DecodeEntity(m)
	})
}

// DecodeEntity decodes a complete entity reference such as "&amp;",
// "&#35;" or "&#x22;". Unknown named entities are returned unchanged.
// Invalid code points decode to U+FFFD.
func DecodeEntity(ref string) string {
	if len(ref) < 3 || ref[0] != '&' || ref[len(ref)-1] != ';' {
		return ref
	}
	body := ref[1 : len(ref)-1]

	if body[0] != '#' {
		entity, ok := util.LookUpHTML5EntityByName(body)
		if !ok {
			return ref
		}
		return string(entity.Characters)
	}

	digits, base := body[1:], 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		digits, base = digits[1:], 16
	}
	code, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return string(utf8.RuneError)
	}
	return string(replaceCodePoint(rune(code)))
}

// c1Replacements maps C1 control code points to their windows-1252
// interpretation, as HTML decoders do.
var c1Replacements = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

func replaceCodePoint(r rune) rune {
	switch {
	case r == 0, r > utf8.MaxRune, r >= 0xD800 && r <= 0xDFFF:
		return utf8.RuneError
	}
	if repl, ok := c1Replacements[r]; ok {
		return repl
	}
	return r
}

// NormalizeURI percent-encodes characters that may not appear in a URI.
// Existing %XX escapes are kept. Input that is not valid UTF-8 is
// returned unchanged.
func NormalizeURI(uri string) string {
	if !utf8.ValidString(uri) {
		return uri
	}
	return string(util.URLEscape([]byte(uri), false))
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeXML escapes the characters that are special in XML text and
// attribute values.
func EscapeXML(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	return xmlReplacer.Replace(s)
}
