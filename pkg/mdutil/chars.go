package mdutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// EscapableClass is the set of ASCII punctuation a backslash can escape.
const EscapableClass = "[!\"#$%&'()*+,./:;<=>?@\\[\\\\\\]^_`{|}~-]"

// IsEscapable reports whether c may follow a backslash escape.
func IsEscapable(c byte) bool {
	return c < utf8RuneSelf && isASCIIPunct[c]
}

const utf8RuneSelf = 0x80

var isASCIIPunct = func() [utf8RuneSelf]bool {
	var table [utf8RuneSelf]bool
	for _, c := range "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" {
		table[c] = true
	}
	return table
}()

// IsSpaceOrTab reports whether c is a space or a tab.
func IsSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsBlank reports whether s holds only spaces, tabs, vertical tabs,
// form feeds and line endings.
func IsBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\f', '\v', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// IsUnicodeWhitespace reports whether r is Unicode whitespace.
func IsUnicodeWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// IsPunctuation reports whether r is ASCII punctuation or belongs to the
// Unicode punctuation (P) or symbol (S) categories.
func IsPunctuation(r rune) bool {
	if r < utf8RuneSelf {
		return isASCIIPunct[r]
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// NormalizeReference returns the lookup key of a link label given without
// its brackets: trimmed, with internal whitespace runs collapsed to one
// space and Unicode case folded.
func NormalizeReference(label string) string {
	label = strings.TrimSpace(label)

	var b strings.Builder
	b.Grow(len(label))
	inSpace := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteByte(c)
	}

	// A Caser is not safe for concurrent use.
	return cases.Fold().String(b.String())
}
