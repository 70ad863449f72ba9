// Package langdetect guesses the language of code blocks that carry no
// info string. Guesses land in mdast.CodeBlockAttrs.Language and never
// touch the info string the parser recorded.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// Unknown is returned when no language could be determined.
const Unknown = "text"

// classifierCandidates limits the enry classifier to languages that
// commonly appear in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// signature recognizes a language from unmistakable surface patterns.
type signature struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// signatures are tried in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var signatures = []signature{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", looksLikePython},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(content, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
			(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return containsAny(content, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(content, _ []byte) bool {
		return containsAny(content, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", looksLikeYAML},
}

// Detect returns a lowercase fence tag for content, or Unknown.
// Shebangs and editor modelines win over pattern signatures, which win
// over the statistical classifier.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 || enry.IsBinary(content) {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, sig := range signatures {
		if sig.match(content, trimmed) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Unknown
}

// Annotate sets CodeBlockAttrs.Language on every code block of tree that
// has no info string and whose language can be guessed. It returns the
// number of blocks annotated.
func Annotate(tree *mdast.Tree) int {
	if tree == nil {
		return 0
	}

	annotated := 0
	for _, id := range tree.FindByKind(tree.Root(), mdast.NodeCodeBlock) {
		node := tree.Node(id)
		code := node.CodeData()
		if code == nil || code.Info != "" {
			continue
		}
		if lang := Detect([]byte(node.Literal)); lang != Unknown {
			code.Language = lang
			annotated++
		}
	}
	return annotated
}

func looksLikePython(content, trimmed []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") &&
		(strings.Contains(s, "from ") || bytes.HasPrefix(trimmed, []byte("import "))) {
		return true
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

// looksLikeYAML counts "key: value" lines and list items; two or more
// make a document YAML.
func looksLikeYAML(content, _ []byte) bool {
	hits := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && line[0] != '"' &&
			!bytes.ContainsAny(line, "({") {
			hits++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			hits++
		}
	}
	return hits >= 2
}

func containsAny(b []byte, needles ...string) bool {
	for _, n := range needles {
		if bytes.Contains(b, []byte(n)) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
