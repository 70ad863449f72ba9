package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gocmark/pkg/parser"
)

func TestParse_Inlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "code span",
			input: "`foo`",
			want:  lines("paragraph", `  code "foo"`),
		},
		{
			name:  "code span with inner backtick",
			input: "`` foo ` bar ``",
			want:  lines("paragraph", "  code \"foo ` bar\""),
		},
		{
			name:  "code span strips one space from each side",
			input: "` `` `",
			want:  lines("paragraph", "  code \"``\""),
		},
		{
			name:  "code span of spaces only is kept",
			input: "`  `",
			want:  lines("paragraph", `  code "  "`),
		},
		{
			name:  "code span line endings become spaces",
			input: "`foo\nbar`",
			want:  lines("paragraph", `  code "foo bar"`),
		},
		{
			name:  "unmatched backticks are literal",
			input: "```foo``",
			want: lines(
				"paragraph",
				"  text \"```\"",
				`  text "foo"`,
				"  text \"``\"",
			),
		},
		{
			name:  "backslash escapes",
			input: `\*not emph\*`,
			want: lines(
				"paragraph",
				`  text "*"`,
				`  text "not emph"`,
				`  text "*"`,
			),
		},
		{
			name:  "backslash before non-punctuation",
			input: `\a`,
			want: lines(
				"paragraph",
				`  text "\\"`,
				`  text "a"`,
			),
		},
		{
			name:  "backslash hard break",
			input: "foo\\\nbar",
			want: lines(
				"paragraph",
				`  text "foo"`,
				"  linebreak",
				`  text "bar"`,
			),
		},
		{
			name:  "two trailing spaces make a hard break",
			input: "foo  \n   bar",
			want: lines(
				"paragraph",
				`  text "foo"`,
				"  linebreak",
				`  text "bar"`,
			),
		},
		{
			name:  "one trailing space makes a soft break",
			input: "foo \nbar",
			want: lines(
				"paragraph",
				`  text "foo"`,
				"  softbreak",
				`  text "bar"`,
			),
		},
		{
			name:  "entities",
			input: "&copy;&#35;&#X22;&nosuch;",
			want: lines(
				"paragraph",
				`  text "©"`,
				`  text "#"`,
				`  text "\""`,
				`  text "&nosuch;"`,
			),
		},
		{
			name:  "invalid code point",
			input: "&#0;",
			want:  lines("paragraph", `  text "�"`),
		},
		{
			name:  "URI autolink",
			input: "<http://a.b/c?d>",
			want: lines(
				"paragraph",
				`  link destination="http://a.b/c?d" title=""`,
				`    text "http://a.b/c?d"`,
			),
		},
		{
			name:  "email autolink",
			input: "<foo@bar.example.com>",
			want: lines(
				"paragraph",
				`  link destination="mailto:foo@bar.example.com" title=""`,
				`    text "foo@bar.example.com"`,
			),
		},
		{
			name:  "inline HTML",
			input: "a <b>c</b>",
			want: lines(
				"paragraph",
				`  text "a "`,
				`  html_inline "<b>"`,
				`  text "c"`,
				`  html_inline "</b>"`,
			),
		},
		{
			name:  "not HTML",
			input: "a < b",
			want: lines(
				"paragraph",
				`  text "a "`,
				`  text "<"`,
				`  text " b"`,
			),
		},
		{
			name:  "trailing whitespace of a heading is trimmed",
			input: "#   foo \t",
			want:  lines(`heading level="1"`, `  text "foo"`),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, inlines(t, tc.input))
		})
	}
}

func TestParse_Emphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "emphasis",
			input: "*foo*",
			want:  lines("paragraph", "  emph", `    text "foo"`),
		},
		{
			name:  "strong",
			input: "**foo bar**",
			want:  lines("paragraph", "  strong", `    text "foo bar"`),
		},
		{
			name:  "strong nested in emphasis",
			input: "*foo**bar**baz*",
			want: lines(
				"paragraph",
				"  emph",
				`    text "foo"`,
				"    strong",
				`      text "bar"`,
				`    text "baz"`,
			),
		},
		{
			name:  "unpaired trailing delimiter",
			input: "*foo*bar*",
			want: lines(
				"paragraph",
				"  emph",
				`    text "foo"`,
				`  text "bar"`,
				`  text "*"`,
			),
		},
		{
			name:  "rule of three",
			input: "*foo**bar*",
			want: lines(
				"paragraph",
				"  emph",
				`    text "foo"`,
				`    text "**"`,
				`    text "bar"`,
			),
		},
		{
			name:  "triple run inside a word",
			input: "a***b***c",
			want: lines(
				"paragraph",
				`  text "a"`,
				"  emph",
				"    strong",
				`      text "b"`,
				`  text "c"`,
			),
		},
		{
			name:  "intraword underscore does not open",
			input: "_foo_bar",
			want: lines(
				"paragraph",
				`  text "_"`,
				`  text "foo"`,
				`  text "_"`,
				`  text "bar"`,
			),
		},
		{
			name:  "intraword asterisk closes",
			input: "foo*bar*",
			want: lines(
				"paragraph",
				`  text "foo"`,
				"  emph",
				`    text "bar"`,
			),
		},
		{
			name:  "left-flanking only cannot close",
			input: "*foo *",
			want: lines(
				"paragraph",
				`  text "*"`,
				`  text "foo "`,
				`  text "*"`,
			),
		},
		{
			name:  "punctuation flanking",
			input: "*(*foo*)*",
			want: lines(
				"paragraph",
				"  emph",
				`    text "("`,
				"    emph",
				`      text "foo"`,
				`    text ")"`,
			),
		},
		{
			name:  "quotes stay literal without smart punctuation",
			input: `"foo"`,
			want: lines(
				"paragraph",
				`  text "\""`,
				`  text "foo"`,
				`  text "\""`,
			),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, inlines(t, tc.input))
		})
	}
}

func TestParse_SmartPunctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "double quotes",
			input: `"foo"`,
			want: lines(
				"paragraph",
				`  text "“"`,
				`  text "foo"`,
				`  text "”"`,
			),
		},
		{
			name:  "single quotes",
			input: `'foo'`,
			want: lines(
				"paragraph",
				`  text "‘"`,
				`  text "foo"`,
				`  text "’"`,
			),
		},
		{
			name:  "apostrophe",
			input: "it's",
			want: lines(
				"paragraph",
				`  text "it"`,
				`  text "’"`,
				`  text "s"`,
			),
		},
		{
			name:  "ellipsis",
			input: "a...b",
			want:  lines("paragraph", `  text "a…b"`),
		},
		{
			name:  "en dash",
			input: "a--b",
			want:  lines("paragraph", `  text "a–b"`),
		},
		{
			name:  "em dash",
			input: "a---b",
			want:  lines("paragraph", `  text "a—b"`),
		},
		{
			name:  "four hyphens",
			input: "a----b",
			want:  lines("paragraph", `  text "a––b"`),
		},
		{
			name:  "five hyphens",
			input: "a-----b",
			want:  lines("paragraph", `  text "a—–b"`),
		},
		{
			name:  "seven hyphens",
			input: "a-------b",
			want:  lines("paragraph", `  text "a—––b"`),
		},
		{
			name:  "smart quotes inside emphasis",
			input: `*"a"*`,
			want: lines(
				"paragraph",
				"  emph",
				`    text "“"`,
				`    text "a"`,
				`    text "”"`,
			),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, inlines(t, tc.input, parser.WithSmart(true)))
		})
	}
}
