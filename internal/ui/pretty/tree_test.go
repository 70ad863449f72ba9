package pretty_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/mdast"
)

func TestFormatTreeLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		line     pretty.TreeLine
		maxWidth int
		want     string
	}{
		{
			name: "document",
			line: pretty.TreeLine{Kind: mdast.NodeDocument},
			want: "document",
		},
		{
			name: "attributes",
			line: pretty.TreeLine{
				Depth: 1,
				Kind:  mdast.NodeHeading,
				Attrs: []mdast.Attr{{Name: "level", Value: "2"}},
			},
			want: "│ heading level=\"2\"",
		},
		{
			name: "literal",
			line: pretty.TreeLine{
				Depth:      2,
				Kind:       mdast.NodeText,
				Literal:    "a\tb",
				HasLiteral: true,
			},
			want: "│ │ text \"a\\tb\"",
		},
		{
			name: "truncated literal",
			line: pretty.TreeLine{
				Kind:       mdast.NodeText,
				Literal:    "abcdefghijklmnopqrstuvwxyz",
				HasLiteral: true,
			},
			maxWidth: 20,
			want:     "text \"abcdefghijkl…\"",
		},
		{
			name: "wide enough",
			line: pretty.TreeLine{
				Kind:       mdast.NodeText,
				Literal:    "short",
				HasLiteral: true,
			},
			maxWidth: 20,
			want:     "text \"short\"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := styles.FormatTreeLine(tc.line, tc.maxWidth)
			assert.Equal(t, tc.want, got)
			if tc.maxWidth > 0 {
				assert.LessOrEqual(t, utf8.RuneCountInString(got), tc.maxWidth)
			}
		})
	}
}
