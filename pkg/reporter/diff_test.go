package reporter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/reporter"
)

func TestComputeDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		expected      string
		actual        string
		wantChanges   bool
		wantAdditions int
		wantDeletions int
	}{
		{
			name:     "identical",
			expected: "document\n  paragraph\n",
			actual:   "document\n  paragraph\n",
		},
		{
			name:          "changed line",
			expected:      "document\n  paragraph\n",
			actual:        "document\n  heading\n",
			wantChanges:   true,
			wantAdditions: 1,
			wantDeletions: 1,
		},
		{
			name:          "added line",
			expected:      "document\n",
			actual:        "document\n  thematic_break\n",
			wantChanges:   true,
			wantAdditions: 1,
		},
		{
			name:          "removed lines",
			expected:      "document\n  paragraph\n  paragraph\n",
			actual:        "document\n",
			wantChanges:   true,
			wantDeletions: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diff, err := reporter.ComputeDiff("a.md", "goldmark", tt.expected, "gocmark", tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanges, diff.HasChanges())
			assert.Equal(t, tt.wantAdditions, diff.Additions)
			assert.Equal(t, tt.wantDeletions, diff.Deletions)
			if tt.wantChanges {
				require.NotEmpty(t, diff.Hunks)
				assert.True(t, strings.HasPrefix(diff.Hunks[0], "@@"))
			}
		})
	}
}

func TestFileDiff_HasChanges_Nil(t *testing.T) {
	t.Parallel()

	var diff *reporter.FileDiff
	assert.False(t, diff.HasChanges())
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	changed, err := reporter.ComputeDiff("a.md", "goldmark", "document\n  paragraph\n", "gocmark", "document\n  heading\n")
	require.NoError(t, err)
	same, err := reporter.ComputeDiff("b.md", "goldmark", "document\n", "gocmark", "document\n")
	require.NoError(t, err)

	opts, out, _ := newOptions(reporter.FormatTree)
	opts.ShowSummary = true
	files, err := reporter.NewDiffReporter(opts).Report([]*reporter.FileDiff{changed, same})
	require.NoError(t, err)
	assert.Equal(t, 1, files)

	got := out.String()
	assert.Contains(t, got, "diff goldmark gocmark\n")
	assert.Contains(t, got, "--- goldmark/a.md\n")
	assert.Contains(t, got, "+++ gocmark/a.md\n")
	assert.Contains(t, got, "-  paragraph\n")
	assert.Contains(t, got, "+  heading\n")
	assert.NotContains(t, got, "b.md")
	assert.Contains(t, got, "1 file differs, 1 insertion(+), 1 deletion(-)\n")
}

func TestDiffReporter_NoDifferences(t *testing.T) {
	t.Parallel()

	same, err := reporter.ComputeDiff("a.md", "goldmark", "x\n", "gocmark", "x\n")
	require.NoError(t, err)

	opts, out, _ := newOptions(reporter.FormatTree)
	opts.ShowSummary = true
	files, err := reporter.NewDiffReporter(opts).Report([]*reporter.FileDiff{same})
	require.NoError(t, err)
	assert.Zero(t, files)
	assert.Equal(t, "No differences\n", out.String())
}
