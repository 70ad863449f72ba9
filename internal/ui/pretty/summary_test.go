package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{},
			want:  "No Markdown files found\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesParsed: 1, Nodes: 1, References: 1},
			want:  "1 file parsed (1 node, 1 reference)\n",
		},
		{
			name: "failures and languages",
			stats: runner.Stats{
				FilesDiscovered: 4, FilesParsed: 3, FilesErrored: 1,
				Nodes: 412, References: 5, Annotated: 2,
			},
			want: "3 files parsed, 1 failed (412 nodes, 5 references, 2 languages guessed)\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatSummaryOneLine(tc.stats))
		})
	}
}

func TestFormatDiffSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "No differences\n", styles.FormatDiffSummary(0, 0, 0))
	assert.Equal(t, "1 file differs, 1 insertion(+)\n", styles.FormatDiffSummary(1, 1, 0))
	assert.Equal(t, "2 files differ, 3 insertions(+), 2 deletions(-)\n", styles.FormatDiffSummary(2, 3, 2))
}
