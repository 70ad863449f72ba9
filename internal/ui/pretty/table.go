package pretty

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// defaultTermWidth is used when the terminal width cannot be determined.
const defaultTermWidth = 100

// TableFormatter renders bordered tables sized to the terminal.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a table formatter. A non-positive termWidth
// selects a default width.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders headers and rows. Tables wider than the terminal are
// shrunk to fit.
func (f *TableFormatter) Format(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(f.styles.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.styles.TableHeader
			}
			return f.styles.TableCell
		})

	natural := lipgloss.Width(t.String())
	if natural > f.termWidth {
		t = t.Width(f.termWidth)
	}
	return t.String() + "\n"
}
