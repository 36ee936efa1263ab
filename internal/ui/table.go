package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Column is a table column. A zero Width sizes the column to its widest cell.
type Column struct {
	Title string
	Width int
}

// Row holds one value per column; missing trailing cells render empty.
type Row []string

// Table is a fixed-layout text table for list commands.
type Table struct {
	Columns []Column
	Rows    []Row
}

func NewTable(cols []Column) *Table {
	return &Table{Columns: cols}
}

func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// Render lays out the header, a dashed rule and the rows. Cells are fitted
// by display width, so wide runes never push later columns out of line.
func (t *Table) Render() string {
	widths := t.widths()
	head := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cell := lipgloss.NewStyle().Foreground(ColorValue)
	rule := lipgloss.NewStyle().Foreground(ColorMeta)

	titles := make([]string, len(t.Columns))
	dashes := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
		dashes[i] = strings.Repeat("-", widths[i])
	}

	var sb strings.Builder
	writeRow(&sb, titles, widths, head)
	writeRow(&sb, dashes, widths, rule)
	for _, r := range t.Rows {
		writeRow(&sb, r, widths, cell)
	}
	return sb.String()
}

func (t *Table) widths() []int {
	w := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		if c.Width > 0 {
			w[i] = c.Width
			continue
		}
		w[i] = runewidth.StringWidth(c.Title)
		for _, r := range t.Rows {
			if i < len(r) {
				w[i] = max(w[i], runewidth.StringWidth(r[i]))
			}
		}
	}
	return w
}

func writeRow(sb *strings.Builder, vals []string, widths []int, style lipgloss.Style) {
	for i, w := range widths {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v := ""
		if i < len(vals) {
			v = vals[i]
		}
		sb.WriteString(style.Render(pad(v, w)))
	}
	sb.WriteByte('\n')
}

// KeyValueBlock renders pairs in a bordered box, keys aligned on the longest.
func KeyValueBlock(title string, pairs [][2]string) string {
	keyW := 0
	for _, p := range pairs {
		keyW = max(keyW, runewidth.StringWidth(p[0])+1)
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		sb.WriteString("  " + StyleMeta.Render(pad(p[0]+":", keyW)) + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(sb.String())
}

// pad fits s into exactly width terminal cells.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
