package textutil

import (
	"bufio"
	"io"
	"strings"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column configures one table column. MaxWidth of zero means unlimited.
type Column struct {
	Header   string
	Align    Align
	MaxWidth int
}

// Table lays out rows in aligned columns measured by display width, so
// cells may carry ANSI styling and wide characters.
type Table struct {
	Columns []Column
	// StyleHeader decorates header cells after padding; nil leaves them plain.
	StyleHeader func(string) string
	Gap         string
	rows        [][]string
}

func NewTable(cols ...Column) *Table {
	return &Table{Columns: cols, Gap: "  "}
}

// AddRow appends a row. Missing cells are empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	for i, col := range t.Columns {
		if col.MaxWidth > 0 {
			row[i] = TruncateByWidth(row[i], col.MaxWidth, "…")
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = VisibleWidth(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := VisibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Render writes the header line followed by every row. Trailing padding of
// the last column is trimmed.
func (t *Table) Render(w io.Writer) error {
	widths := t.widths()
	bw := bufio.NewWriter(w)
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Header
	}
	t.writeLine(bw, header, widths, t.StyleHeader)
	for _, row := range t.rows {
		t.writeLine(bw, row, widths, nil)
	}
	return bw.Flush()
}

func (t *Table) writeLine(bw *bufio.Writer, cells []string, widths []int, style func(string) string) {
	last := len(cells) - 1
	var line strings.Builder
	for i, cell := range cells {
		var padded string
		switch {
		case t.Columns[i].Align == AlignRight:
			padded = PadLeft(cell, widths[i])
		case i == last:
			padded = cell
		default:
			padded = PadRight(cell, widths[i])
		}
		if style != nil && cell != "" {
			padded = style(padded)
		}
		if i > 0 {
			line.WriteString(t.Gap)
		}
		line.WriteString(padded)
	}
	bw.WriteString(strings.TrimRight(line.String(), " "))
	bw.WriteByte('\n')
}
