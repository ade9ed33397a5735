package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/tokenstudio/internal/tokens"
)

// WriteMarkdownTable renders tokens as a GitHub Flavored Markdown table, one
// section per palette.
func WriteMarkdownTable(w io.Writer, set *tokens.Set, sel FieldSelection) error {
	headers := Headers(sel.Fields)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	for i, palette := range set.Palettes {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n\n", paletteTitle(palette)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
			return err
		}
		for _, t := range set.Palette(palette) {
			row := RowValues(set, t, sel.Fields)
			for i := range row {
				row[i] = escapeMarkdownCell(row[i])
			}
			if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
