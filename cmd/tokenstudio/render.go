package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/termcolor"
	"github.com/phyten/tokenstudio/internal/textutil"
	"github.com/phyten/tokenstudio/internal/tokens"
)

const swatchWidth = 6

// output modes shared by the inspection commands
const (
	outputTable = "table"
	outputJSON  = "json"
	outputPlain = "plain"
)

func parseOutput(raw string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "", outputTable:
		return outputTable, nil
	case outputJSON, outputPlain:
		return v, nil
	default:
		return "", fmt.Errorf("invalid output: %s (want table|json|plain)", raw)
	}
}

func (a *app) newTable(cols ...textutil.Column) *textutil.Table {
	t := textutil.NewTable(cols...)
	t.StyleHeader = func(s string) string {
		return termcolor.Apply(termcolor.HeaderStyle(), s, a.term.Enabled)
	}
	return t
}

// swatch renders value as a colored block. Without color support it is
// empty, so callers only add swatch columns when a.term.Enabled.
func (a *app) swatch(value string) string {
	if !a.term.Enabled {
		return ""
	}
	c, err := termcolor.SwatchColor(value, a.term.Scheme)
	if err != nil {
		return strings.Repeat("?", swatchWidth)
	}
	return termcolor.Apply(termcolor.SwatchStyle(c, a.term.Profile), strings.Repeat(" ", swatchWidth), true)
}

// swatchStrip renders several colors side by side, or their hex values when
// color is off.
func (a *app) swatchStrip(values []string) string {
	if !a.term.Enabled {
		return strings.Join(values, " ")
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteString(a.swatch(v))
	}
	return b.String()
}

func (a *app) rating(r string) string {
	return termcolor.Apply(termcolor.RatingStyle(r), r, a.term.Enabled)
}

func formatOKLCH(c colorutil.OKLCH) string {
	return fmt.Sprintf("%.3f %.3f %5.1f", c.L, c.C, c.H)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) kind(k tokens.Kind) string {
	return termcolor.Apply(termcolor.KindStyle(string(k)), string(k), a.term.Enabled)
}
