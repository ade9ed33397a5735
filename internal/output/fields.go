package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/tokenstudio/internal/tokens"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields      []Field
	ShowOKLCH   bool
	ShowNearest bool
}

type fieldMeta struct {
	header    string
	isOKLCH   bool
	isNearest bool
}

var fieldRegistry = map[string]fieldMeta{
	"name":    {header: "NAME"},
	"var":     {header: "VAR"},
	"palette": {header: "PALETTE"},
	"kind":    {header: "KIND"},
	"step":    {header: "STEP"},
	"value":   {header: "VALUE"},
	"oklch":   {header: "OKLCH", isOKLCH: true},
	"l":       {header: "L", isOKLCH: true},
	"c":       {header: "C", isOKLCH: true},
	"h":       {header: "H", isOKLCH: true},
	"nearest": {header: "NEAREST", isNearest: true},
}

var fieldAliases = map[string]string{
	"token":    "name",
	"css_var":  "var",
	"variable": "var",
	"hex":      "value",
	"color":    "value",
	"lch":      "oklch",
	"hue":      "h",
	"named":    "nearest",
}

// ResolveFields parses a comma separated field list. An empty list selects the
// default columns, extended by withOKLCH and withNearest.
func ResolveFields(raw string, withOKLCH, withNearest bool) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	sel := FieldSelection{}
	if raw == "" {
		keys := []string{"name", "var", "kind", "value"}
		if withOKLCH {
			keys = append(keys, "oklch")
		}
		if withNearest {
			keys = append(keys, "nearest")
		}
		sel.Fields = make([]Field, 0, len(keys))
		for _, key := range keys {
			sel.Fields = append(sel.Fields, Field{Key: key, Header: fieldRegistry[key].header})
		}
		sel.ShowOKLCH = withOKLCH
		sel.ShowNearest = withNearest
		return sel, nil
	}

	parts := strings.Split(raw, ",")
	sel.Fields = make([]Field, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		if alias, ok := fieldAliases[key]; ok {
			key = alias
		}
		meta, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		if meta.isOKLCH {
			sel.ShowOKLCH = true
		}
		if meta.isNearest {
			sel.ShowNearest = true
		}
	}
	return sel, nil
}

// Headers returns the header row for fields.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

// RowValues formats one token for the selected fields.
func RowValues(set *tokens.Set, t tokens.Token, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = formatFieldValue(set, t, f.Key)
	}
	return out
}

func formatFieldValue(set *tokens.Set, t tokens.Token, key string) string {
	switch key {
	case "name":
		return t.Name
	case "var":
		return set.CSSVar(t)
	case "palette":
		return t.Palette
	case "kind":
		return string(t.Kind)
	case "step":
		if t.Step <= 0 {
			return ""
		}
		return strconv.Itoa(t.Step)
	case "value":
		return t.Value
	case "oklch":
		return fmt.Sprintf("oklch(%.3f %.3f %.1f)", t.L, t.C, t.H)
	case "l":
		return strconv.FormatFloat(t.L, 'f', 4, 64)
	case "c":
		return strconv.FormatFloat(t.C, 'f', 4, 64)
	case "h":
		return strconv.FormatFloat(t.H, 'f', 2, 64)
	case "nearest":
		return t.Nearest
	default:
		return ""
	}
}
