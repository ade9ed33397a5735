package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/phyten/tokenstudio/internal/tokens"
)

// Format describes one token output format.
type Format struct {
	Name  string
	Ext   string
	Lexer string
	write func(io.Writer, *tokens.Set, FieldSelection) error
}

// Write renders set in this format.
func (f Format) Write(w io.Writer, set *tokens.Set, sel FieldSelection) error {
	return f.write(w, set, sel)
}

// Render returns the rendered bytes of set.
func (f Format) Render(set *tokens.Set, sel FieldSelection) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.write(&buf, set, sel); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the file name used when writing this format into an
// output directory.
func (f Format) Filename(base string) string {
	return base + f.Ext
}

var formats = map[string]Format{
	"css": {Name: "css", Ext: ".css", Lexer: "css", write: func(w io.Writer, s *tokens.Set, _ FieldSelection) error {
		return WriteCSS(w, s)
	}},
	"json": {Name: "json", Ext: ".json", Lexer: "json", write: func(w io.Writer, s *tokens.Set, _ FieldSelection) error {
		return WriteJSON(w, s)
	}},
	"ts": {Name: "ts", Ext: ".ts", Lexer: "typescript", write: func(w io.Writer, s *tokens.Set, _ FieldSelection) error {
		return WriteTS(w, s)
	}},
	"md":     {Name: "md", Ext: ".md", Lexer: "markdown", write: WriteMarkdownTable},
	"csv":    {Name: "csv", Ext: ".csv", Lexer: "", write: WriteCSV},
	"ndjson": {Name: "ndjson", Ext: ".ndjson", Lexer: "json", write: func(w io.Writer, s *tokens.Set, _ FieldSelection) error {
		return WriteNDJSON(w, s)
	}},
}

var formatAliases = map[string]string{
	"markdown":   "md",
	"typescript": "ts",
	"jsonl":      "ndjson",
}

// FormatNames lists the canonical format names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupFormat resolves a (case-insensitive) format name or alias.
func LookupFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	f, ok := formats[key]
	if !ok {
		return Format{}, fmt.Errorf("unknown format: %s (want one of %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// ParseFormats resolves repeated and comma separated format names, keeping
// the first occurrence of each.
func ParseFormats(values []string) ([]Format, error) {
	var out []Format
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			f, err := LookupFormat(part)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[f.Name]; dup {
				continue
			}
			seen[f.Name] = struct{}{}
			out = append(out, f)
		}
	}
	return out, nil
}
