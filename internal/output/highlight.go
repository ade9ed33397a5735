package output

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/phyten/tokenstudio/internal/termcolor"
)

const highlightStyle = "monokai"

// Highlight writes src to w with syntax highlighting for the format's
// language. Formats without a lexer, and the basic color profile, are written
// as is.
func Highlight(w io.Writer, src []byte, f Format, profile termcolor.Profile) error {
	formatter := ""
	switch profile {
	case termcolor.ProfileTrueColor:
		formatter = "terminal16m"
	case termcolor.ProfileANSI256:
		formatter = "terminal256"
	}
	if f.Lexer == "" || formatter == "" {
		_, err := w.Write(src)
		return err
	}
	return quick.Highlight(w, string(src), f.Lexer, formatter, highlightStyle)
}
