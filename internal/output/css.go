package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/phyten/tokenstudio/internal/tokens"
)

const generatedHeader = "Code generated by tokenstudio. DO NOT EDIT."

// WriteCSS renders tokens as custom properties on :root.
func WriteCSS(w io.Writer, set *tokens.Set) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "/* %s */\n\n:root {\n", generatedHeader)
	current := ""
	for _, t := range set.Tokens {
		if t.Palette != current {
			if current != "" {
				bw.WriteString("\n")
			}
			current = t.Palette
			fmt.Fprintf(bw, "  /* %s */\n", paletteTitle(current))
		}
		fmt.Fprintf(bw, "  %s: %s;\n", set.CSSVar(t), t.Value)
	}
	bw.WriteString("}\n")
	return bw.Flush()
}
