package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/phyten/tokenstudio/internal/tokens"
)

// WriteTS renders tokens as a const object plus a TokenName union type.
func WriteTS(w io.Writer, set *tokens.Set) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// %s\n\nexport const tokens = {\n", generatedHeader)
	current := ""
	for _, t := range set.Tokens {
		if t.Palette != current {
			current = t.Palette
			fmt.Fprintf(bw, "  // %s\n", paletteTitle(current))
		}
		fmt.Fprintf(bw, "  %s: %s,\n", strconv.Quote(t.Name), strconv.Quote(t.Value))
	}
	bw.WriteString("} as const;\n\nexport type TokenName = keyof typeof tokens;\n")
	return bw.Flush()
}
