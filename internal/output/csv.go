package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/tokenstudio/internal/tokens"
)

// WriteCSV renders tokens as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, set *tokens.Set, sel FieldSelection) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers(sel.Fields)); err != nil {
		return err
	}
	for _, t := range set.Tokens {
		if err := writer.Write(RowValues(set, t, sel.Fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
