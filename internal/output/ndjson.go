package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/tokenstudio/internal/tokens"
)

type ndjsonRecord struct {
	tokens.Token
	Var string `json:"var"`
}

// WriteNDJSON streams tokens as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, set *tokens.Set) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range set.Tokens {
		if err := enc.Encode(ndjsonRecord{Token: t, Var: set.CSSVar(t)}); err != nil {
			return err
		}
	}
	return nil
}
