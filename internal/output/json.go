package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/phyten/tokenstudio/internal/tokens"
)

type member struct {
	key   string
	value any
}

// object keeps insertion order when marshalled.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON renders tokens as {"palettes": {name: {step: value}}} with
// optional "alpha" and "semantic" sections.
func WriteJSON(w io.Writer, set *tokens.Set) error {
	var palettes, alpha object
	semantic := object{}
	for _, name := range set.Palettes {
		var solid, translucent object
		for _, t := range set.Palette(name) {
			switch t.Kind {
			case tokens.KindSolid:
				solid = append(solid, member{strconv.Itoa(t.Step), t.Value})
			case tokens.KindAlpha:
				translucent = append(translucent, member{strings.TrimPrefix(t.Name, name+"-"), t.Value})
			case tokens.KindSemantic:
				semantic = append(semantic, member{t.Name, t.Value})
			}
		}
		palettes = append(palettes, member{name, solid})
		if len(translucent) > 0 {
			alpha = append(alpha, member{name, translucent})
		}
	}

	doc := object{}
	if set.Prefix != "" {
		doc = append(doc, member{"prefix", set.Prefix})
	}
	doc = append(doc, member{"steps", set.Steps}, member{"palettes", palettes})
	if len(alpha) > 0 {
		doc = append(doc, member{"alpha", alpha})
	}
	if len(semantic) > 0 {
		doc = append(doc, member{"semantic", semantic})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
