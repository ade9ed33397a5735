package termcolor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/tokenstudio/internal/colorutil"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

func ParseScheme(v string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return SchemeUnknown, nil
	case "dark":
		return SchemeDark, nil
	case "light":
		return SchemeLight, nil
	default:
		return SchemeUnknown, fmt.Errorf("unknown scheme: %s", v)
	}
}

// Background approximates the terminal background, used to flatten
// translucent swatches.
func (s Scheme) Background() colorutil.RGB {
	if s == SchemeLight {
		return colorutil.RGB{R: 255, G: 255, B: 255}
	}
	return colorutil.RGB{R: 18, G: 18, B: 18}
}

// DetectScheme reads COLORFGBG ("fg;bg", bg >= 7 is light) and falls back to
// the TERM name. Unknown terminals are treated as dark.
func DetectScheme(env map[string]string) Scheme {
	if raw := strings.TrimSpace(env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		bgRaw := strings.TrimSpace(parts[len(parts)-1])
		if bgRaw == "" && len(parts) >= 2 {
			bgRaw = strings.TrimSpace(parts[len(parts)-2])
		}
		if bg, err := strconv.Atoi(bgRaw); err == nil && bg >= 0 {
			if bg >= 7 && bg != 8 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}
