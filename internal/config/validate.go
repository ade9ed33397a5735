package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/opts"
	"github.com/phyten/tokenstudio/internal/output"
	"github.com/phyten/tokenstudio/internal/termcolor"
)

func CanonicalizeAlphaFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "", "hex", "hex8":
		return string(colorutil.AlphaHex8), nil
	case "rgba", "rgb":
		return string(colorutil.AlphaRGBA), nil
	default:
		return "", fmt.Errorf("invalid alpha_format: %s", raw)
	}
}

// CanonicalizeFormats resolves aliases and drops duplicates, keeping order.
func CanonicalizeFormats(raw []string) ([]string, error) {
	formats, err := output.ParseFormats(raw)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		out = append(out, f.Name)
	}
	return out, nil
}

func NormalizeBuild(values BuildSettings) (BuildSettings, error) {
	var err error
	if values.Steps == 0 {
		values.Steps = colorutil.DefaultSteps
	}
	if err := colorutil.ValidateSteps(values.Steps); err != nil {
		return values, fmt.Errorf("steps: %w", err)
	}
	if values.ChromaScale == 0 {
		values.ChromaScale = colorutil.DefaultChromaScale
	}
	if math.IsNaN(values.ChromaScale) || values.ChromaScale < 0 || values.ChromaScale > opts.MaxChromaScale {
		return values, fmt.Errorf("chroma_scale must be between 0 and %g", opts.MaxChromaScale)
	}
	values.AlphaFormat, err = CanonicalizeAlphaFormat(values.AlphaFormat)
	if err != nil {
		return values, err
	}
	values.Formats, err = CanonicalizeFormats(values.Formats)
	if err != nil {
		return values, err
	}
	values.Prefix = strings.Trim(strings.TrimSpace(values.Prefix), "-")
	values.Fields = strings.TrimSpace(values.Fields)
	return values, nil
}

func NormalizeUI(values UISettings) (UISettings, error) {
	mode, err := termcolor.ParseMode(values.Color)
	if err != nil {
		return values, err
	}
	values.Color = mode.String()
	usage, err := colorutil.ParseUsage(values.Usage)
	if err != nil {
		return values, err
	}
	values.Usage = string(usage)
	if values.Port < 1 || values.Port > 65535 {
		return values, fmt.Errorf("port must be between 1 and 65535")
	}
	values.DB = strings.TrimSpace(values.DB)
	return values, nil
}

// Normalize validates both sections of merged settings.
func Normalize(s Settings) (Settings, error) {
	var err error
	if s.Build, err = NormalizeBuild(s.Build); err != nil {
		return s, err
	}
	if s.UI, err = NormalizeUI(s.UI); err != nil {
		return s, err
	}
	return s, nil
}
