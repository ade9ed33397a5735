package opts

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/phyten/tokenstudio/internal/colorutil"
)

const MaxChromaScale = 2.0

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// RampRequest is the shared input of a ramp request from the CLI or the web
// studio. A zero ChromaScale means "not set".
type RampRequest struct {
	Base        string
	Preset      string
	Steps       int
	ChromaScale float64
	Alpha       bool
	AlphaFormat colorutil.AlphaFormat
}

// Defaults returns the shared baseline for both CLI and Web inputs.
func Defaults() RampRequest {
	return RampRequest{
		Steps:       colorutil.DefaultSteps,
		AlphaFormat: colorutil.AlphaHex8,
	}
}

// ApplyWebQuery copies recognised values from the query string into the
// provided request. Validation happens separately via NormalizeAndValidate.
func ApplyWebQuery(def RampRequest, q url.Values) (RampRequest, error) {
	out := def

	if raw, ok := lastRawValue(q["base"]); ok {
		out.Base = raw
	}
	if raw, ok := lastLiteralValue(q["preset"]); ok {
		out.Preset = raw
	}
	if raw, ok := lastLiteralValue(q["steps"]); ok {
		n, err := parseInt(raw, "steps")
		if err != nil {
			return out, err
		}
		out.Steps = n
	}
	if raw, ok := lastLiteralValue(q["chroma_scale"]); ok {
		f, err := ParseFloatInRange(raw, "chroma_scale", 0, MaxChromaScale)
		if err != nil {
			return out, err
		}
		out.ChromaScale = f
	}
	if raw, ok := lastLiteralValue(q["alpha"]); ok {
		v, err := ParseBool(raw, "alpha")
		if err != nil {
			return out, err
		}
		out.Alpha = v
	}
	if raw, ok := lastLiteralValue(q["alpha_format"]); ok {
		out.AlphaFormat = colorutil.AlphaFormat(strings.ToLower(raw))
	}
	return out, nil
}

// NormalizeAndValidate resolves the preset, fills defaults and ensures the
// request is within the allowed ranges. Base is rewritten as #rrggbb.
func NormalizeAndValidate(r *RampRequest) error {
	r.Base = strings.TrimSpace(r.Base)
	r.Preset = strings.ToLower(strings.TrimSpace(r.Preset))
	if r.Preset != "" {
		p, err := colorutil.LookupPreset(r.Preset)
		if err != nil {
			return err
		}
		if r.Base == "" {
			r.Base = p.BaseColor
		}
		if r.ChromaScale == 0 {
			r.ChromaScale = p.ChromaScale
		}
	}
	if r.Base == "" {
		return errors.New("base color or preset is required")
	}
	rgb, err := colorutil.ParseColor(r.Base)
	if err != nil {
		return err
	}
	r.Base = rgb.Hex()

	if r.Steps == 0 {
		r.Steps = colorutil.DefaultSteps
	}
	if err := colorutil.ValidateSteps(r.Steps); err != nil {
		return err
	}
	if r.ChromaScale == 0 {
		r.ChromaScale = colorutil.DefaultChromaScale
	}
	if math.IsNaN(r.ChromaScale) || r.ChromaScale < 0 || r.ChromaScale > MaxChromaScale {
		return fmt.Errorf("chroma_scale must be between 0 and %g", MaxChromaScale)
	}
	switch r.AlphaFormat {
	case "":
		r.AlphaFormat = colorutil.AlphaHex8
	case colorutil.AlphaHex8, colorutil.AlphaRGBA:
	default:
		return fmt.Errorf("invalid alpha_format: %s", r.AlphaFormat)
	}
	return nil
}

// RampOptions converts a validated request.
func (r RampRequest) RampOptions() colorutil.RampOptions {
	return colorutil.RampOptions{BaseColor: r.Base, Steps: r.Steps, ChromaScale: r.ChromaScale}
}

// AlphaOptions converts a validated request.
func (r RampRequest) AlphaOptions() colorutil.AlphaRampOptions {
	return colorutil.AlphaRampOptions{BaseColor: r.Base, Steps: r.Steps, Format: r.AlphaFormat}
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// ParseFloatInRange parses a finite float within [min, max].
func ParseFloatInRange(raw, key string, min, max float64) (float64, error) {
	v := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid number for %s: %q", key, raw)
	}
	if f < min || f > max {
		return 0, fmt.Errorf("%s must be between %g and %g", key, min, max)
	}
	return f, nil
}

// SplitMulti turns repeated query parameters (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

// LastValue returns the last non-empty value of a repeated query parameter.
func LastValue(vals []string) (string, bool) {
	return lastRawValue(vals)
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}

func lastRawValue(vals []string) (string, bool) {
	for i := len(vals) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(vals[i])
		if trimmed == "" {
			continue
		}
		return trimmed, true
	}
	return "", false
}
