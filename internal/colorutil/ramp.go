package colorutil

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSteps = errors.New("steps must be 8, 10 or 12")

const (
	DefaultSteps       = 12
	DefaultChromaScale = 1.0
	maxChromaScale     = 2.0
)

// rampLightness is the 12-step light-to-dark curve. Shorter ramps resample it.
var rampLightness = [12]float64{
	0.980, 0.955, 0.915, 0.865, 0.805, 0.735,
	0.660, 0.585, 0.510, 0.430, 0.330, 0.220,
}

type RampOptions struct {
	BaseColor   string  `json:"base"`
	Steps       int     `json:"steps"`
	ChromaScale float64 `json:"chroma_scale"`
}

func (o RampOptions) withDefaults() RampOptions {
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.ChromaScale == 0 {
		o.ChromaScale = DefaultChromaScale
	}
	return o
}

func validateSteps(steps int) error {
	switch steps {
	case 8, 10, 12:
		return nil
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
}

func ValidateSteps(steps int) error { return validateSteps(steps) }

// RampLightness returns the target lightness of each step in a ramp of the
// given length.
func RampLightness(steps int) ([]float64, error) {
	if err := validateSteps(steps); err != nil {
		return nil, err
	}
	out := make([]float64, steps)
	last := float64(len(rampLightness) - 1)
	for i := range out {
		pos := float64(i) / float64(steps-1) * last
		lo := int(math.Floor(pos))
		if lo >= len(rampLightness)-1 {
			out[i] = rampLightness[len(rampLightness)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = rampLightness[lo] + (rampLightness[lo+1]-rampLightness[lo])*frac
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// chromaTaper desaturates samples toward the ends of the lightness range.
func chromaTaper(l float64) float64 {
	d := (l - 0.55) / 0.45
	t := 1 - d*d
	if t < 0.05 {
		return 0.05
	}
	return t
}

// RampSamples returns the gamut-clamped OKLCH samples behind GenerateRamp.
func RampSamples(opts RampOptions) ([]OKLCH, error) {
	opts = opts.withDefaults()
	if !finite(opts.ChromaScale) || opts.ChromaScale < 0 || opts.ChromaScale > maxChromaScale {
		return nil, fmt.Errorf("chroma scale must be in (0, %g], got %g", maxChromaScale, opts.ChromaScale)
	}
	base, err := HexToOKLCH(opts.BaseColor)
	if err != nil {
		return nil, err
	}
	lightness, err := RampLightness(opts.Steps)
	if err != nil {
		return nil, err
	}
	out := make([]OKLCH, len(lightness))
	for i, l := range lightness {
		out[i] = ClampToGamut(OKLCH{
			L: l,
			C: base.C * opts.ChromaScale * chromaTaper(l),
			H: base.H,
		})
	}
	return out, nil
}

// GenerateRamp builds a light-to-dark ramp around the base color's hue.
func GenerateRamp(opts RampOptions) ([]string, error) {
	samples, err := RampSamples(opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Hex()
	}
	return out, nil
}

// MediumStep returns the zero-based index of the "solid" step of a ramp,
// the one closest to the base color in typical palettes.
func MediumStep(steps int) int {
	if steps <= 3 {
		return steps - 1
	}
	return steps - 4
}

type AlphaFormat string

const (
	AlphaHex8 AlphaFormat = "hex8"
	AlphaRGBA AlphaFormat = "rgba"
)

type AlphaRampOptions struct {
	BaseColor string
	Steps     int
	Format    AlphaFormat
}

// AlphaLevels returns strictly increasing opacities from near 0 to near 1.
func AlphaLevels(steps int) ([]float64, error) {
	if err := validateSteps(steps); err != nil {
		return nil, err
	}
	out := make([]float64, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		out[i] = 0.02 + 0.96*math.Pow(t, 1.4)
	}
	return out, nil
}

// GenerateAlphaRamp holds the (gamut-clamped) base color fixed and varies
// opacity across the steps.
func GenerateAlphaRamp(opts AlphaRampOptions) ([]string, error) {
	if opts.Steps == 0 {
		opts.Steps = DefaultSteps
	}
	if opts.Format == "" {
		opts.Format = AlphaHex8
	}
	base, err := HexToOKLCH(opts.BaseColor)
	if err != nil {
		return nil, err
	}
	levels, err := AlphaLevels(opts.Steps)
	if err != nil {
		return nil, err
	}
	rgb := ClampToGamut(base).RGB()
	out := make([]string, len(levels))
	for i, a := range levels {
		switch opts.Format {
		case AlphaHex8:
			out[i] = fmt.Sprintf("%s%02x", rgb.Hex(), int(math.Round(a*255)))
		case AlphaRGBA:
			out[i] = fmt.Sprintf("rgba(%d, %d, %d, %.3f)", clampByte(rgb.R), clampByte(rgb.G), clampByte(rgb.B), a)
		default:
			return nil, fmt.Errorf("unknown alpha format: %s", opts.Format)
		}
	}
	return out, nil
}
