package colorutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("invalid hex color")

// achromaticEpsilon is the chroma below which hue is meaningless.
const achromaticEpsilon = 1e-6

// RGB is a gamma-encoded sRGB color with one byte per channel. Channels may
// hold out-of-range values when produced by OKLCH.RGB; Hex clamps them.
type RGB struct {
	R int
	G int
	B int
}

// OKLCH is a color in the OKLCH model. L is in [0,1], C >= 0, H in degrees.
type OKLCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

// ParseHex parses exactly six hex digits with an optional leading '#'.
// Surrounding whitespace, shorthand (#rgb) and alpha (#rrggbbaa) forms are
// rejected; ParseColor is the trimming, lenient entry point.
func ParseHex(hex string) (RGB, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// ParseColor is the lenient form of ParseHex that also expands #rgb shorthand.
func ParseColor(s string) (RGB, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) == 3 {
		var b strings.Builder
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		digits = b.String()
	}
	rgb, err := ParseHex(digits)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return rgb, nil
}

// Hex formats c as lowercase #rrggbb, clamping each channel to [0,255].
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func (c RGB) String() string { return c.Hex() }

// IsInGamut reports whether every channel lies in [0,255].
func IsInGamut(c RGB) bool {
	return inByteRange(c.R) && inByteRange(c.G) && inByteRange(c.B)
}

// HexToOKLCH converts a six-digit hex color to OKLCH.
func HexToOKLCH(hex string) (OKLCH, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return OKLCH{}, err
	}
	return rgb.OKLCH(), nil
}

func (c RGB) OKLCH() OKLCH {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)

	l, a, bb := linearToOKLab(r, g, b)
	chroma := math.Sqrt(a*a + bb*bb)
	if chroma < achromaticEpsilon {
		return OKLCH{L: l, C: 0, H: 0}
	}
	return OKLCH{L: l, C: chroma, H: normalizeHue(math.Atan2(bb, a) * 180 / math.Pi)}
}

// RGB converts c back to gamma-encoded bytes without reducing chroma, so the
// result may fall outside [0,255].
func (c OKLCH) RGB() RGB {
	r, g, b := c.linear()
	return RGB{
		R: int(math.Round(linearToSRGB(r) * 255)),
		G: int(math.Round(linearToSRGB(g) * 255)),
		B: int(math.Round(linearToSRGB(b) * 255)),
	}
}

// Hex converts c to #rrggbb. Callers that need gamut-correct output should
// pass the color through ClampToGamut first.
func (c OKLCH) Hex() string {
	return c.RGB().Hex()
}

func (c OKLCH) String() string {
	return fmt.Sprintf("oklch(%.4f %.4f %.2f)", c.L, c.C, c.H)
}

func (c OKLCH) linear() (float64, float64, float64) {
	rad := c.H * math.Pi / 180
	return okLabToLinear(c.L, c.C*math.Cos(rad), c.C*math.Sin(rad))
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// linearToSRGB keeps the sign so out-of-gamut values stay detectable.
func linearToSRGB(c float64) float64 {
	if c < 0 {
		return -linearToSRGB(-c)
	}
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// Matrices from Björn Ottosson, "A perceptual color space for image
// processing" (2020).
func linearToOKLab(r, g, b float64) (float64, float64, float64) {
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	l, m, s = math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	return 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		0.0259040371*l + 0.7827717662*m - 0.8086757660*s
}

func okLabToLinear(L, a, b float64) (float64, float64, float64) {
	l := L + 0.3963377774*a + 0.2158037573*b
	m := L - 0.1055613458*a - 0.0638541728*b
	s := L - 0.0894841775*a - 1.2914855480*b

	l, m, s = l*l*l, m*m*m, s*s*s

	return +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		-1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		-0.0041960863*l - 0.7034186147*m + 1.7076147010*s
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HueDistance returns the shortest angular distance between two hues.
func HueDistance(a, b float64) float64 {
	d := math.Abs(normalizeHue(a) - normalizeHue(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func inByteRange(v int) bool {
	return v >= 0 && v <= 255
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
