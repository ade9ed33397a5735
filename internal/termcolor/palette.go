package termcolor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phyten/tokenstudio/internal/colorutil"
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// KindStyle colors the token kind column.
func KindStyle(kind string) Style {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "alpha":
		color := 6
		return Style{FGBasic: &color}
	case "semantic":
		color := 5
		return Style{Bold: true, FGBasic: &color}
	default:
		return Style{}
	}
}

// RatingStyle colors a WCAG or APCA verdict.
func RatingStyle(rating string) Style {
	switch rating {
	case colorutil.RatingAAA, colorutil.RatingAA, colorutil.RatingPass:
		color := 2
		return Style{Bold: true, FGBasic: &color}
	case colorutil.RatingAALarge, colorutil.RatingMarginal:
		color := 3
		return Style{FGBasic: &color}
	case colorutil.RatingFail:
		color := 1
		return Style{Bold: true, FGBasic: &color}
	default:
		return Style{}
	}
}

// SwatchStyle paints the background with c and picks black or white text,
// whichever reads better on it.
func SwatchStyle(c colorutil.RGB, profile Profile) Style {
	bg := toBytes(c)
	fg := toBytes(colorutil.AutoTextColor(c))
	switch profile {
	case ProfileTrueColor:
		return Style{FGTrue: &fg, BGTrue: &bg}
	case ProfileANSI256:
		bgIdx := rgbToANSI256(bg[0], bg[1], bg[2])
		fgIdx := rgbToANSI256(fg[0], fg[1], fg[2])
		return Style{FG256: &fgIdx, BG256: &bgIdx}
	default:
		bgIdx := rgbToBasic(bg[0], bg[1], bg[2])
		fgIdx := 0
		if fg[0] > 128 {
			fgIdx = 7
		}
		return Style{FGBasic: &fgIdx, BGBasic: &bgIdx}
	}
}

// SwatchColor resolves a token value to the opaque color shown in a swatch.
// Translucent values (#rrggbbaa or rgba()) are composited over the
// terminal's background.
func SwatchColor(value string, scheme Scheme) (colorutil.RGB, error) {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		parts := strings.Split(lower[len("rgba("):len(lower)-1], ",")
		if len(parts) != 4 {
			return colorutil.RGB{}, fmt.Errorf("invalid rgba value: %s", value)
		}
		var ch [3]int
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil {
				return colorutil.RGB{}, fmt.Errorf("invalid rgba value: %s", value)
			}
			ch[i] = n
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return colorutil.RGB{}, fmt.Errorf("invalid rgba value: %s", value)
		}
		return CompositeOver(colorutil.RGB{R: ch[0], G: ch[1], B: ch[2]}, a, scheme.Background()), nil
	case len(strings.TrimPrefix(v, "#")) == 8:
		hex := strings.TrimPrefix(v, "#")
		c, err := colorutil.ParseHex(hex[:6])
		if err != nil {
			return colorutil.RGB{}, err
		}
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return colorutil.RGB{}, fmt.Errorf("%w: %s", colorutil.ErrInvalidHex, value)
		}
		return CompositeOver(c, float64(a)/255, scheme.Background()), nil
	default:
		return colorutil.ParseColor(v)
	}
}

// CompositeOver blends c at opacity alpha over bg in gamma-encoded space,
// the way browsers composite by default.
func CompositeOver(c colorutil.RGB, alpha float64, bg colorutil.RGB) colorutil.RGB {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	mix := func(fg, bg int) int {
		return int(math.Round(float64(fg)*alpha + float64(bg)*(1-alpha)))
	}
	return colorutil.RGB{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B)}
}

func toBytes(c colorutil.RGB) [3]uint8 {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return [3]uint8{clamp(c.R), clamp(c.G), clamp(c.B)}
}

var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// rgbToANSI256 picks the closer of the 6x6x6 cube entry and the gray ramp
// entry for the color.
func rgbToANSI256(r, g, b uint8) int {
	ri, gi, bi := cubeIndex(int(r)), cubeIndex(int(g)), cubeIndex(int(b))
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := sqDist(int(r), int(g), int(b), cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	avg := (int(r) + int(g) + int(b)) / 3
	grayIdx := 0
	if avg > 8 {
		grayIdx = (avg - 8 + 5) / 10
	}
	if grayIdx > 23 {
		grayIdx = 23
	}
	level := 8 + 10*grayIdx
	if sqDist(int(r), int(g), int(b), level, level, level) < cubeDist {
		return 232 + grayIdx
	}
	return cube
}

func cubeIndex(v int) int {
	best := 0
	for i, level := range cubeLevels {
		if abs(v-level) < abs(v-cubeLevels[best]) {
			best = i
		}
	}
	return best
}

// basicColors are the xterm defaults for SGR 30-37.
var basicColors = [8][3]int{
	{0, 0, 0},
	{205, 0, 0},
	{0, 205, 0},
	{205, 205, 0},
	{0, 0, 238},
	{205, 0, 205},
	{0, 205, 205},
	{229, 229, 229},
}

func rgbToBasic(r, g, b uint8) int {
	best, bestDist := 0, math.MaxInt
	for i, c := range basicColors {
		if d := sqDist(int(r), int(g), int(b), c[0], c[1], c[2]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(r1, g1, b1, r2, g2, b2 int) int {
	dr, dg, db := r1-r2, g1-g2, b1-b2
	return dr*dr + dg*dg + db*db
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
