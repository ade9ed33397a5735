package colorutil

import (
	"fmt"
	"strings"
)

type Harmony string

const (
	HarmonyComplementary      Harmony = "complementary"
	HarmonyAnalogous          Harmony = "analogous"
	HarmonyTriadic            Harmony = "triadic"
	HarmonyTetradic           Harmony = "tetradic"
	HarmonySplitComplementary Harmony = "split-complementary"
	HarmonyMonochrome         Harmony = "monochrome"
)

// Harmonies lists every supported harmony in display order.
var Harmonies = []Harmony{
	HarmonyComplementary,
	HarmonyAnalogous,
	HarmonyTriadic,
	HarmonyTetradic,
	HarmonySplitComplementary,
	HarmonyMonochrome,
}

// hue offsets relative to the base, base (0) included.
var harmonyOffsets = map[Harmony][]float64{
	HarmonyComplementary:      {0, 180},
	HarmonyAnalogous:          {-30, 0, 30},
	HarmonyTriadic:            {0, 120, 240},
	HarmonyTetradic:           {0, 90, 180, 270},
	HarmonySplitComplementary: {0, 150, 210},
}

var monochromeShifts = []float64{-0.30, -0.15, 0, 0.15, 0.30}

const (
	monochromeMinL = 0.12
	monochromeMaxL = 0.96
)

func ParseHarmony(s string) (Harmony, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	switch norm {
	case "complement":
		return HarmonyComplementary, nil
	case "split", "splitcomplementary":
		return HarmonySplitComplementary, nil
	case "square":
		return HarmonyTetradic, nil
	case "mono", "monochromatic":
		return HarmonyMonochrome, nil
	}
	for _, h := range Harmonies {
		if string(h) == norm {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown harmony: %s", s)
}

// GenerateHarmony derives a color set from base. Hue rotations keep the
// base's lightness and chroma; monochrome keeps the hue and varies lightness.
// Every color is gamut-clamped.
func GenerateHarmony(baseHex string, h Harmony) ([]string, error) {
	base, err := HexToOKLCH(baseHex)
	if err != nil {
		return nil, err
	}
	if h == HarmonyMonochrome {
		out := make([]string, 0, len(monochromeShifts))
		for _, shift := range monochromeShifts {
			l := base.L + shift
			if l < monochromeMinL {
				l = monochromeMinL
			}
			if l > monochromeMaxL {
				l = monochromeMaxL
			}
			out = append(out, ToHex(OKLCH{L: l, C: base.C, H: base.H}))
		}
		return out, nil
	}
	offsets, ok := harmonyOffsets[h]
	if !ok {
		return nil, fmt.Errorf("unknown harmony: %s", h)
	}
	out := make([]string, 0, len(offsets))
	for _, off := range offsets {
		out = append(out, ToHex(OKLCH{L: base.L, C: base.C, H: normalizeHue(base.H + off)}))
	}
	return out, nil
}
