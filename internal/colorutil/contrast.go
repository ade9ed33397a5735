package colorutil

import "fmt"

const (
	RatingAAA      = "AAA"
	RatingAA       = "AA"
	RatingAALarge  = "AA Large"
	RatingFail     = "Fail"
	RatingPass     = "Pass"
	RatingMarginal = "Marginal"
)

func luminance(rgb RGB) float64 {
	r := srgbToLinear(float64(clampByte(rgb.R)) / 255.0)
	g := srgbToLinear(float64(clampByte(rgb.G)) / 255.0)
	b := srgbToLinear(float64(clampByte(rgb.B)) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Luminance returns WCAG relative luminance in [0,1].
func Luminance(rgb RGB) float64 {
	return luminance(rgb)
}

func ContrastRatio(fg, bg RGB) float64 {
	l1 := luminance(fg)
	l2 := luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// WCAGContrastHex returns the WCAG 2 contrast ratio in [1,21]. The result does
// not depend on argument order.
func WCAGContrastHex(fgHex, bgHex string) (float64, error) {
	fg, bg, err := parsePair(fgHex, bgHex)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(fg, bg), nil
}

func WCAGRating(ratio float64) string {
	switch {
	case ratio >= 7:
		return RatingAAA
	case ratio >= 4.5:
		return RatingAA
	case ratio >= 3:
		return RatingAALarge
	default:
		return RatingFail
	}
}

func AutoTextColor(bg RGB) RGB {
	if ContrastRatio(black, bg) >= ContrastRatio(white, bg) {
		return black
	}
	return white
}

// BestTextColor picks pure black or white, whichever contrasts more with bg.
func BestTextColor(bgHex string) (string, error) {
	bg, err := ParseColor(bgHex)
	if err != nil {
		return "", err
	}
	return AutoTextColor(bg).Hex(), nil
}

type WCAGResult struct {
	Ratio  float64 `json:"ratio"`
	Rating string  `json:"rating"`
}

type APCAResult struct {
	Lc     float64 `json:"lc"`
	Rating string  `json:"rating"`
}

type ContrastReport struct {
	Foreground string     `json:"foreground"`
	Background string     `json:"background"`
	Usage      Usage      `json:"usage"`
	WCAG       WCAGResult `json:"wcag"`
	APCA       APCAResult `json:"apca"`
}

// CheckContrast evaluates fg on bg under both WCAG and APCA. An empty usage
// means body text.
func CheckContrast(fgHex, bgHex string, usage Usage) (ContrastReport, error) {
	if usage == "" {
		usage = UsageBody
	}
	fg, bg, err := parsePair(fgHex, bgHex)
	if err != nil {
		return ContrastReport{}, err
	}
	ratio := ContrastRatio(fg, bg)
	lc := APCAContrast(fg, bg)
	return ContrastReport{
		Foreground: fg.Hex(),
		Background: bg.Hex(),
		Usage:      usage,
		WCAG:       WCAGResult{Ratio: ratio, Rating: WCAGRating(ratio)},
		APCA:       APCAResult{Lc: lc, Rating: APCARating(lc, usage)},
	}, nil
}

// EnsureContrast returns fg unchanged when it already meets minRatio against
// bg. Otherwise it walks fg's OKLCH lightness toward whichever pole contrasts
// more with bg and returns the smallest shift that meets the ratio. When no
// shift suffices the best of black and white is returned.
func EnsureContrast(fgHex, bgHex string, minRatio float64) (string, error) {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	fg, bg, err := parsePair(fgHex, bgHex)
	if err != nil {
		return "", err
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg.Hex(), nil
	}
	pole := AutoTextColor(bg)
	if ContrastRatio(pole, bg) < minRatio {
		return pole.Hex(), nil
	}

	start := fg.OKLCH()
	target := 0.0
	if pole == white {
		target = 1
	}
	shifted := func(t float64) RGB {
		l := start.L + (target-start.L)*t
		return ClampToGamut(OKLCH{L: l, C: start.C, H: start.H}).RGB()
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		if ContrastRatio(shifted(mid), bg) >= minRatio {
			hi = mid
		} else {
			lo = mid
		}
	}
	out := shifted(hi)
	if ContrastRatio(out, bg) < minRatio {
		return pole.Hex(), nil
	}
	return out.Hex(), nil
}

func parsePair(fgHex, bgHex string) (RGB, RGB, error) {
	fg, err := ParseColor(fgHex)
	if err != nil {
		return RGB{}, RGB{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseColor(bgHex)
	if err != nil {
		return RGB{}, RGB{}, fmt.Errorf("background: %w", err)
	}
	return fg, bg, nil
}
