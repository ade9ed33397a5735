package colorutil

const gamutSearchIterations = 32

// ClampToGamut reduces chroma, holding lightness and hue, until c maps to a
// displayable sRGB color. In-gamut input is returned unchanged; absolute black
// and white always come back with zero chroma.
func ClampToGamut(c OKLCH) OKLCH {
	if c.L <= 0 || c.L >= 1 {
		return OKLCH{L: clamp01(c.L), C: 0, H: c.H}
	}
	if c.C <= 0 || IsInGamut(c.RGB()) {
		return c
	}
	lo, hi := 0.0, c.C
	for i := 0; i < gamutSearchIterations; i++ {
		mid := (lo + hi) / 2
		if IsInGamut(OKLCH{L: c.L, C: mid, H: c.H}.RGB()) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return OKLCH{L: c.L, C: lo, H: c.H}
}

// ToHex clamps c into gamut and formats it.
func ToHex(c OKLCH) string {
	return ClampToGamut(c).Hex()
}
