package colorutil

import (
	"fmt"
	"math"
	"strings"
)

// APCA-W3 0.0.98G-4g constants.
const (
	apcaMainTRC = 2.4

	apcaRco = 0.2126729
	apcaGco = 0.7151522
	apcaBco = 0.0721750

	apcaNormBG  = 0.56
	apcaNormTXT = 0.57
	apcaRevTXT  = 0.62
	apcaRevBG   = 0.65

	apcaBlkThrs = 0.022
	apcaBlkClmp = 1.414

	apcaScale    = 1.14
	apcaLoOffset = 0.027
	apcaLoClip   = 0.1
	apcaDeltaMin = 0.0005
)

// Usage selects the APCA threshold class for a piece of text.
type Usage string

const (
	UsageBody     Usage = "body"
	UsageLarge    Usage = "large"
	UsageHeadline Usage = "headline"
)

type apcaThreshold struct {
	pass     float64
	marginal float64
}

var apcaThresholds = map[Usage]apcaThreshold{
	UsageBody:     {pass: 75, marginal: 60},
	UsageLarge:    {pass: 60, marginal: 45},
	UsageHeadline: {pass: 45, marginal: 30},
}

func ParseUsage(s string) (Usage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "body", "text":
		return UsageBody, nil
	case "large", "large-text", "large_text":
		return UsageLarge, nil
	case "headline", "heading":
		return UsageHeadline, nil
	default:
		return "", fmt.Errorf("unknown usage: %s", s)
	}
}

func apcaY(c RGB) float64 {
	r := math.Pow(float64(clampByte(c.R))/255, apcaMainTRC)
	g := math.Pow(float64(clampByte(c.G))/255, apcaMainTRC)
	b := math.Pow(float64(clampByte(c.B))/255, apcaMainTRC)
	return apcaRco*r + apcaGco*g + apcaBco*b
}

func softClampBlack(y float64) float64 {
	if y > apcaBlkThrs {
		return y
	}
	return y + math.Pow(apcaBlkThrs-y, apcaBlkClmp)
}

// APCAContrast returns the signed lightness contrast Lc of text on bg.
// Positive values mean dark text on a light background.
func APCAContrast(text, bg RGB) float64 {
	txtY := softClampBlack(apcaY(text))
	bgY := softClampBlack(apcaY(bg))
	if math.Abs(bgY-txtY) < apcaDeltaMin {
		return 0
	}

	var out float64
	if bgY > txtY {
		sapc := (math.Pow(bgY, apcaNormBG) - math.Pow(txtY, apcaNormTXT)) * apcaScale
		if sapc >= apcaLoClip {
			out = sapc - apcaLoOffset
		}
	} else {
		sapc := (math.Pow(bgY, apcaRevBG) - math.Pow(txtY, apcaRevTXT)) * apcaScale
		if sapc <= -apcaLoClip {
			out = sapc + apcaLoOffset
		}
	}
	return out * 100
}

func APCAContrastHex(fgHex, bgHex string) (float64, error) {
	fg, bg, err := parsePair(fgHex, bgHex)
	if err != nil {
		return 0, err
	}
	return APCAContrast(fg, bg), nil
}

// APCARating grades |lc| for the given usage. Unknown usages are graded as
// body text.
func APCARating(lc float64, usage Usage) string {
	th, ok := apcaThresholds[usage]
	if !ok {
		th = apcaThresholds[UsageBody]
	}
	abs := math.Abs(lc)
	switch {
	case abs >= th.pass:
		return RatingPass
	case abs >= th.marginal:
		return RatingMarginal
	default:
		return RatingFail
	}
}
