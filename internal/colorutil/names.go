package colorutil

import (
	"math"
	"sort"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

type namedColor struct {
	name string
	rgb  RGB
	lab  colorful.Color
}

var (
	namedOnce   sync.Once
	namedColors []namedColor
)

func loadNamedColors() []namedColor {
	namedOnce.Do(func() {
		names := make([]string, 0, len(colornames.Map))
		for name := range colornames.Map {
			names = append(names, name)
		}
		// sorted so ties resolve the same way on every run
		sort.Strings(names)
		namedColors = make([]namedColor, 0, len(names))
		for _, name := range names {
			raw := colornames.Map[name]
			c, _ := colorful.MakeColor(raw)
			namedColors = append(namedColors, namedColor{
				name: name,
				rgb:  RGB{R: int(raw.R), G: int(raw.G), B: int(raw.B)},
				lab:  c,
			})
		}
	})
	return namedColors
}

// NearestName returns the CSS named color closest to hex under CIEDE2000,
// together with its distance.
func NearestName(hex string) (string, float64, error) {
	rgb, err := ParseColor(hex)
	if err != nil {
		return "", 0, err
	}
	rgb = RGB{R: clampByte(rgb.R), G: clampByte(rgb.G), B: clampByte(rgb.B)}
	named := loadNamedColors()
	for _, nc := range named {
		if nc.rgb == rgb {
			return nc.name, 0, nil
		}
	}
	target := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
	best := ""
	bestDist := math.Inf(1)
	for _, nc := range named {
		if d := target.DistanceCIEDE2000(nc.lab); d < bestDist {
			best, bestDist = nc.name, d
		}
	}
	return best, bestDist, nil
}
