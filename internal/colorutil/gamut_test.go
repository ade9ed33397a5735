package colorutil

import (
	"math"
	"testing"
)

func TestClampToGamutReducesChromaOnly(t *testing.T) {
	for _, l := range []float64{0.05, 0.2, 0.45, 0.6, 0.8, 0.95} {
		for h := 0.0; h < 360; h += 30 {
			for _, c := range []float64{0.31, 0.4, 0.8} {
				in := OKLCH{L: l, C: c, H: h}
				out := ClampToGamut(in)
				if out.C > in.C {
					t.Fatalf("%v: chroma grew to %v", in, out.C)
				}
				if out.L != in.L || out.H != in.H {
					t.Fatalf("%v: lightness/hue changed to %v", in, out)
				}
				if !IsInGamut(out.RGB()) {
					t.Fatalf("%v: clamped %v still out of gamut (%v)", in, out, out.RGB())
				}
			}
		}
	}
}

func TestClampToGamutIdentityInGamut(t *testing.T) {
	for _, hex := range []string{"#808080", "#2563eb", "#fef3c7"} {
		in, err := HexToOKLCH(hex)
		if err != nil {
			t.Fatalf("HexToOKLCH(%s): %v", hex, err)
		}
		out := ClampToGamut(in)
		if math.Abs(out.L-in.L) > 1e-4 || math.Abs(out.C-in.C) > 1e-4 || math.Abs(out.H-in.H) > 1e-4 {
			t.Fatalf("%s: clamp changed %v -> %v", hex, in, out)
		}
	}
}

func TestClampToGamutExtremes(t *testing.T) {
	cases := []struct {
		in    OKLCH
		wantL float64
	}{
		{OKLCH{L: 0, C: 0.3, H: 120}, 0},
		{OKLCH{L: 1, C: 0.2, H: 40}, 1},
		{OKLCH{L: 1.3, C: 0.2, H: 40}, 1},
		{OKLCH{L: -0.1, C: 0.2, H: 40}, 0},
	}
	for _, tc := range cases {
		out := ClampToGamut(tc.in)
		if out.C != 0 || out.L != tc.wantL {
			t.Fatalf("ClampToGamut(%v)=%v, want L=%v C=0", tc.in, out, tc.wantL)
		}
	}
	zero := OKLCH{L: 0.5, C: 0, H: 200}
	if got := ClampToGamut(zero); got != zero {
		t.Fatalf("zero chroma should be unchanged, got %v", got)
	}
}

func TestToHexAlwaysValid(t *testing.T) {
	got := ToHex(OKLCH{L: 0.7, C: 0.5, H: 145})
	if !hexPattern.MatchString(got) {
		t.Fatalf("ToHex produced %q", got)
	}
}
