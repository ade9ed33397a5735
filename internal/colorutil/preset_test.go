package colorutil

import (
	"errors"
	"sort"
	"testing"
)

func TestPresetRampsAreValid(t *testing.T) {
	names := PresetNames()
	if !sort.StringsAreSorted(names) || len(names) == 0 {
		t.Fatalf("PresetNames not sorted or empty: %v", names)
	}
	for _, name := range names {
		ramp, err := GeneratePresetRamp(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(ramp) != 12 {
			t.Fatalf("%s: %d entries", name, len(ramp))
		}
		for i, hex := range ramp {
			if !hexPattern.MatchString(hex) {
				t.Fatalf("%s[%d]=%q", name, i, hex)
			}
		}
	}
}

func TestGrayPresetIsNearNeutral(t *testing.T) {
	ramp, err := GeneratePresetRamp("gray")
	if err != nil {
		t.Fatal(err)
	}
	if c := mustOKLCH(t, ramp[len(ramp)/2]).C; c >= 0.02 {
		t.Fatalf("gray midpoint chroma %.4f >= 0.02", c)
	}
}

func TestBluePresetHue(t *testing.T) {
	ramp, err := GeneratePresetRamp("Blue")
	if err != nil {
		t.Fatal(err)
	}
	h := mustOKLCH(t, ramp[len(ramp)/2]).H
	if h < 240 || h > 280 {
		t.Fatalf("blue midpoint hue %.2f outside [240,280]", h)
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := GeneratePresetRamp("chartreuse"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}
