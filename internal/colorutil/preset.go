package colorutil

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownPreset = errors.New("unknown preset")

type Preset struct {
	Name        string  `json:"name"`
	BaseColor   string  `json:"base"`
	ChromaScale float64 `json:"chroma_scale"`
}

var presets = map[string]Preset{
	"gray":   {Name: "gray", BaseColor: "#6b7280", ChromaScale: 0.5},
	"slate":  {Name: "slate", BaseColor: "#64748b", ChromaScale: 0.8},
	"red":    {Name: "red", BaseColor: "#ef4444", ChromaScale: 1},
	"orange": {Name: "orange", BaseColor: "#f97316", ChromaScale: 1},
	"amber":  {Name: "amber", BaseColor: "#f59e0b", ChromaScale: 1},
	"yellow": {Name: "yellow", BaseColor: "#eab308", ChromaScale: 1},
	"lime":   {Name: "lime", BaseColor: "#84cc16", ChromaScale: 1},
	"green":  {Name: "green", BaseColor: "#22c55e", ChromaScale: 1},
	"teal":   {Name: "teal", BaseColor: "#14b8a6", ChromaScale: 1},
	"cyan":   {Name: "cyan", BaseColor: "#06b6d4", ChromaScale: 1},
	"blue":   {Name: "blue", BaseColor: "#3b82f6", ChromaScale: 1},
	"indigo": {Name: "indigo", BaseColor: "#6366f1", ChromaScale: 1},
	"violet": {Name: "violet", BaseColor: "#8b5cf6", ChromaScale: 1},
	"purple": {Name: "purple", BaseColor: "#a855f7", ChromaScale: 1},
	"pink":   {Name: "pink", BaseColor: "#ec4899", ChromaScale: 1},
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupPreset(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// GeneratePresetRamp builds the default 12-step ramp for a named preset.
func GeneratePresetRamp(name string) ([]string, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	return GenerateRamp(RampOptions{BaseColor: p.BaseColor, ChromaScale: p.ChromaScale})
}
