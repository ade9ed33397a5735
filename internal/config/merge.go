package config

import (
	"strings"

	"github.com/phyten/tokenstudio/internal/tokens"
)

func MergeBuild(base BuildSettings, layers ...BuildConfig) BuildSettings {
	out := base
	for _, layer := range layers {
		out.Steps = Resolve(out.Steps, layer.Steps)
		out.ChromaScale = Resolve(out.ChromaScale, layer.ChromaScale)
		out.Alpha = Resolve(out.Alpha, layer.Alpha)
		out.AlphaFormat = ResolveAndTrim(out.AlphaFormat, layer.AlphaFormat)
		out.Semantic = Resolve(out.Semantic, layer.Semantic)
		out.Prefix = ResolveAndTrim(out.Prefix, layer.Prefix)
		out.Formats = ResolveStrings(out.Formats, layer.Formats)
		out.OutDir = ResolveAndTrim(out.OutDir, layer.OutDir)
		out.Basename = ResolveAndTrim(out.Basename, layer.Basename)
		out.Fields = ResolveAndTrim(out.Fields, layer.Fields)
	}
	if len(out.Formats) == 0 {
		out.Formats = []string{"css"}
	}
	if out.OutDir == "" {
		out.OutDir = "."
	}
	if out.Basename == "" {
		out.Basename = "tokens"
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Usage = ResolveAndTrim(out.Usage, layer.Usage)
		out.Port = Resolve(out.Port, layer.Port)
		out.Open = Resolve(out.Open, layer.Open)
		out.DB = ResolveAndTrim(out.DB, layer.DB)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

// MergePalettes returns the last layer that sets palettes. Lists replace
// each other wholesale and are never concatenated.
func MergePalettes(base []tokens.PaletteSpec, layers ...*[]tokens.PaletteSpec) []tokens.PaletteSpec {
	out := clonePalettes(base)
	for _, layer := range layers {
		if layer != nil {
			out = clonePalettes(*layer)
		}
	}
	return out
}

// Merge applies layers in order (file, env, flags) over base.
func Merge(base Settings, layers ...Config) Settings {
	builds := make([]BuildConfig, 0, len(layers))
	uis := make([]UIConfig, 0, len(layers))
	palettes := make([]*[]tokens.PaletteSpec, 0, len(layers))
	for _, layer := range layers {
		builds = append(builds, layer.Build)
		uis = append(uis, layer.UI)
		palettes = append(palettes, layer.Palettes)
	}
	return Settings{
		Build:    MergeBuild(base.Build, builds...),
		UI:       MergeUI(base.UI, uis...),
		Palettes: MergePalettes(base.Palettes, palettes...),
	}
}

// Defaults returns the built-in settings every merge starts from.
func Defaults() Settings {
	return Settings{Build: DefaultBuildSettings(), UI: DefaultUISettings()}
}
