package config

import (
	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/tokens"
)

type BuildConfig struct {
	Steps       *int      `yaml:"steps" toml:"steps" json:"steps"`
	ChromaScale *float64  `yaml:"chroma_scale" toml:"chroma_scale" json:"chroma_scale"`
	Alpha       *bool     `yaml:"alpha" toml:"alpha" json:"alpha"`
	AlphaFormat *string   `yaml:"alpha_format" toml:"alpha_format" json:"alpha_format"`
	Semantic    *bool     `yaml:"semantic" toml:"semantic" json:"semantic"`
	Prefix      *string   `yaml:"prefix" toml:"prefix" json:"prefix"`
	Formats     *[]string `yaml:"formats" toml:"formats" json:"formats"`
	OutDir      *string   `yaml:"out_dir" toml:"out_dir" json:"out_dir"`
	Basename    *string   `yaml:"basename" toml:"basename" json:"basename"`
	Fields      *string   `yaml:"fields" toml:"fields" json:"fields"`
}

type UIConfig struct {
	Color *string `yaml:"color" toml:"color" json:"color"`
	Usage *string `yaml:"usage" toml:"usage" json:"usage"`
	Port  *int    `yaml:"port" toml:"port" json:"port"`
	Open  *bool   `yaml:"open" toml:"open" json:"open"`
	DB    *string `yaml:"db" toml:"db" json:"db"`
}

// Config is one layer (file, env or flags). Nil fields are unset.
type Config struct {
	Build    BuildConfig           `yaml:"build" toml:"build" json:"build"`
	UI       UIConfig              `yaml:"ui" toml:"ui" json:"ui"`
	Palettes *[]tokens.PaletteSpec `yaml:"palettes" toml:"palettes" json:"palettes"`
}

type BuildSettings struct {
	Steps       int
	ChromaScale float64
	Alpha       bool
	AlphaFormat string
	Semantic    bool
	Prefix      string
	Formats     []string
	OutDir      string
	Basename    string
	Fields      string
}

type UISettings struct {
	Color string
	Usage string
	Port  int
	Open  bool
	DB    string
}

// Settings is the fully merged configuration.
type Settings struct {
	Build    BuildSettings
	UI       UISettings
	Palettes []tokens.PaletteSpec
}

const DefaultPort = 7420

func DefaultBuildSettings() BuildSettings {
	return BuildSettings{
		Steps:       colorutil.DefaultSteps,
		ChromaScale: colorutil.DefaultChromaScale,
		Alpha:       false,
		AlphaFormat: string(colorutil.AlphaHex8),
		Semantic:    true,
		Prefix:      "",
		Formats:     []string{"css"},
		OutDir:      "tokens",
		Basename:    "tokens",
		Fields:      "",
	}
}

func DefaultUISettings() UISettings {
	return UISettings{
		Color: "auto",
		Usage: string(colorutil.UsageBody),
		Port:  DefaultPort,
		Open:  false,
		DB:    "",
	}
}

// DefaultPalettes is used when no layer configures palettes.
func DefaultPalettes() []tokens.PaletteSpec {
	return []tokens.PaletteSpec{{Name: "gray"}, {Name: "blue"}}
}

// Spec turns merged settings into a token build spec.
func (s Settings) Spec() tokens.Spec {
	palettes := s.Palettes
	if len(palettes) == 0 {
		palettes = DefaultPalettes()
	}
	return tokens.Spec{
		Prefix:      s.Build.Prefix,
		Steps:       s.Build.Steps,
		ChromaScale: s.Build.ChromaScale,
		Alpha:       s.Build.Alpha,
		AlphaFormat: colorutil.AlphaFormat(s.Build.AlphaFormat),
		Semantic:    s.Build.Semantic,
		Palettes:    clonePalettes(palettes),
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clonePalettes(in []tokens.PaletteSpec) []tokens.PaletteSpec {
	if len(in) == 0 {
		return nil
	}
	out := make([]tokens.PaletteSpec, len(in))
	copy(out, in)
	return out
}
