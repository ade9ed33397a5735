package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/phyten/tokenstudio/internal/opts"
	"github.com/phyten/tokenstudio/internal/tokens"
)

var buildKeyMap = map[string]string{
	"steps":        "steps",
	"step_count":   "steps",
	"chroma_scale": "chroma_scale",
	"chroma":       "chroma_scale",
	"alpha":        "alpha",
	"alpha_format": "alpha_format",
	"semantic":     "semantic",
	"prefix":       "prefix",
	"formats":      "formats",
	"format":       "formats",
	"out_dir":      "out_dir",
	"output_dir":   "out_dir",
	"out":          "out_dir",
	"basename":     "basename",
	"fields":       "fields",
}

var uiKeyMap = map[string]string{
	"color":    "color",
	"colour":   "color",
	"usage":    "usage",
	"port":     "port",
	"open":     "open",
	"db":       "db",
	"database": "db",
	"db_path":  "db",
}

var paletteKeyMap = map[string]string{
	"name":         "name",
	"preset":       "preset",
	"base":         "base",
	"base_color":   "base",
	"color":        "base",
	"hex":          "base",
	"chroma_scale": "chroma_scale",
	"chroma":       "chroma_scale",
	"scale":        "chroma_scale",
}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	buildSection := make(map[string]any)
	uiSection := make(map[string]any)

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "build":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("build: %w", err)
			}
			if err := fillSection(buildSection, sub, buildKeyMap, "build"); err != nil {
				return cfg, err
			}
		case "ui":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("ui: %w", err)
			}
			if err := fillSection(uiSection, sub, uiKeyMap, "ui"); err != nil {
				return cfg, err
			}
		case "palettes", "palette":
			list, err := decodePalettes(value)
			if err != nil {
				return cfg, fmt.Errorf("palettes: %w", err)
			}
			cfg.Palettes = &list
		}
	}

	// top-level shorthands; explicit sections win
	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "build", "ui", "palettes", "palette":
			continue
		}
		if canonical, ok := buildKeyMap[norm]; ok {
			if _, set := buildSection[canonical]; !set {
				buildSection[canonical] = value
			}
			continue
		}
		if canonical, ok := uiKeyMap[norm]; ok {
			if _, set := uiSection[canonical]; !set {
				uiSection[canonical] = value
			}
			continue
		}
		return cfg, fmt.Errorf("unknown config key: %s", key)
	}

	if err := assignBuild(buildSection, &cfg.Build); err != nil {
		return cfg, fmt.Errorf("build: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignBuild(section map[string]any, dst *BuildConfig) error {
	for key, value := range section {
		switch key {
		case "steps":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Steps = &n
		case "chroma_scale":
			f, err := expectFloat(value, key)
			if err != nil {
				return err
			}
			dst.ChromaScale = &f
		case "alpha":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Alpha = &b
		case "semantic":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Semantic = &b
		case "alpha_format", "prefix", "out_dir", "basename", "fields":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "alpha_format":
				dst.AlphaFormat = &trimmed
			case "prefix":
				dst.Prefix = &trimmed
			case "out_dir":
				dst.OutDir = &trimmed
			case "basename":
				dst.Basename = &trimmed
			case "fields":
				dst.Fields = &trimmed
			}
		case "formats":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Formats = &list
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		switch key {
		case "color", "usage", "db":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "color":
				dst.Color = &trimmed
			case "usage":
				dst.Usage = &trimmed
			case "db":
				dst.DB = &trimmed
			}
		case "port":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Port = &n
		case "open":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Open = &b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

// decodePalettes accepts either a list (order kept) or a map keyed by palette
// name (sorted by name). Entries are a base/preset string or a table.
func decodePalettes(value any) ([]tokens.PaletteSpec, error) {
	switch v := value.(type) {
	case []any:
		out := make([]tokens.PaletteSpec, 0, len(v))
		for i, item := range v {
			if name, ok := item.(string); ok {
				out = append(out, tokens.PaletteSpec{Name: strings.TrimSpace(name)})
				continue
			}
			m, err := toStringKeyMap(item)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			spec, err := decodePaletteTable("", m)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			out = append(out, spec)
		}
		return out, nil
	case string:
		return ParsePalettes([]string{v})
	default:
		m, err := toStringKeyMap(value)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]tokens.PaletteSpec, 0, len(names))
		for _, name := range names {
			switch entry := m[name].(type) {
			case string:
				out = append(out, paletteFromValue(name, entry))
			case nil:
				out = append(out, tokens.PaletteSpec{Name: name})
			default:
				sub, err := toStringKeyMap(entry)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				spec, err := decodePaletteTable(name, sub)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				out = append(out, spec)
			}
		}
		return out, nil
	}
}

func decodePaletteTable(name string, m map[string]any) (tokens.PaletteSpec, error) {
	spec := tokens.PaletteSpec{Name: name}
	for key, value := range m {
		canonical, ok := paletteKeyMap[normalizeKey(key)]
		if !ok {
			return spec, fmt.Errorf("unknown palette key: %s", key)
		}
		switch canonical {
		case "chroma_scale":
			f, err := expectFloat(value, canonical)
			if err != nil {
				return spec, err
			}
			spec.ChromaScale = f
		default:
			str, err := expectString(value, canonical)
			if err != nil {
				return spec, err
			}
			str = strings.TrimSpace(str)
			switch canonical {
			case "name":
				spec.Name = str
			case "preset":
				spec.Preset = str
			case "base":
				spec.BaseColor = str
			}
		}
	}
	if strings.TrimSpace(spec.Name) == "" {
		return spec, fmt.Errorf("palette name is required")
	}
	return spec, nil
}

// paletteFromValue reads the "name: value" shorthand: a value starting with
// '#' is a base color, anything else a preset name.
func paletteFromValue(name, value string) tokens.PaletteSpec {
	value = strings.TrimSpace(value)
	spec := tokens.PaletteSpec{Name: strings.TrimSpace(name)}
	switch {
	case value == "":
	case strings.HasPrefix(value, "#"):
		spec.BaseColor = value
	default:
		spec.Preset = value
	}
	return spec
}

// ParsePalettes parses "name" and "name=value" entries, comma separated or
// repeated, as used by TOKENSTUDIO_PALETTES and --palette.
func ParsePalettes(values []string) ([]tokens.PaletteSpec, error) {
	var out []tokens.PaletteSpec
	for _, entry := range opts.SplitMulti(values) {
		name, value, _ := strings.Cut(entry, "=")
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid palette entry: %q", entry)
		}
		out = append(out, paletteFromValue(name, value))
	}
	return out, nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return opts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, fmt.Errorf("integer out of range for %s: %v", field, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		n, err := strconv.Atoi(trimmed)
		if err != nil || trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectFloat(value any, field string) (float64, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%s must be a finite number", field)
		}
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid number for %s: %q", field, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return opts.SplitMulti([]string{v}), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
