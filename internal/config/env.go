package config

import (
	"errors"
	"strings"

	"github.com/phyten/tokenstudio/internal/opts"
)

// FromEnv reads the TOKENSTUDIO_* variables into a config layer. Parse
// failures are collected and returned together.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := opts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		*target = &list
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := opts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := opts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setFloat := func(target **float64, key string, min, max float64) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := opts.ParseFloatInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}

	// steps are range-checked later so every layer shares one error message
	setInt(&cfg.Build.Steps, "TOKENSTUDIO_STEPS", 0, -1)
	setFloat(&cfg.Build.ChromaScale, "TOKENSTUDIO_CHROMA_SCALE", 0, opts.MaxChromaScale)
	setBool(&cfg.Build.Alpha, "TOKENSTUDIO_ALPHA")
	setString(&cfg.Build.AlphaFormat, "TOKENSTUDIO_ALPHA_FORMAT")
	setBool(&cfg.Build.Semantic, "TOKENSTUDIO_SEMANTIC")
	setString(&cfg.Build.Prefix, "TOKENSTUDIO_PREFIX")
	setList(&cfg.Build.Formats, "TOKENSTUDIO_FORMATS")
	setString(&cfg.Build.OutDir, "TOKENSTUDIO_OUT_DIR")
	setString(&cfg.Build.Basename, "TOKENSTUDIO_BASENAME")
	setString(&cfg.Build.Fields, "TOKENSTUDIO_FIELDS")

	setString(&cfg.UI.Color, "TOKENSTUDIO_COLOR")
	setString(&cfg.UI.Usage, "TOKENSTUDIO_USAGE")
	setInt(&cfg.UI.Port, "TOKENSTUDIO_PORT", 1, 65535)
	setBool(&cfg.UI.Open, "TOKENSTUDIO_OPEN")
	setString(&cfg.UI.DB, "TOKENSTUDIO_DB")

	if raw := strings.TrimSpace(getenv("TOKENSTUDIO_PALETTES")); raw != "" {
		list, err := ParsePalettes([]string{raw})
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Palettes = &list
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
