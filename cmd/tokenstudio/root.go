package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/tokenstudio/internal/config"
	"github.com/phyten/tokenstudio/internal/termcolor"
)

// app carries process state shared by every subcommand. Tests swap the
// writers and environment.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	stdoutFile *os.File
	environ    []string
	dir        string
	logger     *slog.Logger

	configFlag string
	debug      bool

	configPath string
	settings   config.Settings
	term       termcolor.Terminal
}

func newApp() *app {
	dir, _ := os.Getwd()
	return &app{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		stdoutFile: os.Stdout,
		environ:    os.Environ(),
		dir:        dir,
	}
}

func (a *app) getenv(key string) string {
	return termcolor.EnvMap(a.environ)[key]
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tokenstudio",
		Short: "Generate OKLCH color ramps and design tokens",
		Long: `tokenstudio builds perceptually even color ramps in OKLCH, checks text
contrast with WCAG 2.x and APCA, and exports the result as design tokens.

Examples:
  tokenstudio ramp "#2563eb"
  tokenstudio contrast "#ffffff" "#2563eb" --usage large
  tokenstudio build --palette blue,brand=#7c3aed --format css,json
  tokenstudio serve --open`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFlag, "config", "", "config file (default: nearest .tokenstudio.{yaml,toml,json})")
	pf.String("color", "", "auto|always|never")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newConvertCmd(a),
		newRampCmd(a),
		newHarmonyCmd(a),
		newContrastCmd(a),
		newPresetsCmd(a),
		newBuildCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newThemeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return a.loadSettings(cmd)
}

// loadSettings merges defaults < config file < environment < flags.
func (a *app) loadSettings(cmd *cobra.Command) error {
	explicit := a.configFlag
	if strings.TrimSpace(explicit) == "" {
		explicit = a.getenv("TOKENSTUDIO_CONFIG")
	}
	path, where, err := config.Find(a.dir, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if path != "" {
		a.logger.Debug("config loaded", "path", path, "source", where)
	}
	a.configPath = path

	envCfg, err := config.FromEnv(a.getenv)
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	flagCfg, err := flagLayer(cmd)
	if err != nil {
		return err
	}
	settings, err := config.Normalize(config.Merge(config.Defaults(), fileCfg, envCfg, flagCfg))
	if err != nil {
		return err
	}
	a.settings = settings

	mode, err := termcolor.ParseMode(settings.UI.Color)
	if err != nil {
		return err
	}
	a.term = termcolor.Detect(mode, a.stdoutFile, termcolor.EnvMap(a.environ))
	return nil
}

// flagLayer turns explicitly set flags into a config layer. Flags a command
// does not define are skipped.
func flagLayer(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	fs := cmd.Flags()
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}

	var err error
	str := func(name string, dst **string) {
		if err != nil || !changed(name) {
			return
		}
		var v string
		if v, err = fs.GetString(name); err == nil {
			*dst = &v
		}
	}
	boolean := func(name string, dst **bool) {
		if err != nil || !changed(name) {
			return
		}
		var v bool
		if v, err = fs.GetBool(name); err == nil {
			*dst = &v
		}
	}
	integer := func(name string, dst **int) {
		if err != nil || !changed(name) {
			return
		}
		var v int
		if v, err = fs.GetInt(name); err == nil {
			*dst = &v
		}
	}

	integer("steps", &cfg.Build.Steps)
	if err == nil && changed("chroma-scale") {
		var v float64
		if v, err = fs.GetFloat64("chroma-scale"); err == nil {
			cfg.Build.ChromaScale = &v
		}
	}
	boolean("alpha", &cfg.Build.Alpha)
	str("alpha-format", &cfg.Build.AlphaFormat)
	boolean("semantic", &cfg.Build.Semantic)
	str("prefix", &cfg.Build.Prefix)
	if err == nil && changed("format") {
		var v []string
		if v, err = fs.GetStringSlice("format"); err == nil {
			cfg.Build.Formats = &v
		}
	}
	str("out-dir", &cfg.Build.OutDir)
	str("basename", &cfg.Build.Basename)
	str("fields", &cfg.Build.Fields)

	str("color", &cfg.UI.Color)
	str("usage", &cfg.UI.Usage)
	integer("port", &cfg.UI.Port)
	boolean("open", &cfg.UI.Open)
	str("db", &cfg.UI.DB)
	if err != nil {
		return cfg, err
	}

	if changed("palette") {
		raw, err := fs.GetStringArray("palette")
		if err != nil {
			return cfg, err
		}
		list, err := config.ParsePalettes(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Palettes = &list
	}
	return cfg, nil
}
