package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/output"
	"github.com/phyten/tokenstudio/internal/tokens"
	"github.com/phyten/tokenstudio/internal/watch"
)

type buildOptions struct {
	stdout      bool
	withOKLCH   bool
	withNearest bool
}

func addBuildFlags(cmd *cobra.Command, bo *buildOptions) {
	fs := cmd.Flags()
	fs.StringArrayP("palette", "p", nil, "palette as name, name=#hex or name=preset (repeatable, comma separated)")
	fs.Int("steps", colorutil.DefaultSteps, "ramp length (8, 10 or 12)")
	fs.Float64("chroma-scale", colorutil.DefaultChromaScale, "default chroma multiplier in (0, 2]")
	fs.Bool("alpha", false, "emit alpha ramps")
	fs.String("alpha-format", string(colorutil.AlphaHex8), "hex8|rgba")
	fs.Bool("semantic", true, "emit <name>-solid and on-<name> tokens")
	fs.String("prefix", "", "CSS variable prefix")
	fs.StringSliceP("format", "f", []string{"css"}, "output formats: "+fmt.Sprint(output.FormatNames()))
	fs.String("out-dir", "tokens", "output directory")
	fs.String("basename", "tokens", "output file name without extension")
	fs.String("fields", "", "columns for csv/md output (e.g. name,var,value,oklch)")
	fs.BoolVar(&bo.withOKLCH, "with-oklch", false, "add the OKLCH column to csv/md output")
	fs.BoolVar(&bo.withNearest, "with-nearest", false, "add the nearest CSS name to csv/md output")
	fs.BoolVar(&bo.stdout, "stdout", false, "print to stdout instead of writing files")
}

func newBuildCmd(a *app) *cobra.Command {
	var bo buildOptions
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write design tokens for the configured palettes",
		Long: `Build generates solid, alpha and semantic tokens for every palette and
writes them in the selected formats. Unchanged files are left untouched.

Examples:
  tokenstudio build
  tokenstudio build -p gray -p brand=#2563eb --alpha --format css,ts
  tokenstudio build --format md --with-oklch --stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.build(bo)
			return err
		},
	}
	addBuildFlags(cmd, &bo)
	return cmd
}

// build renders the current settings. It returns the number of files that
// changed on disk.
func (a *app) build(bo buildOptions) (int, error) {
	set, err := tokens.Build(a.settings.Spec())
	if err != nil {
		return 0, err
	}
	formats, err := output.ParseFormats(a.settings.Build.Formats)
	if err != nil {
		return 0, err
	}
	sel, err := output.ResolveFields(a.settings.Build.Fields, bo.withOKLCH, bo.withNearest)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, f := range formats {
		data, err := f.Render(set, sel)
		if err != nil {
			return changed, fmt.Errorf("render %s: %w", f.Name, err)
		}
		if bo.stdout {
			if a.term.Enabled {
				err = output.Highlight(a.stdout, data, f, a.term.Profile)
			} else {
				_, err = a.stdout.Write(data)
			}
			if err != nil {
				return changed, err
			}
			continue
		}
		path := filepath.Join(a.outDir(), f.Filename(a.settings.Build.Basename))
		wrote, err := output.WriteFileIfChanged(path, data)
		if err != nil {
			return changed, err
		}
		if wrote {
			changed++
			a.logger.Info("wrote", "path", path, "tokens", len(set.Tokens))
		} else {
			a.logger.Debug("unchanged", "path", path)
		}
	}
	return changed, nil
}

// outDir resolves a relative output directory against the working directory.
func (a *app) outDir() string {
	dir := a.settings.Build.OutDir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(a.dir, dir)
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		bo       buildOptions
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild tokens whenever the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configPath == "" {
				return errors.New("watch needs a config file (.tokenstudio.yaml or --config)")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, bo, debounce)
		},
	}
	addBuildFlags(cmd, &bo)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "delay before rebuilding after a change")
	return cmd
}

// watch builds once and then after every change to the config file. Invalid
// edits are logged and the previous output is kept.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, bo buildOptions, debounce time.Duration) error {
	if _, err := a.build(bo); err != nil {
		return err
	}
	a.logger.Info("watching", "config", a.configPath)
	return watch.File(ctx, a.configPath, debounce, func() {
		if err := a.loadSettings(cmd); err != nil {
			a.logger.Error("reload failed", "err", err)
			return
		}
		n, err := a.build(bo)
		if err != nil {
			a.logger.Error("rebuild failed", "err", err)
			return
		}
		a.logger.Info("rebuilt", "changed", n)
	})
}
