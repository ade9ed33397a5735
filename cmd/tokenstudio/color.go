package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phyten/tokenstudio/internal/colorutil"
	"github.com/phyten/tokenstudio/internal/opts"
	"github.com/phyten/tokenstudio/internal/textutil"
)

type convertRow struct {
	Input   string          `json:"input"`
	Hex     string          `json:"hex"`
	OKLCH   colorutil.OKLCH `json:"oklch"`
	Nearest string          `json:"nearest"`
	Text    string          `json:"text_color"`
}

func newConvertCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert <color>...",
		Short: "Show hex, OKLCH and nearest CSS name for colors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutput(output)
			if err != nil {
				return err
			}
			rows := make([]convertRow, 0, len(args))
			for _, arg := range args {
				rgb, err := colorutil.ParseColor(arg)
				if err != nil {
					return err
				}
				hex := rgb.Hex()
				nearest, _, err := colorutil.NearestName(hex)
				if err != nil {
					return err
				}
				rows = append(rows, convertRow{
					Input:   arg,
					Hex:     hex,
					OKLCH:   rgb.OKLCH(),
					Nearest: nearest,
					Text:    colorutil.AutoTextColor(rgb).Hex(),
				})
			}
			switch mode {
			case outputJSON:
				return writeJSON(a.stdout, rows)
			case outputPlain:
				lines := make([]string, 0, len(rows))
				for _, r := range rows {
					lines = append(lines, r.Hex+" "+r.OKLCH.String())
				}
				return writeLines(a.stdout, lines)
			}
			cols := []textutil.Column{{Header: "INPUT"}, {Header: "HEX"}}
			if a.term.Enabled {
				cols = append(cols, textutil.Column{Header: "SWATCH"})
			}
			cols = append(cols, textutil.Column{Header: "OKLCH"}, textutil.Column{Header: "NEAREST"})
			t := a.newTable(cols...)
			for _, r := range rows {
				cells := []string{r.Input, r.Hex}
				if a.term.Enabled {
					cells = append(cells, a.swatch(r.Hex))
				}
				cells = append(cells, formatOKLCH(r.OKLCH), r.Nearest)
				t.AddRow(cells...)
			}
			return t.Render(a.stdout)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "table|json|plain")
	return cmd
}

type rampResult struct {
	Base        string   `json:"base"`
	Steps       int      `json:"steps"`
	ChromaScale float64  `json:"chroma_scale"`
	Ramp        []string `json:"ramp"`
	Alpha       []string `json:"alpha,omitempty"`
}

func newRampCmd(a *app) *cobra.Command {
	var (
		preset string
		output string
	)
	cmd := &cobra.Command{
		Use:   "ramp [base]",
		Short: "Generate a lightness ramp from a base color or preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutput(output)
			if err != nil {
				return err
			}
			req := opts.Defaults()
			if len(args) == 1 {
				req.Base = args[0]
			}
			req.Preset = preset
			req.Steps = a.settings.Build.Steps
			req.Alpha = a.settings.Build.Alpha
			req.AlphaFormat = colorutil.AlphaFormat(a.settings.Build.AlphaFormat)
			// leave the scale unset so a preset can supply its own
			if f := cmd.Flags().Lookup("chroma-scale"); f != nil && f.Changed {
				req.ChromaScale = a.settings.Build.ChromaScale
			}
			if err := opts.NormalizeAndValidate(&req); err != nil {
				return err
			}
			samples, err := colorutil.RampSamples(req.RampOptions())
			if err != nil {
				return err
			}
			res := rampResult{Base: req.Base, Steps: req.Steps, ChromaScale: req.ChromaScale}
			for _, s := range samples {
				res.Ramp = append(res.Ramp, s.Hex())
			}
			if req.Alpha {
				if res.Alpha, err = colorutil.GenerateAlphaRamp(req.AlphaOptions()); err != nil {
					return err
				}
			}
			a.logger.Debug("ramp generated", "base", req.Base, "steps", req.Steps, "chroma_scale", req.ChromaScale)

			switch mode {
			case outputJSON:
				return writeJSON(a.stdout, res)
			case outputPlain:
				return writeLines(a.stdout, append(append([]string{}, res.Ramp...), res.Alpha...))
			}
			cols := []textutil.Column{{Header: "STEP", Align: textutil.AlignRight}}
			if a.term.Enabled {
				cols = append(cols, textutil.Column{Header: "SWATCH"})
			}
			cols = append(cols, textutil.Column{Header: "HEX"}, textutil.Column{Header: "OKLCH"})
			if req.Alpha {
				cols = append(cols, textutil.Column{Header: "ALPHA"})
			}
			t := a.newTable(cols...)
			for i, s := range samples {
				cells := []string{strconv.Itoa(i + 1)}
				if a.term.Enabled {
					cells = append(cells, a.swatch(res.Ramp[i]))
				}
				cells = append(cells, res.Ramp[i], formatOKLCH(s))
				if req.Alpha {
					cells = append(cells, res.Alpha[i])
				}
				t.AddRow(cells...)
			}
			return t.Render(a.stdout)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&preset, "preset", "", "start from a named preset")
	fs.Int("steps", colorutil.DefaultSteps, "ramp length (8, 10 or 12)")
	fs.Float64("chroma-scale", colorutil.DefaultChromaScale, "chroma multiplier in (0, 2]")
	fs.Bool("alpha", false, "also print the alpha ramp")
	fs.String("alpha-format", string(colorutil.AlphaHex8), "hex8|rgba")
	fs.StringVarP(&output, "output", "o", outputTable, "table|json|plain")
	return cmd
}

func newHarmonyCmd(a *app) *cobra.Command {
	var (
		kind   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "harmony <base>",
		Short: "Rotate hue around a base color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutput(output)
			if err != nil {
				return err
			}
			rgb, err := colorutil.ParseColor(args[0])
			if err != nil {
				return err
			}
			var kinds []colorutil.Harmony
			if kind == "all" {
				kinds = colorutil.Harmonies
			} else {
				h, err := colorutil.ParseHarmony(kind)
				if err != nil {
					return err
				}
				kinds = []colorutil.Harmony{h}
			}
			result := make(map[string][]string, len(kinds))
			t := a.newTable(textutil.Column{Header: "HARMONY"}, textutil.Column{Header: "COLORS"})
			var lines []string
			for _, h := range kinds {
				colors, err := colorutil.GenerateHarmony(rgb.Hex(), h)
				if err != nil {
					return err
				}
				result[string(h)] = colors
				t.AddRow(string(h), a.swatchStrip(colors))
				lines = append(lines, colors...)
			}
			switch mode {
			case outputJSON:
				return writeJSON(a.stdout, result)
			case outputPlain:
				return writeLines(a.stdout, lines)
			}
			return t.Render(a.stdout)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", string(colorutil.HarmonyComplementary), "harmony type or \"all\"")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "table|json|plain")
	return cmd
}

type contrastResult struct {
	colorutil.ContrastReport
	Suggestion string `json:"suggestion,omitempty"`
}

func newContrastCmd(a *app) *cobra.Command {
	var (
		output   string
		minRatio float64
	)
	cmd := &cobra.Command{
		Use:   "contrast <text> <background>",
		Short: "Check WCAG 2.x and APCA contrast of text on a background",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutput(output)
			if err != nil {
				return err
			}
			usage, err := colorutil.ParseUsage(a.settings.UI.Usage)
			if err != nil {
				return err
			}
			report, err := colorutil.CheckContrast(args[0], args[1], usage)
			if err != nil {
				return err
			}
			res := contrastResult{ContrastReport: report}
			if report.WCAG.Ratio < minRatio {
				if res.Suggestion, err = colorutil.EnsureContrast(report.Foreground, report.Background, minRatio); err != nil {
					return err
				}
			}
			switch mode {
			case outputJSON:
				return writeJSON(a.stdout, res)
			case outputPlain:
				return writeLines(a.stdout, []string{
					fmt.Sprintf("%.2f %s", report.WCAG.Ratio, report.WCAG.Rating),
					fmt.Sprintf("%.1f %s", report.APCA.Lc, report.APCA.Rating),
				})
			}
			t := a.newTable(
				textutil.Column{Header: "METHOD"},
				textutil.Column{Header: "SCORE", Align: textutil.AlignRight},
				textutil.Column{Header: "RATING"},
			)
			t.AddRow("WCAG 2.x", fmt.Sprintf("%.2f:1", report.WCAG.Ratio), a.rating(report.WCAG.Rating))
			t.AddRow("APCA "+string(report.Usage), fmt.Sprintf("Lc %.1f", report.APCA.Lc), a.rating(report.APCA.Rating))
			if err := t.Render(a.stdout); err != nil {
				return err
			}
			if res.Suggestion != "" {
				line := fmt.Sprintf("suggested text color for %.1f:1: %s", minRatio, res.Suggestion)
				if a.term.Enabled {
					line += " " + a.swatch(res.Suggestion)
				}
				_, err = fmt.Fprintf(a.stdout, "\n%s\n", line)
			}
			return err
		},
	}
	cmd.Flags().String("usage", string(colorutil.UsageBody), "body|large|headline (APCA thresholds)")
	cmd.Flags().Float64Var(&minRatio, "min", 4.5, "suggest a text color when WCAG is below this ratio")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "table|json|plain")
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in palette presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseOutput(output)
			if err != nil {
				return err
			}
			type presetRow struct {
				colorutil.Preset
				Ramp []string `json:"ramp"`
			}
			var rows []presetRow
			for _, name := range colorutil.PresetNames() {
				p, err := colorutil.LookupPreset(name)
				if err != nil {
					return err
				}
				ramp, err := colorutil.GeneratePresetRamp(name)
				if err != nil {
					return err
				}
				rows = append(rows, presetRow{Preset: p, Ramp: ramp})
			}
			switch mode {
			case outputJSON:
				return writeJSON(a.stdout, rows)
			case outputPlain:
				lines := make([]string, 0, len(rows))
				for _, r := range rows {
					lines = append(lines, r.Name)
				}
				return writeLines(a.stdout, lines)
			}
			cols := []textutil.Column{{Header: "NAME"}, {Header: "BASE"}, {Header: "SCALE", Align: textutil.AlignRight}}
			if a.term.Enabled {
				cols = append(cols, textutil.Column{Header: "RAMP"})
			}
			t := a.newTable(cols...)
			for _, r := range rows {
				cells := []string{r.Name, r.BaseColor, strconv.FormatFloat(r.ChromaScale, 'g', -1, 64)}
				if a.term.Enabled {
					cells = append(cells, a.swatchStrip(r.Ramp))
				}
				t.AddRow(cells...)
			}
			return t.Render(a.stdout)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "table|json|plain")
	return cmd
}
