package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phyten/tokenstudio/internal/colorutil"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func newTestApp(t *testing.T, env ...string) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	a := &app{
		stdout: &stdout,
		stderr: &stderr,
		dir:    dir,
		environ: append([]string{
			"HOME=" + filepath.Join(dir, "home"),
			"XDG_CONFIG_HOME=" + filepath.Join(dir, "xdg"),
			"XDG_DATA_HOME=" + filepath.Join(dir, "data"),
		}, env...),
	}
	return a, &stdout, &stderr
}

func runCLI(t *testing.T, a *app, args ...string) cliResult {
	t.Helper()
	stdout := a.stdout.(*bytes.Buffer)
	stderr := a.stderr.(*bytes.Buffer)
	stdout.Reset()
	stderr.Reset()
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func mustRun(t *testing.T, a *app, args ...string) string {
	t.Helper()
	res := runCLI(t, a, args...)
	if res.err != nil {
		t.Fatalf("tokenstudio %s: %v\nstderr: %s", strings.Join(args, " "), res.err, res.stderr)
	}
	return res.stdout
}

func TestConvertJSON(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "convert", "#fa0", "#2563EB", "-o", "json")

	var rows []convertRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Hex != "#ffaa00" || rows[1].Hex != "#2563eb" {
		t.Fatalf("unexpected hex values: %s %s", rows[0].Hex, rows[1].Hex)
	}
	want, _ := colorutil.HexToOKLCH("#2563eb")
	if rows[1].OKLCH != want {
		t.Fatalf("oklch=%v want %v", rows[1].OKLCH, want)
	}
	if rows[1].Text != "#ffffff" {
		t.Fatalf("text color for blue=%s", rows[1].Text)
	}
}

func TestConvertPlainAndTableWithoutColor(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "convert", "#000000", "-o", "plain")
	if got := strings.TrimSpace(out); !strings.HasPrefix(got, "#000000 oklch(") {
		t.Fatalf("plain output=%q", got)
	}

	out = mustRun(t, a, "convert", "#000000")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("table should not contain escapes without a terminal: %q", out)
	}
	if !strings.Contains(out, "NEAREST") || !strings.Contains(out, "black") {
		t.Fatalf("table missing columns: %q", out)
	}
}

func TestConvertRejectsInvalidColor(t *testing.T) {
	a, _, _ := newTestApp(t)
	if res := runCLI(t, a, "convert", "#12"); res.err == nil {
		t.Fatal("expected error for malformed hex")
	}
}

func TestRampPresetUsesPresetScale(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "ramp", "--preset", "blue", "-o", "json")

	var res rampResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want, err := colorutil.GeneratePresetRamp("blue")
	if err != nil {
		t.Fatalf("GeneratePresetRamp: %v", err)
	}
	if diff := cmp.Diff(want, res.Ramp); diff != "" {
		t.Fatalf("ramp mismatch (-want +got):\n%s", diff)
	}
	p, _ := colorutil.LookupPreset("blue")
	if res.ChromaScale != p.ChromaScale {
		t.Fatalf("chroma_scale=%v want preset %v", res.ChromaScale, p.ChromaScale)
	}
}

func TestRampExplicitOptions(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "ramp", "#2563EB", "--steps", "10", "--chroma-scale", "0.5", "--alpha", "--alpha-format", "rgba", "-o", "json")

	var res rampResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want, err := colorutil.GenerateRamp(colorutil.RampOptions{BaseColor: "#2563eb", Steps: 10, ChromaScale: 0.5})
	if err != nil {
		t.Fatalf("GenerateRamp: %v", err)
	}
	if diff := cmp.Diff(want, res.Ramp); diff != "" {
		t.Fatalf("ramp mismatch (-want +got):\n%s", diff)
	}
	if res.Base != "#2563eb" || res.Steps != 10 {
		t.Fatalf("unexpected header: %+v", res)
	}
	if len(res.Alpha) != 10 || !strings.HasPrefix(res.Alpha[0], "rgba(") {
		t.Fatalf("unexpected alpha ramp: %v", res.Alpha)
	}
}

func TestRampRejectsBadSteps(t *testing.T) {
	a, _, _ := newTestApp(t)
	if res := runCLI(t, a, "ramp", "#2563eb", "--steps", "9"); res.err == nil {
		t.Fatal("expected error for 9 steps")
	}
	if res := runCLI(t, a, "ramp"); res.err == nil {
		t.Fatal("expected error without base or preset")
	}
	for _, scale := range []string{"NaN", "+Inf"} {
		if res := runCLI(t, a, "ramp", "#2563eb", "--chroma-scale", scale); res.err == nil {
			t.Fatalf("expected error for --chroma-scale %s", scale)
		}
	}
}

func TestHarmonyAll(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "harmony", "#2563eb", "-t", "all", "-o", "json")

	var got map[string][]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != len(colorutil.Harmonies) {
		t.Fatalf("expected %d harmonies, got %d", len(colorutil.Harmonies), len(got))
	}
	for _, h := range colorutil.Harmonies {
		want, err := colorutil.GenerateHarmony("#2563eb", h)
		if err != nil {
			t.Fatalf("GenerateHarmony(%s): %v", h, err)
		}
		if diff := cmp.Diff(want, got[string(h)]); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", h, diff)
		}
	}
	if res := runCLI(t, a, "harmony", "#2563eb", "-t", "pentadic"); res.err == nil {
		t.Fatal("expected error for unknown harmony")
	}
}

func TestContrastSuggestsPassingColor(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "contrast", "#777777", "#ffffff", "-o", "json")

	var res contrastResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if res.WCAG.Ratio >= 4.5 {
		t.Fatalf("expected #777 on white below 4.5, got %.2f", res.WCAG.Ratio)
	}
	if res.Suggestion == "" {
		t.Fatal("expected a suggestion")
	}
	ratio, err := colorutil.WCAGContrastHex(res.Suggestion, "#ffffff")
	if err != nil {
		t.Fatalf("WCAGContrastHex: %v", err)
	}
	if ratio < 4.5 {
		t.Fatalf("suggestion %s only reaches %.2f", res.Suggestion, ratio)
	}
}

func TestContrastUsageFromEnvironment(t *testing.T) {
	a, _, _ := newTestApp(t, "TOKENSTUDIO_USAGE=large")
	out := mustRun(t, a, "contrast", "#000000", "#ffffff", "-o", "json")
	var res contrastResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Usage != colorutil.UsageLarge {
		t.Fatalf("usage=%s want large", res.Usage)
	}
	if res.WCAG.Rating != "AAA" || res.Suggestion != "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	// flag beats environment
	out = mustRun(t, a, "contrast", "#000000", "#ffffff", "--usage", "body", "-o", "json")
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Usage != colorutil.UsageBody {
		t.Fatalf("usage=%s want body", res.Usage)
	}
}

func TestPresetsPlain(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "presets", "-o", "plain")
	got := strings.Split(strings.TrimSpace(out), "\n")
	if diff := cmp.Diff(colorutil.PresetNames(), got); diff != "" {
		t.Fatalf("preset names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWritesFilesOnce(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := filepath.Join(a.dir, "dist")
	args := []string{"build", "-p", "blue", "-p", "brand=#7c3aed", "-f", "css,json", "--out-dir", out}
	mustRun(t, a, args...)

	css, err := os.ReadFile(filepath.Join(out, "tokens.css"))
	if err != nil {
		t.Fatalf("read css: %v", err)
	}
	for _, want := range []string{"--blue-1:", "--brand-12:", "--brand-solid:", "--on-brand:"} {
		if !strings.Contains(string(css), want) {
			t.Fatalf("css missing %s:\n%s", want, css)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "tokens.json")); err != nil {
		t.Fatalf("json not written: %v", err)
	}

	n, err := a.build(buildOptions{})
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no changed files on rebuild, got %d", n)
	}
}

func TestBuildStdout(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := mustRun(t, a, "build", "-p", "red", "--steps", "8", "--prefix", "ds", "--semantic=false", "--stdout")
	if !strings.Contains(out, "--ds-red-8:") || strings.Contains(out, "--ds-red-9:") {
		t.Fatalf("unexpected css:\n%s", out)
	}
	if strings.Contains(out, "solid") {
		t.Fatalf("semantic tokens should be off:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(a.dir, "tokens")); !os.IsNotExist(err) {
		t.Fatalf("--stdout should not create the output dir: %v", err)
	}
}

func TestBuildFlagsOverrideEnvironment(t *testing.T) {
	a, _, _ := newTestApp(t, "TOKENSTUDIO_STEPS=8", "TOKENSTUDIO_PALETTES=green")
	mustRun(t, a, "build", "--stdout")
	if a.settings.Build.Steps != 8 {
		t.Fatalf("steps from env=%d want 8", a.settings.Build.Steps)
	}
	if len(a.settings.Palettes) != 1 || a.settings.Palettes[0].Name != "green" {
		t.Fatalf("palettes from env=%+v", a.settings.Palettes)
	}

	mustRun(t, a, "build", "--stdout", "--steps", "10")
	if a.settings.Build.Steps != 10 {
		t.Fatalf("steps with flag=%d want 10", a.settings.Build.Steps)
	}

	a2, _, _ := newTestApp(t, "TOKENSTUDIO_STEPS=9")
	if res := runCLI(t, a2, "build", "--stdout"); res.err == nil {
		t.Fatal("expected error for invalid TOKENSTUDIO_STEPS")
	}
}

func TestBuildReadsConfigFile(t *testing.T) {
	a, _, _ := newTestApp(t)
	cfg := `build:
  steps: 10
  formats: [ts]
  basename: colors
palettes:
  - name: brand
    base: "#16a34a"
`
	if err := os.WriteFile(filepath.Join(a.dir, ".tokenstudio.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	mustRun(t, a, "build")
	if a.configPath == "" {
		t.Fatal("config file was not found")
	}
	data, err := os.ReadFile(filepath.Join(a.dir, "tokens", "colors.ts"))
	if err != nil {
		t.Fatalf("read ts: %v", err)
	}
	if !strings.Contains(string(data), "brand-10") || strings.Contains(string(data), "brand-11") {
		t.Fatalf("unexpected ts output:\n%s", data)
	}
}

func TestBuildRejectsUnknownFormat(t *testing.T) {
	a, _, _ := newTestApp(t)
	if res := runCLI(t, a, "build", "-f", "scss", "--stdout"); res.err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWatchNeedsConfig(t *testing.T) {
	a, _, _ := newTestApp(t)
	res := runCLI(t, a, "watch")
	if res.err == nil || !strings.Contains(res.err.Error(), "config file") {
		t.Fatalf("expected config file error, got %v", res.err)
	}
}

func TestDebugLogging(t *testing.T) {
	a, _, _ := newTestApp(t)
	res := runCLI(t, a, "--debug", "ramp", "#2563eb", "-o", "plain")
	if res.err != nil {
		t.Fatalf("ramp: %v", res.err)
	}
	if !strings.Contains(res.stderr, "ramp generated") {
		t.Fatalf("debug log missing: %q", res.stderr)
	}
	res = runCLI(t, a, "ramp", "#2563eb", "-o", "plain")
	if strings.Contains(res.stderr, "ramp generated") {
		t.Fatalf("debug log without --debug: %q", res.stderr)
	}
}
