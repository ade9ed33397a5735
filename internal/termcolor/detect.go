package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always", "on", "force":
		return ModeAlways, nil
	case "never", "off", "none":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

// Profile is the richest color encoding the terminal understands.
type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

func (p Profile) String() string {
	switch p {
	case ProfileTrueColor:
		return "truecolor"
	case ProfileANSI256:
		return "256"
	default:
		return "basic"
	}
}

func ParseProfile(v string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "truecolor", "24bit", "16m":
		return ProfileTrueColor, nil
	case "256", "ansi256":
		return ProfileANSI256, nil
	case "basic", "8", "ansi":
		return ProfileBasic8, nil
	default:
		return ProfileBasic8, fmt.Errorf("unknown color profile: %s", v)
	}
}

// Terminal bundles everything the swatch renderer needs to know about stdout.
type Terminal struct {
	Enabled bool
	Profile Profile
	Scheme  Scheme
}

// Detect resolves mode against the environment and stdout. An explicit
// ModeAlways or ModeNever wins over environment variables.
func Detect(mode ColorMode, stdout *os.File, env map[string]string) Terminal {
	if mode == ModeAuto {
		mode = DetectMode(stdout, env)
	}
	return Terminal{
		Enabled: mode == ModeAlways,
		Profile: DetectProfile(env),
		Scheme:  DetectScheme(env),
	}
}

func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "="); idx >= 0 {
			env[entry[:idx]] = entry[idx+1:]
		} else {
			env[entry] = ""
		}
	}
	return env
}

// DetectMode determines the effective color mode for auto-detection.
//
// Priority order (first match wins):
//  1. TERM=dumb suppresses colors entirely.
//  2. NO_COLOR disables colors.
//  3. CLICOLOR=0 disables colors.
//  4. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value force-enable colors.
//  5. Otherwise colors are emitted only when stdout is a TTY.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	switch {
	case strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb"),
		strings.TrimSpace(env["NO_COLOR"]) != "",
		strings.TrimSpace(env["CLICOLOR"]) == "0":
		return ModeNever
	case forceColor(env["CLICOLOR_FORCE"]), forceColor(env["FORCE_COLOR"]):
		return ModeAlways
	case isTerminal(stdout):
		return ModeAlways
	default:
		return ModeNever
	}
}

// Enabled reports whether colors should be emitted for the provided mode.
// ModeAlways and ModeNever return constant results, while ModeAuto delegates
// to the TTY check on stdout (stderr is not considered).
func Enabled(mode ColorMode, stdout *os.File) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return isTerminal(stdout)
	}
}

// DetectProfile inspects COLORTERM, TERM and a few terminal-specific
// variables. Anything unrecognised falls back to the basic palette.
func DetectProfile(env map[string]string) Profile {
	colorterm := strings.ToLower(strings.TrimSpace(env["COLORTERM"]))
	termName := strings.ToLower(strings.TrimSpace(env["TERM"]))
	switch {
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"), strings.Contains(colorterm, "24-bit"):
		return ProfileTrueColor
	case strings.HasSuffix(termName, "-direct"), env["WT_SESSION"] != "":
		return ProfileTrueColor
	case strings.EqualFold(env["TERM_PROGRAM"], "iTerm.app"), strings.EqualFold(env["TERM_PROGRAM"], "WezTerm"):
		return ProfileTrueColor
	case strings.Contains(termName, "256color"), strings.EqualFold(env["TERM_PROGRAM"], "Apple_Terminal"):
		return ProfileANSI256
	default:
		return ProfileBasic8
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
