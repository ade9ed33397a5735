package tokens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phyten/tokenstudio/internal/colorutil"
)

// Kind はトークンの種別（ソリッド／アルファ／セマンティック）を表す。
type Kind string

const (
	KindSolid    Kind = "solid"
	KindAlpha    Kind = "alpha"
	KindSemantic Kind = "semantic"
)

// semanticMinRatio は on-<name> トークンが満たすべき WCAG コントラスト比。
const semanticMinRatio = 4.5

var (
	ErrEmptyName     = errors.New("palette name is empty")
	ErrDuplicateName = errors.New("duplicate palette name")
	ErrNoPalettes    = errors.New("no palettes configured")
)

// PaletteSpec は 1 つのパレットの入力を表す。BaseColor が指定されていれば
// Preset より優先し、Preset は ChromaScale が未指定の場合の既定値を与える。
type PaletteSpec struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Preset      string  `json:"preset,omitempty" yaml:"preset,omitempty" toml:"preset,omitempty"`
	BaseColor   string  `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	ChromaScale float64 `json:"chroma_scale,omitempty" yaml:"chroma_scale,omitempty" toml:"chroma_scale,omitempty"`
}

// Spec はトークンセット全体の生成条件
type Spec struct {
	Prefix      string                `json:"prefix,omitempty"`
	Steps       int                   `json:"steps"`
	ChromaScale float64               `json:"chroma_scale,omitempty"`
	Alpha       bool                  `json:"alpha"`
	AlphaFormat colorutil.AlphaFormat `json:"alpha_format,omitempty"`
	Semantic    bool                  `json:"semantic"`
	Palettes    []PaletteSpec         `json:"palettes"`
}

// Token は生成された 1 件のカラートークン
type Token struct {
	Name    string  `json:"name"`
	Palette string  `json:"palette"`
	Kind    Kind    `json:"kind"`
	Step    int     `json:"step"`
	Value   string  `json:"value"`
	L       float64 `json:"l"`
	C       float64 `json:"c"`
	H       float64 `json:"h"`
	Nearest string  `json:"nearest,omitempty"`
}

// Set は Build の出力
type Set struct {
	Prefix   string   `json:"prefix,omitempty"`
	Steps    int      `json:"steps"`
	Palettes []string `json:"palettes"`
	Tokens   []Token  `json:"tokens"`
}

// resolved は既定値・プリセットを適用済みのパレット入力
type resolved struct {
	name  string
	base  string
	scale float64
}

func resolvePalette(p PaletteSpec, defaultScale float64) (resolved, error) {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		return resolved{}, ErrEmptyName
	}
	if !validName(name) {
		return resolved{}, fmt.Errorf("palette name %q: only a-z, 0-9 and '-' are allowed", p.Name)
	}
	r := resolved{name: name, base: strings.TrimSpace(p.BaseColor), scale: p.ChromaScale}
	presetName := p.Preset
	if presetName == "" && r.base == "" {
		// a bare palette name doubles as the preset name
		presetName = name
	}
	if presetName != "" {
		preset, err := colorutil.LookupPreset(presetName)
		if err != nil {
			return resolved{}, fmt.Errorf("palette %s: %w", name, err)
		}
		if r.base == "" {
			r.base = preset.BaseColor
		}
		if r.scale == 0 {
			r.scale = preset.ChromaScale
		}
	}
	if r.scale == 0 {
		r.scale = defaultScale
	}
	if r.scale == 0 {
		r.scale = colorutil.DefaultChromaScale
	}
	return r, nil
}

func validName(name string) bool {
	if name[0] == '-' || name[len(name)-1] == '-' {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// Build は Spec からトークンセットを生成します。
//
// パレットごとにソリッドランプ（<name>-1 … <name>-N）を出力し、Alpha が
// 有効ならアルファランプ（<name>-a1 …）、Semantic が有効なら <name>-solid と
// on-<name> を追加します。パレットの並びは入力順を保ちます。
func Build(spec Spec) (*Set, error) {
	if len(spec.Palettes) == 0 {
		return nil, ErrNoPalettes
	}
	steps := spec.Steps
	if steps == 0 {
		steps = colorutil.DefaultSteps
	}
	if err := colorutil.ValidateSteps(steps); err != nil {
		return nil, err
	}
	set := &Set{Prefix: strings.Trim(strings.TrimSpace(spec.Prefix), "-"), Steps: steps}
	seen := make(map[string]struct{}, len(spec.Palettes))
	for _, p := range spec.Palettes {
		r, err := resolvePalette(p, spec.ChromaScale)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[r.name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, r.name)
		}
		seen[r.name] = struct{}{}
		tokens, err := buildPalette(r, steps, spec)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", r.name, err)
		}
		set.Palettes = append(set.Palettes, r.name)
		set.Tokens = append(set.Tokens, tokens...)
	}
	return set, nil
}

func buildPalette(r resolved, steps int, spec Spec) ([]Token, error) {
	samples, err := colorutil.RampSamples(colorutil.RampOptions{
		BaseColor:   r.base,
		Steps:       steps,
		ChromaScale: r.scale,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Token, 0, steps*2+2)
	for i, s := range samples {
		out = append(out, newToken(fmt.Sprintf("%s-%d", r.name, i+1), r.name, KindSolid, i+1, s))
	}

	if spec.Alpha {
		values, err := colorutil.GenerateAlphaRamp(colorutil.AlphaRampOptions{
			BaseColor: r.base,
			Steps:     steps,
			Format:    spec.AlphaFormat,
		})
		if err != nil {
			return nil, err
		}
		base, err := colorutil.HexToOKLCH(r.base)
		if err != nil {
			return nil, err
		}
		base = colorutil.ClampToGamut(base)
		for i, v := range values {
			t := newToken(fmt.Sprintf("%s-a%d", r.name, i+1), r.name, KindAlpha, i+1, base)
			t.Value = v
			out = append(out, t)
		}
	}

	if spec.Semantic {
		mid := colorutil.MediumStep(steps)
		solid := samples[mid]
		solidHex := solid.Hex()
		out = append(out, newToken(r.name+"-solid", r.name, KindSemantic, mid+1, solid))

		text, err := colorutil.BestTextColor(solidHex)
		if err != nil {
			return nil, err
		}
		text, err = colorutil.EnsureContrast(text, solidHex, semanticMinRatio)
		if err != nil {
			return nil, err
		}
		lch, err := colorutil.HexToOKLCH(text)
		if err != nil {
			return nil, err
		}
		on := newToken("on-"+r.name, r.name, KindSemantic, 0, lch)
		on.Value = text
		out = append(out, on)
	}
	return out, nil
}

func newToken(name, palette string, kind Kind, step int, c colorutil.OKLCH) Token {
	hex := c.Hex()
	t := Token{
		Name:    name,
		Palette: palette,
		Kind:    kind,
		Step:    step,
		Value:   hex,
		L:       c.L,
		C:       c.C,
		H:       c.H,
	}
	if nearest, _, err := colorutil.NearestName(hex); err == nil {
		t.Nearest = nearest
	}
	return t
}

// CSSVar は CSS カスタムプロパティ名（--<prefix>-<name>）を返す。
func (s *Set) CSSVar(t Token) string {
	if s.Prefix == "" {
		return "--" + t.Name
	}
	return "--" + s.Prefix + "-" + t.Name
}

// Lookup はトークン名で検索する。
func (s *Set) Lookup(name string) (Token, bool) {
	for _, t := range s.Tokens {
		if t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}

// Palette は指定パレットのトークンを出力順で返す。
func (s *Set) Palette(name string) []Token {
	var out []Token
	for _, t := range s.Tokens {
		if t.Palette == name {
			out = append(out, t)
		}
	}
	return out
}

// Filter は kind に一致するトークンだけを返す。
func (s *Set) Filter(kind Kind) []Token {
	var out []Token
	for _, t := range s.Tokens {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}
