package textutil

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestVisibleWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name string
		s    string
		want int
	}{
		{name: "Empty", s: "", want: 0},
		{name: "ASCII", s: "ABC", want: 3},
		{name: "Hiragana", s: "あいう", want: 6},
		{name: "CombiningMark", s: "é", want: 1},
		{name: "EmojiSequence", s: "\U0001F468\U0001F3FD‍\U0001F4BB", want: 2},
		{name: "ANSIColored", s: "\x1b[31m赤\x1b[0m", want: 2},
		{name: "Swatch", s: "\x1b[38;2;255;255;255;48;2;37;99;235m  \x1b[0m", want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleWidth(tc.s); got != tc.want {
				t.Fatalf("VisibleWidth(%q) = %d, want %d", tc.s, got, tc.want)
			}
		})
	}
}

func TestTruncateByWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name     string
		s        string
		width    int
		want     string
		ellipsis string
	}{
		{name: "Fits", s: "royalblue", width: 9, want: "royalblue", ellipsis: "…"},
		{name: "ASCII", s: "cornflowerblue", width: 6, want: "cornf…", ellipsis: "…"},
		{name: "NoEllipsis", s: "cornflowerblue", width: 4, want: "corn", ellipsis: ""},
		{name: "Japanese", s: "こんにちは世界", width: 6, want: "こん…", ellipsis: "…"},
		{name: "EmojiSafe", s: "\U0001F469‍❤️‍\U0001F48B‍\U0001F469テスト", width: 4, want: "\U0001F469‍❤️‍\U0001F48B‍\U0001F469…", ellipsis: "…"},
		{name: "ZeroWidth", s: "abc", width: 0, want: "", ellipsis: "…"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateByWidth(tc.s, tc.width, tc.ellipsis); got != tc.want {
				t.Fatalf("TruncateByWidth(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
			}
			if width := VisibleWidth(tc.want); width > tc.width {
				t.Fatalf("result width %d exceeds limit %d", width, tc.width)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "\x1b[31mRed\x1b[0m", want: "Red"},
		{in: "\x1b]8;;https://example.com\x07link\x1b]8;;\x07", want: "link"},
	}
	for _, tc := range cases {
		if got := StripANSI(tc.in); got != tc.want {
			t.Fatalf("StripANSI(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestPadHelpers(t *testing.T) {
	setEastAsianWidth(t, false)
	if got := VisibleWidth(PadRight("あ", 6)); got != 6 {
		t.Fatalf("PadRight did not reach target width: %d", got)
	}
	if got := VisibleWidth(PadLeft("テスト", 8)); got != 8 {
		t.Fatalf("PadLeft did not reach target width: %d", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Fatalf("PadRight should not shorten input: %q", got)
	}
}

func setEastAsianWidth(t *testing.T, eastAsian bool) {
	t.Helper()
	runewidth.EastAsianWidth = eastAsian
	runewidth.DefaultCondition = runewidth.NewCondition()
}
