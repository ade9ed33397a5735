package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes SGR and OSC sequences, e.g. the swatch colors.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// eachGrapheme calls fn with every grapheme cluster of the visible text and
// its display width. Iteration stops when fn returns false.
func eachGrapheme(s string, fn func(seg string, width int) bool) {
	g := uniseg.NewGraphemes(StripANSI(s))
	for g.Next() {
		seg := g.Str()
		if !fn(seg, runewidth.StringWidth(seg)) {
			return
		}
	}
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	width := 0
	eachGrapheme(s, func(_ string, w int) bool {
		width += w
		return true
	})
	return width
}

// TruncateByWidth truncates s to fit width w without breaking graphemes,
// appending ellipsis when it fits. Escape sequences are dropped from
// truncated results.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	ellW := runewidth.StringWidth(ellipsis)
	if ellW > w {
		ellipsis, ellW = "", 0
	}
	budget := w - ellW
	var b strings.Builder
	used := 0
	eachGrapheme(s, func(seg string, segW int) bool {
		if used+segW > budget {
			return false
		}
		b.WriteString(seg)
		used += segW
		return true
	})
	return b.String() + ellipsis
}

// PadRight pads s on the right with spaces so that the visible width equals w.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft pads s on the left with spaces so that the visible width equals w.
func PadLeft(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
