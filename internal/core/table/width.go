// Package table renders fixed-width text tables whose cells may contain
// double-width CJK glyphs.
package table

import "strings"

// wideRanges are the code point ranges counted as two terminal columns.
var wideRanges = [...]struct{ lo, hi rune }{
	{0x4E00, 0x9FFF}, // CJK unified ideographs
	{0x3400, 0x4DBF}, // CJK unified ideographs extension A
	{0xF900, 0xFAFF}, // CJK compatibility ideographs
	{0x3000, 0x303F}, // CJK symbols and punctuation
}

// RuneWidth returns the number of columns r occupies: 2 for wide glyphs,
// 1 for everything else.
func RuneWidth(r rune) int {
	for _, rng := range wideRanges {
		if r >= rng.lo && r <= rng.hi {
			return 2
		}
	}
	return 1
}

// Width returns the display width of s, summed per rune.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// Align selects where padding goes.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Pad pads s with spaces to width columns. Text already at or over width is
// returned unchanged; Pad never truncates. Centered text gets the smaller
// half of the padding on the left.
func Pad(s string, width int, align Align) string {
	padding := width - Width(s)
	if padding <= 0 {
		return s
	}

	switch align {
	case AlignRight:
		return strings.Repeat(" ", padding) + s
	case AlignCenter:
		left := padding / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
	default:
		return s + strings.Repeat(" ", padding)
	}
}

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Truncate shortens s to at most budget columns. Text within budget is
// returned unchanged. Otherwise whole runes are kept while the kept width
// stays within budget minus the ellipsis, and the ellipsis is appended.
func Truncate(s string, budget int) string {
	if Width(s) <= budget {
		return s
	}

	limit := budget - len(Ellipsis)
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := RuneWidth(r)
		if w+rw > limit {
			break
		}
		b.WriteRune(r)
		w += rw
	}

	b.WriteString(Ellipsis)
	return b.String()
}
