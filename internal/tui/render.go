package tui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;?]*[A-Za-z]")

// StripAnsi removes ANSI escape sequences from s.
func StripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// VisualWidth returns the number of runes s occupies on screen, ignoring
// escape sequences.
func VisualWidth(s string) int {
	return utf8.RuneCountInString(StripAnsi(s))
}

// PadOrTruncate pads or truncates a string to exactly width characters.
// Styled strings are padded without touching their escape sequences; a
// styled string that is too long loses its styling.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	visual := VisualWidth(s)
	if visual == width {
		return s
	}
	if visual < width {
		return s + strings.Repeat(" ", width-visual)
	}
	return Truncate(StripAnsi(s), width)
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// CenterText centers text within the given width.
func CenterText(s string, width int) string {
	visual := VisualWidth(s)
	if visual >= width {
		return PadOrTruncate(s, width)
	}

	leftPad := (width - visual) / 2
	rightPad := width - visual - leftPad

	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// ProgressBar renders a simple progress bar.
// Returns a string like "[████████░░░░░░░░]  50%"
func ProgressBar(current, total, width int) string {
	if total <= 0 || width < 10 {
		return ""
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}

	barWidth := width - 7 // "[] XXX%"
	filled := int(pct * float64(barWidth))
	empty := barWidth - filled

	bar := "[" +
		strings.Repeat("█", filled) +
		strings.Repeat("░", empty) +
		"]"

	return bar + " " + fmt.Sprintf("%3d", int(pct*100)) + "%"
}
