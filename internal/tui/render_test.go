package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	green = "\033[32m"
	reset = "\033[0m"
)

func TestPadOrTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"exact length", "hello", 5, "hello"},
		{"needs padding", "hi", 5, "hi   "},
		{"needs truncation", "hello world", 8, "hello..."},
		{"very short truncation", "hello", 2, "he"},
		{"zero width", "hello", 0, ""},
		{"empty string", "", 3, "   "},
		{"unicode padded", "██", 4, "██  "},
		{"styled padded", green + "hi" + reset, 4, green + "hi" + reset + "  "},
		{"styled exact", green + "hi" + reset, 2, green + "hi" + reset},
		{"styled truncated", green + "hello world" + reset, 8, "hello..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PadOrTruncate(tt.input, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.Equal(t, tt.width, VisualWidth(got))
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"short truncation", "hello", 3, "..."},
		{"very short", "hello", 2, "he"},
		{"zero width", "hello", 0, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Truncate(tt.input, tt.width))
		})
	}
}

func TestCenterText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "  1  ", CenterText("1", 5))
	assert.Equal(t, " ab  ", CenterText("ab", 5))
	assert.Equal(t, "  "+green+"█"+reset+"  ", CenterText(green+"█"+reset, 5))
	assert.Equal(t, "...", CenterText("abcd", 3))
}

func TestVisualWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, VisualWidth("hello"))
	assert.Equal(t, 5, VisualWidth(green+"hello"+reset))
	assert.Equal(t, 3, VisualWidth("███"))
	assert.Equal(t, 0, VisualWidth(green+reset))
	assert.Equal(t, "test", StripAnsi("\033[1;38;5;212mtest"+reset))
}

func TestProgressBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int
		total   int
		width   int
		want    string
	}{
		{"empty", 0, 7, 17, "[░░░░░░░░░░]   0%"},
		{"half", 5, 10, 17, "[█████░░░░░]  50%"},
		{"full", 7, 7, 17, "[██████████] 100%"},
		{"over", 9, 7, 17, "[██████████] 100%"},
		{"zero total", 5, 0, 20, ""},
		{"too narrow", 5, 10, 5, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ProgressBar(tt.current, tt.total, tt.width))
		})
	}
}
