package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/thruflo/hanoi/internal/game"
)

// diskPalette colors disks by weight, smallest first.
var diskPalette = []string{
	"#f87171", "#fb923c", "#facc15", "#a3e635", "#34d399",
	"#22d3ee", "#60a5fa", "#818cf8", "#c084fc", "#f472b6",
}

// finishedColor tints every disk once the game is won.
const finishedColor = "#fde047"

// BoardState holds the data needed to render the board.
type BoardState struct {
	Game        game.Snapshot
	Cursor      int
	Grabbed     int
	Holding     bool
	ShowWeights bool
	Message     string
}

// BoardView renders the pegs, a header and the shortcut line.
type BoardView struct {
	Profile termenv.Profile
}

// NewBoardView creates a BoardView using the terminal's color profile.
func NewBoardView() *BoardView {
	return &BoardView{Profile: termenv.ColorProfile()}
}

// Render renders the board to a slice of lines no wider than width.
func (v *BoardView) Render(state BoardState, width int) []string {
	if width < 20 {
		width = 20
	}
	snap := state.Game
	n := snap.DisksCount

	var lines []string
	lines = append(lines, v.header(snap, width)...)
	lines = append(lines, "")

	colWidth := diskWidth(n-1) + 2
	if colWidth < 5 {
		colWidth = 5
	}

	// hover row: the held disk floats above the cursor
	var hover []string
	for peg := 0; peg < game.PegCount; peg++ {
		cell := ""
		if state.Holding && peg == state.Cursor {
			cell = v.disk(state.Grabbed, snap.GameCondition, state.ShowWeights)
		}
		hover = append(hover, CenterText(cell, colWidth))
	}
	lines = append(lines, strings.Join(hover, ""))

	pegs := snap.Pegs
	if state.Holding {
		// the held disk is drawn in the hover row only
		if src := pegs.Find(state.Grabbed); src >= 0 {
			pegs = pegs.Clone()
			pegs[src] = pegs[src][:len(pegs[src])-1]
		}
	}

	for row := n - 1; row >= 0; row-- {
		var cells []string
		for peg := 0; peg < game.PegCount; peg++ {
			cell := "│"
			if row < len(pegs[peg]) {
				cell = v.disk(pegs[peg][row], snap.GameCondition, state.ShowWeights)
			}
			cells = append(cells, CenterText(cell, colWidth))
		}
		lines = append(lines, strings.Join(cells, ""))
	}

	lines = append(lines, strings.Repeat("━", colWidth*game.PegCount))

	var labels []string
	for peg := 0; peg < game.PegCount; peg++ {
		label := strconv.Itoa(peg + 1)
		if peg == state.Cursor {
			label = v.Profile.String("^" + label + "^").Bold().String()
		}
		labels = append(labels, CenterText(label, colWidth))
	}
	lines = append(lines, strings.Join(labels, ""))
	lines = append(lines, "")

	if state.Message != "" {
		lines = append(lines, PadOrTruncate(state.Message, width))
	}
	shortcuts := "[1-3] grab/drop [u]ndo [r]edo [s]olve [x]stop [n]ew [+/-]disks [w]eights [?]rules [q]uit"
	lines = append(lines, v.Profile.String(Truncate(shortcuts, width)).Faint().String())

	for i, line := range lines {
		if VisualWidth(line) > width {
			lines[i] = PadOrTruncate(line, width)
		}
	}
	return lines
}

func (v *BoardView) header(snap game.Snapshot, width int) []string {
	title := fmt.Sprintf("hanoi | disks: %d | step: %d | best: %d",
		snap.DisksCount, snap.CurrentStep, game.MinMoves(snap.DisksCount))

	status := fmt.Sprintf("game: %s | solver: %s",
		v.condition(string(snap.GameCondition)),
		v.condition(string(snap.SolverCondition)))

	lines := []string{v.Profile.String(title).Bold().String(), status}
	if snap.SolverCondition == game.SolverActive {
		lines = append(lines, ProgressBar(snap.CurrentStep, game.MinMoves(snap.DisksCount), min(width, 40)))
	}
	return lines
}

// condition colors a game or solver condition name.
func (v *BoardView) condition(name string) string {
	var hex string
	switch name {
	case string(game.GameActive):
		hex = "#4ade80"
	case string(game.GameFinished):
		hex = finishedColor
	default:
		hex = "#9ca3af"
	}
	return v.Profile.String(name).Foreground(v.Profile.Color(hex)).String()
}

func (v *BoardView) disk(weight int, condition game.GameCondition, showWeight bool) string {
	w := diskWidth(weight)
	bar := strings.Repeat("█", w)
	if showWeight {
		label := strconv.Itoa(weight)
		side := (w - len(label)) / 2
		bar = strings.Repeat("█", side) + label + strings.Repeat("█", w-side-len(label))
	}

	hex := finishedColor
	if condition != game.GameFinished {
		hex = diskPalette[weight%len(diskPalette)]
	}
	return v.Profile.String(bar).Foreground(v.Profile.Color(hex)).String()
}

// diskWidth is the bar width of a disk: odd, so it centers on the pole.
func diskWidth(weight int) int {
	return 2*weight + 3
}

// RulesView shows the rendered rules with scrolling.
type RulesView struct {
	lines  []string
	offset int
}

// NewRulesView creates a RulesView from rendered text.
func NewRulesView(rendered string) *RulesView {
	return &RulesView{lines: strings.Split(strings.TrimRight(rendered, "\n"), "\n")}
}

// Scroll moves the view by delta lines.
func (v *RulesView) Scroll(delta int) {
	v.offset += delta
	if v.offset > len(v.lines)-1 {
		v.offset = len(v.lines) - 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// Offset returns the first visible line.
func (v *RulesView) Offset() int {
	return v.offset
}

// Render renders the visible part of the rules. height counts content
// lines and excludes the header.
func (v *RulesView) Render(width, height int) []string {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	result := make([]string, 0, height+1)
	header := "─── Rules (press ? or esc to return) "
	result = append(result, header+strings.Repeat("─", max(0, width-VisualWidth(header))))

	end := min(len(v.lines), v.offset+height)
	for _, line := range v.lines[v.offset:end] {
		if VisualWidth(line) > width {
			line = PadOrTruncate(line, width)
		}
		result = append(result, line)
	}
	return result
}
