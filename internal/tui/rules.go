package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RulesMarkdown describes the game.
const RulesMarkdown = `# Towers of Hanoi

The Towers of Hanoi is one of the most famous classic problems every budding
computer scientist must grapple with. Legend has it that in a temple in the
Far East, priests are attempting to move a stack of golden disks from one
diamond peg to another. The initial stack has 64 disks threaded onto one peg
and arranged from bottom to top by decreasing size. The priests are
attempting to move the stack from one peg to another under the constraints
that exactly one disk is moved at a time and at no time may a larger disk be
placed above a smaller disk. Three pegs are provided, one being used for
temporarily holding disks. Supposedly, the world will end when the priests
complete their task, so there is little incentive for us to facilitate their
efforts.

Let's assume that the priests are attempting to move the disks from peg 1 to
peg 3.

## Controls

| Key | Action |
|---|---|
| 1 2 3 | grab the top disk of a peg, or drop the held disk on it |
| ← → space | move the cursor, grab or drop at the cursor |
| esc | put the held disk back |
| u / r | undo / redo |
| s / x | start / stop the solver |
| n | new game |
| + / - | more / fewer disks |
| w | show disk weights |
| q | quit |
`

// RenderRules renders RulesMarkdown for a terminal of the given width.
// Without options the style follows the terminal background.
func RenderRules(width int, opts ...glamour.TermRendererOption) (string, error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(RulesMarkdown)
	if err != nil {
		return "", fmt.Errorf("failed to render rules: %w", err)
	}
	return out, nil
}
