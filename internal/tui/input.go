package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
// The reader should be a raw terminal input (e.g., os.Stdin after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input.
// This method blocks until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03: // Ctrl+C
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04: // Ctrl+D
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x7F, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B:
		return k.readEscapeSequence()
	}

	if b >= 0x20 && b < 0x7F {
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	}
	if b >= 0xC0 {
		return k.readUTF8(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readEscapeSequence tells a lone escape from an arrow key sequence.
// Terminals send a whole sequence in one write, so an escape with nothing
// buffered behind it is the escape key itself.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	final, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	switch final {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	}

	// skip the rest of an unknown sequence
	for k.reader.Buffered() > 0 && !isFinalByte(final) {
		final, _ = k.reader.ReadByte()
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

func isFinalByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}

// readUTF8 reads a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	buf := []byte{first}
	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf = append(buf, b)
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// Shortcut represents a TUI keyboard shortcut.
type Shortcut int

const (
	ShortcutNone     Shortcut = iota
	ShortcutPeg1              // '1' - select the left peg
	ShortcutPeg2              // '2' - select the middle peg
	ShortcutPeg3              // '3' - select the right peg
	ShortcutLeft              // left arrow - cursor to the previous peg
	ShortcutRight             // right arrow - cursor to the next peg
	ShortcutSelect            // space/enter - grab or drop at the cursor
	ShortcutUndo              // 'u'
	ShortcutRedo              // 'r'
	ShortcutSolve             // 's' - start the solver
	ShortcutStop              // 'x' - stop the solver
	ShortcutReset             // 'n' - new game
	ShortcutMoreDisks         // '+'
	ShortcutFewerDisks        // '-'
	ShortcutWeights           // 'w' - toggle weight labels
	ShortcutRules             // '?' - toggle the rules view
	ShortcutScrollUp          // up arrow
	ShortcutScrollDown        // down arrow
	ShortcutEscape            // esc - cancel grab / leave rules
	ShortcutQuit              // 'q', ctrl+c, ctrl+d
)

// Peg returns the peg a peg shortcut selects.
func (s Shortcut) Peg() (int, bool) {
	switch s {
	case ShortcutPeg1:
		return 0, true
	case ShortcutPeg2:
		return 1, true
	case ShortcutPeg3:
		return 2, true
	}
	return 0, false
}

// ParseShortcut converts a KeyEvent to a Shortcut.
func ParseShortcut(ev KeyEvent) Shortcut {
	switch ev.Key {
	case KeyEscape:
		return ShortcutEscape
	case KeyCtrlC, KeyCtrlD:
		return ShortcutQuit
	case KeyLeft:
		return ShortcutLeft
	case KeyRight:
		return ShortcutRight
	case KeyUp:
		return ShortcutScrollUp
	case KeyDown:
		return ShortcutScrollDown
	case KeyEnter:
		return ShortcutSelect
	case KeyRune:
		switch ev.Rune {
		case '1':
			return ShortcutPeg1
		case '2':
			return ShortcutPeg2
		case '3':
			return ShortcutPeg3
		case ' ':
			return ShortcutSelect
		case 'h':
			return ShortcutLeft
		case 'l':
			return ShortcutRight
		case 'u', 'U':
			return ShortcutUndo
		case 'r', 'R':
			return ShortcutRedo
		case 's', 'S':
			return ShortcutSolve
		case 'x', 'X':
			return ShortcutStop
		case 'n', 'N':
			return ShortcutReset
		case '+', '=':
			return ShortcutMoreDisks
		case '-', '_':
			return ShortcutFewerDisks
		case 'w', 'W':
			return ShortcutWeights
		case '?':
			return ShortcutRules
		case 'q', 'Q':
			return ShortcutQuit
		}
	}
	return ShortcutNone
}
