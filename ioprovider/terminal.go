package ioprovider

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TerminalIO is the interactive console Provider: raw-mode keyboard
// input via tcell, one pending character buffered so a KBSR poll that
// finds nothing to consume does not discard a keystroke, and a
// confirm-to-quit dialog when the user presses 'q' at a GETC/IN
// prompt.
type TerminalIO struct {
	screen  tcell.Screen
	col     int
	row     int
	pending *byte
}

// NewTerminalIO initializes a tcell screen in raw input mode.
func NewTerminalIO() (*TerminalIO, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("ioprovider: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("ioprovider: init screen: %w", err)
	}
	screen.DisableMouse()
	return &TerminalIO{screen: screen}, nil
}

// Close tears down the terminal screen, restoring cooked mode.
func (t *TerminalIO) Close() {
	t.screen.Fini()
}

// HasPending reports whether a character is already buffered, the way
// a KBSR read must poll without blocking and without losing input.
func (t *TerminalIO) HasPending() bool {
	return t.pending != nil
}

// Poll checks for available input without blocking, buffering a
// single character if one arrives, and returns whether one is ready.
// This backs the KBSR status read.
func (t *TerminalIO) Poll() bool {
	if t.pending != nil {
		return true
	}
	if !t.screen.HasPendingEvent() {
		return false
	}
	b, ok := t.readOneEvent()
	if !ok {
		return false
	}
	t.pending = &b
	return true
}

// GetChar blocks until a character is available, draining the pending
// buffer first. A 'q' keypress triggers a confirm-to-quit dialog; if
// the user confirms, GetChar closes the screen and returns an error,
// which ends the run.
func (t *TerminalIO) GetChar() (byte, error) {
	if t.pending != nil {
		b := *t.pending
		t.pending = nil
		return b, nil
	}

	for {
		b, ok := t.readOneEvent()
		if !ok {
			continue
		}
		if b == 'q' || b == 'Q' {
			if t.confirmQuit() {
				t.Close()
				return 0, fmt.Errorf("ioprovider: quit requested by user")
			}
			continue
		}
		return b, nil
	}
}

// readOneEvent blocks for exactly one tcell event and reports the
// rune it decoded to, or false if the event was not a usable keypress.
func (t *TerminalIO) readOneEvent() (byte, bool) {
	ev := t.screen.PollEvent()
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return 0, false
	}
	switch key.Key() {
	case tcell.KeyEnter:
		return '\n', true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return '\b', true
	case tcell.KeyRune:
		r := key.Rune()
		if r > 0xFF {
			return 0, false
		}
		return byte(r), true
	}
	return 0, false
}

// confirmQuit shows a one-line prompt and waits for y/n.
func (t *TerminalIO) confirmQuit() bool {
	t.drawLine("Quit? (y/n) ")
	for {
		ev := t.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() != tcell.KeyRune {
			continue
		}
		switch key.Rune() {
		case 'y', 'Y':
			return true
		case 'n', 'N':
			return false
		}
	}
}

func (t *TerminalIO) drawLine(s string) {
	for i, r := range s {
		t.screen.SetContent(i, t.row, r, nil, tcell.StyleDefault)
	}
	t.screen.Show()
}

// PutChar writes a single character at the current cursor cell and
// advances it, wrapping at 80 columns.
func (t *TerminalIO) PutChar(b byte) error {
	if b == '\n' {
		t.row++
		t.col = 0
		t.screen.Show()
		return nil
	}
	t.screen.SetContent(t.col, t.row, rune(b), nil, tcell.StyleDefault)
	t.col++
	if t.col >= 80 {
		t.col = 0
		t.row++
	}
	t.screen.Show()
	return nil
}

// Print writes every character of s via PutChar.
func (t *TerminalIO) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := t.PutChar(s[i]); err != nil {
			return err
		}
	}
	return nil
}

var _ Provider = (*TerminalIO)(nil)
