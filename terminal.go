package termcore

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal manages a terminal session: raw mode, the alternate screen,
// mouse reporting, bracketed paste, and cursor visibility. Every mode it
// enables is tracked so Restore can unwind them in reverse order, leaving
// the user's shell usable even after a panic.
type Terminal struct {
	out  io.Writer
	in   *os.File
	caps Capabilities
	esc  *escBuilder

	oldState *term.State

	altScreen    bool
	mouse        bool
	paste        bool
	cursorHidden bool
}

// NewTerminal creates a terminal session over the given streams with
// capabilities detected from the environment. Typically in is os.Stdin and
// out is os.Stdout.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		out:  out,
		in:   in,
		caps: DetectCapabilities(),
		esc:  newEscBuilder(64),
	}
}

// Capabilities returns the detected terminal capabilities.
func (t *Terminal) Capabilities() Capabilities {
	return t.caps
}

// SetCapabilities overrides the detected capabilities.
func (t *Terminal) SetCapabilities(caps Capabilities) {
	t.caps = caps
}

// Size returns the terminal dimensions, defaulting to 80x24 when the query
// fails.
func (t *Terminal) Size() (width, height int) {
	w, h, err := term.GetSize(int(t.in.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// EnterRawMode puts the input terminal into raw mode so key presses arrive
// byte by byte without echo or line buffering.
func (t *Terminal) EnterRawMode() error {
	if t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal state captured by EnterRawMode.
func (t *Terminal) ExitRawMode() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}
	return nil
}

// write emits the pending escape sequence and resets the builder.
func (t *Terminal) write() error {
	if t.esc.Len() == 0 {
		return nil
	}
	_, err := t.out.Write(t.esc.Bytes())
	t.esc.Reset()
	if err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// EnterAltScreen switches to the alternate screen buffer and clears it.
// A no-op when the terminal does not support the alternate screen.
func (t *Terminal) EnterAltScreen() error {
	if t.altScreen || !t.caps.AltScreen {
		return nil
	}
	t.esc.EnterAltScreen()
	t.esc.ClearScreen()
	t.esc.MoveTo(0, 0)
	if err := t.write(); err != nil {
		return err
	}
	t.altScreen = true
	return nil
}

// ExitAltScreen switches back to the main screen buffer.
func (t *Terminal) ExitAltScreen() error {
	if !t.altScreen {
		return nil
	}
	t.esc.ExitAltScreen()
	if err := t.write(); err != nil {
		return err
	}
	t.altScreen = false
	return nil
}

// EnableMouse turns on mouse reporting with SGR extended coordinates.
func (t *Terminal) EnableMouse() error {
	if t.mouse {
		return nil
	}
	t.esc.EnableMouse()
	if err := t.write(); err != nil {
		return err
	}
	t.mouse = true
	return nil
}

// DisableMouse turns off mouse reporting.
func (t *Terminal) DisableMouse() error {
	if !t.mouse {
		return nil
	}
	t.esc.DisableMouse()
	if err := t.write(); err != nil {
		return err
	}
	t.mouse = false
	return nil
}

// EnableBracketedPaste asks the terminal to wrap pasted text in paste
// markers so the decoder can deliver it as a single PasteEvent.
func (t *Terminal) EnableBracketedPaste() error {
	if t.paste {
		return nil
	}
	t.esc.EnableBracketedPaste()
	if err := t.write(); err != nil {
		return err
	}
	t.paste = true
	return nil
}

// DisableBracketedPaste turns bracketed paste mode off.
func (t *Terminal) DisableBracketedPaste() error {
	if !t.paste {
		return nil
	}
	t.esc.DisableBracketedPaste()
	if err := t.write(); err != nil {
		return err
	}
	t.paste = false
	return nil
}

// HideCursor makes the cursor invisible during rendering.
func (t *Terminal) HideCursor() error {
	if t.cursorHidden {
		return nil
	}
	t.esc.HideCursor()
	if err := t.write(); err != nil {
		return err
	}
	t.cursorHidden = true
	return nil
}

// ShowCursor makes the cursor visible again.
func (t *Terminal) ShowCursor() error {
	if !t.cursorHidden {
		return nil
	}
	t.esc.ShowCursor()
	if err := t.write(); err != nil {
		return err
	}
	t.cursorHidden = false
	return nil
}

// BeginSync opens a synchronized update block so a whole frame displays
// atomically. Terminals without mode 2026 ignore the sequence.
func (t *Terminal) BeginSync() error {
	t.esc.BeginSyncUpdate()
	return t.write()
}

// EndSync closes the synchronized update block opened by BeginSync.
func (t *Terminal) EndSync() error {
	t.esc.EndSyncUpdate()
	return t.write()
}

// Clear clears the screen and scrollback and homes the cursor.
func (t *Terminal) Clear() error {
	t.esc.ClearScreen()
	t.esc.ClearScrollback()
	t.esc.MoveTo(0, 0)
	return t.write()
}

// MoveTo positions the cursor at the given 0-indexed coordinates.
func (t *Terminal) MoveTo(x, y int) error {
	t.esc.MoveTo(x, y)
	return t.write()
}

// Setup enters the full-screen state in one call: raw mode, alternate
// screen, hidden cursor, and bracketed paste. On any failure it restores
// what it had already enabled before returning the error.
func (t *Terminal) Setup() error {
	if err := t.EnterRawMode(); err != nil {
		return err
	}
	if err := t.EnterAltScreen(); err != nil {
		t.Restore()
		return err
	}
	if err := t.HideCursor(); err != nil {
		t.Restore()
		return err
	}
	if err := t.EnableBracketedPaste(); err != nil {
		t.Restore()
		return err
	}
	return nil
}

// Restore unwinds every mode this session enabled, in reverse order of
// setup, then resets styling and leaves raw mode. Safe to call multiple
// times and from a deferred recover path; the first error is returned but
// the remaining teardown still runs.
func (t *Terminal) Restore() error {
	var first error
	keep := func(err error) {
		if first == nil && err != nil {
			first = err
		}
	}

	keep(t.DisableBracketedPaste())
	keep(t.DisableMouse())
	keep(t.ShowCursor())

	t.esc.ResetStyle()
	keep(t.write())

	keep(t.ExitAltScreen())
	keep(t.ExitRawMode())
	return first
}
