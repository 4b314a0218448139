package termcore

import "strconv"

// escBuilder efficiently builds ANSI escape sequences.
// It uses a pre-allocated buffer to minimize allocations; one builder is
// reused across flushes.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a new escape sequence builder with the given initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built escape sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt writes an integer to the buffer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// MoveTo moves the cursor to the specified position.
// x and y are 0-indexed; ANSI sequences use 1-indexed positions.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1) // Convert to 1-indexed
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the entire screen.
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// ClearScrollback clears the scrollback buffer (ESC[3J).
// This helps ensure a clean screen after terminal resize.
func (e *escBuilder) ClearScrollback() {
	e.writeCSI()
	e.buf = append(e.buf, '3', 'J')
}

// ClearLine clears the entire current line.
func (e *escBuilder) ClearLine() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'K')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'h')
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'l')
}

// BeginSyncUpdate starts a synchronized update block.
// The terminal buffers all output until EndSyncUpdate, then displays it
// atomically, preventing tearing. Terminals that don't support mode 2026
// ignore the sequence.
func (e *escBuilder) BeginSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'h')
}

// EndSyncUpdate ends a synchronized update block.
func (e *escBuilder) EndSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'l')
}

// EnableMouse enables mouse reporting: button tracking (1000), button-motion
// tracking for drags (1002), and SGR extended coordinates (1006), which work
// beyond column 223.
func (e *escBuilder) EnableMouse() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '0', 'h')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '2', 'h')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '6', 'h')
}

// DisableMouse disables mouse reporting, unwinding EnableMouse in reverse order.
func (e *escBuilder) DisableMouse() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '6', 'l')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '2', 'l')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '0', 'l')
}

// EnableBracketedPaste makes the terminal wrap pasted text in the
// ESC[200~ / ESC[201~ markers the decoder recognizes.
func (e *escBuilder) EnableBracketedPaste() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '0', '4', 'h')
}

// DisableBracketedPaste turns bracketed paste mode off.
func (e *escBuilder) DisableBracketedPaste() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '0', '4', 'l')
}

// ResetStyle resets all text attributes to default.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// SetStyle sets the text style based on the given Style and terminal capabilities.
// It always starts from a reset so stale attributes from the previous style
// never leak through.
func (e *escBuilder) SetStyle(s Style, caps Capabilities) {
	e.writeCSI()
	e.buf = append(e.buf, '0')

	if s.HasAttr(AttrBold) {
		e.buf = append(e.buf, ';', '1')
	}
	if s.HasAttr(AttrDim) {
		e.buf = append(e.buf, ';', '2')
	}
	if s.HasAttr(AttrItalic) {
		e.buf = append(e.buf, ';', '3')
	}
	if s.HasAttr(AttrUnderline) {
		e.buf = append(e.buf, ';', '4')
	}
	if s.HasAttr(AttrBlink) {
		e.buf = append(e.buf, ';', '5')
	}
	if s.HasAttr(AttrReverse) {
		e.buf = append(e.buf, ';', '7')
	}
	if s.HasAttr(AttrStrikethrough) {
		e.buf = append(e.buf, ';', '9')
	}

	e.appendColor(s.Fg, true, caps)
	e.appendColor(s.Bg, false, caps)

	e.buf = append(e.buf, 'm')
}

// appendColor appends the appropriate SGR parameters for a color, after
// reducing it to what the terminal can express via EffectiveColor.
// fg indicates whether this is a foreground (true) or background (false)
// color. Default and transparent colors emit nothing: default means "let the
// terminal decide" and transparent is resolved by compositing layers above
// this package.
func (e *escBuilder) appendColor(c Color, fg bool, caps Capabilities) {
	c = caps.EffectiveColor(c)
	if c.IsDefault() || c.IsTransparent() {
		return
	}

	// 38 selects foreground, 48 background in extended color modes
	var base int
	if fg {
		base = 38
	} else {
		base = 48
	}

	switch c.Type() {
	case ColorANSI:
		idx := c.ANSI()
		if idx < 16 {
			// Basic color codes for 0-15:
			// foreground 30-37 (normal), 90-97 (bright);
			// background 40-47 (normal), 100-107 (bright)
			code := 0
			switch {
			case idx < 8 && fg:
				code = 30 + int(idx)
			case idx < 8:
				code = 40 + int(idx)
			case fg:
				code = 90 + int(idx) - 8
			default:
				code = 100 + int(idx) - 8
			}
			e.buf = append(e.buf, ';')
			e.writeInt(code)
			return
		}
		// ESC[38;5;{n}m / ESC[48;5;{n}m
		e.buf = append(e.buf, ';')
		e.writeInt(base)
		e.buf = append(e.buf, ';', '5', ';')
		e.writeInt(int(idx))

	case ColorRGB:
		// ESC[38;2;{r};{g};{b}m / ESC[48;2;{r};{g};{b}m
		r, g, b := c.RGB()
		e.buf = append(e.buf, ';')
		e.writeInt(base)
		e.buf = append(e.buf, ';', '2', ';')
		e.writeInt(int(r))
		e.buf = append(e.buf, ';')
		e.writeInt(int(g))
		e.buf = append(e.buf, ';')
		e.writeInt(int(b))
	}
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
