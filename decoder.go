package termcore

import (
	"bytes"
	"time"
	"unicode/utf8"
)

// BurstConfig tunes the burst-to-paste heuristic. The defaults are empirical:
// fast enough that human typing never promotes, slow enough that the added
// input latency stays imperceptible. Zero fields select the defaults.
type BurstConfig struct {
	// MinRun is the run length at which fast input promotes to a burst.
	MinRun int
	// MaxGap is the largest inter-character gap that keeps a run alive.
	MaxGap time.Duration
	// Suppress is how long after each burst character line terminators are
	// swallowed into the burst instead of acting as Enter.
	Suppress time.Duration
}

func (c BurstConfig) withDefaults() BurstConfig {
	if c.MinRun <= 0 {
		c.MinRun = 3
	}
	if c.MaxGap <= 0 {
		c.MaxGap = 8 * time.Millisecond
	}
	if c.Suppress <= 0 {
		c.Suppress = 120 * time.Millisecond
	}
	return c
}

// pasteEnd is the bracketed-paste end marker, matched literally inside a
// paste body and never re-parsed.
var pasteEnd = []byte("\x1b[201~")

// Decoder incrementally turns the raw byte stream from a terminal into
// structured events. It never blocks: bytes that do not yet form a complete
// sequence stay buffered until more arrive, so sequences may straddle read
// boundaries arbitrarily. One Decoder serves one input stream; it is not
// safe for concurrent use.
//
// Two mechanisms classify pasted text. When the terminal supports bracketed
// paste, everything between the 200~/201~ markers becomes a single
// PasteEvent. When the markers are absent, a run of printable characters
// arriving faster than a human can type is promoted to a burst and flushed
// as one PasteEvent; see BurstConfig.
type Decoder struct {
	buf     []byte
	inPaste bool

	run           []rune    // printable characters not yet resolved
	burst         bool      // run has been promoted to an active burst
	lastChar      time.Time // arrival of the newest run character
	suppressUntil time.Time // while open, line terminators join the run

	cfg BurstConfig
	now func() time.Time // injectable monotonic clock
}

// NewDecoder creates a decoder with default burst heuristics.
func NewDecoder() *Decoder {
	return NewDecoderConfig(BurstConfig{})
}

// NewDecoderConfig creates a decoder with explicit burst heuristics.
func NewDecoderConfig(cfg BurstConfig) *Decoder {
	return &Decoder{
		cfg: cfg.withDefaults(),
		now: time.Now,
	}
}

// Feed consumes a chunk of input bytes and returns the events that became
// complete. Incomplete trailing sequences are retained for the next call.
func (d *Decoder) Feed(p []byte) []Event {
	d.buf = append(d.buf, p...)

	var events []Event
	for {
		consumed, progress := d.step(&events)
		if consumed > 0 {
			d.buf = d.buf[consumed:]
		}
		if !progress {
			break
		}
	}
	return events
}

// Idle gives the decoder a chance to resolve time-based state when no bytes
// have arrived within the caller's poll interval: an expired pending run or
// burst flushes, and a lone buffered ESC resolves to a standalone Escape key.
func (d *Decoder) Idle() []Event {
	var events []Event

	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		d.flushRun(&events)
		events = append(events, KeyEvent{Key: KeyEscape})
		d.buf = d.buf[:0]
	}

	if len(d.run) > 0 && d.now().Sub(d.lastChar) > d.cfg.MaxGap {
		d.flushRun(&events)
	}
	return events
}

// PendingSince reports whether the decoder holds state that a poll timeout
// should resolve, and when that state was last touched. The reader uses it
// to choose between blocking indefinitely and polling at the burst gap.
func (d *Decoder) PendingSince() (time.Time, bool) {
	if len(d.run) > 0 {
		return d.lastChar, true
	}
	if len(d.buf) > 0 && !d.inPaste {
		return d.now(), true
	}
	return time.Time{}, false
}

// step decodes at most one item from the front of the buffer.
// Returns the number of bytes consumed and whether any progress was made;
// (0, false) means more bytes are needed.
func (d *Decoder) step(events *[]Event) (int, bool) {
	if len(d.buf) == 0 {
		return 0, false
	}

	if d.inPaste {
		// Collect raw bytes until the literal end marker appears in the tail
		if i := bytes.Index(d.buf, pasteEnd); i >= 0 {
			*events = append(*events, PasteEvent{Text: string(d.buf[:i])})
			d.inPaste = false
			return i + len(pasteEnd), true
		}
		return 0, false
	}

	b := d.buf[0]
	if b == 0x1b {
		return d.stepEscape(events)
	}
	if b < 0x20 || b == 0x7f {
		return d.stepControl(events)
	}
	return d.stepRune(events)
}

// stepEscape disambiguates what follows an ESC byte: CSI, SS3, Alt+key, or a
// standalone Escape press.
func (d *Decoder) stepEscape(events *[]Event) (int, bool) {
	if len(d.buf) < 2 {
		// Cannot distinguish Escape from the start of a sequence yet
		return 0, false
	}

	switch d.buf[1] {
	case '[':
		return d.stepCSI(events)

	case 'O':
		if len(d.buf) < 3 {
			return 0, false
		}
		d.flushRun(events)
		if key := parseSS3(d.buf[2]); key != KeyNone {
			*events = append(*events, KeyEvent{Key: key})
			return 3, true
		}
		// Unknown SS3 final: resolve the ESC and reprocess the rest
		*events = append(*events, KeyEvent{Key: KeyEscape})
		return 2, true

	default:
		d.flushRun(events)
		if d.buf[1] >= 0x20 && d.buf[1] < 0x7f {
			// Alt+key arrives as ESC followed by the plain character
			*events = append(*events, KeyEvent{Key: KeyRune, Rune: rune(d.buf[1]), Mod: ModAlt})
			return 2, true
		}
		// Standalone Escape; the following byte is reprocessed on its own
		*events = append(*events, KeyEvent{Key: KeyEscape})
		return 1, true
	}
}

// stepCSI scans for a CSI terminator without consuming, then dispatches the
// complete sequence. A malformed byte before the terminator discards only the
// ESC [ prefix, bounding how much garbage a corrupted stream accumulates.
func (d *Decoder) stepCSI(events *[]Event) (int, bool) {
	j := 2
	for j < len(d.buf) {
		c := d.buf[j]
		if (c >= '0' && c <= '9') || c == ';' || c == '<' {
			j++
			continue
		}
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '~' {
			break
		}
		return 2, true
	}
	if j >= len(d.buf) {
		// No terminator yet
		return 0, false
	}

	final := d.buf[j]
	seq := d.buf[2:j]
	consumed := j + 1

	if len(seq) > 0 && seq[0] == '<' {
		d.flushRun(events)
		if ev, ok := parseMouseSGR(seq[1:], final); ok {
			*events = append(*events, ev)
		}
		return consumed, true
	}

	params := parseParams(seq)

	if final == '~' && len(params) > 0 {
		switch params[0] {
		case 200:
			d.flushRun(events)
			d.inPaste = true
			return consumed, true
		case 201:
			// Stray end marker outside a paste body; drop it
			return consumed, true
		}
	}

	if key, mod := parseCSIKey(params, final); key != KeyNone {
		d.flushRun(events)
		*events = append(*events, KeyEvent{Key: key, Mod: mod})
	}
	return consumed, true
}

// stepControl handles C0 control bytes and DEL. Line terminators interact
// with the burst heuristic: pasted multi-line text commonly contains or ends
// in newlines that must not individually act as "submit", so while the
// recent-burst suppression deadline is open they join the run instead of
// flushing it as Enter.
func (d *Decoder) stepControl(events *[]Event) (int, bool) {
	b := d.buf[0]

	if b == '\r' || b == '\n' {
		now := d.now()
		if now.Before(d.suppressUntil) {
			d.run = append(d.run, '\n')
			d.lastChar = now
			if d.burst {
				d.suppressUntil = now.Add(d.cfg.Suppress)
			}
			return 1, true
		}
		d.flushRun(events)
		*events = append(*events, KeyEvent{Key: KeyEnter})
		return 1, true
	}

	// Any other control byte forces a run flush before it resolves
	d.flushRun(events)

	if b == 0x7f {
		*events = append(*events, KeyEvent{Key: KeyBackspace})
		return 1, true
	}
	if key := controlToKey(b); key != KeyNone {
		*events = append(*events, KeyEvent{Key: key})
	}
	return 1, true
}

// stepRune decodes one UTF-8 code point from the front of the buffer.
// Byte count comes from the leading byte's high bits; invalid leading bytes
// are consumed immediately and replaced with U+FFFD; too few buffered bytes
// defer decoding.
func (d *Decoder) stepRune(events *[]Event) (int, bool) {
	b := d.buf[0]

	if b < 0x80 {
		d.pushRune(rune(b), events)
		return 1, true
	}

	var size int
	switch {
	case b >= 0xC0 && b < 0xE0:
		size = 2
	case b >= 0xE0 && b < 0xF0:
		size = 3
	case b >= 0xF0 && b < 0xF8:
		size = 4
	default:
		// Bare continuation byte or invalid lead
		d.pushRune(utf8.RuneError, events)
		return 1, true
	}

	if len(d.buf) < size {
		return 0, false
	}

	r, n := utf8.DecodeRune(d.buf[:size])
	if r == utf8.RuneError && n == 1 {
		// Lead byte promised continuations that did not follow
		d.pushRune(utf8.RuneError, events)
		return 1, true
	}
	d.pushRune(r, events)
	return n, true
}

// pushRune feeds one printable character into the burst machinery. The
// character itself is never emitted here; it resolves when the run flushes.
func (d *Decoder) pushRune(r rune, events *[]Event) {
	now := d.now()

	if len(d.run) > 0 && now.Sub(d.lastChar) > d.cfg.MaxGap {
		// Too slow to continue the run; resolve it first
		d.flushRun(events)
	}

	d.run = append(d.run, r)
	d.lastChar = now

	if !d.burst && len(d.run) >= d.cfg.MinRun {
		d.burst = true
	}
	if d.burst {
		d.suppressUntil = now.Add(d.cfg.Suppress)
	}
}

// flushRun resolves the pending run: a promoted burst becomes one PasteEvent;
// an unpromoted run was real typing and becomes individual key events.
func (d *Decoder) flushRun(events *[]Event) {
	if len(d.run) == 0 {
		d.burst = false
		return
	}

	if d.burst {
		*events = append(*events, PasteEvent{Text: string(d.run)})
	} else {
		for _, r := range d.run {
			if r == '\n' {
				*events = append(*events, KeyEvent{Key: KeyEnter})
				continue
			}
			*events = append(*events, KeyEvent{Key: KeyRune, Rune: r})
		}
	}
	d.run = d.run[:0]
	d.burst = false
}

// controlToKey converts a C0 control byte to a Key.
func controlToKey(b byte) Key {
	switch b {
	case 0x00:
		return KeyCtrlSpace
	case 0x08: // Ctrl+H, backspace on some terminals
		return KeyBackspace
	case 0x09:
		return KeyTab
	case 0x0d:
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	return KeyNone
}

// parseParams splits the numeric parameter bytes of a CSI sequence on
// semicolons. Empty parameters decode as zero.
func parseParams(seq []byte) []int {
	if len(seq) == 0 {
		return nil
	}
	var params []int
	cur := 0
	for _, c := range seq {
		if c == ';' {
			params = append(params, cur)
			cur = 0
			continue
		}
		cur = cur*10 + int(c-'0')
	}
	return append(params, cur)
}

// parseCSIKey maps a complete CSI sequence to a key and modifier.
// The xterm modifier parameter is offset by one: 1=none, 2=shift, 3=alt,
// 4=shift+alt, 5=ctrl, and so on.
func parseCSIKey(params []int, final byte) (Key, Modifier) {
	mod := ModNone
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case 'Z':
		// Backtab (Shift+Tab)
		return KeyTab, ModShift
	case '~':
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		switch params[0] {
		case 1:
			return KeyHome, mod
		case 2:
			return KeyInsert, mod
		case 3:
			return KeyDelete, mod
		case 4:
			return KeyEnd, mod
		case 5:
			return KeyPageUp, mod
		case 6:
			return KeyPageDown, mod
		case 11:
			return KeyF1, mod
		case 12:
			return KeyF2, mod
		case 13:
			return KeyF3, mod
		case 14:
			return KeyF4, mod
		case 15:
			return KeyF5, mod
		case 17:
			return KeyF6, mod
		case 18:
			return KeyF7, mod
		case 19:
			return KeyF8, mod
		case 20:
			return KeyF9, mod
		case 21:
			return KeyF10, mod
		case 23:
			return KeyF11, mod
		case 24:
			return KeyF12, mod
		}
	}

	return KeyNone, ModNone
}

// parseSS3 maps an SS3 final byte (ESC O x) to a key. SS3 is how many
// terminals send unmodified F1-F4.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter:
// param - 1 yields the flag bits shift=1, alt=2, ctrl=4.
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}

	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// parseMouseSGR decodes an SGR-1006 mouse report: ESC [ < btn ; col ; row,
// terminated by M (press/drag) or m (release). The button field packs the
// button number with modifier and motion bits:
//
//	bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
//	bit 2: shift, bit 3: alt, bit 4: ctrl
//	bit 5: motion (drag)
//	bit 6: wheel (64=up, 65=down)
//
// Columns and rows are 1-based on the wire and converted to 0-based here.
func parseMouseSGR(seq []byte, final byte) (MouseEvent, bool) {
	if final != 'M' && final != 'm' {
		return MouseEvent{}, false
	}

	nums := parseParams(seq)
	if len(nums) != 3 {
		return MouseEvent{}, false
	}
	button, col, row := nums[0], nums[1], nums[2]

	ev := MouseEvent{
		X: col - 1,
		Y: row - 1,
	}

	if button&4 != 0 {
		ev.Mod |= ModShift
	}
	if button&8 != 0 {
		ev.Mod |= ModAlt
	}
	if button&16 != 0 {
		ev.Mod |= ModCtrl
	}

	if button&64 != 0 {
		if button&1 != 0 {
			ev.Button = MouseWheelDown
		} else {
			ev.Button = MouseWheelUp
		}
		// Wheel events are instantaneous
		ev.Action = MousePress
		return ev, true
	}

	switch button & 3 {
	case 0:
		ev.Button = MouseLeft
	case 1:
		ev.Button = MouseMiddle
	case 2:
		ev.Button = MouseRight
	case 3:
		ev.Button = MouseNone
	}

	switch {
	case button&32 != 0:
		ev.Action = MouseDrag
	case final == 'M':
		ev.Action = MousePress
	default:
		ev.Action = MouseRelease
	}

	return ev, true
}
