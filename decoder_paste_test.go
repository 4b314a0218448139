package termcore

import (
	"testing"
	"time"
)

func TestDecoder_BracketedPaste(t *testing.T) {
	d, _ := newTestDecoder()

	events := d.Feed([]byte("\x1b[200~hello\nworld\x1b[201~"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	paste, ok := events[0].(PasteEvent)
	if !ok {
		t.Fatalf("event = %+v, want PasteEvent", events[0])
	}
	if paste.Text != "hello\nworld" {
		t.Errorf("paste text = %q, want %q", paste.Text, "hello\nworld")
	}
}

func TestDecoder_BracketedPaste_SplitAcrossReads(t *testing.T) {
	d, _ := newTestDecoder()

	var events []Event
	events = append(events, d.Feed([]byte("\x1b[200~hel"))...)
	events = append(events, d.Feed([]byte("lo\x1b[20"))...)
	if len(events) != 0 {
		t.Fatalf("incomplete paste produced events: %+v", events)
	}

	// The end marker completes across the read boundary
	events = d.Feed([]byte("1~"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if paste := events[0].(PasteEvent); paste.Text != "hello" {
		t.Errorf("paste text = %q, want %q", paste.Text, "hello")
	}
}

func TestDecoder_BracketedPaste_EscapesInBody(t *testing.T) {
	d, _ := newTestDecoder()

	// Escape sequences inside the body arrive literally, never parsed
	events := d.Feed([]byte("\x1b[200~a\x1b[Ab\x1b[201~"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if paste := events[0].(PasteEvent); paste.Text != "a\x1b[Ab" {
		t.Errorf("paste text = %q", paste.Text)
	}
}

func TestDecoder_BracketedPaste_StrayEndMarker(t *testing.T) {
	d, _ := newTestDecoder()

	// An end marker with no open paste drops silently
	events := d.Feed([]byte("\x1b[201~\x1b[A"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if key := events[0].(KeyEvent); key.Key != KeyUp {
		t.Errorf("event = %+v, want Up", events[0])
	}
}

func TestDecoder_BracketedPaste_NotPendingMidBody(t *testing.T) {
	d, _ := newTestDecoder()

	// A paste body can stay open indefinitely; the reader must block rather
	// than poll while waiting for the end marker.
	d.Feed([]byte("\x1b[200~partial"))
	if _, pending := d.PendingSince(); pending {
		t.Error("open paste body should not report pending")
	}
}

func TestDecoder_Burst_PromotesFastRun(t *testing.T) {
	d, clk := newTestDecoder()

	// Five characters in one read: far faster than typing
	events := d.Feed([]byte("hello"))
	if len(events) != 0 {
		t.Fatalf("burst resolved before the gap expired: %+v", events)
	}

	clk.advance(20 * time.Millisecond)
	events = d.Idle()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if paste, ok := events[0].(PasteEvent); !ok || paste.Text != "hello" {
		t.Errorf("event = %+v, want paste %q", events[0], "hello")
	}
}

func TestDecoder_Burst_MinRunBoundary(t *testing.T) {
	// Exactly MinRun characters promote; one fewer stays individual keys
	d, clk := newTestDecoder()
	d.Feed([]byte("abc"))
	clk.advance(20 * time.Millisecond)
	events := d.Idle()
	if len(events) != 1 {
		t.Fatalf("three fast chars gave %d events, want one paste", len(events))
	}
	if _, ok := events[0].(PasteEvent); !ok {
		t.Errorf("event = %+v, want PasteEvent", events[0])
	}

	d, clk = newTestDecoder()
	d.Feed([]byte("ab"))
	clk.advance(20 * time.Millisecond)
	events = d.Idle()
	if len(events) != 2 {
		t.Fatalf("two fast chars gave %d events, want 2 keys", len(events))
	}
	for i, want := range []rune{'a', 'b'} {
		if key := events[i].(KeyEvent); key.Key != KeyRune || key.Rune != want {
			t.Errorf("event %d = %+v, want rune %q", i, events[i], want)
		}
	}
}

func TestDecoder_Burst_SlowTypingNeverPromotes(t *testing.T) {
	d, clk := newTestDecoder()

	events := typeSlowly(d, clk, "hello")
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	for i, ev := range events {
		if _, ok := ev.(PasteEvent); ok {
			t.Errorf("event %d promoted to paste during slow typing", i)
		}
	}
}

func TestDecoder_Burst_NewlineJoinsWithinSuppression(t *testing.T) {
	d, clk := newTestDecoder()

	d.Feed([]byte("abc"))
	clk.advance(50 * time.Millisecond)

	// Within the suppression window the terminator joins the burst instead
	// of acting as Enter.
	events := d.Feed([]byte("\r"))
	if len(events) != 0 {
		t.Fatalf("newline resolved as Enter inside a burst: %+v", events)
	}

	clk.advance(200 * time.Millisecond)
	events = d.Idle()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if paste := events[0].(PasteEvent); paste.Text != "abc\n" {
		t.Errorf("paste text = %q, want %q", paste.Text, "abc\n")
	}
}

func TestDecoder_Burst_EnterAfterSuppressionDeadline(t *testing.T) {
	d, clk := newTestDecoder()

	d.Feed([]byte("abc"))
	clk.advance(200 * time.Millisecond)

	// Past the deadline the burst resolves first, then Enter acts normally
	events := d.Feed([]byte("\r"))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if paste, ok := events[0].(PasteEvent); !ok || paste.Text != "abc" {
		t.Errorf("event 0 = %+v, want paste %q", events[0], "abc")
	}
	if key, ok := events[1].(KeyEvent); !ok || key.Key != KeyEnter {
		t.Errorf("event 1 = %+v, want Enter", events[1])
	}
}

func TestDecoder_Burst_MultiLinePaste(t *testing.T) {
	d, clk := newTestDecoder()

	// A multi-line paste without bracketed markers arrives as one read
	events := d.Feed([]byte("line one\rline two\rline three"))
	if len(events) != 0 {
		t.Fatalf("multi-line burst resolved early: %+v", events)
	}

	clk.advance(200 * time.Millisecond)
	events = d.Idle()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	want := "line one\nline two\nline three"
	if paste := events[0].(PasteEvent); paste.Text != want {
		t.Errorf("paste text = %q, want %q", paste.Text, want)
	}
}

func TestDecoder_Burst_CustomConfig(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	d := NewDecoderConfig(BurstConfig{MinRun: 5})
	d.now = clk.now

	// Four fast characters stay below the raised threshold
	d.Feed([]byte("abcd"))
	clk.advance(20 * time.Millisecond)
	events := d.Idle()
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4 keys: %+v", len(events), events)
	}
	for _, ev := range events {
		if _, ok := ev.(PasteEvent); ok {
			t.Error("run below MinRun promoted to paste")
		}
	}
}

func TestBurstConfig_Defaults(t *testing.T) {
	cfg := BurstConfig{}.withDefaults()
	if cfg.MinRun != 3 {
		t.Errorf("MinRun = %d, want 3", cfg.MinRun)
	}
	if cfg.MaxGap != 8*time.Millisecond {
		t.Errorf("MaxGap = %v, want 8ms", cfg.MaxGap)
	}
	if cfg.Suppress != 120*time.Millisecond {
		t.Errorf("Suppress = %v, want 120ms", cfg.Suppress)
	}

	// Explicit values survive
	cfg = BurstConfig{MinRun: 10, MaxGap: time.Second, Suppress: time.Minute}.withDefaults()
	if cfg.MinRun != 10 || cfg.MaxGap != time.Second || cfg.Suppress != time.Minute {
		t.Errorf("explicit config overridden: %+v", cfg)
	}
}
