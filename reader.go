//go:build unix

package termcore

import (
	"os"
	"os/signal"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// eventQueueSize bounds the event hand-off channel. When the consumer falls
// behind, the reader blocks on delivery rather than buffering without limit.
const eventQueueSize = 64

// Reader drives a Decoder from a terminal file in a background goroutine,
// decoupling the blocking read from the render loop. Decoded events arrive
// on the Events channel; terminal resizes coalesce into a separate
// capacity-1 ResizeEvent channel so rapid repeated resizes collapse into one
// re-layout.
//
// The input file should already be in raw mode (see Terminal.EnterRawMode).
type Reader struct {
	f   *os.File
	dec *Decoder

	events chan Event
	resize chan ResizeEvent
	done   chan struct{}

	// Self-pipe used to wake a select() blocked on the input fd
	intrR, intrW *os.File
	sig          chan os.Signal

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewReader starts a background reader over the given terminal input with
// default burst heuristics.
func NewReader(f *os.File) (*Reader, error) {
	return NewReaderConfig(f, BurstConfig{})
}

// NewReaderConfig starts a background reader with explicit burst heuristics.
func NewReaderConfig(f *os.File, cfg BurstConfig) (*Reader, error) {
	intrR, intrW, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	r := &Reader{
		f:      f,
		dec:    NewDecoderConfig(cfg),
		events: make(chan Event, eventQueueSize),
		resize: make(chan ResizeEvent, 1),
		done:   make(chan struct{}),
		intrR:  intrR,
		intrW:  intrW,
		sig:    make(chan os.Signal, 1),
	}

	signal.Notify(r.sig, unix.SIGWINCH)

	r.wg.Add(2)
	go r.watchResize()
	go r.loop()

	return r, nil
}

// Events returns the channel decoded events are delivered on. The channel is
// closed when the reader stops (Close, end of input, or read failure), so a
// blocked consumer observes clean end-of-stream rather than an error.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// Resize returns the coalesced resize channel. At most one event is pending
// at a time, and a newer resize replaces an undelivered older one, so
// receivers always observe the latest dimensions.
func (r *Reader) Resize() <-chan ResizeEvent {
	return r.resize
}

// Size returns the current terminal dimensions, defaulting to 80x24 when the
// query fails (for example when the input is a pipe).
func (r *Reader) Size() (width, height int) {
	return terminalSize(int(r.f.Fd()))
}

// Close stops the background reader. The event channel closes once the
// reader goroutine has exited. The input file itself stays open; it belongs
// to the caller.
func (r *Reader) Close() error {
	r.closeOnce.Do(func() {
		signal.Stop(r.sig)
		close(r.done)
		r.intrW.Write([]byte{0}) // wake a blocked select()
		r.wg.Wait()
		r.intrR.Close()
		r.intrW.Close()
	})
	return nil
}

// watchResize coalesces SIGWINCH deliveries into the resize channel.
func (r *Reader) watchResize() {
	defer r.wg.Done()
	fd := int(r.f.Fd())
	for {
		select {
		case <-r.done:
			return
		case <-r.sig:
			var ev ResizeEvent
			ev.Width, ev.Height = terminalSize(fd)
			// Replace a stale undelivered event with the newest size. This
			// goroutine is the only sender, so the send cannot block after
			// the drain.
			select {
			case <-r.resize:
			default:
			}
			r.resize <- ev
		}
	}
}

// loop blocks on the input fd, feeding bytes to the decoder as they arrive.
// While the decoder holds pending state (an open run or a partial escape
// sequence), the select timeout drops to the burst gap so time-based state
// resolves promptly; otherwise the loop blocks until input or interrupt.
func (r *Reader) loop() {
	defer r.wg.Done()
	defer close(r.events)

	fd := int(r.f.Fd())
	intrFd := int(r.intrR.Fd())
	buf := make([]byte, 4096)

	for {
		timeout := time.Duration(-1)
		if _, ok := r.dec.PendingSince(); ok {
			timeout = r.dec.cfg.MaxGap
		}

		ready, interrupted, err := selectWithTimeoutAndInterrupt(fd, intrFd, timeout)
		if err != nil || interrupted {
			return
		}
		if !ready {
			if !r.deliver(r.dec.Idle()) {
				return
			}
			continue
		}

		n, err := unix.Read(fd, buf)
		if n <= 0 {
			if err == unix.EINTR {
				continue
			}
			// End of input or read failure terminates the stream
			return
		}
		if !r.deliver(r.dec.Feed(buf[:n])) {
			return
		}
	}
}

// deliver hands events to the consumer, blocking for backpressure.
// Returns false if the reader was closed while blocked.
func (r *Reader) deliver(events []Event) bool {
	for _, ev := range events {
		select {
		case r.events <- ev:
		case <-r.done:
			return false
		}
	}
	return true
}
