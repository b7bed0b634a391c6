//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type serialLogger struct {
	s machine.Serialer
}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.s.WriteByte(s[i])
	}
	l.s.WriteByte('\r')
	l.s.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.s.WriteByte(b[i])
	}
	l.s.WriteByte('\r')
	l.s.WriteByte('\n')
}

// ramFramebuffer is an RGB565 framebuffer in RAM. present pushes it to a
// panel when one is attached.
type ramFramebuffer struct {
	w, h    int
	buf     []byte
	present func(buf []byte, w, h int) error
}

func newRAMFramebuffer(w, h int, present func([]byte, int, int) error) *ramFramebuffer {
	return &ramFramebuffer{w: w, h: h, buf: make([]byte, w*h*2), present: present}
}

func (f *ramFramebuffer) Width() int          { return f.w }
func (f *ramFramebuffer) Height() int         { return f.h }
func (f *ramFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *ramFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *ramFramebuffer) Buffer() []byte      { return f.buf }

func (f *ramFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = byte(pixel)
		f.buf[i+1] = byte(pixel >> 8)
	}
}

func (f *ramFramebuffer) Present() error {
	if f.present == nil {
		return ErrNotImplemented
	}
	return f.present(f.buf, f.w, f.h)
}

// fixedDisplay never has an overlay.
type fixedDisplay struct {
	fb Framebuffer
}

func (d fixedDisplay) Framebuffer() Framebuffer { return d.fb }
func (d fixedDisplay) UnobstructedBounds() Rect {
	return Rect{W: d.fb.Width(), H: d.fb.Height()}
}
func (d fixedDisplay) BoundsChanges() <-chan Rect { return nil }

type tinyGoInput struct {
	taps chan struct{}
}

func (in *tinyGoInput) Taps() <-chan struct{} { return in.taps }
func (in *tinyGoInput) Focus() <-chan bool    { return nil }

func (in *tinyGoInput) tap() {
	select {
	case in.taps <- struct{}{}:
	default:
	}
}

// tinyGoClock emits minute ticks aligned to the wall clock.
type tinyGoClock struct {
	ch chan time.Time
}

func newTinyGoClock() *tinyGoClock {
	c := &tinyGoClock{ch: make(chan time.Time, 4)}
	go func() {
		for {
			now := time.Now()
			next := now.Truncate(time.Minute).Add(time.Minute)
			time.Sleep(next.Sub(now))
			select {
			case c.ch <- next:
			default:
			}
		}
	}()
	return c
}

func (c *tinyGoClock) Now() time.Time            { return time.Now() }
func (c *tinyGoClock) Minutes() <-chan time.Time { return c.ch }
func (c *tinyGoClock) Is24Hour() bool            { return true }

// nullRadio reports a permanently disconnected phone link.
type nullRadio struct{}

func (nullRadio) Connected() bool               { return false }
func (nullRadio) ConnectionEvents() <-chan bool { return nil }
func (nullRadio) Send([]byte) error             { return ErrNotImplemented }
func (nullRadio) Inbox() <-chan []byte          { return nil }
func (nullRadio) Dropped() <-chan error         { return nil }
func (nullRadio) Failed() <-chan error          { return nil }
func (nullRadio) Sent() <-chan struct{}         { return nil }

// pinHaptics drives a vibration motor (or buzzer) from a single pin.
type pinHaptics struct {
	pin  machine.Pin
	reqs chan []time.Duration
}

func newPinHaptics(pin machine.Pin) *pinHaptics {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	h := &pinHaptics{pin: pin, reqs: make(chan []time.Duration, 2)}
	go h.run()
	return h
}

func (h *pinHaptics) Pattern(segments []time.Duration) {
	select {
	case h.reqs <- segments:
	default:
	}
}

func (h *pinHaptics) LongPulse() {
	h.Pattern([]time.Duration{500 * time.Millisecond})
}

func (h *pinHaptics) run() {
	for segments := range h.reqs {
		for i, d := range segments {
			if i%2 == 0 {
				h.pin.High()
			} else {
				h.pin.Low()
			}
			time.Sleep(d)
		}
		h.pin.Low()
	}
}
