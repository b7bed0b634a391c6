package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrRadioDisconnected is reported for sends while the phone is not connected.
var ErrRadioDisconnected = errors.New("radio: not connected")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Display provides the framebuffer and the area not covered by system overlays.
type Display interface {
	Framebuffer() Framebuffer
	// UnobstructedBounds reports the usable area. It equals the full
	// framebuffer bounds when no overlay is shown.
	UnobstructedBounds() Rect
	// BoundsChanges delivers the new usable area whenever it changes.
	BoundsChanges() <-chan Rect
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Only the host simulator produces them.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Input provides access to input devices (if available).
type Input interface {
	// Taps delivers one value per detected wrist tap.
	Taps() <-chan struct{}
	// Focus delivers app focus changes (true when focus is regained).
	Focus() <-chan bool
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Clock provides wall-clock time at minute granularity.
type Clock interface {
	Now() time.Time
	// Minutes delivers the wall-clock time once per minute, minute-aligned.
	Minutes() <-chan time.Time
	Is24Hour() bool
}

// BatteryState is a battery sample.
type BatteryState struct {
	Percent  uint8
	Charging bool
}

// Power reports the battery state.
type Power interface {
	Battery() BatteryState
	BatteryEvents() <-chan BatteryState
}

// Radio is the phone link: connection state plus a best-effort message channel.
type Radio interface {
	Connected() bool
	ConnectionEvents() <-chan bool

	// Send queues one outbound message. Delivery is not guaranteed; failures
	// reported later arrive on Failed.
	Send(payload []byte) error
	Inbox() <-chan []byte
	Dropped() <-chan error
	Failed() <-chan error
	Sent() <-chan struct{}
}

// Haptics drives the vibration motor. Requests are fire-and-forget.
type Haptics interface {
	Pattern(segments []time.Duration)
	LongPulse()
}

// HAL provides the only contact point between the watchface and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Flash() Flash
	Clock() Clock
	Power() Power
	Radio() Radio
	Haptics() Haptics
}
