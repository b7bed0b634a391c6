//go:build tinygo && baremetal && !(rp2040 || rp2350)

package hal

import (
	"machine"
	"time"
)

type tinyGoHAL struct {
	logger *serialLogger
	disp   fixedDisplay
	in     *tinyGoInput
	clock  *tinyGoClock
	power  staticPower
}

// New returns a board-agnostic HAL: serial logging, a RAM framebuffer with no
// panel, no flash and no phone link.
func New() HAL {
	return &tinyGoHAL{
		logger: &serialLogger{s: machine.Serial},
		disp:   fixedDisplay{fb: newRAMFramebuffer(144, 168, nil)},
		in:     &tinyGoInput{taps: make(chan struct{}, 1)},
		clock:  newTinyGoClock(),
		power:  staticPower{st: BatteryState{Percent: 100}},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return h.disp }
func (h *tinyGoHAL) Input() Input     { return h.in }
func (h *tinyGoHAL) Flash() Flash     { return stubFlash{} }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Power() Power     { return h.power }
func (h *tinyGoHAL) Radio() Radio     { return nullRadio{} }
func (h *tinyGoHAL) Haptics() Haptics { return logHaptics{l: h.logger} }

type staticPower struct {
	st BatteryState
}

func (p staticPower) Battery() BatteryState              { return p.st }
func (p staticPower) BatteryEvents() <-chan BatteryState { return nil }

type logHaptics struct {
	l Logger
}

func (h logHaptics) Pattern([]time.Duration) { h.l.WriteLineString("haptics: pattern") }
func (h logHaptics) LongPulse()              { h.l.WriteLineString("haptics: long pulse") }

type stubFlash struct{}

func (stubFlash) SizeBytes() uint32                   { return 0 }
func (stubFlash) EraseBlockBytes() uint32             { return 0 }
func (stubFlash) ReadAt([]byte, uint32) (int, error)  { return 0, ErrNotImplemented }
func (stubFlash) WriteAt([]byte, uint32) (int, error) { return 0, ErrNotImplemented }
func (stubFlash) Erase(uint32, uint32) error          { return ErrNotImplemented }
