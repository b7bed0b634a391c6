//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

const (
	hostScreenWidth  = 144
	hostScreenHeight = 168

	// Height of the simulated timeline peek overlay.
	hostObstructionHeight = 51
)

// HostConfig configures the desktop simulator.
type HostConfig struct {
	Width  int
	Height int

	Clock24h bool
	// Warp multiplies the simulated wall clock. 0 and 1 mean real time.
	Warp int
}

type hostHAL struct {
	cfg HostConfig

	logger  *hostLogger
	disp    *hostDisplay
	kbd     *hostKeyboard
	in      *hostInput
	clock   *hostClock
	flash   *hostFlash
	power   *hostPower
	radio   *hostRadio
	haptics *hostHaptics

	inverse bool
}

// New returns a host HAL implementation with default settings.
func New() HAL {
	return newHost(HostConfig{})
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = hostScreenWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = hostScreenHeight
	}
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		cfg:     cfg,
		logger:  logger,
		disp:    newHostDisplay(newHostFramebuffer(cfg.Width, cfg.Height)),
		kbd:     newHostKeyboard(),
		in:      newHostInput(),
		clock:   newHostClock(cfg.Clock24h, cfg.Warp),
		flash:   newHostFlash(),
		power:   newHostPower(BatteryState{Percent: 80}),
		radio:   newHostRadio(logger, os.Getenv("FACE_COMPANION_TEMP")),
		haptics: newHostHaptics(logger),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Input() Input     { return h.in }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Power() Power     { return h.power }
func (h *hostHAL) Radio() Radio     { return h.radio }
func (h *hostHAL) Haptics() Haptics { return h.haptics }

// step advances the simulated devices by one frame.
func (h *hostHAL) step() {
	h.kbd.poll()
	for {
		select {
		case ev := <-h.kbd.ch:
			h.simulate(ev)
		default:
			h.clock.step()
			h.radio.step()
			return
		}
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostDisplay struct {
	fb *hostFramebuffer

	mu         sync.Mutex
	obstructed int
	ch         chan Rect
}

func newHostDisplay(fb *hostFramebuffer) *hostDisplay {
	return &hostDisplay{fb: fb, ch: make(chan Rect, 4)}
}

func (d *hostDisplay) Framebuffer() Framebuffer { return d.fb }

func (d *hostDisplay) UnobstructedBounds() Rect {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Rect{W: d.fb.width, H: d.fb.height - d.obstructed}
}

func (d *hostDisplay) BoundsChanges() <-chan Rect { return d.ch }

func (d *hostDisplay) obstruction() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.obstructed
}

func (d *hostDisplay) setObstruction(px int) {
	if px < 0 {
		px = 0
	}
	d.mu.Lock()
	if px == d.obstructed {
		d.mu.Unlock()
		return
	}
	d.obstructed = px
	r := Rect{W: d.fb.width, H: d.fb.height - px}
	d.mu.Unlock()

	select {
	case d.ch <- r:
	default:
	}
}

type hostInput struct {
	taps  chan struct{}
	focus chan bool
}

func newHostInput() *hostInput {
	return &hostInput{taps: make(chan struct{}, 4), focus: make(chan bool, 4)}
}

func (in *hostInput) Taps() <-chan struct{} { return in.taps }
func (in *hostInput) Focus() <-chan bool    { return in.focus }

func (in *hostInput) tap() {
	select {
	case in.taps <- struct{}{}:
	default:
	}
}

func (in *hostInput) setFocus(v bool) {
	select {
	case in.focus <- v:
	default:
	}
}

type hostPower struct {
	mu sync.Mutex
	st BatteryState
	ch chan BatteryState
}

func newHostPower(st BatteryState) *hostPower {
	return &hostPower{st: st, ch: make(chan BatteryState, 4)}
}

func (p *hostPower) Battery() BatteryState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

func (p *hostPower) BatteryEvents() <-chan BatteryState { return p.ch }

func (p *hostPower) update(fn func(st *BatteryState)) {
	p.mu.Lock()
	fn(&p.st)
	if p.st.Percent > 100 {
		p.st.Percent = 100
	}
	st := p.st
	p.mu.Unlock()

	select {
	case p.ch <- st:
	default:
	}
}
