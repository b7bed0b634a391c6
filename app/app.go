// Package app boots the watchface on a HAL and pumps platform events into
// the kernel loop.
package app

import (
	"errors"
	"time"

	"watchface/face/gfx"
	"watchface/face/kernel"
	"watchface/face/logger"
	"watchface/face/persist"
	"watchface/face/proto"
	"watchface/face/watchface"
	"watchface/hal"
	"watchface/internal/buildinfo"
)

// pumpBudget bounds how many platform events one step forwards.
const pumpBudget = 32

// runInterval is the step period of the blocking Run entrypoints.
const runInterval = 50 * time.Millisecond

type Config struct {
	Variant      watchface.Variant
	Reading      bool
	ColorDisplay bool
	LogLevel     logger.Level
}

type system struct {
	h    hal.HAL
	log  *logger.Logger
	loop *kernel.Loop
	face *watchface.Face
	fb   hal.Framebuffer
}

// New initializes the watchface with default config and returns its step
// function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{LogLevel: logger.LevelInfo})
}

// Run starts the watchface and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{LogLevel: logger.LevelInfo})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.step
}

func RunWithConfig(h hal.HAL, cfg Config) {
	step := NewWithConfig(h, cfg)
	for {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("E app: " + err.Error())
			}
		}
		time.Sleep(runInterval)
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	log := logger.New(h.Logger(), "app", cfg.LogLevel)
	log.Infof("%s", buildinfo.Banner())

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, errors.New("app: no display")
	}

	store, err := persist.Open(h.Flash())
	if err != nil {
		log.Errorf("persist: %v; settings will not survive a restart", err)
		store, _ = persist.Open(nil)
	} else if !store.Persistent() {
		log.Warnf("persist: no flash, settings kept in memory")
	}

	s := &system{h: h, log: log, loop: kernel.New(), fb: disp.Framebuffer()}
	installPanicHandler(s)

	face, err := watchface.New(watchface.Config{
		Variant:      cfg.Variant,
		Reading:      cfg.Reading,
		ColorDisplay: cfg.ColorDisplay,
		Clock:        h.Clock(),
		Bounds:       displayBounds{d: disp},
		Status:       statusSource{p: h.Power(), r: h.Radio()},
		Transport:    h.Radio(),
		Haptics:      h.Haptics(),
		Store:        store,
		Pool:         &gfx.Pool{},
		Logger:       log.With("face"),
	})
	if err != nil {
		return nil, err
	}
	s.face = face
	face.Register(s.loop)
	face.Start()
	log.Infof("started variant=%v reading=%v", cfg.Variant, cfg.Reading)
	return s, nil
}

// step forwards pending platform events, runs the loop dry and redraws
// when something changed. It never blocks.
func (s *system) step() error {
	if s.loop.InPanicMode() {
		return nil
	}
	s.pump()
	s.loop.Advance(s.h.Clock().Now())
	s.loop.Drain(0)
	if s.loop.InPanicMode() || !s.face.Window().Dirty() {
		return nil
	}
	return s.face.Window().Render(s.fb)
}

func (s *system) pump() {
	for i := 0; i < pumpBudget; i++ {
		ev, ok := s.poll()
		if !ok {
			return
		}
		switch r := s.loop.Post(ev); r {
		case kernel.PostOK:
		case kernel.PostErrNoHandler:
			s.log.Debugf("%v: %v", ev.Kind, r)
		default:
			s.log.Warnf("%v: %v", ev.Kind, r)
		}
	}
}

// poll takes one ready platform event, if any.
func (s *system) poll() (kernel.Event, bool) {
	h := s.h
	select {
	case t := <-h.Clock().Minutes():
		return kernel.Event{Kind: kernel.EventTick, Unix: t.Unix()}, true
	case <-h.Display().BoundsChanges():
		return kernel.Event{Kind: kernel.EventBounds}, true
	case st := <-h.Power().BatteryEvents():
		return kernel.Event{Kind: kernel.EventBattery, Value: st.Percent, Flag: st.Charging}, true
	case c := <-h.Radio().ConnectionEvents():
		return kernel.Event{Kind: kernel.EventBluetooth, Flag: c}, true
	case f := <-h.Input().Focus():
		return kernel.Event{Kind: kernel.EventFocus, Flag: f}, true
	case <-h.Input().Taps():
		return kernel.Event{Kind: kernel.EventTap, Unix: h.Clock().Now().Unix()}, true
	case p := <-h.Radio().Inbox():
		ev := kernel.Event{Kind: kernel.EventInbox}
		if !ev.SetPayload(p) {
			s.log.Warnf("inbox: %d byte message too large", len(p))
			return kernel.Event{Kind: kernel.EventInboxDropped, Value: uint8(proto.ErrBufferOverflow)}, true
		}
		return ev, true
	case err := <-h.Radio().Dropped():
		s.log.Debugf("radio dropped: %v", err)
		return kernel.Event{Kind: kernel.EventInboxDropped, Value: uint8(errCode(err))}, true
	case err := <-h.Radio().Failed():
		s.log.Debugf("radio failed: %v", err)
		return kernel.Event{Kind: kernel.EventOutboxFailed, Value: uint8(errCode(err))}, true
	case <-h.Radio().Sent():
		return kernel.Event{Kind: kernel.EventOutboxSent}, true
	default:
		return kernel.Event{}, false
	}
}

func errCode(err error) proto.ErrCode {
	switch {
	case errors.Is(err, proto.ErrTooLarge):
		return proto.ErrBufferOverflow
	case errors.Is(err, hal.ErrNotImplemented):
		return proto.ErrInternal
	case errors.Is(err, hal.ErrRadioDisconnected):
		return proto.ErrNotConnected
	default:
		return proto.ErrUnknown
	}
}

type displayBounds struct {
	d hal.Display
}

func (b displayBounds) Bounds() gfx.Rect {
	fb := b.d.Framebuffer()
	return gfx.Rect{W: fb.Width(), H: fb.Height()}
}

func (b displayBounds) UnobstructedBounds() gfx.Rect {
	r := b.d.UnobstructedBounds()
	return gfx.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

type statusSource struct {
	p hal.Power
	r hal.Radio
}

func (s statusSource) Battery() hal.BatteryState { return s.p.Battery() }
func (s statusSource) Connected() bool           { return s.r.Connected() }
