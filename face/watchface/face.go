// Package watchface assembles the face: time in one of two presentations,
// date, status corner icons and an optional external reading.
//
// A Face is driven entirely through its On* entry points, which the kernel
// loop calls one at a time. Every entry point leaves the layer tree
// consistent before it returns.
package watchface

import (
	"errors"
	"fmt"
	"time"

	"watchface/face/assets"
	"watchface/face/clock"
	"watchface/face/gfx"
	"watchface/face/kernel"
	"watchface/face/layout"
	"watchface/face/logger"
	"watchface/face/persist"
	"watchface/face/proto"
	"watchface/face/reading"
	"watchface/face/status"
	"watchface/face/style"
	"watchface/hal"
)

// KeyStyle persists the inverted flag.
const KeyStyle persist.Key = 1

// TimerTapWindow closes the window in which a tap toggles the style.
const TimerTapWindow kernel.TimerID = 1

// TapWindow is how long after start a tap is accepted.
const TapWindow = 2 * time.Second

// Variant selects how the time is presented.
type Variant uint8

const (
	// VariantText draws the time as one line of text.
	VariantText Variant = iota
	// VariantDigits draws four cached digit bitmaps.
	VariantDigits
)

func (v Variant) String() string {
	switch v {
	case VariantText:
		return "text"
	case VariantDigits:
		return "digits"
	default:
		return "unknown"
	}
}

// ErrUnknownVariant is returned for a variant name or value outside
// VariantText and VariantDigits.
var ErrUnknownVariant = errors.New("watchface: unknown variant")

// ParseVariant accepts the names returned by Variant.String, plus "big" as
// an alias for "digits".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "text":
		return VariantText, nil
	case "digits", "big":
		return VariantDigits, nil
	default:
		return VariantText, fmt.Errorf("%w %q", ErrUnknownVariant, s)
	}
}

// TickSource is the wall clock.
type TickSource interface {
	Now() time.Time
	Is24Hour() bool
}

// BoundsSource reports the whole screen and the part not covered by overlays.
type BoundsSource interface {
	Bounds() gfx.Rect
	UnobstructedBounds() gfx.Rect
}

// StatusSource is peeked for battery and connection state.
type StatusSource = status.Source

// MessageTransport sends requests to the phone.
type MessageTransport interface {
	Connected() bool
	Send(payload []byte) error
}

// Haptics is the vibration motor.
type Haptics interface {
	Pattern(segments []time.Duration)
	LongPulse()
}

// Store is the persisted key/value storage.
type Store interface {
	reading.Store
	ReadBool(key persist.Key) bool
	WriteBool(key persist.Key, v bool) error
}

// Config wires a Face.
type Config struct {
	Variant      Variant
	Reading      bool
	ColorDisplay bool

	Clock     TickSource
	Bounds    BoundsSource
	Status    StatusSource
	Transport MessageTransport
	Haptics   Haptics
	Store     Store

	Pool   *gfx.Pool
	Logger *logger.Logger
}

// timeView is one presentation of the time and date.
type timeView interface {
	showTime(hour, minute int, is24h bool)
	showDate(date, weekday string)
	close()
}

// Face is the complete watchface state.
type Face struct {
	cfg Config
	log *logger.Logger

	win      *gfx.Window
	loader   *assets.Loader
	style    *style.Engine
	layout   *layout.Engine
	detector clock.Detector
	view     timeView
	status   *status.Cache

	reading     *reading.Reading
	readingText *gfx.TextLayer

	loop     *kernel.Loop
	tapArmed bool
}

// New builds the layer tree for cfg. Nothing is drawn until Start.
func New(cfg Config) (*Face, error) {
	if cfg.Clock == nil || cfg.Bounds == nil {
		return nil, errors.New("watchface: clock and bounds are required")
	}
	if cfg.Pool == nil {
		cfg.Pool = &gfx.Pool{}
	}
	screen := cfg.Bounds.Bounds()

	f := &Face{
		cfg:    cfg,
		log:    cfg.Logger,
		win:    gfx.NewWindow(gfx.ColorBlack),
		loader: assets.NewLoader(cfg.Pool),
	}
	f.style = style.New(f.win)

	switch cfg.Variant {
	case VariantText:
		f.layout = layout.New(textHeight, textMaxTop)
		f.view = newTextView(f, screen)
	case VariantDigits:
		f.layout = layout.New(assets.DigitHeight, layout.NoClamp)
		f.view = newDigitView(f, screen)
	default:
		return nil, fmt.Errorf("new face: %w", ErrUnknownVariant)
	}

	f.status = status.New(status.Config{
		Width:        screen.W,
		ColorDisplay: cfg.ColorDisplay,
		Source:       cfg.Status,
		Vibrator:     cfg.Haptics,
		Icons:        f.loader,
		Logger:       f.log.With("status"),
	})
	for _, l := range f.status.Layers() {
		f.win.Add(l)
	}
	f.style.Register(f.status)

	if cfg.Reading {
		var st reading.Store
		if cfg.Store != nil {
			st = cfg.Store
		}
		f.reading = reading.New(st, f.log.With("reading"))
		f.readingText = gfx.NewTextLayer(gfx.Rect{X: (screen.W - 60) / 2, Y: 8, W: 60, H: 23}, assets.FontLabel, gfx.AlignCenter)
		f.win.Add(f.readingText)
		f.style.Register(style.Text(f.readingText))
	}
	return f, nil
}

// Window returns the root of the layer tree.
func (f *Face) Window() *gfx.Window { return f.win }

// Inverted reports the style currently applied.
func (f *Face) Inverted() bool { return f.style.Inverted() }

// Status returns the status cache.
func (f *Face) Status() *status.Cache { return f.status }

// Start applies the persisted style, draws the first frame and restores the
// persisted reading.
func (f *Face) Start() {
	f.applyStyle()
	f.forceUpdate()

	if f.reading != nil {
		now := f.cfg.Clock.Now().Unix()
		if f.reading.Load(now) {
			f.log.Infof("restored reading %q", f.reading.DisplayValue(now))
		}
		f.refreshReading(now)
	}
	f.armTapWindow(f.cfg.Clock.Now())
}

func (f *Face) storedInverted() bool {
	if f.cfg.Store == nil {
		return f.style.Inverted()
	}
	return f.cfg.Store.ReadBool(KeyStyle)
}

func (f *Face) applyStyle() {
	f.style.Apply(f.storedInverted())
}

// forceUpdate re-reads status, redraws the time and re-lays out.
func (f *Face) forceUpdate() {
	f.status.Update()
	f.updateTime(f.cfg.Clock.Now())
	f.OnBoundsChanged()
}

func (f *Face) updateTime(t time.Time) {
	if f.detector.Observe(t) {
		f.view.showDate(f.detector.Date(), f.detector.Weekday())
	}
	f.view.showTime(t.Hour(), t.Minute(), f.cfg.Clock.Is24Hour())
}

// OnTick redraws for the minute t. Every fifteen minutes it asks the phone
// for a new reading and re-checks the current one.
func (f *Face) OnTick(t time.Time) {
	f.updateTime(t)
	if f.reading == nil || t.Minute()%reading.RefreshMinutes != 0 {
		return
	}
	if f.cfg.Transport != nil && f.reading.OnTick(t, f.cfg.Transport.Connected()) {
		if err := f.cfg.Transport.Send(proto.RequestPayload()); err != nil {
			f.log.Errorf("request reading: %v", err)
		}
	}
	f.refreshReading(t.Unix())
}

// OnBoundsChanged re-lays out for the current unobstructed area.
func (f *Face) OnBoundsChanged() {
	f.layout.Relayout(f.cfg.Bounds.Bounds(), f.cfg.Bounds.UnobstructedBounds())
}

// OnBatteryChanged, OnBluetoothChanged and OnFocusChanged forward to the
// status cache.
func (f *Face) OnBatteryChanged(s hal.BatteryState) { f.status.OnBatteryChanged(s) }
func (f *Face) OnBluetoothChanged(connected bool)   { f.status.OnBluetoothChanged(connected) }
func (f *Face) OnFocusChanged(focused bool)         { f.status.OnFocusChanged(focused) }

// OnMessage handles an inbound dictionary: a style flag, a reading or both.
func (f *Face) OnMessage(payload []byte) {
	if err := proto.Walk(payload, func(proto.Tuple) {}); err != nil {
		f.log.Errorf("inbox: %v", err)
		return
	}
	handled := false
	if tp, ok, _ := proto.Find(payload, proto.KeyInverse); ok {
		if v, ok := tp.Int32(); ok {
			f.setStyle(v == 1)
		} else {
			f.log.Errorf("inbox: inverse flag is not an integer (type %d, %d bytes)", tp.Type, len(tp.Value))
		}
		handled = true
	}
	if f.reading == nil {
		return
	}
	now := f.cfg.Clock.Now().Unix()
	if err := f.reading.ReceivePayload(payload, now); err != nil {
		if !handled {
			f.log.Errorf("inbox: %v", err)
		}
		return
	}
	f.refreshReading(now)
}

// OnMessageDropped logs the loss and re-checks the reading.
func (f *Face) OnMessageDropped(reason proto.ErrCode) {
	f.log.Errorf("message dropped: %v", reason)
	if f.reading != nil {
		f.refreshReading(f.cfg.Clock.Now().Unix())
	}
}

// OnOutboxFailed and OnOutboxSent only log the outcome of a request.
func (f *Face) OnOutboxFailed(reason proto.ErrCode) {
	f.log.Errorf("outbox send failed: %v", reason)
}

func (f *Face) OnOutboxSent() {
	f.log.Infof("outbox send success")
}

// OnTap toggles the style while the tap window is open. Only the first tap
// counts.
func (f *Face) OnTap() {
	if !f.tapArmed {
		return
	}
	f.setStyle(!f.storedInverted())
	f.closeTapWindow()
}

// OnTimer handles the face's one-shot timers.
func (f *Face) OnTimer(id kernel.TimerID) {
	if id == TimerTapWindow {
		f.closeTapWindow()
	}
}

// setStyle persists the flag and redraws everything with it.
func (f *Face) setStyle(inverted bool) {
	if f.cfg.Store != nil {
		if err := f.cfg.Store.WriteBool(KeyStyle, inverted); err != nil {
			f.log.Errorf("persist style: %v", err)
		}
	}
	f.style.Apply(inverted)
	f.forceUpdate()
	if f.cfg.Haptics != nil {
		f.cfg.Haptics.LongPulse()
	}
}

func (f *Face) refreshReading(now int64) {
	f.readingText.SetText(f.reading.DisplayValue(now))
}

func (f *Face) armTapWindow(now time.Time) {
	f.tapArmed = true
	if f.loop == nil {
		return
	}
	if r := f.loop.Schedule(TimerTapWindow, now.Add(TapWindow)); r != kernel.PostOK {
		f.log.Warnf("tap window timer: %v", r)
	}
}

func (f *Face) closeTapWindow() {
	f.tapArmed = false
	if f.loop != nil {
		f.loop.Cancel(TimerTapWindow)
		f.loop.Unsubscribe(kernel.EventTap)
	}
}

// Close releases every bitmap the face holds.
func (f *Face) Close() {
	f.view.close()
	f.status.Close()
}
