package watchface

import (
	"testing"
	"time"

	"watchface/face/gfx"
	"watchface/face/kernel"
	"watchface/face/persist"
	"watchface/face/proto"
	"watchface/face/reading"
	"watchface/face/slots"
	"watchface/hal"
)

type fakeClock struct {
	now   time.Time
	is24h bool
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Is24Hour() bool { return c.is24h }

type fakeBounds struct {
	full, usable gfx.Rect
}

func (b *fakeBounds) Bounds() gfx.Rect             { return b.full }
func (b *fakeBounds) UnobstructedBounds() gfx.Rect { return b.usable }

type fakeStatus struct {
	battery   hal.BatteryState
	connected bool
}

func (s *fakeStatus) Battery() hal.BatteryState { return s.battery }
func (s *fakeStatus) Connected() bool           { return s.connected }

type fakeTransport struct {
	connected bool
	sent      [][]byte
}

func (t *fakeTransport) Connected() bool { return t.connected }

func (t *fakeTransport) Send(p []byte) error {
	t.sent = append(t.sent, p)
	return nil
}

type fakeHaptics struct {
	patterns int
	pulses   int
}

func (h *fakeHaptics) Pattern([]time.Duration) { h.patterns++ }
func (h *fakeHaptics) LongPulse()              { h.pulses++ }

type rig struct {
	face      *Face
	clock     *fakeClock
	bounds    *fakeBounds
	status    *fakeStatus
	transport *fakeTransport
	haptics   *fakeHaptics
	store     *persist.Store
	pool      *gfx.Pool
}

func newRig(t *testing.T, variant Variant, withReading bool) *rig {
	t.Helper()
	store, err := persist.Open(nil)
	if err != nil {
		t.Fatalf("persist.Open() err = %v", err)
	}
	screen := gfx.Rect{W: 144, H: 168}
	r := &rig{
		clock:     &fakeClock{now: time.Date(2024, time.February, 29, 9, 5, 0, 0, time.UTC)},
		bounds:    &fakeBounds{full: screen, usable: screen},
		status:    &fakeStatus{battery: hal.BatteryState{Percent: 70}, connected: true},
		transport: &fakeTransport{connected: true},
		haptics:   &fakeHaptics{},
		store:     store,
		pool:      &gfx.Pool{},
	}
	r.face, err = New(Config{
		Variant:   variant,
		Reading:   withReading,
		Clock:     r.clock,
		Bounds:    r.bounds,
		Status:    r.status,
		Transport: r.transport,
		Haptics:   r.haptics,
		Store:     r.store,
		Pool:      r.pool,
	})
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	return r
}

func (r *rig) digits() *slots.Cache {
	return r.face.view.(*digitView).cache
}

func TestDigitsStartTwelveHour(t *testing.T) {
	r := newRig(t, VariantDigits, false)
	r.face.Start()

	c := r.digits()
	got := [4]int{c.Resident(0), c.Resident(1), c.Resident(2), c.Resident(3)}
	if want := [4]int{slots.Empty, 9, 0, 5}; got != want {
		t.Fatalf("residents = %v; want %v", got, want)
	}
	// three digits, the separator and two status icons
	if n := r.pool.InUse(); n != 6 {
		t.Fatalf("InUse() = %d; want 6", n)
	}
}

func TestDigitsTwentyFourHourKeepsLeadingZero(t *testing.T) {
	r := newRig(t, VariantDigits, false)
	r.clock.is24h = true
	r.face.Start()

	if got := r.digits().Resident(0); got != 0 {
		t.Fatalf("hour tens = %d; want 0", got)
	}
}

func TestDigitsTickOnlyTouchesChangedSlots(t *testing.T) {
	r := newRig(t, VariantDigits, false)
	r.face.Start()
	before, _ := r.pool.Stats()

	r.face.OnTick(r.clock.now.Add(time.Minute))
	after, _ := r.pool.Stats()
	if after-before != 1 {
		t.Fatalf("acquisitions for 09:05 -> 09:06 = %d; want 1", after-before)
	}

	r.face.OnTick(r.clock.now.Add(time.Minute))
	if again, _ := r.pool.Stats(); again != after {
		t.Fatalf("acquisitions for repeated minute = %d; want 0", again-after)
	}
}

func TestDigitsObstructionMovesAndHides(t *testing.T) {
	r := newRig(t, VariantDigits, false)
	r.face.Start()
	v := r.face.view.(*digitView)

	if y := v.digits[0].Frame().Y; y != 84 {
		t.Fatalf("digit y = %d; want 84", y)
	}
	if v.date.Hidden() || v.weekday.Hidden() || v.line.Hidden() {
		t.Fatalf("secondary elements hidden without obstruction")
	}

	r.bounds.usable = gfx.Rect{W: 144, H: 117}
	r.face.OnBoundsChanged()
	if y := v.digits[3].Frame().Y; y != 33 {
		t.Fatalf("digit y = %d; want 33", y)
	}
	if y := v.sep.Frame().Y; y != 33 {
		t.Fatalf("separator y = %d; want 33", y)
	}
	if !v.date.Hidden() || !v.weekday.Hidden() || !v.line.Hidden() {
		t.Fatalf("secondary elements visible while obstructed")
	}
	if v.digits[3].Hidden() {
		t.Fatalf("digit hidden by obstruction")
	}
}

func TestTextVariant(t *testing.T) {
	r := newRig(t, VariantText, false)
	r.face.Start()
	v := r.face.view.(*textView)

	if got := v.time.Text(); got != "9:05" {
		t.Fatalf("time = %q; want %q", got, "9:05")
	}
	if v.date.Text() != "February 29" || v.weekday.Text() != "Thursday" {
		t.Fatalf("date = %q weekday = %q", v.date.Text(), v.weekday.Text())
	}
	if y := v.time.Frame().Y; y != 91 {
		t.Fatalf("time y = %d; want 91", y)
	}

	r.bounds.usable = gfx.Rect{W: 144, H: 120}
	r.face.OnBoundsChanged()
	if y := v.time.Frame().Y; y != 63 {
		t.Fatalf("obstructed time y = %d; want 63", y)
	}
	if !v.weekday.Hidden() || v.date.Hidden() {
		t.Fatalf("obstructed hidden weekday=%v date=%v; want true,false", v.weekday.Hidden(), v.date.Hidden())
	}
}

func TestTapTogglesOnceWithinWindow(t *testing.T) {
	r := newRig(t, VariantDigits, false)
	loop := kernel.New()
	r.face.Register(loop)
	r.face.Start()

	if r.face.Inverted() {
		t.Fatalf("Inverted() = true at start; want false")
	}
	loop.Post(kernel.Event{Kind: kernel.EventTap})
	loop.Drain(0)

	if !r.face.Inverted() || !r.store.ReadBool(KeyStyle) {
		t.Fatalf("after tap inverted=%v stored=%v; want true,true", r.face.Inverted(), r.store.ReadBool(KeyStyle))
	}
	if r.haptics.pulses != 1 {
		t.Fatalf("pulses = %d; want 1", r.haptics.pulses)
	}
	if r.face.Window().Background() != gfx.ColorWhite {
		t.Fatalf("background = %v; want white", r.face.Window().Background())
	}
	if loop.Subscribed(kernel.EventTap) {
		t.Fatalf("tap still subscribed after toggle")
	}
	if res := loop.Post(kernel.Event{Kind: kernel.EventTap}); res != kernel.PostErrNoHandler {
		t.Fatalf("second tap Post() = %v; want no handler", res)
	}
}

func TestTapWindowExpires(t *testing.T) {
	r := newRig(t, VariantText, false)
	loop := kernel.New()
	r.face.Register(loop)
	r.face.Start()

	loop.Advance(r.clock.now.Add(time.Second))
	loop.Drain(0)
	if !loop.Subscribed(kernel.EventTap) {
		t.Fatalf("tap unsubscribed before the window closed")
	}

	loop.Advance(r.clock.now.Add(TapWindow))
	loop.Drain(0)
	if loop.Subscribed(kernel.EventTap) {
		t.Fatalf("tap still subscribed after the window closed")
	}
	r.face.OnTap()
	if r.face.Inverted() {
		t.Fatalf("late tap toggled the style")
	}
}

func TestStylePersistsAcrossRestart(t *testing.T) {
	r := newRig(t, VariantText, false)
	if err := r.store.WriteBool(KeyStyle, true); err != nil {
		t.Fatalf("WriteBool() err = %v", err)
	}
	r.face.Start()
	if !r.face.Inverted() {
		t.Fatalf("Inverted() = false; want persisted true")
	}
	if got := r.face.view.(*textView).time.Color(); got != gfx.ColorBlack {
		t.Fatalf("time colour = %v; want black", got)
	}
}

func TestInverseMessageSetsFlag(t *testing.T) {
	r := newRig(t, VariantText, false)
	r.face.Start()

	for i, v := range []uint8{1, 1, 0} {
		var w proto.DictWriter
		w.WriteUint8(proto.KeyInverse, v)
		r.face.OnMessage(w.Bytes())
		if got := r.face.Inverted(); got != (v == 1) {
			t.Fatalf("message %d (%d): Inverted() = %v", i, v, got)
		}
	}
	if r.haptics.pulses != 3 {
		t.Fatalf("pulses = %d; want 3", r.haptics.pulses)
	}
}

func TestInverseMessageIgnoresNonInteger(t *testing.T) {
	r := newRig(t, VariantText, false)
	r.face.Start()
	r.face.OnMessage(func() []byte {
		var w proto.DictWriter
		w.WriteUint8(proto.KeyInverse, 1)
		return w.Bytes()
	}())

	var w proto.DictWriter
	w.WriteCString(proto.KeyInverse, "x")
	r.face.OnMessage(w.Bytes())

	if !r.face.Inverted() || !r.store.ReadBool(KeyStyle) {
		t.Fatalf("Inverted() = %v, stored = %v; want both true", r.face.Inverted(), r.store.ReadBool(KeyStyle))
	}
	if r.haptics.pulses != 1 {
		t.Fatalf("pulses = %d; want 1", r.haptics.pulses)
	}
}

func TestReadingLifecycle(t *testing.T) {
	r := newRig(t, VariantText, true)
	r.face.Start()

	if got := r.face.readingText.Text(); got != reading.Placeholder {
		t.Fatalf("initial reading = %q; want placeholder", got)
	}

	r.face.OnMessage(proto.TemperaturePayload("+21C"))
	if got := r.face.readingText.Text(); got != "+21C" {
		t.Fatalf("reading = %q; want %q", got, "+21C")
	}

	r.face.OnMessage([]byte{2, 0})
	if got := r.face.readingText.Text(); got != "+21C" {
		t.Fatalf("reading after malformed = %q; want unchanged", got)
	}

	quarter := time.Date(2024, time.February, 29, 9, 15, 0, 0, time.UTC)
	r.face.OnTick(quarter)
	if len(r.transport.sent) != 1 {
		t.Fatalf("requests = %d; want 1", len(r.transport.sent))
	}
	if _, ok, _ := proto.Find(r.transport.sent[0], proto.KeyRequest); !ok {
		t.Fatalf("request payload = %v; want marker", r.transport.sent[0])
	}

	r.transport.connected = false
	late := r.clock.now.Add(2*time.Hour + 10*time.Minute)
	r.face.OnTick(late)
	if len(r.transport.sent) != 1 {
		t.Fatalf("requests while disconnected = %d; want 1", len(r.transport.sent))
	}
	if got := r.face.readingText.Text(); got != reading.Placeholder {
		t.Fatalf("stale reading = %q; want placeholder", got)
	}
}

func TestReadingRestoredAtStart(t *testing.T) {
	r := newRig(t, VariantDigits, true)
	if err := r.store.WriteString(reading.KeyValue, "-4C"); err != nil {
		t.Fatalf("WriteString() err = %v", err)
	}
	if err := r.store.WriteInt(reading.KeyTimestamp, r.clock.now.Unix()-60); err != nil {
		t.Fatalf("WriteInt() err = %v", err)
	}
	r.face.Start()
	if got := r.face.readingText.Text(); got != "-4C" {
		t.Fatalf("restored reading = %q; want %q", got, "-4C")
	}
}

func TestDroppedMessageRechecksReading(t *testing.T) {
	r := newRig(t, VariantText, true)
	r.face.Start()
	r.face.OnMessage(proto.TemperaturePayload("+1C"))

	r.clock.now = r.clock.now.Add(reading.MaxAge*time.Second + time.Second)
	r.face.OnMessageDropped(proto.ErrBusy)
	if got := r.face.readingText.Text(); got != reading.Placeholder {
		t.Fatalf("reading after drop = %q; want placeholder", got)
	}
}

func TestDisconnectAlertThroughLoop(t *testing.T) {
	r := newRig(t, VariantText, false)
	loop := kernel.New()
	r.face.Register(loop)
	r.face.Start()

	loop.Post(kernel.Event{Kind: kernel.EventBluetooth, Flag: true})
	loop.Post(kernel.Event{Kind: kernel.EventBluetooth, Flag: false})
	loop.Post(kernel.Event{Kind: kernel.EventBluetooth, Flag: false})
	loop.Drain(0)
	if r.haptics.patterns != 1 {
		t.Fatalf("patterns = %d; want 1", r.haptics.patterns)
	}

	r.status.connected = false
	loop.Post(kernel.Event{Kind: kernel.EventFocus, Flag: true})
	loop.Drain(0)
	if r.haptics.patterns != 2 {
		t.Fatalf("patterns after focus = %d; want 2", r.haptics.patterns)
	}
}

func TestRenderAndClose(t *testing.T) {
	r := newRig(t, VariantDigits, true)
	r.face.Start()

	fb := hal.NewMemoryFramebuffer(144, 168)
	if err := r.face.Window().Render(fb); err != nil {
		t.Fatalf("Render() err = %v", err)
	}
	if fb.Presents() != 1 || r.face.Window().Dirty() {
		t.Fatalf("presents = %d dirty = %v", fb.Presents(), r.face.Window().Dirty())
	}

	lit := 0
	for y := 86; y < 168; y++ {
		for x := 34; x < 68; x++ {
			if rr, _, _ := fb.PixelRGB(x, y); rr > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("hour units digit drew no white pixels")
	}

	r.face.Close()
	if n := r.pool.InUse(); n != 0 {
		t.Fatalf("InUse() after Close = %d; want 0", n)
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant("digits"); err != nil || v != VariantDigits {
		t.Fatalf("ParseVariant(digits) = %v,%v", v, err)
	}
	if v, err := ParseVariant("big"); err != nil || v != VariantDigits {
		t.Fatalf("ParseVariant(big) = %v,%v", v, err)
	}
	if _, err := ParseVariant("analog"); err == nil {
		t.Fatalf("ParseVariant(analog) err = nil; want error")
	}
}
