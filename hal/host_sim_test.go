//go:build !tinygo

package hal

import (
	"errors"
	"path/filepath"
	"testing"

	"watchface/face/proto"
)

func newTestHost(t *testing.T) *hostHAL {
	t.Helper()
	t.Setenv("FACE_FLASH_PATH", filepath.Join(t.TempDir(), "test.flash"))
	t.Setenv("FACE_COMPANION_TEMP", "21")
	return newHost(HostConfig{})
}

func press(r rune) KeyEvent { return KeyEvent{Press: true, Rune: r} }

func TestSimulateObstruction(t *testing.T) {
	h := newTestHost(t)

	h.simulate(press(simKeyObstruct))
	select {
	case r := <-h.disp.BoundsChanges():
		if want := hostScreenHeight - hostObstructionHeight; r.H != want {
			t.Fatalf("bounds H = %d; want %d", r.H, want)
		}
	default:
		t.Fatal("expected a bounds change")
	}
	if got := h.disp.UnobstructedBounds().H; got != hostScreenHeight-hostObstructionHeight {
		t.Fatalf("UnobstructedBounds().H = %d", got)
	}

	h.simulate(press(simKeyObstruct))
	if got := (<-h.disp.BoundsChanges()).H; got != hostScreenHeight {
		t.Fatalf("bounds H after clear = %d; want %d", got, hostScreenHeight)
	}
}

func TestSimulateBattery(t *testing.T) {
	h := newTestHost(t)

	h.simulate(press(simKeyCharging))
	if st := <-h.power.BatteryEvents(); !st.Charging {
		t.Fatalf("Charging = false; want true")
	}
	for i := 0; i < 10; i++ {
		h.simulate(KeyEvent{Code: KeyUp, Press: true})
	}
	if got := h.power.Battery().Percent; got != 100 {
		t.Fatalf("Percent = %d; want clamped 100", got)
	}
}

func TestSimulateInverseMessage(t *testing.T) {
	h := newTestHost(t)

	h.simulate(press(simKeyInverse))
	payload := <-h.radio.Inbox()
	tp, ok, err := proto.Find(payload, proto.KeyInverse)
	if err != nil || !ok {
		t.Fatalf("Find(KeyInverse) ok=%v err=%v", ok, err)
	}
	if v, _ := tp.Int32(); v != 1 {
		t.Fatalf("inverse = %d; want 1", v)
	}
}

func TestRadioCompanionAnswersRequest(t *testing.T) {
	h := newTestHost(t)

	if err := h.radio.Send(proto.RequestPayload()); err != nil {
		t.Fatalf("Send() err = %v", err)
	}
	<-h.radio.Sent()
	h.radio.step()

	tp, ok, err := proto.Find(<-h.radio.Inbox(), proto.KeyTemperature)
	if err != nil || !ok {
		t.Fatalf("Find(KeyTemperature) ok=%v err=%v", ok, err)
	}
	if got := tp.CString(); got != "+21C" {
		t.Fatalf("reading = %q; want %q", got, "+21C")
	}
}

func TestRadioSendWhileDisconnected(t *testing.T) {
	h := newTestHost(t)
	h.simulate(press(simKeyBluetooth))
	if <-h.radio.ConnectionEvents() {
		t.Fatal("connected = true; want false")
	}

	if err := h.radio.Send(proto.RequestPayload()); !errors.Is(err, ErrRadioDisconnected) {
		t.Fatalf("Send() err = %v; want ErrRadioDisconnected", err)
	}
	if err := <-h.radio.Failed(); !errors.Is(err, ErrRadioDisconnected) {
		t.Fatalf("Failed() = %v", err)
	}
}

func TestClockEmitsMinuteBoundaries(t *testing.T) {
	c := newHostClock(true, 1)
	c.last = c.Now().Unix()/60 - 2
	c.step()
	if got := len(c.ch); got < 2 {
		t.Fatalf("ticks = %d; want at least 2", got)
	}
	if ts := <-c.ch; ts.Second() != 0 {
		t.Fatalf("tick %v not minute aligned", ts)
	}
}
