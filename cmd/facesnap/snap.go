//go:build !tinygo

package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"watchface/face/gfx"
	"watchface/face/persist"
	"watchface/face/reading"
	"watchface/face/watchface"
	"watchface/hal"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

const (
	screenWidth  = 144
	screenHeight = 168

	obstructionHeight = 51

	bezel        = 16
	captionSpace = 22
)

// snapshot describes the device state to render.
type snapshot struct {
	Variant      watchface.Variant
	Time         time.Time
	Clock24h     bool
	Inverted     bool
	ColorDisplay bool
	Reading      string
	Obstructed   bool
	Battery      hal.BatteryState
	Disconnected bool
}

type fixedClock struct {
	now   time.Time
	is24h bool
}

func (c fixedClock) Now() time.Time { return c.now }
func (c fixedClock) Is24Hour() bool { return c.is24h }

type fixedBounds struct {
	obstructed bool
}

func (b fixedBounds) Bounds() gfx.Rect { return gfx.Rect{W: screenWidth, H: screenHeight} }

func (b fixedBounds) UnobstructedBounds() gfx.Rect {
	if b.obstructed {
		return gfx.Rect{W: screenWidth, H: screenHeight - obstructionHeight}
	}
	return b.Bounds()
}

type fixedStatus struct {
	battery   hal.BatteryState
	connected bool
}

func (s fixedStatus) Battery() hal.BatteryState { return s.battery }
func (s fixedStatus) Connected() bool           { return s.connected }

// render draws one frame of the face for s.
func render(s snapshot) (*image.RGBA, error) {
	store, err := persist.Open(nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.WriteBool(watchface.KeyStyle, s.Inverted); err != nil {
		return nil, fmt.Errorf("write style: %w", err)
	}
	if s.Reading != "" {
		if err := store.WriteString(reading.KeyValue, s.Reading); err != nil {
			return nil, fmt.Errorf("write reading: %w", err)
		}
		if err := store.WriteInt(reading.KeyTimestamp, s.Time.Unix()); err != nil {
			return nil, fmt.Errorf("write reading timestamp: %w", err)
		}
	}

	face, err := watchface.New(watchface.Config{
		Variant:      s.Variant,
		Reading:      s.Reading != "",
		ColorDisplay: s.ColorDisplay,
		Clock:        fixedClock{now: s.Time, is24h: s.Clock24h},
		Bounds:       fixedBounds{obstructed: s.Obstructed},
		Status:       fixedStatus{battery: s.Battery, connected: !s.Disconnected},
		Store:        store,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()
	face.Start()

	fb := hal.NewMemoryFramebuffer(screenWidth, screenHeight)
	if err := face.Window().Render(fb); err != nil {
		return nil, err
	}
	return fb.RGBA(), nil
}

var (
	bezelColor   = color.RGBA{R: 0x22, G: 0x22, B: 0x26, A: 0xFF}
	captionColor = color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
)

// compose scales frame by scale and mounts it in a rounded bezel with a
// caption underneath.
func compose(frame image.Image, scale int, caption string) image.Image {
	if scale < 1 {
		scale = 1
	}
	b := frame.Bounds()
	sw, sh := b.Dx()*scale, b.Dy()*scale

	scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), frame, b, draw.Src, nil)

	w, h := sw+2*bezel, sh+2*bezel+captionSpace
	dc := gg.NewContext(w, h)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), bezel)
	dc.SetColor(bezelColor)
	dc.Fill()

	dc.DrawImage(scaled, bezel, bezel)

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(captionColor)
	dc.DrawStringAnchored(caption, float64(w)/2, float64(sh+2*bezel)+captionSpace/2-4, 0.5, 0.5)
	return dc.Image()
}

func (s snapshot) caption() string {
	c := fmt.Sprintf("%s %s", s.Time.Format("15:04"), s.Variant)
	if s.Inverted {
		c += " inverted"
	}
	if s.Obstructed {
		c += " obstructed"
	}
	return c
}
