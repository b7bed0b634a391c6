// Package assets produces the watchface bitmaps and fonts.
//
// Digit glyphs are rasterised from a tinyfont face into pool bitmaps on
// demand, stretched vertically to fill the tall digit cell. Icons come from
// ASCII art. Every loaded bitmap is owned by the caller until it is freed.
package assets

import (
	"errors"
	"fmt"
	"image/color"

	"watchface/face/gfx"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// ID names a bitmap resource.
type ID uint8

const (
	Digit0 ID = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Separator
	BatteryFull
	BatteryHalf
	BatteryLow
	BatteryCharge
	BTConnect
	BTDisconnect

	numIDs
)

const (
	DigitWidth  = 34
	DigitHeight = 84

	SeparatorWidth = 8

	BatterySize = 16
	BTSize      = 20
)

var ErrUnknownResource = errors.New("assets: unknown resource")

var digitFace tinyfont.Fonter = &freesans.Bold24pt7b

// DigitID maps 0..9 to its resource.
func DigitID(d int) (ID, bool) {
	if d < 0 || d > 9 {
		return 0, false
	}
	return Digit0 + ID(d), true
}

// Size returns the bitmap dimensions of id.
func Size(id ID) (w, h int, err error) {
	switch {
	case id <= Digit9:
		return DigitWidth, DigitHeight, nil
	case id == Separator:
		return SeparatorWidth, DigitHeight, nil
	case id >= BatteryFull && id <= BatteryCharge:
		return BatterySize, BatterySize, nil
	case id == BTConnect || id == BTDisconnect:
		return BTSize, BTSize, nil
	default:
		return 0, 0, fmt.Errorf("size %d: %w", id, ErrUnknownResource)
	}
}

// Loader acquires resource bitmaps from a pool.
type Loader struct {
	pool *gfx.Pool
}

func NewLoader(pool *gfx.Pool) *Loader {
	return &Loader{pool: pool}
}

// Load acquires and draws the bitmap for id.
func (l *Loader) Load(id ID) (*gfx.Bitmap, error) {
	w, h, err := Size(id)
	if err != nil {
		return nil, err
	}
	b, err := l.pool.Acquire(w, h)
	if err != nil {
		return nil, fmt.Errorf("load resource %d: %w", id, err)
	}
	switch {
	case id <= Digit9:
		drawDigit(b, rune('0'+id-Digit0))
	case id == Separator:
		drawSeparator(b)
	default:
		drawArt(b, art(id))
	}
	return b, nil
}

// Free returns b to the pool. nil is ignored.
func (l *Loader) Free(b *gfx.Bitmap) {
	if b != nil {
		l.pool.Release(b)
	}
}

// Digits adapts the loader to per-digit acquisition.
func (l *Loader) Digits() Digits { return Digits{l: l} }

// Digits loads digit glyph bitmaps by value.
type Digits struct {
	l *Loader
}

func (d Digits) Acquire(digit int) (*gfx.Bitmap, error) {
	id, ok := DigitID(digit)
	if !ok {
		return nil, fmt.Errorf("digit %d: %w", digit, ErrUnknownResource)
	}
	return d.l.Load(id)
}

func (d Digits) Release(b *gfx.Bitmap) { d.l.Free(b) }

func art(id ID) []string {
	switch id {
	case BatteryFull:
		return artBatteryFull[:]
	case BatteryHalf:
		return artBatteryHalf[:]
	case BatteryLow:
		return artBatteryLow[:]
	case BatteryCharge:
		return artBatteryCharge[:]
	case BTConnect:
		return artBTConnect[:]
	case BTDisconnect:
		return artBTDisconnect[:]
	default:
		return nil
	}
}

func drawArt(b *gfx.Bitmap, rows []string) {
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			b.Put(x, y, row[x] != '#')
		}
	}
}

func drawSeparator(b *gfx.Bitmap) {
	for _, top := range [...]int{26, 52} {
		for y := top; y < top+6; y++ {
			for x := 1; x < SeparatorWidth-1; x++ {
				b.Put(x, y, false)
			}
		}
	}
}

// drawDigit renders r doubled vertically and centred in b.
func drawDigit(b *gfx.Bitmap, r rune) {
	var m measure
	m.reset()
	tinyfont.DrawChar(&m, digitFace, 0, 0, r, ink)
	if m.empty() {
		return
	}
	gw, gh := m.x1-m.x0+1, m.y1-m.y0+1

	s := stretch{b: b, sy: 2}
	if gh*s.sy > b.Height() {
		s.sy = 1
	}
	s.dx = (b.Width()-gw)/2 - m.x0
	s.dy = (b.Height()-gh*s.sy)/2 - m.y0*s.sy
	tinyfont.DrawChar(&s, digitFace, 0, 0, r, ink)
}

var ink = color.RGBA{A: 0xFF}

// measure records the extent of everything drawn into it.
type measure struct {
	x0, y0, x1, y1 int
}

func (m *measure) reset() {
	m.x0, m.y0 = 1<<15, 1<<15
	m.x1, m.y1 = -1<<15, -1<<15
}

func (m *measure) empty() bool { return m.x1 < m.x0 }

func (m *measure) Size() (x, y int16) { return 1<<15 - 1, 1<<15 - 1 }

func (m *measure) SetPixel(x, y int16, _ color.RGBA) {
	m.x0, m.x1 = min(m.x0, int(x)), max(m.x1, int(x))
	m.y0, m.y1 = min(m.y0, int(y)), max(m.y1, int(y))
}

func (m *measure) Display() error { return nil }

// stretch scales glyph rows by sy and shifts by (dx, dy).
type stretch struct {
	b      *gfx.Bitmap
	sy     int
	dx, dy int
}

func (s *stretch) Size() (x, y int16) { return int16(s.b.Width()), int16(s.b.Height()) }

func (s *stretch) SetPixel(x, y int16, _ color.RGBA) {
	px := int(x) + s.dx
	for i := 0; i < s.sy; i++ {
		s.b.Put(px, int(y)*s.sy+s.dy+i, false)
	}
}

func (s *stretch) Display() error { return nil }
