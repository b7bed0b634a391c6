package gfx

import (
	"errors"
	"testing"

	"watchface/hal"

	"tinygo.org/x/tinyfont/proggy"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB { return &testFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)  {}

func (f *testFB) Present() error {
	f.presents++
	return nil
}

func (f *testFB) at(x, y int) Color {
	off := y*f.w*2 + x*2
	p := uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
	for c := ColorBlack; c <= ColorYellow; c++ {
		if rgb565(c.RGBA()) == p {
			return c
		}
	}
	return ColorClear
}

func TestPoolAcquireRelease(t *testing.T) {
	var p Pool

	var held []*Bitmap
	for i := 0; i < PoolSlots; i++ {
		b, err := p.Acquire(34, 84)
		if err != nil {
			t.Fatalf("Acquire() #%d err = %v", i, err)
		}
		held = append(held, b)
	}
	if _, err := p.Acquire(1, 1); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Acquire() when full err = %v; want ErrPoolExhausted", err)
	}
	if got := p.InUse(); got != PoolSlots {
		t.Fatalf("InUse() = %d; want %d", got, PoolSlots)
	}

	if !p.Release(held[3]) {
		t.Fatal("Release() = false; want true")
	}
	if p.Release(held[3]) {
		t.Fatal("double Release() = true; want false")
	}
	if p.Release(&Bitmap{}) {
		t.Fatal("Release(foreign) = true; want false")
	}
	if _, err := p.Acquire(20, 20); err != nil {
		t.Fatalf("Acquire() after release err = %v", err)
	}

	acq, rel := p.Stats()
	if acq != PoolSlots+1 || rel != 1 {
		t.Fatalf("Stats() = %d,%d; want %d,1", acq, rel, PoolSlots+1)
	}
}

func TestPoolRejectsLargeBitmap(t *testing.T) {
	var p Pool
	if _, err := p.Acquire(144, 168); !errors.Is(err, ErrBitmapTooLarge) {
		t.Fatalf("Acquire(144x168) err = %v; want ErrBitmapTooLarge", err)
	}
	if _, err := p.Acquire(0, 5); !errors.Is(err, ErrBitmapTooLarge) {
		t.Fatalf("Acquire(0x5) err = %v; want ErrBitmapTooLarge", err)
	}
}

func TestCompOpPixel(t *testing.T) {
	tcs := []struct {
		op    CompOp
		paper bool
		want  Color
	}{
		{CompAssign, true, ColorWhite},
		{CompAssign, false, ColorBlack},
		{CompAssignInverted, true, ColorBlack},
		{CompAssignInverted, false, ColorWhite},
		{CompSet, true, ColorClear},
		{CompSet, false, ColorRed},
	}
	for _, tc := range tcs {
		if got := tc.op.pixel(tc.paper, ColorRed); got != tc.want {
			t.Fatalf("%s.pixel(paper=%v) = %s; want %s", tc.op, tc.paper, got, tc.want)
		}
	}
}

func TestWindowRenderBitmapLayer(t *testing.T) {
	var p Pool
	b, _ := p.Acquire(4, 4)
	b.Put(1, 1, false)

	fb := newTestFB(10, 10)
	w := NewWindow(ColorBlack)
	l := NewBitmapLayer(Rect{X: 2, Y: 2, W: 4, H: 4})
	l.SetBitmap(b)
	l.SetCompOp(CompAssignInverted)
	w.Add(l)

	if err := w.Render(fb); err != nil {
		t.Fatalf("Render() err = %v", err)
	}
	if w.Dirty() {
		t.Fatal("Dirty() after Render = true")
	}
	if got := fb.at(3, 3); got != ColorWhite {
		t.Fatalf("ink pixel = %s; want white", got)
	}
	if got := fb.at(2, 2); got != ColorBlack {
		t.Fatalf("paper pixel = %s; want black", got)
	}

	l.SetHidden(true)
	if !w.Dirty() {
		t.Fatal("Dirty() after SetHidden = false")
	}
	_ = w.Render(fb)
	if got := fb.at(3, 3); got != ColorBlack {
		t.Fatalf("hidden layer pixel = %s; want background", got)
	}
	if fb.presents != 2 {
		t.Fatalf("presents = %d; want 2", fb.presents)
	}
}

func TestTextLayerClipsAndInvalidates(t *testing.T) {
	fb := newTestFB(40, 20)
	w := NewWindow(ColorBlack)
	txt := NewTextLayer(Rect{X: 0, Y: 0, W: 20, H: 12}, Font{Face: &proggy.TinySZ8pt7b, Ascent: 9}, AlignLeft)
	w.Add(txt)
	_ = w.Render(fb)

	txt.SetText("88888888")
	if !w.Dirty() {
		t.Fatal("Dirty() after SetText = false")
	}
	_ = w.Render(fb)

	inside, outside := 0, 0
	for y := 0; y < fb.h; y++ {
		for x := 0; x < fb.w; x++ {
			if fb.at(x, y) != ColorWhite {
				continue
			}
			if x < 20 && y < 12 {
				inside++
			} else {
				outside++
			}
		}
	}
	if inside == 0 {
		t.Fatal("no text pixels drawn inside the frame")
	}
	if outside != 0 {
		t.Fatalf("%d text pixels drawn outside the frame", outside)
	}

	_ = w.Render(fb)
	txt.SetText("88888888")
	if w.Dirty() {
		t.Fatal("Dirty() after identical SetText = true")
	}
}

func TestBitmapDisplayerInk(t *testing.T) {
	var p Pool
	b, _ := p.Acquire(8, 8)
	b.SetPixel(2, 3, ColorBlack.RGBA())
	if b.Paper(2, 3) {
		t.Fatal("dark SetPixel left paper")
	}
	b.SetPixel(2, 3, ColorWhite.RGBA())
	if !b.Paper(2, 3) {
		t.Fatal("light SetPixel left ink")
	}
	if !b.Paper(-1, 0) {
		t.Fatal("out-of-range pixel is not paper")
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if got := a.Intersect(Rect{X: 5, Y: 5, W: 10, H: 10}); got != (Rect{X: 5, Y: 5, W: 5, H: 5}) {
		t.Fatalf("Intersect() = %+v", got)
	}
	if got := a.Intersect(Rect{X: 20, Y: 0, W: 1, H: 1}); !got.Empty() {
		t.Fatalf("disjoint Intersect() = %+v; want empty", got)
	}
}
