package gfx

import "tinygo.org/x/tinyfont"

// Layer is a retained drawing element owned by a Window.
type Layer interface {
	Frame() Rect
	Hidden() bool
	draw(c *Canvas)
	attach(w *Window)
}

type base struct {
	frame  Rect
	hidden bool
	win    *Window
}

func (b *base) Frame() Rect  { return b.frame }
func (b *base) Hidden() bool { return b.hidden }

func (b *base) attach(w *Window) { b.win = w }

func (b *base) invalidate() {
	if b.win != nil {
		b.win.Invalidate()
	}
}

func (b *base) SetFrame(r Rect) {
	if b.frame == r {
		return
	}
	b.frame = r
	b.invalidate()
}

func (b *base) SetHidden(hidden bool) {
	if b.hidden == hidden {
		return
	}
	b.hidden = hidden
	b.invalidate()
}

// Align is horizontal text or bitmap alignment within a frame.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func alignX(frameW, contentW int, a Align) int {
	switch a {
	case AlignCenter:
		return (frameW - contentW) / 2
	case AlignRight:
		return frameW - contentW
	default:
		return 0
	}
}

// Font pairs a tinyfont face with the distance from the top of a line to
// its baseline.
type Font struct {
	Face   tinyfont.Fonter
	Ascent int16
}

// TextLayer draws one line of text.
type TextLayer struct {
	base
	text  string
	font  Font
	color Color
	bg    Color
	align Align
}

func NewTextLayer(frame Rect, font Font, align Align) *TextLayer {
	return &TextLayer{base: base{frame: frame}, font: font, color: ColorWhite, align: align}
}

func (t *TextLayer) Text() string { return t.text }
func (t *TextLayer) Color() Color { return t.color }

// SetText stores a copy of s; the caller's buffer may be reused.
func (t *TextLayer) SetText(s string) {
	if t.text == s {
		return
	}
	t.text = s
	t.invalidate()
}

func (t *TextLayer) SetColor(c Color) {
	if t.color == c {
		return
	}
	t.color = c
	t.invalidate()
}

func (t *TextLayer) SetBackground(c Color) {
	if t.bg == c {
		return
	}
	t.bg = c
	t.invalidate()
}

func (t *TextLayer) draw(c *Canvas) {
	c.FillRect(t.frame, t.bg)
	if t.text == "" || t.font.Face == nil {
		return
	}
	_, w := tinyfont.LineWidth(t.font.Face, t.text)
	x := alignX(t.frame.W, int(w), t.align)

	prev, px, py := c.Clip(t.frame)
	tinyfont.WriteLine(c, t.font.Face, int16(x), t.font.Ascent, t.text, t.color.RGBA())
	c.Restore(prev, px, py)
}

// BitmapLayer draws a 1-bit bitmap centred in its frame.
type BitmapLayer struct {
	base
	bmp  *Bitmap
	op   CompOp
	tint Color
}

func NewBitmapLayer(frame Rect) *BitmapLayer {
	return &BitmapLayer{base: base{frame: frame}, tint: ColorWhite}
}

func (l *BitmapLayer) Bitmap() *Bitmap { return l.bmp }
func (l *BitmapLayer) CompOp() CompOp  { return l.op }
func (l *BitmapLayer) Tint() Color     { return l.tint }

// SetBitmap attaches b without taking ownership. nil detaches.
func (l *BitmapLayer) SetBitmap(b *Bitmap) {
	if l.bmp == b {
		return
	}
	l.bmp = b
	l.invalidate()
}

func (l *BitmapLayer) SetCompOp(op CompOp) {
	if l.op == op {
		return
	}
	l.op = op
	l.invalidate()
}

func (l *BitmapLayer) SetTint(c Color) {
	if l.tint == c {
		return
	}
	l.tint = c
	l.invalidate()
}

func (l *BitmapLayer) draw(c *Canvas) {
	if l.bmp == nil {
		return
	}
	prev, px, py := c.Clip(l.frame)
	x := l.frame.X + (l.frame.W-l.bmp.w)/2
	y := l.frame.Y + (l.frame.H-l.bmp.h)/2
	c.DrawBitmap(l.bmp, x, y, l.op, l.tint)
	c.Restore(prev, px, py)
}

// FillLayer fills its frame with a solid colour.
type FillLayer struct {
	base
	color Color
}

func NewFillLayer(frame Rect, c Color) *FillLayer {
	return &FillLayer{base: base{frame: frame}, color: c}
}

func (f *FillLayer) Color() Color { return f.color }

func (f *FillLayer) SetColor(c Color) {
	if f.color == c {
		return
	}
	f.color = c
	f.invalidate()
}

func (f *FillLayer) draw(c *Canvas) {
	c.FillRect(f.frame, f.color)
}
