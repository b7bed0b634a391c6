package gfx

import (
	"image/color"

	"watchface/hal"

	"tinygo.org/x/drivers"
)

// Canvas draws into an RGB565 framebuffer through a clip rectangle.
type Canvas struct {
	fb     hal.Framebuffer
	buf    []byte
	stride int
	clip   Rect
	// origin offsets SetPixel coordinates; fonts draw relative to it.
	ox, oy int
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas returns a canvas covering the whole framebuffer.
func NewCanvas(fb hal.Framebuffer) *Canvas {
	c := &Canvas{fb: fb}
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return c
	}
	c.buf = fb.Buffer()
	c.stride = fb.StrideBytes()
	c.clip = Rect{W: fb.Width(), H: fb.Height()}
	return c
}

// Bounds returns the full framebuffer rectangle.
func (c *Canvas) Bounds() Rect {
	if c.fb == nil {
		return Rect{}
	}
	return Rect{W: c.fb.Width(), H: c.fb.Height()}
}

// Clip restricts drawing to r and moves the origin to r's corner. It returns
// the previous state for Restore.
func (c *Canvas) Clip(r Rect) (prev Rect, px, py int) {
	prev, px, py = c.clip, c.ox, c.oy
	c.clip = c.clip.Intersect(r)
	c.ox, c.oy = r.X, r.Y
	return prev, px, py
}

// Restore undoes a Clip.
func (c *Canvas) Restore(prev Rect, px, py int) {
	c.clip, c.ox, c.oy = prev, px, py
}

func (c *Canvas) put(x, y int, pixel uint16) {
	if c.buf == nil || !c.clip.Contains(x, y) {
		return
	}
	off := y*c.stride + x*2
	c.buf[off] = byte(pixel)
	c.buf[off+1] = byte(pixel >> 8)
}

// FillRect fills r (absolute coordinates) with col. ColorClear draws nothing.
func (c *Canvas) FillRect(r Rect, col Color) {
	if col == ColorClear {
		return
	}
	r = r.Intersect(c.clip)
	pixel := rgb565(col.RGBA())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.put(x, y, pixel)
		}
	}
}

// DrawBitmap composites b with its top-left corner at (x, y).
func (c *Canvas) DrawBitmap(b *Bitmap, x, y int, op CompOp, tint Color) {
	if b == nil {
		return
	}
	for by := 0; by < b.h; by++ {
		for bx := 0; bx < b.w; bx++ {
			col := op.pixel(b.Paper(bx, by), tint)
			if col == ColorClear {
				continue
			}
			c.put(x+bx, y+by, rgb565(col.RGBA()))
		}
	}
}

func (c *Canvas) Size() (x, y int16) {
	return int16(c.clip.W), int16(c.clip.H)
}

// SetPixel draws relative to the current origin. Transparent colours are skipped.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if col.A == 0 {
		return
	}
	c.put(c.ox+int(x), c.oy+int(y), rgb565(col))
}

func (c *Canvas) Display() error { return nil }
