package gfx

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
)

const (
	PoolSlots       = 12
	PoolBitmapBytes = 512
)

var (
	ErrPoolExhausted  = errors.New("gfx: bitmap pool exhausted")
	ErrBitmapTooLarge = errors.New("gfx: bitmap too large")
)

// Bitmap is a 1-bit image backed by pool storage.
// It implements drivers.Displayer so fonts can be rasterised into it.
type Bitmap struct {
	w, h   int
	stride int
	bits   []byte
}

var _ drivers.Displayer = (*Bitmap)(nil)

func (b *Bitmap) Width() int  { return b.w }
func (b *Bitmap) Height() int { return b.h }

// Paper reports whether (x, y) is a paper pixel. Out-of-range pixels are paper.
func (b *Bitmap) Paper(x, y int) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return true
	}
	return b.bits[y*b.stride+x/8]&(0x80>>(x%8)) != 0
}

// Put sets one pixel to paper or ink.
func (b *Bitmap) Put(x, y int, paper bool) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	i, m := y*b.stride+x/8, byte(0x80>>(x%8))
	if paper {
		b.bits[i] |= m
	} else {
		b.bits[i] &^= m
	}
}

// Fill sets every pixel.
func (b *Bitmap) Fill(paper bool) {
	v := byte(0)
	if paper {
		v = 0xFF
	}
	for i := range b.bits {
		b.bits[i] = v
	}
}

func (b *Bitmap) Size() (x, y int16) { return int16(b.w), int16(b.h) }

// SetPixel maps light colours to paper and dark colours to ink.
func (b *Bitmap) SetPixel(x, y int16, c color.RGBA) {
	luma := (299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000
	b.Put(int(x), int(y), luma >= 0x80)
}

func (b *Bitmap) Display() error { return nil }

type poolSlot struct {
	inUse bool
	bmp   Bitmap
	buf   [PoolBitmapBytes]byte
}

// Pool hands out bitmaps from fixed storage.
type Pool struct {
	slots [PoolSlots]poolSlot

	acquired uint32
	released uint32
}

// Acquire returns a paper-filled bitmap of w×h pixels.
func (p *Pool) Acquire(w, h int) (*Bitmap, error) {
	stride := (w + 7) / 8
	if w <= 0 || h <= 0 || stride*h > PoolBitmapBytes {
		return nil, ErrBitmapTooLarge
	}
	for i := range p.slots {
		s := &p.slots[i]
		if s.inUse {
			continue
		}
		s.inUse = true
		s.bmp = Bitmap{w: w, h: h, stride: stride, bits: s.buf[:stride*h]}
		s.bmp.Fill(true)
		p.acquired++
		return &s.bmp, nil
	}
	return nil, ErrPoolExhausted
}

// Release returns b to the pool. It reports false for a nil bitmap, one not
// owned by p or one already released.
func (p *Pool) Release(b *Bitmap) bool {
	if b == nil {
		return false
	}
	for i := range p.slots {
		s := &p.slots[i]
		if &s.bmp != b {
			continue
		}
		if !s.inUse {
			return false
		}
		s.inUse = false
		p.released++
		return true
	}
	return false
}

// InUse returns the number of bitmaps currently held.
func (p *Pool) InUse() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].inUse {
			n++
		}
	}
	return n
}

// Stats returns lifetime acquire and release counts.
func (p *Pool) Stats() (acquired, released uint32) {
	return p.acquired, p.released
}
