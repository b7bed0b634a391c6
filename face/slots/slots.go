// Package slots caches one digit bitmap per on-screen position.
//
// A slot owns at most one bitmap. Assigning the digit already resident is a
// no-op; assigning a different digit releases the old bitmap before the new
// one is acquired, so a slot never holds two.
package slots

import (
	"watchface/face/gfx"
	"watchface/face/logger"
)

// Empty marks a slot with nothing loaded.
const Empty = -1

// Source produces digit bitmaps and takes them back.
type Source interface {
	Acquire(digit int) (*gfx.Bitmap, error)
	Release(b *gfx.Bitmap)
}

// Target is the element a slot shows its bitmap through.
type Target interface {
	SetBitmap(b *gfx.Bitmap)
	SetHidden(hidden bool)
}

type slot struct {
	resident int8
	bmp      *gfx.Bitmap
	target   Target
}

// Cache is a fixed set of digit slots.
type Cache struct {
	src   Source
	log   *logger.Logger
	slots []slot
}

// New creates a cache with one empty, hidden slot per target.
func New(src Source, log *logger.Logger, targets ...Target) *Cache {
	c := &Cache{src: src, log: log, slots: make([]slot, len(targets))}
	for i, t := range targets {
		c.slots[i] = slot{resident: Empty, target: t}
		t.SetBitmap(nil)
		t.SetHidden(true)
	}
	return c
}

// Len returns the number of slots.
func (c *Cache) Len() int { return len(c.slots) }

// Resident returns the digit loaded in slot i, or Empty.
func (c *Cache) Resident(i int) int {
	if i < 0 || i >= len(c.slots) {
		return Empty
	}
	return int(c.slots[i].resident)
}

// Assign loads digit into slot i and shows it. Invalid arguments are ignored.
func (c *Cache) Assign(i, digit int) {
	if i < 0 || i >= len(c.slots) || digit < 0 || digit > 9 {
		return
	}
	s := &c.slots[i]
	if int(s.resident) == digit {
		return
	}
	c.release(s)

	b, err := c.src.Acquire(digit)
	if err != nil {
		s.target.SetHidden(true)
		c.log.Errorf("slot %d digit %d: %v", i, digit, err)
		return
	}
	s.bmp = b
	s.resident = int8(digit)
	s.target.SetBitmap(b)
	s.target.SetHidden(false)
}

// Clear releases slot i and hides it. Clearing an empty slot is a no-op.
func (c *Cache) Clear(i int) {
	if i < 0 || i >= len(c.slots) {
		return
	}
	s := &c.slots[i]
	c.release(s)
	s.target.SetHidden(true)
}

// RenderPair shows a two-digit value in slots row*2 and row*2+1. The tens
// digit is cleared when zero unless forceLeading is set.
func (c *Cache) RenderPair(row, value int, forceLeading bool) {
	value %= 100
	if value < 0 {
		value += 100
	}
	tens, units := value/10, value%10
	if tens != 0 || forceLeading {
		c.Assign(row*2, tens)
	} else {
		c.Clear(row * 2)
	}
	c.Assign(row*2+1, units)
}

// Close releases every resident bitmap.
func (c *Cache) Close() {
	for i := range c.slots {
		c.Clear(i)
	}
}

func (c *Cache) release(s *slot) {
	if s.bmp == nil {
		s.resident = Empty
		return
	}
	s.target.SetBitmap(nil)
	c.src.Release(s.bmp)
	s.bmp = nil
	s.resident = Empty
}
