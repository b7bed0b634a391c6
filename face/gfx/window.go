package gfx

import (
	"fmt"

	"watchface/hal"
)

const maxLayers = 16

// Window is the root of the retained layer tree. Layers draw in the order
// they were added.
type Window struct {
	bg     Color
	layers [maxLayers]Layer
	n      int
	dirty  bool
}

func NewWindow(bg Color) *Window {
	return &Window{bg: bg, dirty: true}
}

// Add appends l. It panics when the window is full, which is a wiring bug.
func (w *Window) Add(l Layer) {
	if w.n == maxLayers {
		panic("gfx: too many layers")
	}
	w.layers[w.n] = l
	w.n++
	l.attach(w)
	w.dirty = true
}

func (w *Window) Background() Color { return w.bg }

func (w *Window) SetBackground(c Color) {
	if w.bg == c {
		return
	}
	w.bg = c
	w.dirty = true
}

// Invalidate marks the window for redraw.
func (w *Window) Invalidate() { w.dirty = true }

func (w *Window) Dirty() bool { return w.dirty }

// Render redraws every visible layer and presents the frame.
func (w *Window) Render(fb hal.Framebuffer) error {
	c := NewCanvas(fb)
	c.FillRect(c.Bounds(), w.bg)
	for i := 0; i < w.n; i++ {
		l := w.layers[i]
		if l.Hidden() || l.Frame().Empty() {
			continue
		}
		l.draw(c)
	}
	w.dirty = false
	if err := fb.Present(); err != nil {
		return fmt.Errorf("gfx present: %w", err)
	}
	return nil
}
