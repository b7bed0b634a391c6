// Package layout positions face elements inside the unobstructed screen area.
package layout

import (
	"math"

	"watchface/face/gfx"
)

// NoClamp disables the maximum top offset.
const NoClamp = math.MaxInt

// Top returns the offset of an element of elementHeight resting on the
// bottom of the usable area, capped at maxTop. Negative results are kept.
func Top(usableHeight, elementHeight, maxTop int) int {
	return min(usableHeight-elementHeight, maxTop)
}

// Element is something the engine can move and hide.
type Element interface {
	SetFrame(r gfx.Rect)
	SetHidden(hidden bool)
}

// Placement describes where an element goes. Frame.Y is relative to the
// computed top unless Fixed is set.
type Placement struct {
	Frame gfx.Rect

	// Fixed elements keep their frame whatever the bounds.
	Fixed bool

	// Secondary elements are hidden while the screen is obstructed.
	Secondary bool
}

type entry struct {
	el Element
	p  Placement
}

// Engine recomputes element frames when the usable bounds change.
type Engine struct {
	elementHeight int
	maxTop        int
	entries       []entry

	top        int
	obstructed bool
}

// New returns an engine for a primary element of elementHeight.
func New(elementHeight, maxTop int) *Engine {
	return &Engine{elementHeight: elementHeight, maxTop: maxTop}
}

// Add registers el. It is positioned on the next Relayout.
func (e *Engine) Add(el Element, p Placement) {
	e.entries = append(e.entries, entry{el: el, p: p})
}

// Relayout positions every element for the given bounds and returns the top.
func (e *Engine) Relayout(full, usable gfx.Rect) int {
	e.top = Top(usable.H, e.elementHeight, e.maxTop)
	e.obstructed = full != usable

	for _, en := range e.entries {
		r := en.p.Frame
		if !en.p.Fixed {
			r.Y += e.top
		}
		en.el.SetFrame(r)
		if en.p.Secondary {
			en.el.SetHidden(e.obstructed)
		}
	}
	return e.top
}

// Top returns the offset computed by the last Relayout.
func (e *Engine) Top() int { return e.top }

// Obstructed reports whether the last Relayout saw an obstruction.
func (e *Engine) Obstructed() bool { return e.obstructed }
