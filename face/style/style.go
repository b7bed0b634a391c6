// Package style maps the inverted flag to colours and compositing.
package style

import "watchface/face/gfx"

// Palette is the colour configuration derived from the inverted flag.
type Palette struct {
	Foreground gfx.Color
	Background gfx.Color
	Comp       gfx.CompOp
}

// For returns the palette for inverted.
func For(inverted bool) Palette {
	if inverted {
		return Palette{Foreground: gfx.ColorBlack, Background: gfx.ColorWhite, Comp: gfx.CompAssign}
	}
	return Palette{Foreground: gfx.ColorWhite, Background: gfx.ColorBlack, Comp: gfx.CompAssignInverted}
}

// Styleable receives the palette on every Apply.
type Styleable interface {
	ApplyPalette(p Palette)
}

// Func adapts a function to Styleable.
type Func func(p Palette)

func (f Func) ApplyPalette(p Palette) { f(p) }

// Text colours a text layer with the foreground.
func Text(l *gfx.TextLayer) Styleable {
	return Func(func(p Palette) { l.SetColor(p.Foreground) })
}

// Fill colours a fill layer with the foreground.
func Fill(l *gfx.FillLayer) Styleable {
	return Func(func(p Palette) { l.SetColor(p.Foreground) })
}

// Bitmap composites a bitmap layer with the palette mode.
func Bitmap(l *gfx.BitmapLayer) Styleable {
	return Func(func(p Palette) {
		l.SetCompOp(p.Comp)
		l.SetTint(p.Foreground)
	})
}

// Engine applies the palette to a window and its registered elements.
type Engine struct {
	win      *gfx.Window
	items    []Styleable
	inverted bool
	applied  bool
}

// New returns an engine for win. win may be nil.
func New(win *gfx.Window) *Engine {
	return &Engine{win: win}
}

// Register adds elements. Once a palette has been applied they receive it
// immediately.
func (e *Engine) Register(items ...Styleable) {
	e.items = append(e.items, items...)
	if e.applied {
		p := For(e.inverted)
		for _, it := range items {
			it.ApplyPalette(p)
		}
	}
}

// Apply styles every registered element for inverted. It does not persist.
func (e *Engine) Apply(inverted bool) {
	e.inverted, e.applied = inverted, true
	p := For(inverted)
	if e.win != nil {
		e.win.SetBackground(p.Background)
	}
	for _, it := range e.items {
		it.ApplyPalette(p)
	}
}

func (e *Engine) Inverted() bool { return e.inverted }

// Palette returns the palette last applied.
func (e *Engine) Palette() Palette { return For(e.inverted) }
