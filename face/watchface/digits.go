package watchface

import (
	"watchface/face/assets"
	"watchface/face/clock"
	"watchface/face/gfx"
	"watchface/face/layout"
	"watchface/face/slots"
	"watchface/face/style"
)

// digitView draws hours and minutes as four cached digit bitmaps with a
// separator between the pairs.
type digitView struct {
	f *Face

	digits  [4]*gfx.BitmapLayer
	cache   *slots.Cache
	sep     *gfx.BitmapLayer
	sepBmp  *gfx.Bitmap
	date    *gfx.TextLayer
	weekday *gfx.TextLayer
	line    *gfx.FillLayer
}

func newDigitView(f *Face, screen gfx.Rect) *digitView {
	w := screen.W
	pad := (w - 144) / 2
	v := &digitView{
		f:       f,
		sep:     gfx.NewBitmapLayer(gfx.Rect{}),
		weekday: gfx.NewTextLayer(gfx.Rect{}, assets.FontLabel, gfx.AlignCenter),
		date:    gfx.NewTextLayer(gfx.Rect{}, assets.FontLabel, gfx.AlignCenter),
		line:    gfx.NewFillLayer(gfx.Rect{}, gfx.ColorWhite),
	}

	targets := make([]slots.Target, len(v.digits))
	for i := range v.digits {
		v.digits[i] = gfx.NewBitmapLayer(gfx.Rect{})
		x := pad + (i%2)*assets.DigitWidth + (i/2)*(144-2*assets.DigitWidth)
		f.layout.Add(v.digits[i], layout.Placement{Frame: gfx.Rect{X: x, W: assets.DigitWidth, H: assets.DigitHeight}})
		f.win.Add(v.digits[i])
		f.style.Register(style.Bitmap(v.digits[i]))
		targets[i] = v.digits[i]
	}
	v.cache = slots.New(f.loader.Digits(), f.log.With("slots"), targets...)

	f.layout.Add(v.sep, layout.Placement{Frame: gfx.Rect{X: pad + 2*assets.DigitWidth, W: assets.SeparatorWidth, H: assets.DigitHeight}})
	f.layout.Add(v.line, layout.Placement{Frame: gfx.Rect{X: pad + 8, W: 128, H: 2}, Secondary: true})
	f.layout.Add(v.weekday, layout.Placement{Frame: gfx.Rect{X: 20, Y: 35, W: w - 40, H: 23}, Fixed: true, Secondary: true})
	f.layout.Add(v.date, layout.Placement{Frame: gfx.Rect{X: 5, Y: 58, W: w - 10, H: 26}, Fixed: true, Secondary: true})

	f.win.Add(v.sep)
	f.win.Add(v.line)
	f.win.Add(v.weekday)
	f.win.Add(v.date)
	f.style.Register(style.Bitmap(v.sep), style.Fill(v.line), style.Text(v.weekday), style.Text(v.date))

	if b, err := f.loader.Load(assets.Separator); err != nil {
		f.log.Errorf("separator: %v", err)
		v.sep.SetHidden(true)
	} else {
		v.sepBmp = b
		v.sep.SetBitmap(b)
	}
	return v
}

func (v *digitView) showTime(hour, minute int, is24h bool) {
	v.cache.RenderPair(0, clock.DisplayHour(hour, is24h), clock.LeadingDigit(is24h))
	v.cache.RenderPair(1, minute, true)
}

func (v *digitView) showDate(date, weekday string) {
	v.date.SetText(date)
	v.weekday.SetText(weekday)
}

func (v *digitView) close() {
	v.cache.Close()
	if v.sepBmp != nil {
		v.sep.SetBitmap(nil)
		v.f.loader.Free(v.sepBmp)
		v.sepBmp = nil
	}
}
