package watchface

import (
	"watchface/face/assets"
	"watchface/face/clock"
	"watchface/face/gfx"
	"watchface/face/layout"
	"watchface/face/style"
)

const (
	textHeight = 52
	textMaxTop = 96
)

// textView draws the time as a single line of large text.
type textView struct {
	time    *gfx.TextLayer
	date    *gfx.TextLayer
	weekday *gfx.TextLayer
	line    *gfx.FillLayer
}

func newTextView(f *Face, screen gfx.Rect) *textView {
	w := screen.W
	pad := (w - 144) / 2
	v := &textView{
		time:    gfx.NewTextLayer(gfx.Rect{}, assets.FontTime, gfx.AlignCenter),
		date:    gfx.NewTextLayer(gfx.Rect{}, assets.FontLabel, gfx.AlignLeft),
		weekday: gfx.NewTextLayer(gfx.Rect{}, assets.FontLabel, gfx.AlignLeft),
		line:    gfx.NewFillLayer(gfx.Rect{}, gfx.ColorWhite),
	}

	f.layout.Add(v.time, layout.Placement{Frame: gfx.Rect{X: 7, Y: -5, W: w - 14, H: textHeight}})
	f.layout.Add(v.weekday, layout.Placement{Frame: gfx.Rect{X: 8, Y: 47, W: w - 16, H: 23}, Fixed: true, Secondary: true})
	f.layout.Add(v.date, layout.Placement{Frame: gfx.Rect{X: 8, Y: -28, W: w - 16, H: 23}})
	f.layout.Add(v.line, layout.Placement{Frame: gfx.Rect{X: pad + 8, W: 128, H: 2}})

	f.win.Add(v.time)
	f.win.Add(v.weekday)
	f.win.Add(v.date)
	f.win.Add(v.line)
	f.style.Register(style.Text(v.time), style.Text(v.weekday), style.Text(v.date), style.Fill(v.line))
	return v
}

func (v *textView) showTime(hour, minute int, is24h bool) {
	v.time.SetText(clock.FormatTime(hour, minute, is24h))
}

func (v *textView) showDate(date, weekday string) {
	v.date.SetText(date)
	v.weekday.SetText(weekday)
}

func (v *textView) close() {}
