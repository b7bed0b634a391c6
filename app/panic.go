package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"watchface/face/gfx"
	"watchface/face/kernel"
	"watchface/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panicFontHeight = 10
	panicFontOffset = 8
)

// installPanicHandler logs a handler panic and replaces the face with a
// panic screen. The loop stops dispatching afterwards; step keeps returning
// so the host window stays responsive.
func installPanicHandler(s *system) {
	s.loop.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := s.h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		if s.fb == nil {
			return
		}
		drawPanicScreen(s.fb, lines)
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"Watchface panic:",
		fmt.Sprintf("event: %v", info.Kind),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func drawPanicScreen(fb hal.Framebuffer, lines []string) {
	c := gfx.NewCanvas(fb)
	c.FillRect(c.Bounds(), gfx.ColorWhite)

	font := &proggy.TinySZ8pt7b
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	fg := gfx.ColorBlack.RGBA()
	y := int16(0)
	maxH := int16(fb.Height())
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicFontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(c, font, x, y+panicFontOffset, r, fg)
				x += fontWidth
			}
			y += panicFontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
