package gfx

import "image/color"

// Color is one of the watchface palette colours.
type Color uint8

const (
	ColorClear Color = iota
	ColorBlack
	ColorWhite
	ColorGreen
	ColorRed
	ColorYellow
)

var colorRGBA = [...]color.RGBA{
	ColorClear:  {},
	ColorBlack:  {R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	ColorWhite:  {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	ColorGreen:  {R: 0x00, G: 0xFF, B: 0x00, A: 0xFF},
	ColorRed:    {R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	ColorYellow: {R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF},
}

// RGBA returns the colour. ColorClear is fully transparent.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(colorRGBA) {
		return color.RGBA{}
	}
	return colorRGBA[c]
}

func (c Color) String() string {
	switch c {
	case ColorClear:
		return "clear"
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// CompOp is how a 1-bit bitmap is composited onto the screen.
//
// Bitmaps store paper as 1 and ink as 0.
type CompOp uint8

const (
	// CompAssign copies the bitmap: paper white, ink black.
	CompAssign CompOp = iota
	// CompAssignInverted copies the inverted bitmap: paper black, ink white.
	CompAssignInverted
	// CompSet paints ink with the layer tint and leaves paper transparent.
	CompSet
)

func (op CompOp) String() string {
	switch op {
	case CompAssign:
		return "assign"
	case CompAssignInverted:
		return "assign_inverted"
	case CompSet:
		return "set"
	default:
		return "unknown"
	}
}

// pixel returns the colour drawn for one bitmap bit, or ColorClear.
func (op CompOp) pixel(paper bool, tint Color) Color {
	switch op {
	case CompAssign:
		if paper {
			return ColorWhite
		}
		return ColorBlack
	case CompAssignInverted:
		if paper {
			return ColorBlack
		}
		return ColorWhite
	default:
		if paper {
			return ColorClear
		}
		return tint
	}
}

func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
