package assets

import (
	"watchface/face/gfx"

	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// Text faces. Ascent places the baseline inside the layer frame.
var (
	FontTime  = gfx.Font{Face: &freesans.Bold24pt7b, Ascent: 43}
	FontLabel = gfx.Font{Face: &freesans.Regular12pt7b, Ascent: 18}
	FontSmall = gfx.Font{Face: &proggy.TinySZ8pt7b, Ascent: 10}
)
