//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"

	"watchface/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const hostWindowScale = 3

var obstructionColor = color.RGBA{R: 0x30, G: 0x30, B: 0x40, A: 0xE0}

// RunWindow starts a desktop window that displays the framebuffer and turns
// keyboard input into simulated device events.
// It blocks until the window closes.
func RunWindow(cfg HostConfig, newApp func(HAL) func() error) error {
	h := newHost(cfg)
	h.haptics.enableAudio()
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Watchface (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.cfg.Width*hostWindowScale, h.cfg.Height*hostWindowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.disp.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)

	if px := g.h.disp.obstruction(); px > 0 {
		y := float32(fb.height - px)
		vector.DrawFilledRect(screen, 0, y, float32(fb.width), float32(px), obstructionColor, false)
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.cfg.Width, g.h.cfg.Height
}
