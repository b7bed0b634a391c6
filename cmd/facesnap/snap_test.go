package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"watchface/face/watchface"
	"watchface/hal"

	"golang.org/x/image/bmp"
)

func litPixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R > 0x80 {
				n++
			}
		}
	}
	return n
}

func TestRenderDigits(t *testing.T) {
	s := snapshot{
		Variant: watchface.VariantDigits,
		Time:    time.Date(2024, time.May, 1, 10, 42, 0, 0, time.UTC),
		Battery: hal.BatteryState{Percent: 60},
	}
	img, err := render(s)
	if err != nil {
		t.Fatalf("render() err = %v", err)
	}
	if b := img.Bounds(); b.Dx() != screenWidth || b.Dy() != screenHeight {
		t.Fatalf("bounds = %v; want %dx%d", b, screenWidth, screenHeight)
	}
	// hour tens "1" and minute units "2"
	if litPixels(img, image.Rect(0, 90, 34, 168)) == 0 {
		t.Fatalf("hour tens digit missing")
	}
	if litPixels(img, image.Rect(110, 90, 144, 168)) == 0 {
		t.Fatalf("minute units digit missing")
	}
}

func TestRenderInvertedBackground(t *testing.T) {
	s := snapshot{
		Variant:  watchface.VariantText,
		Time:     time.Date(2024, time.May, 1, 7, 5, 0, 0, time.UTC),
		Inverted: true,
	}
	img, err := render(s)
	if err != nil {
		t.Fatalf("render() err = %v", err)
	}
	if c := img.RGBAAt(screenWidth/2, 40); c.R != 0xFF || c.G != 0xFF || c.B != 0xFF {
		t.Fatalf("background = %v; want white", c)
	}
}

func TestComposeSize(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	img := compose(frame, 2, "caption")
	want := image.Rect(0, 0, 2*screenWidth+2*bezel, 2*screenHeight+2*bezel+captionSpace)
	if img.Bounds() != want {
		t.Fatalf("compose() bounds = %v; want %v", img.Bounds(), want)
	}
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "face.png")
	raw := filepath.Join(dir, "face.bmp")

	var s snapshot
	if err := run(&s, "text", "2024-05-01T23:59:00Z", 15, 1, png, raw); err != nil {
		t.Fatalf("run() err = %v", err)
	}
	if _, err := os.Stat(png); err != nil {
		t.Fatalf("png not written: %v", err)
	}

	f, err := os.Open(raw)
	if err != nil {
		t.Fatalf("open bmp: %v", err)
	}
	defer f.Close()
	cfg, err := bmp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("bmp.DecodeConfig() err = %v", err)
	}
	if cfg.Width != screenWidth || cfg.Height != screenHeight {
		t.Fatalf("bmp size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestParseTime(t *testing.T) {
	ref := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	got, err := parseTime("09:30", ref)
	if err != nil || got.Hour() != 9 || got.Minute() != 30 || got.Day() != 1 {
		t.Fatalf("parseTime(09:30) = %v, %v", got, err)
	}
	if _, err := parseTime("noon", ref); err == nil {
		t.Fatalf("parseTime(noon) err = nil; want error")
	}
}
