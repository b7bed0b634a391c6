//go:build !tinygo

// Command facesnap renders one frame of the watchface to an image file.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"watchface/face/watchface"
	"watchface/hal"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
)

func main() {
	var s snapshot
	var variant, at, out, bmpOut string
	var scale, battery int
	flag.StringVar(&variant, "variant", "digits", "Time presentation: text or digits.")
	flag.StringVar(&at, "time", "10:09", "Time to show, as 15:04 or RFC 3339.")
	flag.BoolVar(&s.Clock24h, "24h", false, "Use a 24-hour clock.")
	flag.BoolVar(&s.Inverted, "inverted", false, "Render the inverted style.")
	flag.BoolVar(&s.ColorDisplay, "color", false, "Colour the status icons.")
	flag.StringVar(&s.Reading, "reading", "", "Temperature reading to show.")
	flag.BoolVar(&s.Obstructed, "obstructed", false, "Cover the bottom with a system overlay.")
	flag.IntVar(&battery, "battery", 80, "Battery percentage.")
	flag.BoolVar(&s.Battery.Charging, "charging", false, "Battery is charging.")
	flag.BoolVar(&s.Disconnected, "disconnected", false, "Phone is disconnected.")
	flag.StringVar(&out, "out", "face.png", "PNG mock-up path.")
	flag.StringVar(&bmpOut, "bmp", "", "Also write the raw frame as BMP.")
	flag.IntVar(&scale, "scale", 2, "Mock-up scale factor.")
	flag.Parse()

	if err := run(&s, variant, at, battery, scale, out, bmpOut); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(s *snapshot, variant, at string, battery, scale int, out, bmpOut string) error {
	v, err := watchface.ParseVariant(variant)
	if err != nil {
		return err
	}
	s.Variant = v
	if s.Time, err = parseTime(at, time.Now()); err != nil {
		return err
	}
	if battery < 0 || battery > 100 {
		return fmt.Errorf("battery %d out of range", battery)
	}
	s.Battery = hal.BatteryState{Percent: uint8(battery), Charging: s.Battery.Charging}

	frame, err := render(*s)
	if err != nil {
		return err
	}
	if bmpOut != "" {
		if err := writeBMP(bmpOut, frame); err != nil {
			return err
		}
	}
	if err := gg.SavePNG(out, compose(frame, scale, s.caption())); err != nil {
		return fmt.Errorf("save %q: %w", out, err)
	}
	return nil
}

// parseTime accepts a clock time on the day of ref, or a full timestamp.
func parseTime(s string, ref time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation("15:04", s, ref.Location()); err == nil {
		y, m, d := ref.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: want 15:04 or RFC 3339", s)
	}
	return t, nil
}

func writeBMP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := bmp.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return f.Close()
}
