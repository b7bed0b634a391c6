//go:build tinygo

package main

import (
	"watchface/app"
	"watchface/face/logger"
	"watchface/face/watchface"
	"watchface/hal"
)

func main() {
	app.RunWithConfig(hal.New(), app.Config{
		Variant:      watchface.VariantDigits,
		Reading:      false,
		ColorDisplay: true,
		LogLevel:     logger.LevelInfo,
	})
}
