//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"watchface/app"
	"watchface/face/logger"
	"watchface/face/watchface"
	"watchface/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var variant, level string
	var appCfg app.Config
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&variant, "variant", "text", "Time presentation: text or digits.")
	flag.BoolVar(&cfg.Clock24h, "24h", false, "Use a 24-hour clock.")
	flag.BoolVar(&appCfg.ColorDisplay, "color", false, "Colour the status icons.")
	flag.BoolVar(&appCfg.Reading, "reading", false, "Show the phone temperature reading.")
	flag.IntVar(&cfg.Warp, "warp", 1, "Run the simulated clock N times faster.")
	flag.StringVar(&level, "log", "info", "Log level: error, warn, info or debug.")
	flag.Parse()

	v, err := watchface.ParseVariant(variant)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	appCfg.Variant = v
	if appCfg.LogLevel, err = logger.ParseLevel(level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(cfg.HostConfig, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
