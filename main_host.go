package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"abacus/accum"
	"abacus/app"
	"abacus/hal"
	"abacus/internal/buildinfo"
)

func main() {
	var cfg hal.HeadlessConfig
	var headless, strict, tape, version bool
	var scale int
	flag.BoolVar(&headless, "headless", false, "Run without a window: keys on stdin, readouts on stdout.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until input ends).")
	flag.BoolVar(&strict, "strict", false, "Ignore a new entry followed by = when no operator is pending.")
	flag.BoolVar(&tape, "tape", false, "Show a paper tape of finished calculations.")
	flag.IntVar(&scale, "scale", 2, "Window scale factor.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	appCfg := app.Config{Tape: tape, Headless: headless}
	if strict {
		appCfg.Policy = accum.PolicyStrict
	}
	opts := hal.Options{
		Width:       appCfg.Width(),
		Scale:       scale,
		LogToStderr: headless,
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, opts, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(opts, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
