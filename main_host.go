//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"wristos/app"
	"wristos/hal"
	"wristos/internal/hostcfg"
	"wristos/sched"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "wristos.yaml", "Simulator config file.")
	headless := flag.Bool("headless", false, "Run without a window.")
	hz := flag.Int("hz", 0, "Tick rate in headless mode (overrides config).")
	ticks := flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	scale := flag.Int("scale", 0, "Window scale factor (overrides config).")
	flag.Parse()

	cfg, err := hostcfg.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *headless {
		cfg.Headless = true
	}
	if *hz > 0 {
		cfg.Hz = *hz
	}
	if *ticks > 0 {
		cfg.Ticks = *ticks
	}
	if *scale > 0 {
		cfg.Scale = *scale
	}

	policy := policyFrom(cfg.Policy)
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, app.Config{Policy: policy})
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		hcfg := hal.HeadlessConfig{Enabled: true, Hz: cfg.Hz, Ticks: cfg.Ticks}
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	wcfg := hal.WindowConfig{Scale: cfg.Scale, Keys: cfg.Keys}
	if err := hal.RunWindow(newApp, wcfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func policyFrom(pc hostcfg.PolicyConfig) *sched.Policy {
	p := sched.DefaultPolicy()
	if pc.TickMS > 0 {
		p.TickMS = pc.TickMS
	}
	if pc.RestoreMS > 0 {
		p.RestoreMS = pc.RestoreMS
	}
	if pc.ProbeMS > 0 {
		p.ProbeMS = pc.ProbeMS
	}
	if pc.ReinsertMS > 0 {
		p.ReinsertMS = pc.ReinsertMS
	}
	if pc.ProbeFailLimit > 0 {
		p.ProbeFailLimit = pc.ProbeFailLimit
	}
	if pc.RequireStorage != nil {
		p.RequireStorage = *pc.RequireStorage
	}
	return &p
}
