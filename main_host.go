//go:build !tinygo

// The host binary is a boot check: it brings the flash stack up on the image
// named by the configuration, logs the partition table and exits. Use
// flashctl to operate on the image.
package main

import (
	"flag"
	"fmt"
	"os"

	"flashhal/app"
	"flashhal/hal"
	"flashhal/internal/config"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "Optional .env file with FLASHHAL_* settings.")
	flag.Parse()

	if err := run(envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	h, err := hal.NewHost(hal.HostConfig{
		FlashPath:       cfg.Path,
		FlashSize:       cfg.Capacity.Size(),
		WatchdogTimeout: cfg.WatchdogTimeout,
	})
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	_, err = app.Boot(h, app.Config{
		Capacity:   cfg.Capacity,
		KV:         cfg.KV,
		CodeEnd:    cfg.CodeEnd,
		HasCodeEnd: cfg.HasCodeEnd,
	})
	return err
}
