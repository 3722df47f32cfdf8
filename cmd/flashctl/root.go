//go:build !tinygo

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flashhal/flash"
	"flashhal/hal"
	"flashhal/internal/config"
	"flashhal/kernel"
	"flashhal/partition"
)

var globalFlags struct {
	envFile  string
	image    string
	capacity string
	codeEnd  string
	kvMulti  bool
	kvSize   string
}

var rootCmd = &cobra.Command{
	Use:   "flashctl",
	Short: "Operate on the logical partitions of a NOR flash image.",
	Long: `flashctl operates on a host flash image through the partition layer: ` +
		`offsets are partition relative, requests are bounds checked and the ` +
		`application code region is never erased or overwritten.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.envFile, "env", ".env", "Optional .env file with FLASHHAL_* settings.")
	pf.StringVar(&globalFlags.image, "image", "", "Flash image path (overrides FLASHHAL_PATH).")
	pf.StringVar(&globalFlags.capacity, "capacity", "", "Flash capacity: 4M or 8M (overrides FLASHHAL_CAPACITY).")
	pf.StringVar(&globalFlags.codeEnd, "code-end", "", "Last protected address (overrides FLASHHAL_CODE_END; default: end of the application partition).")
	pf.BoolVar(&globalFlags.kvMulti, "kv-multi", false, "Split the key-value partition across two partitions.")
	pf.StringVar(&globalFlags.kvSize, "kv-size", "", "Size of the first key-value partition (overrides FLASHHAL_KV_PTN_SIZE).")
}

// loadConfig merges the config file, environment and command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(globalFlags.envFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("image") {
		cfg.Path = globalFlags.image
	}
	if flags.Changed("capacity") {
		c, err := partition.ParseCapacity(globalFlags.capacity)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Capacity = c
	}
	if flags.Changed("code-end") {
		n, err := config.ParseUint32(globalFlags.codeEnd)
		if err != nil {
			return config.Config{}, fmt.Errorf("--code-end: %w", err)
		}
		cfg.CodeEnd = n
		cfg.HasCodeEnd = true
	}
	if flags.Changed("kv-multi") {
		cfg.KV.Enabled = globalFlags.kvMulti
	}
	if flags.Changed("kv-size") {
		n, err := config.ParseUint32(globalFlags.kvSize)
		if err != nil {
			return config.Config{}, fmt.Errorf("--kv-size: %w", err)
		}
		cfg.KV.PrimarySize = n
	}
	return cfg, nil
}

type session struct {
	cfg   config.Config
	host  *hal.Host
	flash *flash.Flash
}

func (s *session) Close() error { return s.host.Close() }

// openSession opens the image and builds an initialized Flash on top of it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	lookup, err := partition.LookupFor(cfg.Capacity)
	if err != nil {
		return nil, err
	}

	host, err := hal.NewHost(hal.HostConfig{
		FlashPath:       cfg.Path,
		FlashSize:       cfg.Capacity.Size(),
		WatchdogTimeout: cfg.WatchdogTimeout,
		Out:             os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	ctx := flash.NewContext(kernel.New().LockFactory())
	ctx.Init()

	opts := []flash.Option{
		flash.WithWatchdog(host.Watchdog()),
		flash.WithLogger(host.Logger()),
	}
	if cfg.HasCodeEnd {
		opts = append(opts, flash.WithCodeEnd(cfg.CodeEnd))
	}
	f := flash.New(ctx, host.Flash(), partition.NewResolver(lookup, cfg.KV), opts...)
	return &session{cfg: cfg, host: host, flash: f}, nil
}

// withSession runs fn on an open session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}
