// Package app wires the flash HAL together at boot: it creates the kernel
// lock pool, brings up the flash context and logs the partition layout.
package app

import (
	"fmt"

	"flashhal/flash"
	"flashhal/hal"
	"flashhal/internal/buildinfo"
	"flashhal/kernel"
	"flashhal/partition"
)

// Config selects the partition layout and code protection.
type Config struct {
	Capacity   partition.Capacity
	KV         partition.KVConfig
	CodeEnd    uint32
	HasCodeEnd bool
}

// System is a booted flash stack.
type System struct {
	k     *kernel.Kernel
	flash *flash.Flash
}

// Flash returns the partition driver.
func (s *System) Flash() *flash.Flash { return s.flash }

// Kernel returns the kernel that owns the flash lock.
func (s *System) Kernel() *kernel.Kernel { return s.k }

// Boot initializes the flash context on h and logs the partition table.
func Boot(h hal.HAL, cfg Config) (*System, error) {
	lookup, err := partition.LookupFor(cfg.Capacity)
	if err != nil {
		return nil, err
	}
	log := h.Logger()
	log.WriteLineString("boot: " + buildinfo.String())

	k := kernel.New()
	ctx := flash.NewContext(k.LockFactory())
	ctx.Init()
	if !ctx.Ready() {
		log.WriteLineString("boot: flash lock unavailable, running unlocked")
	}

	opts := []flash.Option{
		flash.WithWatchdog(h.Watchdog()),
		flash.WithLogger(log),
	}
	if cfg.HasCodeEnd {
		opts = append(opts, flash.WithCodeEnd(cfg.CodeEnd))
	}
	parts := partition.NewResolver(lookup, cfg.KV)
	f := flash.New(ctx, h.Flash(), parts, opts...)

	logPartitions(log, parts)
	return &System{k: k, flash: f}, nil
}

// Run boots and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg Config) {
	if _, err := Boot(h, cfg); err != nil {
		h.Logger().WriteLineString("boot: " + err.Error())
	}
	select {}
}

func logPartitions(log hal.Logger, parts *partition.Resolver) {
	for id := partition.ID(0); id < partition.Max; id++ {
		d, ok := parts.Info(id)
		if !ok || d.Owner == partition.OwnerNone {
			continue
		}
		log.WriteLineString(fmt.Sprintf("ptn %-12s 0x%06X+0x%06X %s", id, d.Start, d.Length, d.Description))
	}
	if kv := parts.KV(); kv.Enabled {
		log.WriteLineString(fmt.Sprintf("kv  %s[0:0x%X] -> %s", kv.Primary, kv.PrimarySize, kv.Secondary))
	}
}
