package flash

import (
	"flashhal/hal"
	"flashhal/partition"
)

// DefaultSectorSize is the NOR erase unit.
const DefaultSectorSize = 0x1000

// Config holds the Flash configuration.
type Config struct {
	// Watchdog is reloaded around device commands (optional)
	Watchdog hal.Watchdog

	// Logger receives protected-region diagnostics (optional)
	Logger hal.Logger

	// CodeEnd is the last address of the application's flash-resident image.
	// Erases and writes at or below it are refused. It defaults to the last
	// byte of the Application partition.
	CodeEnd uint32

	// SectorSize is the erase granularity, a power of two.
	SectorSize uint32
}

func defaultConfig(parts *partition.Resolver) Config {
	return Config{
		Watchdog:   hal.NopWatchdog{},
		Logger:     hal.NopLogger{},
		CodeEnd:    DefaultCodeEnd(parts),
		SectorSize: DefaultSectorSize,
	}
}

// DefaultCodeEnd returns the last address of the Application partition, or 0
// when parts has none. Address 0 is protected either way.
func DefaultCodeEnd(parts *partition.Resolver) uint32 {
	d, ok := parts.Info(partition.Application)
	if !ok || d.Length == 0 {
		return 0
	}
	return d.Start + d.Length - 1
}

// Option is a functional option for configuring Flash.
type Option func(*Config)

// WithWatchdog sets the watchdog reloaded during erases and transfers.
func WithWatchdog(w hal.Watchdog) Option {
	return func(c *Config) {
		if w != nil {
			c.Watchdog = w
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l hal.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithCodeEnd sets the protected code end, usually the last byte of the
// programmed application image rather than of its partition.
//
// Example:
//
//	f := flash.New(ctx, dev, parts, flash.WithCodeEnd(0x47FFF))
func WithCodeEnd(end uint32) Option {
	return func(c *Config) {
		c.CodeEnd = end
	}
}

// WithSectorSize overrides the erase granularity. Sizes that are not a
// power of two are ignored.
func WithSectorSize(size uint32) Option {
	return func(c *Config) {
		if size != 0 && size&(size-1) == 0 {
			c.SectorSize = size
		}
	}
}
