// Package flash provides erase, read and write on logical flash partitions.
//
// Offsets are partition relative. Each call is bounds checked against the
// partition, refused when it would touch the running firmware image, and then
// translated to absolute device addresses. The device lock is taken per
// sector erase or per transfer, never for a whole call: another caller's
// write may run between two sectors of a large erase. Callers that need a
// multi-sector range to be atomic must serialize at a higher level.
package flash

import (
	"fmt"
	"io"

	"flashhal/hal"
	"flashhal/partition"
)

// Flash drives one NOR device through its partition table.
type Flash struct {
	ctx   *Context
	dev   hal.Transport
	parts *partition.Resolver
	cfg   Config
}

// New returns a Flash using ctx for locking. ctx may be shared between Flash
// values that drive the same device. A nil ctx gets a fresh, uninitialized one.
func New(ctx *Context, dev hal.Transport, parts *partition.Resolver, opts ...Option) *Flash {
	cfg := defaultConfig(parts)
	for _, opt := range opts {
		opt(&cfg)
	}
	if ctx == nil {
		ctx = NewContext(nil)
	}
	return &Flash{ctx: ctx, dev: dev, parts: parts, cfg: cfg}
}

// Context returns the lock context.
func (f *Flash) Context() *Context { return f.ctx }

// Config returns the effective configuration.
func (f *Flash) Config() Config { return f.cfg }

// PartitionInfo returns the descriptor for id.
func (f *Flash) PartitionInfo(id partition.ID) (partition.Descriptor, bool) {
	return f.parts.Info(id)
}

// Erase erases every sector overlapping [off, off+size) of the partition.
func (f *Flash) Erase(id partition.ID, off, size uint32) error {
	d, rid, roff, ok := f.parts.Resolve(id, off)
	if !ok {
		return &OpError{Op: "erase", Partition: id, Offset: off, Size: size, Err: ErrInvalidArgument}
	}
	if uint64(roff)+uint64(size) > uint64(d.Length) {
		return &OpError{Op: "erase", Partition: rid, Offset: roff, Size: size, Err: ErrOutOfBounds}
	}
	if size == 0 {
		return nil
	}

	sector := uint64(f.cfg.SectorSize)
	mask := sector - 1
	first := uint64(d.Start) + uint64(roff)
	start := first &^ mask
	end := (first + uint64(size) - 1) &^ mask

	if start <= uint64(f.cfg.CodeEnd)|mask {
		f.cfg.Logger.WriteLineString(fmt.Sprintf("flash: not allowed to erase code area (0x%X)", start))
		return &OpError{Op: "erase", Partition: rid, Offset: roff, Size: size, Err: ErrProtectedRegion}
	}

	err := f.withHandle(func(h hal.Handle) error {
		var err error
		for addr := start; addr <= end; addr += sector {
			f.cfg.Watchdog.Reload()
			l := f.ctx.acquire()
			err = h.Control(hal.CmdEraseSector, uint32(addr))
			f.ctx.release(l)
			if err != nil {
				break
			}
		}
		f.cfg.Watchdog.Reload()
		return err
	})
	if err != nil {
		return &OpError{Op: "erase", Partition: rid, Offset: roff, Size: size, Err: err}
	}
	return nil
}

// Write programs p at *off and advances *off by len(p). On failure *off is
// left unchanged.
//
// The cursor stays in the caller's offset space: with a split key-value
// store, a write redirected to the second partition still advances the
// cursor from its original value.
func (f *Flash) Write(id partition.ID, off *uint32, p []byte) error {
	start, rid, roff, err := f.gate("write", id, off, p)
	if err != nil {
		return err
	}
	if start <= f.cfg.CodeEnd {
		f.cfg.Logger.WriteLineString(fmt.Sprintf("flash: not allowed to write code area (0x%X)", start))
		return &OpError{Op: "write", Partition: rid, Offset: roff, Size: uint32(len(p)), Err: ErrProtectedRegion}
	}

	err = f.transfer(func(h hal.Handle) error {
		n, err := h.WriteAt(p, start)
		if err == nil && n != len(p) {
			err = io.ErrShortWrite
		}
		return err
	})
	if err != nil {
		return &OpError{Op: "write", Partition: rid, Offset: roff, Size: uint32(len(p)), Err: err}
	}
	*off += uint32(len(p))
	return nil
}

// Read fills p from *off and advances *off by len(p). Reads are never
// restricted by the code region. On failure *off is left unchanged.
func (f *Flash) Read(id partition.ID, off *uint32, p []byte) error {
	start, rid, roff, err := f.gate("read", id, off, p)
	if err != nil {
		return err
	}

	err = f.transfer(func(h hal.Handle) error {
		n, err := h.ReadAt(p, start)
		if err == nil && n != len(p) {
			err = io.ErrUnexpectedEOF
		}
		return err
	})
	if err != nil {
		return &OpError{Op: "read", Partition: rid, Offset: roff, Size: uint32(len(p)), Err: err}
	}
	*off += uint32(len(p))
	return nil
}

// EnableSecure switches the device to protect everything but its last
// block. The arguments are accepted for API symmetry and ignored.
func (f *Flash) EnableSecure(id partition.ID, off, size uint32) error {
	return f.setProtect("enable-secure", id, off, size, hal.ProtectExceptLastBlock)
}

// DisableSecure switches the device back to protecting its lower half. The
// arguments are ignored.
func (f *Flash) DisableSecure(id partition.ID, off, size uint32) error {
	return f.setProtect("disable-secure", id, off, size, hal.ProtectHalf)
}

func (f *Flash) setProtect(op string, id partition.ID, off, size uint32, mode hal.ProtectMode) error {
	err := f.withHandle(func(h hal.Handle) error {
		l := f.ctx.acquire()
		defer f.ctx.release(l)
		return h.Control(hal.CmdSetProtect, uint32(mode))
	})
	if err != nil {
		return &OpError{Op: op, Partition: id, Offset: off, Size: size, Err: err}
	}
	return nil
}

// gate validates a read or write and returns the absolute start address.
func (f *Flash) gate(op string, id partition.ID, off *uint32, p []byte) (uint32, partition.ID, uint32, error) {
	if off == nil || p == nil {
		return 0, id, 0, &OpError{Op: op, Partition: id, Size: uint32(len(p)), Err: ErrInvalidArgument}
	}
	d, rid, roff, ok := f.parts.Resolve(id, *off)
	if !ok {
		return 0, id, *off, &OpError{Op: op, Partition: id, Offset: *off, Size: uint32(len(p)), Err: ErrInvalidArgument}
	}
	if uint64(roff)+uint64(len(p)) > uint64(d.Length) {
		return 0, rid, roff, &OpError{Op: op, Partition: rid, Offset: roff, Size: uint32(len(p)), Err: ErrOutOfBounds}
	}
	return d.Start + roff, rid, roff, nil
}

// transfer runs one locked data transfer with a watchdog reload on each side.
func (f *Flash) transfer(fn func(h hal.Handle) error) error {
	return f.withHandle(func(h hal.Handle) error {
		f.cfg.Watchdog.Reload()
		l := f.ctx.acquire()
		err := fn(h)
		f.ctx.release(l)
		f.cfg.Watchdog.Reload()
		return err
	})
}

// withHandle opens the device for the duration of fn and always closes it.
func (f *Flash) withHandle(fn func(h hal.Handle) error) (err error) {
	if f.dev == nil {
		return deviceErr(hal.ErrNotImplemented)
	}
	h, err := f.dev.Open()
	if err != nil {
		return deviceErr(err)
	}
	if h == nil {
		return deviceErr(hal.ErrNotImplemented)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = deviceErr(cerr)
		}
	}()
	if err := fn(h); err != nil {
		return deviceErr(err)
	}
	return nil
}
