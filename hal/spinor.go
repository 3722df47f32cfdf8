package hal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfs"
)

const (
	norCmdWriteStatus = 0x01
	norCmdPageProgram = 0x02
	norCmdRead        = 0x03
	norCmdReadStatus  = 0x05
	norCmdWriteEnable = 0x06
	norCmdSectorErase = 0x20
	norCmdJEDECID     = 0x9F

	norStatusBusy = 0x01
	norStatusWEL  = 0x02
	// norStatusBPMask covers BP0..BP2 and TB.
	norStatusBPMask = 0x3C

	norPageBytes   = 256
	norSectorBytes = 4096

	// JEDEC capacity byte range accepted by ProbeSPINor: 64 KiB to 2 GiB.
	norMinCapacityLog2 = 0x10
	norMaxCapacityLog2 = 0x1F
)

var ErrNoFlashDevice = errors.New("no serial flash responding")

// DefaultProtectBits maps protect modes to status register BP/TB bits for
// parts with three BP bits and a top/bottom select.
var DefaultProtectBits = map[ProtectMode]uint8{
	ProtectNone:            0x00,
	ProtectHalf:            0x38,
	ProtectExceptLastBlock: 0x18,
	ProtectAll:             0x1C,
}

// SPINorConfig describes a serial NOR part.
type SPINorConfig struct {
	// Size of the part in bytes.
	Size uint32
	// ChipSelect drives the CS line; true selects the part.
	ChipSelect func(selected bool)
	// ProtectBits overrides DefaultProtectBits.
	ProtectBits map[ProtectMode]uint8
}

// SPINor is a JEDEC serial NOR flash on a SPI bus.
type SPINor struct {
	mu  sync.Mutex
	bus drivers.SPI
	cfg SPINorConfig
}

var (
	_ tinyfs.BlockDevice = (*SPINor)(nil)
	_ Protector          = (*SPINor)(nil)
)

// NewSPINor returns a device on bus.
func NewSPINor(bus drivers.SPI, cfg SPINorConfig) *SPINor {
	if cfg.ProtectBits == nil {
		cfg.ProtectBits = DefaultProtectBits
	}
	if cfg.ChipSelect == nil {
		cfg.ChipSelect = func(bool) {}
	}
	return &SPINor{bus: bus, cfg: cfg}
}

// ProbeSPINor reads the JEDEC ID of the part on bus. When cfg.Size is zero
// the size is taken from the ID's capacity byte.
func ProbeSPINor(bus drivers.SPI, cfg SPINorConfig) (*SPINor, error) {
	d := NewSPINor(bus, cfg)
	id, err := d.JEDECID()
	if err != nil {
		return nil, fmt.Errorf("flash jedec id: %w", err)
	}
	if id[0] == 0x00 || id[0] == 0xFF {
		return nil, fmt.Errorf("flash jedec id % X: %w", id[:], ErrNoFlashDevice)
	}
	if d.cfg.Size == 0 {
		if id[2] < norMinCapacityLog2 || id[2] > norMaxCapacityLog2 {
			return nil, fmt.Errorf("flash jedec capacity 0x%02X: %w", id[2], os.ErrInvalid)
		}
		d.cfg.Size = 1 << id[2]
	}
	return d, nil
}

func (d *SPINor) Size() int64           { return int64(d.cfg.Size) }
func (d *SPINor) WriteBlockSize() int64 { return norPageBytes }
func (d *SPINor) EraseBlockSize() int64 { return norSectorBytes }

// JEDECID returns the manufacturer, memory type and capacity bytes.
func (d *SPINor) JEDECID() ([3]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var id [3]byte
	err := d.transfer([]byte{norCmdJEDECID}, nil, id[:])
	return id, err
}

func (d *SPINor) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > d.Size() {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if len(p) == 0 {
		return 0, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transfer(norHeader(norCmdRead, uint32(off)), nil, p); err != nil {
		return 0, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return len(p), nil
}

// WriteAt programs p, split on page boundaries.
func (d *SPINor) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > d.Size() {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for n < len(p) {
		addr := uint32(off) + uint32(n)
		chunk := norPageBytes - int(addr%norPageBytes)
		if chunk > len(p)-n {
			chunk = len(p) - n
		}
		if err := d.writeEnable(); err != nil {
			return n, err
		}
		if err := d.transfer(norHeader(norCmdPageProgram, addr), p[n:n+chunk], nil); err != nil {
			return n, fmt.Errorf("flash program at %d: %w", addr, err)
		}
		if err := d.waitIdle(); err != nil {
			return n, err
		}
		n += chunk
	}
	return n, nil
}

// EraseBlocks erases n 4 KiB sectors starting at sector start.
func (d *SPINor) EraseBlocks(start, n int64) error {
	if start < 0 || n < 0 || (start+n)*norSectorBytes > d.Size() {
		return fmt.Errorf("flash erase blocks start=%d len=%d: %w", start, n, os.ErrInvalid)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := start; i < start+n; i++ {
		addr := uint32(i * norSectorBytes)
		if err := d.writeEnable(); err != nil {
			return err
		}
		if err := d.transfer(norHeader(norCmdSectorErase, addr), nil, nil); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", addr, err)
		}
		if err := d.waitIdle(); err != nil {
			return err
		}
	}
	return nil
}

// SetProtect writes the block-protect bits for mode.
func (d *SPINor) SetProtect(mode ProtectMode) error {
	bits, ok := d.cfg.ProtectBits[mode]
	if !ok {
		return fmt.Errorf("flash protect %s: %w", mode, ErrNotImplemented)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writeEnable(); err != nil {
		return err
	}
	if err := d.transfer([]byte{norCmdWriteStatus, bits & norStatusBPMask}, nil, nil); err != nil {
		return fmt.Errorf("flash write status: %w", err)
	}
	return d.waitIdle()
}

// Status reads the status register.
func (d *SPINor) Status() (uint8, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readStatus()
}

func (d *SPINor) readStatus() (uint8, error) {
	var sr [1]byte
	if err := d.transfer([]byte{norCmdReadStatus}, nil, sr[:]); err != nil {
		return 0, fmt.Errorf("flash read status: %w", err)
	}
	return sr[0], nil
}

func (d *SPINor) writeEnable() error {
	if err := d.transfer([]byte{norCmdWriteEnable}, nil, nil); err != nil {
		return fmt.Errorf("flash write enable: %w", err)
	}
	return nil
}

// waitIdle polls until the busy bit clears. There is no timeout.
func (d *SPINor) waitIdle() error {
	for {
		sr, err := d.readStatus()
		if err != nil {
			return err
		}
		if sr&norStatusBusy == 0 {
			return nil
		}
	}
}

// transfer runs one chip-select framed transaction: hdr, then optional
// outgoing data, then optional incoming data.
func (d *SPINor) transfer(hdr, out, in []byte) error {
	d.cfg.ChipSelect(true)
	defer d.cfg.ChipSelect(false)

	if err := d.bus.Tx(hdr, nil); err != nil {
		return err
	}
	if len(out) > 0 {
		if err := d.bus.Tx(out, nil); err != nil {
			return err
		}
	}
	if len(in) > 0 {
		if err := d.bus.Tx(nil, in); err != nil {
			return err
		}
	}
	return nil
}

func norHeader(cmd byte, addr uint32) []byte {
	return []byte{cmd, byte(addr >> 16), byte(addr >> 8), byte(addr)}
}
