package hal

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"tinygo.org/x/tinyfs"
)

// BlockTransport exposes a tinyfs.BlockDevice as a flash Transport.
//
// Block protection is delegated to the device when it implements Protector;
// otherwise it is enforced here against the device size.
type BlockTransport struct {
	dev tinyfs.BlockDevice

	mu      sync.Mutex
	protect ProtectMode

	open atomic.Int32
}

var _ Transport = (*BlockTransport)(nil)

// NewBlockTransport returns a transport over dev.
func NewBlockTransport(dev tinyfs.BlockDevice) *BlockTransport {
	return &BlockTransport{dev: dev}
}

// Open returns a new handle to the device.
func (t *BlockTransport) Open() (Handle, error) {
	if t == nil || t.dev == nil {
		return nil, ErrNotImplemented
	}
	t.open.Add(1)
	return &blockHandle{t: t}, nil
}

// OpenHandles reports how many handles are currently open.
func (t *BlockTransport) OpenHandles() int { return int(t.open.Load()) }

// Protect returns the current protect mode.
func (t *BlockTransport) Protect() ProtectMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.protect
}

// Device returns the underlying block device.
func (t *BlockTransport) Device() tinyfs.BlockDevice { return t.dev }

func (t *BlockTransport) size() uint32 {
	sz := t.dev.Size()
	if sz <= 0 {
		return 0
	}
	if sz > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(sz)
}

// checkProtect fails when [addr, addr+n) touches the software-protected range.
func (t *BlockTransport) checkProtect(addr, n uint32) error {
	if _, hw := t.dev.(Protector); hw {
		return nil
	}
	t.mu.Lock()
	mode := t.protect
	t.mu.Unlock()

	start, end := mode.ProtectedRange(t.size())
	if start == end || n == 0 {
		return nil
	}
	if uint64(addr) < uint64(end) && uint64(addr)+uint64(n) > uint64(start) {
		return fmt.Errorf("flash at %d (%s): %w", addr, mode, ErrWriteProtected)
	}
	return nil
}

func (t *BlockTransport) setProtect(mode ProtectMode) error {
	if p, ok := t.dev.(Protector); ok {
		if err := p.SetProtect(mode); err != nil {
			return fmt.Errorf("flash set protect %s: %w", mode, err)
		}
	}
	t.mu.Lock()
	t.protect = mode
	t.mu.Unlock()
	return nil
}

type blockHandle struct {
	t      *BlockTransport
	closed atomic.Bool
}

func (h *blockHandle) Control(cmd Command, arg uint32) error {
	if h.closed.Load() {
		return ErrHandleClosed
	}
	switch cmd {
	case CmdEraseSector:
		return h.eraseSector(arg)
	case CmdSetProtect:
		return h.t.setProtect(ProtectMode(arg))
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, cmd)
	}
}

func (h *blockHandle) eraseSector(addr uint32) error {
	bs := h.t.dev.EraseBlockSize()
	if bs <= 0 {
		return ErrNotImplemented
	}
	if int64(addr)%bs != 0 || int64(addr)+bs > h.t.dev.Size() {
		return fmt.Errorf("flash erase at %d: %w", addr, os.ErrInvalid)
	}
	if err := h.t.checkProtect(addr, uint32(bs)); err != nil {
		return err
	}
	if err := h.t.dev.EraseBlocks(int64(addr)/bs, 1); err != nil {
		return fmt.Errorf("flash erase block at %d: %w", addr, err)
	}
	return nil
}

func (h *blockHandle) ReadAt(p []byte, addr uint32) (int, error) {
	if h.closed.Load() {
		return 0, ErrHandleClosed
	}
	if int64(addr)+int64(len(p)) > h.t.dev.Size() {
		return 0, fmt.Errorf("flash read at %d: %w", addr, os.ErrInvalid)
	}
	n, err := h.t.dev.ReadAt(p, int64(addr))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", addr, err)
	}
	return n, nil
}

func (h *blockHandle) WriteAt(p []byte, addr uint32) (int, error) {
	if h.closed.Load() {
		return 0, ErrHandleClosed
	}
	if int64(addr)+int64(len(p)) > h.t.dev.Size() {
		return 0, fmt.Errorf("flash write at %d: %w", addr, os.ErrInvalid)
	}
	if err := h.t.checkProtect(addr, uint32(len(p))); err != nil {
		return 0, err
	}
	n, err := h.t.dev.WriteAt(p, int64(addr))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", addr, err)
	}
	return n, nil
}

func (h *blockHandle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return ErrHandleClosed
	}
	h.t.open.Add(-1)
	return nil
}
