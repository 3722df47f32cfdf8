package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// NopLogger discards every line.
type NopLogger struct{}

func (NopLogger) WriteLineString(string) {}
func (NopLogger) WriteLineBytes([]byte)  {}

var (
	ErrNotImplemented = errors.New("not implemented")
	// ErrWriteProtected is returned for programs and erases inside the
	// currently protected range.
	ErrWriteProtected = errors.New("flash: write protected")
	// ErrHandleClosed is returned for operations on a closed handle.
	ErrHandleClosed = errors.New("flash: handle closed")
	// ErrUnknownCommand is returned by Control for unsupported commands.
	ErrUnknownCommand = errors.New("flash: unknown control command")
)

// Command is a device control request.
type Command uint8

const (
	// CmdEraseSector erases the sector starting at the absolute address arg.
	CmdEraseSector Command = iota + 1
	// CmdSetProtect switches the block-protect mode to ProtectMode(arg).
	CmdSetProtect
)

func (c Command) String() string {
	switch c {
	case CmdEraseSector:
		return "erase-sector"
	case CmdSetProtect:
		return "set-protect"
	default:
		return "unknown"
	}
}

// ProtectMode is a hardware write-protect setting.
type ProtectMode uint32

const (
	ProtectNone ProtectMode = iota
	// ProtectHalf protects the lower half of the device.
	ProtectHalf
	// ProtectExceptLastBlock protects everything but the last 64 KiB block.
	ProtectExceptLastBlock
	ProtectAll
)

func (m ProtectMode) String() string {
	switch m {
	case ProtectNone:
		return "none"
	case ProtectHalf:
		return "half"
	case ProtectExceptLastBlock:
		return "except-last-block"
	case ProtectAll:
		return "all"
	default:
		return "unknown"
	}
}

// protectBlockBytes is the granularity of the last-block protect mode.
const protectBlockBytes = 64 * 1024

// ProtectedRange returns the [start, end) byte range protected by m on a
// device of the given size.
func (m ProtectMode) ProtectedRange(size uint32) (start, end uint32) {
	switch m {
	case ProtectHalf:
		return 0, size / 2
	case ProtectExceptLastBlock:
		if size <= protectBlockBytes {
			return 0, 0
		}
		return 0, size - protectBlockBytes
	case ProtectAll:
		return 0, size
	default:
		return 0, 0
	}
}

// Transport opens the flash device. Every logical operation opens its own
// handle and closes it when done.
type Transport interface {
	Open() (Handle, error)
}

// Handle issues raw commands at absolute device addresses.
type Handle interface {
	Control(cmd Command, arg uint32) error
	ReadAt(p []byte, addr uint32) (int, error)
	WriteAt(p []byte, addr uint32) (int, error)
	Close() error
}

// Protector is implemented by devices with hardware block protection.
type Protector interface {
	SetProtect(mode ProtectMode) error
}

// Watchdog is reloaded during long-running flash operations.
type Watchdog interface {
	Reload()
}

// NopWatchdog ignores reloads.
type NopWatchdog struct{}

func (NopWatchdog) Reload() {}

// HAL bundles the collaborators the flash layer needs on a platform.
type HAL interface {
	Logger() Logger
	Flash() Transport
	Watchdog() Watchdog
}
