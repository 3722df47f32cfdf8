//go:build tinygo && !baremetal

package hal

import "tinygo.org/x/tinyfs"

// RAM-backed flash for `tinygo run` targets: 4 Mbit of 4 KiB sectors.
const (
	tinyGoHostPageBytes   = 256
	tinyGoHostSectorBytes = 4096
	tinyGoHostSectors     = 128
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	flash  Transport
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no
// flash controller; the partition table is backed by RAM.
func New() HAL {
	dev := tinyfs.NewMemoryDevice(tinyGoHostPageBytes, tinyGoHostSectorBytes, tinyGoHostSectors)
	return &tinyGoHostHAL{
		logger: &tinyGoHostLogger{},
		flash:  NewBlockTransport(dev),
	}
}

func (h *tinyGoHostHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHostHAL) Flash() Transport   { return h.flash }
func (h *tinyGoHostHAL) Watchdog() Watchdog { return NopWatchdog{} }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
