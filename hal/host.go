//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// HostConfig configures the host HAL.
type HostConfig struct {
	// FlashPath is the flash image file. Empty uses FLASHHAL_PATH or flash.bin.
	FlashPath string
	// FlashSize is used when the image has to be created.
	FlashSize uint32
	// WatchdogTimeout arms a software watchdog; zero leaves it disarmed.
	WatchdogTimeout time.Duration
	// Out receives log lines; nil means stdout.
	Out io.Writer
}

// Host is the HAL used when running on a development machine.
type Host struct {
	logger *hostLogger
	flash  Transport
	image  *FileFlash
	wdg    *SoftWatchdog
}

// New returns a host HAL implementation with default settings.
func New() HAL {
	h, err := NewHost(HostConfig{})
	if err != nil {
		logger := &hostLogger{w: os.Stdout}
		logger.WriteLineString("hal: " + err.Error())
		return &Host{logger: logger, flash: stubFlash{}, wdg: NewSoftWatchdog(0, nil)}
	}
	return h
}

// NewHost returns a host HAL backed by a flash image file.
func NewHost(cfg HostConfig) (*Host, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger := &hostLogger{w: out}

	path := cfg.FlashPath
	if path == "" {
		path = os.Getenv("FLASHHAL_PATH")
	}
	if path == "" {
		path = hostFlashDefaultPath
	}
	size := cfg.FlashSize
	if size == 0 {
		size = hostFlashDefaultSizeBytes
	}

	image, err := OpenFileFlash(path, size)
	if err != nil {
		return nil, err
	}

	wdg := NewSoftWatchdog(cfg.WatchdogTimeout, func() {
		logger.WriteLineString(fmt.Sprintf("wdg: not reloaded within %s", cfg.WatchdogTimeout))
	})
	wdg.Start()

	return &Host{
		logger: logger,
		flash:  NewBlockTransport(image),
		image:  image,
		wdg:    wdg,
	}, nil
}

func (h *Host) Logger() Logger     { return h.logger }
func (h *Host) Flash() Transport   { return h.flash }
func (h *Host) Watchdog() Watchdog { return h.wdg }

// Image returns the backing flash image.
func (h *Host) Image() *FileFlash { return h.image }

// Close stops the watchdog and closes the flash image.
func (h *Host) Close() error {
	h.wdg.Stop()
	if h.image == nil {
		return nil
	}
	return h.image.Close()
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterLogger returns a Logger writing lines to w.
func NewWriterLogger(w io.Writer) Logger { return &hostLogger{w: w} }

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
