package app

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"tinygo.org/x/tinyfs"

	"flashhal/flash"
	"flashhal/hal"
	"flashhal/partition"
)

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *memLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type memHAL struct {
	log   *memLogger
	flash hal.Transport
}

func (h memHAL) Logger() hal.Logger     { return h.log }
func (h memHAL) Flash() hal.Transport   { return h.flash }
func (h memHAL) Watchdog() hal.Watchdog { return hal.NopWatchdog{} }

func newMemHAL() memHAL {
	dev := tinyfs.NewMemoryDevice(256, 4096, 128)
	return memHAL{log: &memLogger{}, flash: hal.NewBlockTransport(dev)}
}

func TestBootLogsPartitionTable(t *testing.T) {
	h := newMemHAL()
	kv := partition.DefaultKV
	kv.Enabled = true

	sys, err := Boot(h, Config{Capacity: partition.Capacity4M, KV: kv})
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	if !sys.Flash().Context().Ready() {
		t.Fatalf("Ready() = false, want true")
	}
	if got := sys.Kernel().MutexesInUse(); got != 1 {
		t.Fatalf("MutexesInUse() = %d, want 1", got)
	}

	out := strings.Join(h.log.lines, "\n")
	for _, want := range []string{"boot: flashhal", "ptn application", "ptn spiffs", "kv  parameter2[0:0x2000] -> parameter4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("boot log missing %q:\n%s", want, out)
		}
	}
}

func TestBootAppliesCodeEnd(t *testing.T) {
	h := newMemHAL()
	sys, err := Boot(h, Config{Capacity: partition.Capacity4M, CodeEnd: 0x8FFF, HasCodeEnd: true})
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	off := uint32(0)
	err = sys.Flash().Write(partition.Application, &off, []byte{1})
	if !errors.Is(err, flash.ErrProtectedRegion) {
		t.Fatalf("Write() error = %v, want protected region", err)
	}
}

func TestBootUnknownCapacity(t *testing.T) {
	if _, err := Boot(newMemHAL(), Config{Capacity: 2}); err == nil {
		t.Fatalf("Boot() error = nil, want error")
	}
}

func TestBootProtectsApplicationByDefault(t *testing.T) {
	h := newMemHAL()
	sys, err := Boot(h, Config{Capacity: partition.Capacity4M})
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	if err := sys.Flash().Erase(partition.Bootloader, 0, 0x1000); !errors.Is(err, flash.ErrProtectedRegion) {
		t.Fatalf("Erase(bootloader) error = %v, want protected region", err)
	}
	if err := sys.Flash().Erase(partition.Application, 0, 0x1000); !errors.Is(err, flash.ErrProtectedRegion) {
		t.Fatalf("Erase(application) error = %v, want protected region", err)
	}
	if err := sys.Flash().Erase(partition.OTATemp, 0, 0x1000); err != nil {
		t.Fatalf("Erase(ota-temp) error = %v", err)
	}
}
