package flash

import (
	"fmt"
	"sync"
	"testing"

	"flashhal/hal"
	"flashhal/partition"

	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfs"
)

//go:generate mockgen -destination "mock_hal_test.go" -package $GOPACKAGE -write_package_comment=false flashhal/hal Transport,Handle,Watchdog,Logger

const (
	testKVSize  = 0x1000
	testCodeEnd = 0x020123
)

// events records the order of lock, watchdog and device activity.
type events struct {
	mu   sync.Mutex
	list []string
}

func (e *events) add(format string, args ...any) {
	e.mu.Lock()
	e.list = append(e.list, fmt.Sprintf(format, args...))
	e.mu.Unlock()
}

func (e *events) get() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.list...)
}

type recLock struct {
	ev *events
	mu sync.Mutex
}

func (l *recLock) Lock() {
	l.mu.Lock()
	l.ev.add("lock")
}

func (l *recLock) Unlock() {
	l.ev.add("unlock")
	l.mu.Unlock()
}

type recWatchdog struct{ ev *events }

func (w recWatchdog) Reload() { w.ev.add("wdg") }

type recTransport struct{ ev *events }

func (t recTransport) Open() (hal.Handle, error) {
	t.ev.add("open")
	return recHandle{ev: t.ev}, nil
}

type recHandle struct{ ev *events }

func (h recHandle) Control(cmd hal.Command, arg uint32) error {
	if cmd == hal.CmdSetProtect {
		h.ev.add("protect %s", hal.ProtectMode(arg))
		return nil
	}
	h.ev.add("%s 0x%X", cmd, arg)
	return nil
}

func (h recHandle) ReadAt(p []byte, addr uint32) (int, error) {
	h.ev.add("read 0x%X/%d", addr, len(p))
	return len(p), nil
}

func (h recHandle) WriteAt(p []byte, addr uint32) (int, error) {
	h.ev.add("write 0x%X/%d", addr, len(p))
	return len(p), nil
}

func (h recHandle) Close() error {
	h.ev.add("close")
	return nil
}

func testResolver(t *testing.T) *partition.Resolver {
	t.Helper()
	lookup, err := partition.LookupFor(partition.Capacity4M)
	require.NoError(t, err)
	return partition.NewResolver(lookup, partition.KVConfig{
		Enabled:     true,
		Primary:     partition.Parameter2,
		Secondary:   partition.Parameter4,
		PrimarySize: testKVSize,
	})
}

func info(t *testing.T, r *partition.Resolver, id partition.ID) partition.Descriptor {
	t.Helper()
	d, ok := r.Info(id)
	require.True(t, ok)
	return d
}

// newRecorded returns an initialized Flash whose lock, watchdog and device
// all log into one event list.
func newRecorded(t *testing.T) (*Flash, *events) {
	t.Helper()
	ev := &events{}
	ctx := NewContext(func() (sync.Locker, error) { return &recLock{ev: ev}, nil })
	ctx.Init()
	f := New(ctx, recTransport{ev: ev}, testResolver(t),
		WithWatchdog(recWatchdog{ev: ev}),
		WithCodeEnd(testCodeEnd),
	)
	return f, ev
}

// newMemFlash returns an initialized Flash on a 512 KiB in-memory device.
func newMemFlash(t *testing.T, opts ...Option) (*Flash, *hal.BlockTransport) {
	t.Helper()
	dev := hal.NewBlockTransport(tinyfs.NewMemoryDevice(256, 4096, 128))
	ctx := NewContext(nil)
	ctx.Init()
	opts = append([]Option{WithCodeEnd(testCodeEnd)}, opts...)
	return New(ctx, dev, testResolver(t), opts...), dev
}
