package hal

import (
	"sync"
	"sync/atomic"
	"time"
)

// SoftWatchdog is a timer-based watchdog. If it is not reloaded within the
// timeout after Start, the expire callback runs once per expiry.
type SoftWatchdog struct {
	mu       sync.Mutex
	timeout  time.Duration
	timer    *time.Timer
	onExpire func()

	reloads atomic.Uint64
	expired atomic.Uint64
}

var _ Watchdog = (*SoftWatchdog)(nil)

// NewSoftWatchdog returns a stopped watchdog.
func NewSoftWatchdog(timeout time.Duration, onExpire func()) *SoftWatchdog {
	return &SoftWatchdog{timeout: timeout, onExpire: onExpire}
}

// Start arms the watchdog. It is a no-op when already running or when the
// timeout is not positive.
func (w *SoftWatchdog) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil || w.timeout <= 0 {
		return
	}
	w.timer = time.AfterFunc(w.timeout, w.fire)
}

// Stop disarms the watchdog.
func (w *SoftWatchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil {
		return
	}
	w.timer.Stop()
	w.timer = nil
}

// Reload restarts the timeout.
func (w *SoftWatchdog) Reload() {
	w.reloads.Add(1)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Reset(w.timeout)
	}
}

// Reloads returns the number of Reload calls.
func (w *SoftWatchdog) Reloads() uint64 { return w.reloads.Load() }

// Expirations returns how many times the timeout elapsed.
func (w *SoftWatchdog) Expirations() uint64 { return w.expired.Load() }

func (w *SoftWatchdog) fire() {
	w.expired.Add(1)
	if w.onExpire != nil {
		w.onExpire()
	}
}
