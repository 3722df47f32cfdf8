package kernel

import (
	"runtime"
	"sync/atomic"
)

// Mutex is a non-recursive lock. Lock waits forever; there is no timeout.
// It is designed for bare-metal use: no allocations, busy-wait with Gosched().
type Mutex struct {
	_     [0]func() // prevent accidental copying.
	k     *Kernel
	slot  int
	state atomic.Uint32
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() {
	for !m.state.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

// TryLock acquires the mutex if it is free.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(0, 1)
}

// Unlock releases the mutex. Unlocking an unlocked mutex panics.
func (m *Mutex) Unlock() {
	if !m.state.CompareAndSwap(1, 0) {
		panic("kernel: unlock of unlocked mutex")
	}
}

// Free returns the mutex to the kernel pool. The mutex must not be used
// afterwards.
func (m *Mutex) Free() {
	if m.k != nil {
		m.k.free(m.slot)
	}
}
