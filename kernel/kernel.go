// Package kernel provides the RTOS primitives the flash layer runs on.
package kernel

import (
	"errors"
	"sync"
)

const maxMutexes = 32

// ErrNoResources is returned when the mutex pool is exhausted.
var ErrNoResources = errors.New("kernel: no free mutex")

// Kernel owns a fixed pool of mutexes. Creation fails once the pool is used up,
// like a statically sized RTOS object table.
type Kernel struct {
	mu      sync.Mutex
	used    [maxMutexes]bool
	mutexes [maxMutexes]Mutex
}

// New returns a kernel with an empty mutex pool.
func New() *Kernel {
	k := &Kernel{}
	for i := range k.mutexes {
		k.mutexes[i].k = k
		k.mutexes[i].slot = i
	}
	return k
}

// NewMutex allocates an unlocked mutex from the pool.
func (k *Kernel) NewMutex() (*Mutex, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := range k.used {
		if !k.used[i] {
			k.used[i] = true
			m := &k.mutexes[i]
			m.state.Store(0)
			return m, nil
		}
	}
	return nil, ErrNoResources
}

// MutexesInUse reports how many pool slots are allocated.
func (k *Kernel) MutexesInUse() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for _, u := range k.used {
		if u {
			n++
		}
	}
	return n
}

// LockFactory adapts NewMutex to a sync.Locker constructor.
func (k *Kernel) LockFactory() func() (sync.Locker, error) {
	return func() (sync.Locker, error) {
		m, err := k.NewMutex()
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func (k *Kernel) free(slot int) {
	k.mu.Lock()
	k.used[slot] = false
	k.mu.Unlock()
}
