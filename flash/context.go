package flash

import (
	"sync"
	"sync/atomic"
)

// LockFactory creates the lock guarding device commands.
type LockFactory func() (sync.Locker, error)

// Context holds the device lock. It starts uninitialized; Init moves it to
// initialized once, and it never goes back. While uninitialized, device
// commands run without locking.
type Context struct {
	newLock LockFactory

	initMu sync.Mutex
	lock   sync.Locker
	ready  atomic.Bool
}

// NewContext returns an uninitialized context. A nil factory uses sync.Mutex.
func NewContext(newLock LockFactory) *Context {
	if newLock == nil {
		newLock = func() (sync.Locker, error) { return new(sync.Mutex), nil }
	}
	return &Context{newLock: newLock}
}

// Init creates the lock. It is a no-op once the context is initialized. A
// failed lock creation is silent and leaves the context uninitialized, so a
// later Init tries again.
func (c *Context) Init() {
	if c.ready.Load() {
		return
	}
	c.initMu.Lock()
	defer c.initMu.Unlock()
	if c.ready.Load() {
		return
	}
	l, err := c.newLock()
	if err != nil || l == nil {
		return
	}
	c.lock = l
	c.ready.Store(true)
}

// Ready reports whether Init has succeeded.
func (c *Context) Ready() bool { return c != nil && c.ready.Load() }

// acquire blocks until the device lock is held and returns it for release.
// It returns nil without locking when the context is not initialized.
func (c *Context) acquire() sync.Locker {
	if !c.Ready() {
		return nil
	}
	l := c.lock
	l.Lock()
	return l
}

func (c *Context) release(l sync.Locker) {
	if l != nil {
		l.Unlock()
	}
}
