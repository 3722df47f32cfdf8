package kernel

import (
	"runtime"
	"sync"
	"testing"
)

func TestMutexPoolExhaustion(t *testing.T) {
	k := New()

	var got []*Mutex
	for i := 0; i < maxMutexes; i++ {
		m, err := k.NewMutex()
		if err != nil {
			t.Fatalf("NewMutex() err = %v at %d, want nil", err, i)
		}
		got = append(got, m)
	}
	if _, err := k.NewMutex(); err != ErrNoResources {
		t.Fatalf("NewMutex() err = %v when full, want ErrNoResources", err)
	}
	if n := k.MutexesInUse(); n != maxMutexes {
		t.Fatalf("MutexesInUse() = %d, want %d", n, maxMutexes)
	}

	got[3].Free()
	m, err := k.NewMutex()
	if err != nil {
		t.Fatalf("NewMutex() after Free err = %v", err)
	}
	if m != got[3] {
		t.Fatal("expected freed slot to be reused")
	}
}

func TestMutexTryLock(t *testing.T) {
	m, err := New().NewMutex()
	if err != nil {
		t.Fatal(err)
	}
	if !m.TryLock() {
		t.Fatal("TryLock() = false on free mutex")
	}
	if m.TryLock() {
		t.Fatal("TryLock() = true on held mutex")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Fatal("TryLock() = false after Unlock")
	}
	m.Unlock()
}

func TestMutexUnlockUnlockedPanics(t *testing.T) {
	m, err := New().NewMutex()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	m.Unlock()
}

func TestMutexContention(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(2)
	defer runtime.GOMAXPROCS(oldProcs)

	lockFactory := New().LockFactory()
	l, err := lockFactory()
	if err != nil {
		t.Fatal(err)
	}

	const (
		workers = 4
		perWork = 2_000
	)
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*perWork {
		t.Fatalf("counter = %d, want %d", counter, workers*perWork)
	}
}

func TestLockFactoryExhausted(t *testing.T) {
	k := New()
	f := k.LockFactory()
	for i := 0; i < maxMutexes; i++ {
		if _, err := f(); err != nil {
			t.Fatal(err)
		}
	}
	l, err := f()
	if err != ErrNoResources {
		t.Fatalf("err = %v, want ErrNoResources", err)
	}
	if l != nil {
		t.Fatalf("locker = %v, want nil interface", l)
	}
}
