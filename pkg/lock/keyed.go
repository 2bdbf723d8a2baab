package lock

import (
	"context"
	"sync"
)

// KeyedManager is an in-process Manager backed by one mutex per key. Entries
// are dropped once no goroutine holds or waits on them, so the map stays
// bounded by the number of partitions under contention.
type KeyedManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	// capacity 1; holding the token means holding the lock
	ch   chan struct{}
	refs int
}

func NewKeyedManager() *KeyedManager {
	return &KeyedManager{locks: make(map[string]*keyLock)}
}

func (m *KeyedManager) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	kl, ok := m.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = kl
	}
	kl.refs++
	m.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
		return func() {
			<-kl.ch
			m.unref(key, kl)
		}, nil
	case <-ctx.Done():
		m.unref(key, kl)
		return nil, ErrNotAcquired
	}
}

func (m *KeyedManager) unref(key string, kl *keyLock) {
	m.mu.Lock()
	kl.refs--
	if kl.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()
}

var _ Manager = (*KeyedManager)(nil)
