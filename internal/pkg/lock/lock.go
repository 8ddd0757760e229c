package lock

import "sync"

// KeyedMutex serializes work per string key. The booking flow locks on
// the (staff, date) pair so two concurrent requests cannot both observe
// a free slot and both commit.
//
// Entries are kept for the life of the process; the key space is
// bounded by staff x active dates, which is small.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
