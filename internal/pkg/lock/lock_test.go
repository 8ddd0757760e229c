//go:build unit

package lock_test

import (
	"sync"
	"testing"

	"salon-scheduler/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	km := lock.NewKeyedMutex()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock("staff-a|2025-07-14")
			defer km.Unlock("staff-a|2025-07-14")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := lock.NewKeyedMutex()

	km.Lock("staff-a|2025-07-14")
	defer km.Unlock("staff-a|2025-07-14")

	done := make(chan struct{})
	go func() {
		km.Lock("staff-b|2025-07-14")
		km.Unlock("staff-b|2025-07-14")
		close(done)
	}()

	// A different key must not block behind the held lock.
	<-done
}
