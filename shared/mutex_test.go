package shared

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexSerializesReadModifyWrite(t *testing.T) {
	const (
		goroutines = 8
		increments = 1000
	)

	m := NewMutex()
	counter := 0

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range increments {
				m.With(func() {
					counter++
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*increments, counter)
}

func TestMutexWithReleasesOnPanic(t *testing.T) {
	m := NewMutex()

	require.Panics(t, func() {
		m.With(func() {
			panic("inside critical section")
		})
	})

	// The lock must be free again.
	acquired := make(chan struct{})
	go func() {
		m.With(func() {})
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("mutex still held after panic inside With")
	}
}

func TestRLockReentrant(t *testing.T) {
	r := NewRLock()

	entered := false
	r.With(func() {
		r.With(func() {
			entered = true
		})
	})
	assert.True(t, entered)
}

func TestRLockExcludesOtherGoroutines(t *testing.T) {
	const (
		goroutines = 4
		increments = 500
	)

	r := NewRLock()
	counter := 0

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range increments {
				// Nested acquisition inside the outer hold, every time.
				r.With(func() {
					r.With(func() {
						counter++
					})
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*increments, counter)
}

func TestRLockUnlockWithoutHoldPanics(t *testing.T) {
	r := NewRLock()
	assert.Panics(t, func() { r.Unlock() })
}

func TestRLockHandsOverAfterFullRelease(t *testing.T) {
	r := NewRLock()
	r.Lock()
	r.Lock()

	acquired := make(chan struct{})
	go func() {
		r.Lock()
		defer r.Unlock()
		close(acquired)
	}()

	// Still doubly held; the other goroutine must wait.
	select {
	case <-acquired:
		t.Fatal("RLock acquired while still held")
	case <-time.After(20 * time.Millisecond):
	}

	r.Unlock()
	select {
	case <-acquired:
		t.Fatal("RLock acquired while still singly held")
	case <-time.After(20 * time.Millisecond):
	}

	r.Unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("RLock not handed over after full release")
	}
}

func TestGoroutineIDStableWithinGoroutine(t *testing.T) {
	first := goroutineID()
	second := goroutineID()
	require.Equal(t, first, second)

	otherDone := make(chan int64, 1)
	go func() {
		otherDone <- goroutineID()
	}()
	assert.NotEqual(t, first, <-otherDone)
}
