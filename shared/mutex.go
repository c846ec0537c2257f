package shared

import "sync"

// Mutex is a lock usable from every worker of a region. Prefer [Mutex.With]
// over explicit Lock/Unlock pairs: it releases on every exit path,
// including a panic inside the protected block.
type Mutex struct {
	mu sync.Mutex
}

// NewMutex creates an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Lock acquires the mutex, blocking until it is available.
func (m *Mutex) Lock() {
	m.mu.Lock()
}

// Unlock releases the mutex.
func (m *Mutex) Unlock() {
	m.mu.Unlock()
}

// With runs fn while holding the mutex and releases it afterwards,
// even if fn panics.
func (m *Mutex) With(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// RLock is a reentrant lock: the goroutine holding it may acquire it
// again without deadlocking, and must balance every Lock with an Unlock.
// Distinct goroutines exclude each other as with [Mutex].
type RLock struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner int64
	depth int
}

// NewRLock creates an unlocked RLock.
func NewRLock() *RLock {
	r := &RLock{owner: -1}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Lock acquires the lock. If the calling goroutine already holds it, the
// hold depth increases instead of deadlocking.
func (r *RLock) Lock() {
	id := goroutineID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == id {
		r.depth++
		return
	}
	for r.depth > 0 {
		r.cond.Wait()
	}
	r.owner = id
	r.depth = 1
}

// Unlock releases one level of the lock. It panics when called by a
// goroutine that does not hold the lock.
func (r *RLock) Unlock() {
	id := goroutineID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner != id || r.depth == 0 {
		panic("shared: RLock.Unlock called without holding the lock")
	}
	r.depth--
	if r.depth == 0 {
		r.owner = -1
		r.cond.Signal()
	}
}

// With runs fn while holding the lock and releases it afterwards,
// even if fn panics.
func (r *RLock) With(fn func()) {
	r.Lock()
	defer r.Unlock()
	fn()
}
