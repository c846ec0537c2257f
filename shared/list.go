package shared

import "sync"

// List is an append-mostly slice safe for concurrent use from every
// worker of a region. Each operation takes an internal lock, which makes
// List convenient but slower than a [Buffer] for hot loops.
type List[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewList creates an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Append adds v to the end of the list.
func (l *List[T]) Append(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, v)
}

// At returns the element at index i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[i]
}

// SetAt replaces the element at index i. It panics if i is out of range.
func (l *List[T]) SetAt(i int, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[i] = v
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Snapshot returns a copy of the current contents. The copy is private
// to the caller and does not track later mutations.
func (l *List[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}
