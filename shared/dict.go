package shared

import "sync"

// Dict is a map safe for concurrent use from every worker of a region.
type Dict[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// NewDict creates an empty dict.
func NewDict[K comparable, V any]() *Dict[K, V] {
	return &Dict[K, V]{m: make(map[K]V)}
}

// Get returns the value for key and whether it was present.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.m[key]
	return v, ok
}

// Set stores v under key, replacing any existing value.
func (d *Dict[K, V]) Set(key K, v V) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.m[key] = v
}

// Delete removes key. Deleting an absent key is a no-op.
func (d *Dict[K, V]) Delete(key K) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.m, key)
}

// Len returns the number of stored keys.
func (d *Dict[K, V]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.m)
}

// Keys returns the stored keys in unspecified order.
func (d *Dict[K, V]) Keys() []K {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]K, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	return keys
}
