package pymp

import "fmt"

// ForEach executes fn for every element of items, statically partitioned
// across a region of the given worker count.
//
// This is a convenience wrapper around [Run] and [Parallel.Range].
//
//	err := pymp.ForEach(4, frames, func(i int, f Frame) error {
//	    return encode(i, f)
//	})
func ForEach[T any](threads int, items []T, fn func(i int, item T) error, opts ...Option) error {
	return Run(threads, func(p *Parallel) error {
		for _, i := range p.Range(len(items)) {
			if err := fn(i, items[i]); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}, opts...)
}

// Map executes fn for every element of items across a region of the
// given worker count and collects the results in input order. Each worker
// writes only the indices of its own static block, so no locking is
// needed around the results slice.
//
// On region failure, Map returns nil and the aggregate error; partial
// results are discarded.
func Map[T, R any](threads int, items []T, fn func(i int, item T) (R, error), opts ...Option) ([]R, error) {
	results := make([]R, len(items))
	err := Run(threads, func(p *Parallel) error {
		for _, i := range p.Range(len(items)) {
			r, err := fn(i, items[i])
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = r
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return results, nil
}
