// Package shared provides the data structures a parallel region may
// safely share across its workers.
//
// Everything a region body captures is, by the package contract, either
// read-only or private to one worker. The types in this package are the
// exception: they are explicitly built for concurrent use from every
// worker of a region.
//
//   - [Buffer]: a dense, fixed-shape, typed buffer. The fastest shared
//     structure, but with no implicit locking: wrap read-modify-write
//     sequences in a [Mutex] yourself.
//   - [Mutex] and [RLock]: locks usable from any worker. RLock allows
//     the same goroutine to reacquire without deadlocking.
//   - [List], [Dict], [Queue]: internally locked containers. Convenient
//     and always safe, but slower than a Buffer under contention.
//
// Allocate shared structures before entering the region that uses them
// and let the body capture them; structures created inside a body are
// private to the worker that created them.
package shared
