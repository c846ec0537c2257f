// Package pymp provides OpenMP-style data-parallel regions for Go.
//
// A parallel region executes one body function across a resolved number
// of workers, joins them all, and reports failures as a single aggregate
// error. The goroutine entering the region always participates as worker
// 0, so a region resolved to one worker runs the body inline with no
// goroutine spawned.
//
// # Regions
//
// The entry point is [Run], which resolves the worker count from the
// request and the active [Config], runs the body once per worker, and
// waits for every worker before returning:
//
//	err := pymp.Run(4, func(p *pymp.Parallel) error {
//	    p.Print("hello from worker", p.ThreadNum(), "of", p.NumThreads())
//	    return nil
//	})
//
// Nested regions are entered through the handle with [Parallel.Run]. With
// [Config.Nested] false (the default), a nested region always resolves to
// a single worker.
//
// # Work scheduling
//
// Iteration domains are distributed two ways:
//
//   - [Parallel.Range] (static): each worker receives a precomputed,
//     contiguous, near-equal block of the domain. Deterministic and
//     contention-free.
//   - [Parallel.Xrange] (dynamic): workers pull chunks of indices from a
//     shared cursor as they go, balancing uneven work at the cost of a
//     fetch-and-add per chunk. [Parallel.XrangeChunked] controls the
//     chunk size.
//
// Only strided integer domains are supported. Arbitrary collections would
// have to be materialized per worker, defeating the point; index into
// your data with the scheduled indices instead.
//
// # Sharing discipline
//
// Workers run in one address space, but the package contract mirrors a
// fork model: state captured by the body is treated as read-only or
// worker-private, and only the types of the [shared] subpackage
// ([shared.Buffer], [shared.Mutex], [shared.RLock], [shared.List],
// [shared.Dict], [shared.Queue]) may be mutated and observed across
// workers. Allocate them before entering the region. Variables first
// assigned inside the body are private to the worker that assigned them.
//
// # Failures
//
// A worker failing — returning an error or panicking — does not disturb
// its siblings, and the region always joins every worker. Each failure is
// logged with its worker's thread number; the caller receives exactly one
// [*RegionError] stating how many of the region's workers failed, with no
// structured per-worker detail attached.
//
// # Configuration
//
// Worker-count resolution is governed by [Config], loaded once from the
// PYMP_*/OMP_* environment ([DefaultConfig]) or supplied per region with
// [WithConfig]. See [FromEnv] for the recognized variables and
// [FromFile] for the YAML equivalent.
package pymp
