package pymp

import (
	"errors"
	"fmt"
)

// WorkerError attributes a failure to the worker that produced it. Worker
// failures are recorded in the region's failure slots and logged; they are
// not carried inside the [*RegionError] returned to the caller.
type WorkerError struct {
	// ThreadNum identifies the failed worker within its region.
	ThreadNum int
	Err       error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.ThreadNum, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// RegionError is the single aggregate failure a region returns when one or
// more of its workers failed. It deliberately carries only counts: the
// per-worker detail is emitted to the region's log when each failure is
// recorded.
type RegionError struct {
	// Failed is the number of workers that failed.
	Failed int

	// Workers is the region's resolved worker count.
	Workers int
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("pymp: %d of %d workers failed in parallel region", e.Failed, e.Workers)
}

// IsRegionError reports whether err (or any error in its chain) is a
// [*RegionError].
func IsRegionError(err error) bool {
	if err == nil {
		return false
	}
	var re *RegionError
	return errors.As(err, &re)
}

// IsConfigError reports whether err (or any error in its chain) is a
// [*ConfigError].
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var ce *ConfigError
	return errors.As(err, &ce)
}
