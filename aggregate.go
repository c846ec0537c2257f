package pymp

import "sync"

// aggregator collects worker failures for one region: a failure counter
// plus one slot per worker, written at most once. Workers record into
// their own slot concurrently; the counter is read by the coordinator
// only after every worker has joined.
type aggregator struct {
	mu     sync.Mutex
	slots  []*WorkerError
	failed int
}

func newAggregator(workers int) *aggregator {
	return &aggregator{slots: make([]*WorkerError, workers)}
}

// record stores the failure of the given worker. A worker's second record
// is dropped, preserving the first.
func (a *aggregator) record(threadNum int, err error) *WorkerError {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.slots[threadNum] != nil {
		return a.slots[threadNum]
	}
	we := &WorkerError{ThreadNum: threadNum, Err: err}
	a.slots[threadNum] = we
	a.failed++
	return we
}

// failureCount returns the number of failed workers. Only valid after
// all workers have joined.
func (a *aggregator) failureCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failed
}

// regionError consolidates the recorded failures into the single error
// returned from the region, or nil when every worker succeeded.
func (a *aggregator) regionError(workers int) error {
	if n := a.failureCount(); n > 0 {
		return &RegionError{Failed: n, Workers: workers}
	}
	return nil
}
