package pymp

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// Range returns the calling worker's share of the indices [0, stop),
// under static scheduling: a contiguous, precomputed block. The blocks of
// all workers are disjoint, cover the domain exactly, and differ in size
// by at most one, with larger blocks going to the lowest thread numbers.
//
// The partition is a pure function of the worker count and the bounds,
// so identical runs produce identical assignments.
func (p *Parallel) Range(stop int) []int {
	return p.RangeStride(0, stop, 1)
}

// RangeStride is [Parallel.Range] over the strided domain
// start, start+step, ... up to but excluding stop. step may be negative
// for a descending domain; it must not be zero.
func (p *Parallel) RangeStride(start, stop, step int) []int {
	first, count := staticBlock(p.r.threads, p.threadNum, start, stop, step)
	block := make([]int, count)
	for i := range block {
		block[i] = start + (first+i)*step
	}
	return block
}

// staticBlock computes worker threadNum's block of the domain as ordinal
// positions: the block covers positions [first, first+count) of the
// domain's index sequence. Deterministic in its inputs only.
func staticBlock(threads, threadNum, start, stop, step int) (first, count int) {
	total := rangeLen(start, stop, step)
	per := total / threads
	rem := total % threads

	count = per
	if threadNum < rem {
		count++
	}
	first = threadNum * per
	if threadNum < rem {
		first += threadNum
	} else {
		first += rem
	}
	return first, count
}

// rangeLen returns the number of indices in the strided domain.
func rangeLen(start, stop, step int) int {
	if step == 0 {
		panic("pymp: range step must not be zero")
	}
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop - start + step - 1) / step
	}
	if stop >= start {
		return 0
	}
	return (start - stop - step - 1) / -step
}

// cursor is the shared claim state of one dynamic loop: a monotonically
// advancing position over the domain's ordinal index sequence, advanced
// by atomic fetch-and-add so claims are disjoint and exhaustive.
type cursor struct {
	start, step int
	chunk       int64
	total       int64
	next        atomic.Int64
}

func newCursor(start, stop, step, chunk int) *cursor {
	return &cursor{
		start: start,
		step:  step,
		chunk: int64(chunk),
		total: int64(rangeLen(start, stop, step)),
	}
}

// claim reserves the next unclaimed chunk, clipped to the end of the
// domain. count is 0 once the domain is exhausted.
func (c *cursor) claim() (first, count int64) {
	end := c.next.Add(c.chunk)
	first = end - c.chunk
	if first >= c.total {
		return 0, 0
	}
	if end > c.total {
		end = c.total
	}
	return first, end - first
}

// Xrange returns a dynamically scheduled iterator over [0, stop) with a
// chunk size of 1. See [Parallel.XrangeChunked].
func (p *Parallel) Xrange(stop int) iter.Seq[int] {
	return p.XrangeChunked(0, stop, 1, 1)
}

// XrangeStride is [Parallel.Xrange] over a strided domain, with a chunk
// size of 1.
func (p *Parallel) XrangeStride(start, stop, step int) iter.Seq[int] {
	return p.XrangeChunked(start, stop, step, 1)
}

// XrangeChunked returns this worker's dynamically scheduled share of the
// strided domain: the workers of the region repeatedly claim the next
// unclaimed chunk of indices from a shared cursor until the domain is
// exhausted. Claim sets are disjoint and cover the domain exactly; which
// worker claims which chunk depends on timing. Larger chunks reduce
// cursor contention at the cost of coarser load balancing.
//
// All workers of the region must execute the same dynamic loops in the
// same order: the n-th dynamic loop a worker enters shares its cursor
// with every other worker's n-th dynamic loop, and the first worker to
// arrive fixes the bounds. The returned sequence is finite and one-shot;
// ranging over it a second time yields whatever chunks are still
// unclaimed, not a fresh pass.
func (p *Parallel) XrangeChunked(start, stop, step, chunk int) iter.Seq[int] {
	if chunk <= 0 {
		panic(fmt.Sprintf("pymp: chunk size must be positive, got %d", chunk))
	}

	loopID := p.loops
	p.loops++
	c := p.r.dynamicCursor(loopID, start, stop, step, chunk)

	return func(yield func(int) bool) {
		for {
			first, count := c.claim()
			if count == 0 {
				return
			}
			for i := int64(0); i < count; i++ {
				if !yield(c.start + int(first+i)*c.step) {
					return
				}
			}
		}
	}
}

// dynamicCursor returns the shared cursor for the region's loopID-th
// dynamic loop, installing it from the given bounds if this worker is
// the first to arrive.
func (r *region) dynamicCursor(loopID, start, stop, step, chunk int) *cursor {
	r.schedMu.Lock()
	defer r.schedMu.Unlock()

	for len(r.cursors) <= loopID {
		r.cursors = append(r.cursors, nil)
	}
	if r.cursors[loopID] == nil {
		r.cursors[loopID] = newCursor(start, stop, step, chunk)
	}
	return r.cursors[loopID]
}
