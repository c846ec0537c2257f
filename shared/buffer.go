package shared

import "fmt"

// Buffer is a dense, fixed-shape buffer of elements of type T, visible to
// every worker of the regions it is captured by. Indexing is row-major.
//
// Buffer performs no locking. Concurrent writes to distinct elements are
// safe; any read-modify-write of the same element from several workers
// must be serialized by a [Mutex], and a write is only guaranteed visible
// to another worker after both sides synchronize on the same lock.
type Buffer[T any] struct {
	shape   []int
	strides []int
	data    []T
}

// NewBuffer allocates a zero-filled buffer with the given shape.
// It panics if no dimensions are given or any dimension is negative.
func NewBuffer[T any](shape ...int) *Buffer[T] {
	if len(shape) == 0 {
		panic("shared: NewBuffer requires at least one dimension")
	}
	total := 1
	for _, d := range shape {
		if d < 0 {
			panic("shared: NewBuffer dimensions must be non-negative")
		}
		total *= d
	}

	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	return &Buffer[T]{
		shape:   append([]int(nil), shape...),
		strides: strides,
		data:    make([]T, total),
	}
}

// At returns the element at the given index, one coordinate per dimension.
func (b *Buffer[T]) At(idx ...int) T {
	return b.data[b.offset(idx)]
}

// Set stores v at the given index, one coordinate per dimension.
func (b *Buffer[T]) Set(v T, idx ...int) {
	b.data[b.offset(idx)] = v
}

// Data returns the backing slice in row-major order. Mutations through the
// slice are visible to all workers under the same rules as Set.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Shape returns a copy of the buffer's dimensions.
func (b *Buffer[T]) Shape() []int {
	return append([]int(nil), b.shape...)
}

// Len returns the total number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

func (b *Buffer[T]) offset(idx []int) int {
	if len(idx) != len(b.shape) {
		panic(fmt.Sprintf("shared: index has %d coordinates, buffer has %d dimensions",
			len(idx), len(b.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= b.shape[i] {
			panic(fmt.Sprintf("shared: index %d out of range for dimension %d (size %d)",
				x, i, b.shape[i]))
		}
		off += x * b.strides[i]
	}
	return off
}
