package pymp

import (
	"fmt"
	"runtime"
)

// PanicError wraps a panic recovered inside a worker's region body,
// together with the stack captured at the point of the panic.
//
// A worker panic never unwinds past the region: it is recorded like any
// other worker failure, logged with its stack, and surfaces only through
// the region's aggregate [*RegionError].
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the worker's stack trace at the point of panic.
	Stack string
}

// Error returns a human-readable representation of the panic,
// including the value and the full stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

func newPanicError(v any) *PanicError {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
