package shared

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID returns the runtime id of the calling goroutine, extracted
// from the stack header ("goroutine N [running]:"). It is only used to
// track [RLock] ownership; the id is never exposed or persisted.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		panic("shared: malformed goroutine stack header")
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		panic("shared: malformed goroutine stack header: " + err.Error())
	}
	return id
}
