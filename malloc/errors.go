package malloc

import "errors"
import "fmt"

// ErrOutOfMemory is returned (and recorded in the per-thread error slot,
// see Errno) when the OS refuses to grow the arena, or when a request
// cannot be represented as a block size without overflow.
var ErrOutOfMemory = errors.New("malloc.outofmemory")

// ErrInvalidPointer is only ever observed in a debug build: release, the
// way this package ships by default, does not validate pointers handed
// back to Free/Realloc (see debug.go, production.go).
var ErrInvalidPointer = errors.New("malloc.invalidpointer")

// lastErr is the process's per-thread error slot from spec §6. The
// engine is explicitly single-threaded (spec §5), so one package-level
// variable is the whole slot; a multi-threaded port would need one per
// thread.
var lastErr error

func setErrno(err error) {
	lastErr = err
}

// Errno returns the last error recorded by a failing allocator
// operation, or nil if none has failed yet. A successful operation does
// not clear it.
func Errno() error {
	return lastErr
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
