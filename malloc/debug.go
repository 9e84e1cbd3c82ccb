// +build debug

package malloc

import "unsafe"

// checkPointer validates a pointer handed to Free or Realloc before the
// engine touches it (spec §7): it must fall inside the arena's bounds,
// must be Alignment-aligned, and must not already be free. Every check
// that fails panics rather than returning an INVALID_ARGUMENT error —
// this build exists to catch caller bugs during development, not to
// hand back a recoverable error from a corrupted heap.
func checkPointer(a *Arena, ptr unsafe.Pointer) {
	addr := uintptr(ptr)
	if !a.contains(addr) {
		panicerr("malloc: %w %#x: outside arena", ErrInvalidPointer, addr)
	}
	if addr%uintptr(Alignment) != 0 {
		panicerr("malloc: %w %#x: misaligned", ErrInvalidPointer, addr)
	}
	b := blockOf(ptr)
	if !isAlloc(b) {
		panicerr("malloc: %w %#x: not allocated", ErrInvalidPointer, addr)
	}
}
