package malloc

/*
#include <stdlib.h>
*/
import "C"
import "unsafe"

// osBreaker is the default api.Breaker: it reserves one contiguous
// block from the C allocator up front and treats every subsequent Sbrk
// as bumping an offset within it. A real sbrk(2) grows the break in
// place too, but C.realloc does not make that guarantee — it is free
// to move the block — and this engine's addresses must never move
// once handed out. Reserve-then-commit sidesteps the question
// entirely: the cgo allocation happens exactly once.
type osBreaker struct {
	base   uintptr
	cap    int64
	offset int64
}

// newOSBreaker reserves cap bytes from the C allocator. Panics if the
// reservation fails — there is no recovering from being unable to
// acquire the arena's backing memory at construction time.
func newOSBreaker(cap int64) *osBreaker {
	ptr := C.malloc(C.size_t(cap))
	if ptr == nil {
		panicerr("malloc: osBreaker: reservation of %d bytes failed", cap)
	}
	return &osBreaker{base: uintptr(ptr), cap: cap}
}

func (o *osBreaker) Sbrk(delta int64) (uintptr, error) {
	if delta == 0 {
		return o.base + uintptr(o.offset), nil
	}
	if o.offset+delta > o.cap {
		return 0, ErrOutOfMemory
	}
	oldEnd := o.base + uintptr(o.offset)
	o.offset += delta
	return oldEnd, nil
}

// free releases the entire reservation. Not part of api.Breaker — the
// engine never calls it, since an Arena is expected to live for the
// duration of the process that made it — but it gives tests a way to
// release cgo memory without leaking it across a large suite.
func (o *osBreaker) free() {
	C.free(unsafe.Pointer(o.base))
}
