package malloc

import "unsafe"

import "github.com/bnclabs/segmalloc/api"

// chunksize is the minimum amount the arena grows the heap by on a miss,
// matching the classic CHUNKSIZE constant from the textbook allocator
// this design descends from. Requests larger than chunksize grow by
// exactly what's needed instead.
const chunksize = int64(1 << 12)

// Arena is a single, independently constructible heap: its own
// prologue/epilogue sentinels, its own segregated free-list set, its
// own Breaker. Nothing about it is global; the package-level
// Malloc/Free/Calloc/Realloc functions in malloc.go forward to one
// lazily constructed default Arena, but tests and embedders are free to
// build as many as they like.
type Arena struct {
	breaker api.Breaker
	diag    api.Diagnostics

	lists       flists
	prologue    block
	epilogue    block
	reserve     int64
	heap        int64
	initialized bool
}

// Options configures a new Arena. Only construction-time knobs belong
// here: the engine has no runtime-mutable settings (spec §9), so unlike
// the teacher's lib.Settings-driven config, Options is a plain struct
// consumed once by NewArena and then discarded.
type Options struct {
	// Reserve is the upper bound, in bytes, the Breaker is asked to
	// reserve for this arena. Zero means Maxarenasize.
	Reserve int64

	// Breaker grows the heap. Nil means the default cgo-backed
	// reserve-then-commit Breaker from osboundary.go.
	Breaker api.Breaker

	// Diagnostics receives a Stats snapshot after every heap growth.
	// Nil disables snapshots entirely.
	Diagnostics api.Diagnostics
}

// NewArena builds and initializes a heap: lays down the prologue and
// epilogue sentinels and grows the heap once so the first Malloc has
// somewhere to look. Panics if the Breaker cannot even perform that
// first growth, matching the teacher's own panic-on-bad-config
// construction style (malloc/pool_flist.go in the original).
func NewArena(opts Options) *Arena {
	if opts.Reserve <= 0 {
		opts.Reserve = Maxarenasize
	}
	if opts.Breaker == nil {
		opts.Breaker = newOSBreaker(opts.Reserve)
	}
	a := &Arena{breaker: opts.Breaker, diag: opts.Diagnostics, reserve: opts.Reserve}
	if err := a.initialize(); err != nil {
		panicerr("malloc: NewArena: %v", err)
	}
	return a
}

// initialize lays down the prologue (a 2-word alloc'd block, header and
// footer, no payload) and the epilogue (a 1-word alloc'd sentinel with
// no footer), then performs the first heap growth. The Breaker's
// initial break is not guaranteed to land on an Alignment boundary —
// cgo's malloc guarantees 16-byte alignment in practice, but nothing
// here assumes it — so a pad of 0..Alignment-1 bytes is inserted ahead
// of the prologue to bring the first real block's eventual user pointer
// onto an Alignment boundary regardless of where the Breaker starts.
func (a *Arena) initialize() error {
	if a.initialized {
		return nil
	}
	base, err := a.breaker.Sbrk(0)
	if err != nil {
		return err
	}
	const headSize = 3 * Word // prologue (2 words) + epilogue (1 word)
	want := int64(base) + headSize
	pad := alignUp(want, Alignment) - want
	if _, err := a.breaker.Sbrk(pad + headSize); err != nil {
		return err
	}

	prologue := block(base + uintptr(pad))
	word := uint64(2*Word) | flagAlloc
	storeWord(uintptr(prologue), word)
	storeWord(uintptr(prologue)+uintptr(2*Word)-uintptr(Word), word)

	epilogue := block(uintptr(prologue) + uintptr(2*Word))
	setBoundary(epilogue)

	a.prologue, a.epilogue = prologue, epilogue
	a.heap = pad + headSize

	nb, err := a.extendHeap(chunksize)
	if err != nil {
		return err
	}
	markQuick(nb)
	a.lists.insertUnsorted(nb)
	a.initialized = true
	return nil
}

// extendHeap asks the Breaker for at least need bytes (rounded up to
// chunksize and Alignment), folds the old epilogue word into the new
// block's header, writes a fresh epilogue in the last word below the
// new break, and
// coalesces the result with its left neighbor if that neighbor is
// free — heap growth routinely abuts a free block left over from the
// last allocation that didn't quite fit.
func (a *Arena) extendHeap(need int64) (block, error) {
	grow := need
	if grow < chunksize {
		grow = chunksize
	}
	grow = alignUp(grow, Alignment)

	oldEnd, err := a.breaker.Sbrk(grow)
	if err != nil {
		return 0, ErrOutOfMemory
	}

	b := block(oldEnd - uintptr(Word))
	total := grow
	setFreeSize(b, total)

	epilogue := nextRaw(b)
	setBoundary(epilogue)
	a.epilogue = epilogue
	a.heap += grow

	b = a.coalesce(b)

	if a.diag != nil {
		a.diag.Snapshot(a.Stats())
	}
	return b, nil
}

// contains reports whether ptr falls strictly between the prologue and
// epilogue sentinels — the debug build's pointer-in-arena check (spec
// §7) is exactly this bounds test.
func (a *Arena) contains(ptr uintptr) bool {
	return ptr > uintptr(a.prologue) && ptr < uintptr(a.epilogue)
}

// Stats returns a point-in-time snapshot of the arena's memory
// accounting, walking every block between the sentinels once. This is
// diagnostic-path work, never called from Malloc/Free/Calloc/Realloc
// themselves (api.Diagnostics.Snapshot is only invoked on heap growth),
// so an O(blocks) walk here is the right tradeoff over maintaining
// running counters that every hot-path op would have to keep exact.
func (a *Arena) Stats() api.Stats {
	var allocBytes, overhead int64
	for b := nextRaw(a.prologue); b != a.epilogue; b = nextRaw(b) {
		s := size(b)
		overhead += 2 * Word
		if isAlloc(b) {
			allocBytes += s - 2*Word
		}
	}
	return api.Stats{
		Capacity: a.reserve,
		Heap:     a.heap,
		Alloc:    allocBytes,
		Overhead: overhead,
	}
}

// Walk visits every block between the sentinels in address order,
// calling fn with each block's user pointer, payload size and
// allocated status. It relies on the same NEXT_RAW-reaches-epilogue
// invariant Stats does, and exists for callers, such as the tests, that
// want to inspect the heap's shape rather than just its totals.
func (a *Arena) Walk(fn func(ptr unsafe.Pointer, size int64, allocated bool)) {
	for b := nextRaw(a.prologue); b != a.epilogue; b = nextRaw(b) {
		fn(userOf(b), size(b)-2*Word, isAlloc(b))
	}
}
