package malloc

import "unsafe"

import "github.com/bnclabs/segmalloc/lib"

// removeFree unlinks a free block from whichever list currently holds
// it. A free block sits on the unsorted list (index 0) exactly when
// it's still marked quick — Free never does more work than flipping
// two bits and pushing onto the unsorted list — otherwise it has
// already been drained and segregated into classOf(size(b)).
func (f *flists) removeFree(b block) {
	idx := 0
	if !isQuick(b) {
		idx = classOf(size(b))
	}
	f.remove(idx, b)
}

// coalesce merges b with any free neighbor on either side and returns
// the resulting block, marked free and unquick. Sentinels always read
// as allocated, so coalescing never runs off the ends of the heap.
func (a *Arena) coalesce(b block) block {
	prev := prevRaw(b)
	next := nextRaw(b)
	prevFree := !isAlloc(prev)
	nextFree := !isAlloc(next)

	total := size(b)
	start := b
	if prevFree {
		a.lists.removeFree(prev)
		total += size(prev)
		start = prev
	}
	if nextFree {
		a.lists.removeFree(next)
		total += size(next)
	}
	setFreeSize(start, total)
	return start
}

// split carves an asize-byte block off the front of b when the
// remainder would still be a legal block (spec MinBlock), pushing that
// remainder onto the unsorted list. Otherwise the whole of b is handed
// out — splitting into an unusably small remainder would just leak it.
// The returned block has size asize when a remainder was split off,
// and its original size(b) otherwise; the caller marks it allocated.
//
// The remainder is marked quick before it goes on the unsorted list:
// every block findBlock finds there must be quick, since removeFree
// uses "quick" to mean "still on the unsorted list, not yet
// segregated" when it has to unlink a coalescing neighbor.
func (a *Arena) split(b block, asize int64) block {
	total := size(b)
	if total-asize >= MinBlock {
		setFreeSize(b, asize)
		rem := nextRaw(b)
		setFreeSize(rem, total-asize)
		markQuick(rem)
		a.lists.insertUnsorted(rem)
	}
	return b
}

// findBlock implements the two-stage search from spec §4.4: first
// drain the unsorted list, coalescing every quick block it holds as it
// goes and returning the first one that already fits; anything drained
// that doesn't fit gets segregated into its real class list. Once the
// unsorted list is empty, fall back to a first-fit scan of the
// segregated lists from classOf(asize) upward. Returns 0 if nothing in
// either stage fits, meaning the heap must grow.
func (a *Arena) findBlock(asize int64) block {
	for {
		b := a.lists.popUnsorted()
		if b == 0 {
			break
		}
		if isQuick(b) {
			b = a.coalesce(b)
		}
		if size(b) >= asize {
			return b
		}
		a.lists.insertClass(b)
	}

	for idx := classOf(asize); idx < nlists; idx++ {
		for cur := a.lists.heads[idx]; cur != 0; cur = nextLink(cur) {
			if size(cur) >= asize {
				a.lists.remove(idx, cur)
				return cur
			}
		}
	}
	return 0
}

// blockSize converts a requested payload of n bytes into the block size
// the engine actually carves: room for both the header and the footer
// (spec §4.4's align_up(request + 2*W, 2*W)), rounded up to Alignment,
// floored at MinBlock so every block can hold two free-list link words
// while it's on a list.
func blockSize(n int64) int64 {
	s := alignUp(n+2*Word, Alignment)
	if s < MinBlock {
		return MinBlock
	}
	return s
}

// Malloc returns a pointer to at least n bytes of uninitialized memory,
// or nil with Errno() set to ErrOutOfMemory if the request cannot be
// satisfied. Malloc(0) returns nil without an error: a zero-size
// request is not a fault, but it is also not obligated to return a
// live pointer.
func (a *Arena) Malloc(n int64) (unsafe.Pointer, error) {
	if n <= 0 {
		return nil, nil
	}
	asize := blockSize(n)
	if asize < n {
		setErrno(ErrOutOfMemory)
		return nil, ErrOutOfMemory
	}

	b := a.findBlock(asize)
	if b == 0 {
		grown, err := a.extendHeap(asize)
		if err != nil {
			setErrno(err)
			return nil, err
		}
		b = grown
	}

	b = a.split(b, asize)
	markAlloc(b)
	return userOf(b), nil
}

// Free releases the block backing ptr. A nil ptr is a no-op, matching
// the C allocator's contract. Release is O(1): the block is marked
// quick and pushed onto the unsorted list; real coalescing is deferred
// until findBlock next drains that list.
func (a *Arena) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	checkPointer(a, ptr)
	b := blockOf(ptr)
	quickFree(b)
	a.lists.insertUnsorted(b)
}

// Calloc returns zero-initialized memory for nmemb elements of size
// bytes each, or nil with ErrOutOfMemory if nmemb*size overflows or
// cannot be satisfied.
func (a *Arena) Calloc(nmemb, elemSize int64) (unsafe.Pointer, error) {
	if nmemb <= 0 || elemSize <= 0 {
		return nil, nil
	}
	total := nmemb * elemSize
	if total/nmemb != elemSize {
		setErrno(ErrOutOfMemory)
		return nil, ErrOutOfMemory
	}
	ptr, err := a.Malloc(total)
	if err != nil || ptr == nil {
		return ptr, err
	}
	buf := unsafe.Slice((*byte)(ptr), total)
	for i := range buf {
		buf[i] = 0
	}
	return ptr, nil
}

// Realloc resizes the block backing ptr to newSize bytes and returns a
// pointer to the resized block, preserving the lesser of the old and
// new sizes' worth of content. ptr == nil behaves as Malloc; newSize
// <= 0 behaves as Free and returns nil — spec §4.4 resolves the
// resize(ptr, 0) case this way rather than returning a live zero-size
// block.
//
// Mirrors _examples/original_source/mm.c's realloc: a shrink (or a
// growth the block already covers) just splits in place; a growth that
// fits by absorbing a free right neighbor, or by extending the heap
// when that neighbor is the epilogue, also happens in place — both
// return ptr unchanged, per spec.md §8 scenarios 4 and 5. Any growth
// that neither in-place path covers (an allocated right neighbor, or a
// free one too small with more heap beyond it) falls back to
// malloc/copy/free.
func (a *Arena) Realloc(ptr unsafe.Pointer, newSize int64) (unsafe.Pointer, error) {
	if ptr == nil {
		return a.Malloc(newSize)
	}
	if newSize <= 0 {
		a.Free(ptr)
		return nil, nil
	}
	checkPointer(a, ptr)
	b := blockOf(ptr)
	asize := blockSize(newSize)
	if asize < newSize {
		setErrno(ErrOutOfMemory)
		return nil, ErrOutOfMemory
	}
	oldPayload := size(b) - 2*Word
	cur := size(b)

	if cur < asize {
		if next := nextRaw(b); next != a.epilogue && !isAlloc(next) {
			a.lists.removeFree(next)
			cur += size(next)
			setSizeAndSync(b, cur)
		}
	}

	if cur < asize && nextRaw(b) == a.epilogue {
		grown, err := a.extendHeap(asize - cur)
		if err != nil {
			setErrno(err)
			return nil, err
		}
		cur += size(grown)
		setSizeAndSync(b, cur)
	}

	if cur >= asize {
		b = a.split(b, asize)
		markAlloc(b)
		return userOf(b), nil
	}

	newPtr, err := a.Malloc(newSize)
	if err != nil {
		return nil, err
	}
	lib.Memcpy(newPtr, ptr, int(oldPayload))
	a.Free(userOf(b))
	return newPtr, nil
}
