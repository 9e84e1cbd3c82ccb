package malloc

import "unsafe"

import "github.com/bnclabs/segmalloc/lib"

// block is the address of a block's header word. It is never
// dereferenced as a Go pointer directly; all field access goes through
// the functions below, matching the teacher's own raw-pointer-arithmetic
// style in malloc/pool_flist.go.
type block uintptr

func loadWord(addr uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(addr))
}

func storeWord(addr uintptr, v uint64) {
	*(*uint64)(unsafe.Pointer(addr)) = v
}

// size returns a block's total byte size, header and footer included.
// The epilogue sentinel reads as size 0 and the prologue as 2*Word.
func size(b block) int64 {
	return int64(loadWord(uintptr(b)) &^ flagMask)
}

func isAlloc(b block) bool {
	return loadWord(uintptr(b))&flagAlloc != 0
}

func isQuick(b block) bool {
	return loadWord(uintptr(b))&flagQuick != 0
}

// footerOf returns the address of b's footer word, computed from b's
// current size.
func footerOf(b block) uintptr {
	return uintptr(b) + uintptr(size(b)) - uintptr(Word)
}

func syncFooter(b block) {
	storeWord(footerOf(b), loadWord(uintptr(b)))
}

func markAlloc(b block) {
	storeWord(uintptr(b), loadWord(uintptr(b))|flagAlloc)
	syncFooter(b)
}

func markFree(b block) {
	storeWord(uintptr(b), loadWord(uintptr(b))&^flagAlloc)
	syncFooter(b)
}

func markQuick(b block) {
	storeWord(uintptr(b), loadWord(uintptr(b))|flagQuick)
	syncFooter(b)
}

func markUnquick(b block) {
	storeWord(uintptr(b), loadWord(uintptr(b))&^flagQuick)
	syncFooter(b)
}

// setSizeAndSync writes a new size into b's header, preserving its
// current flag bits, then copies the header word into the (new) footer
// location. Forbidden on sentinels, which carry no footer.
func setSizeAndSync(b block, s int64) {
	flags := loadWord(uintptr(b)) & flagMask
	word := uint64(s) | flags
	storeWord(uintptr(b), word)
	storeWord(uintptr(b)+uintptr(s)-uintptr(Word), word)
}

// setFreeSize writes a block header+footer pair of size s with both
// ALLOC and QUICK cleared, regardless of what flags the word
// previously carried. Used by split and coalesce, which always produce
// a fresh, ordinary free block — never a quick one.
func setFreeSize(b block, s int64) {
	storeWord(uintptr(b), uint64(s))
	storeWord(uintptr(b)+uintptr(s)-uintptr(Word), uint64(s))
}

// quickFree marks b free and quick in one write: cleared ALLOC, set
// QUICK, size unchanged. This is the O(1) path Free takes; the block
// is not coalesced with its neighbors until find_block later drains it
// off the unsorted list.
func quickFree(b block) {
	word := uint64(size(b)) | flagQuick
	storeWord(uintptr(b), word)
	storeWord(footerOf(b), word)
}

// setBoundary writes the epilogue sentinel: ALLOC set, size 0, and
// (unlike every other block) no footer — the epilogue is a single word.
// The prologue is laid down by Arena.initialize instead, as a 2-word
// allocated block with a header and a footer.
func setBoundary(b block) {
	storeWord(uintptr(b), flagAlloc)
}

// userOf converts a block header address to the user pointer an
// allocation returns.
func userOf(b block) unsafe.Pointer {
	return unsafe.Pointer(uintptr(b) + uintptr(Word))
}

// blockOf converts a user pointer back to its block header address.
func blockOf(ptr unsafe.Pointer) block {
	return block(uintptr(ptr) - uintptr(Word))
}

// prevRaw returns the block immediately below b in address order, read
// via b's boundary tag: the word directly below b's header is the
// previous block's footer, an exact copy of that block's header.
func prevRaw(b block) block {
	prevWord := loadWord(uintptr(b) - uintptr(Word))
	prevSize := int64(prevWord &^ flagMask)
	return block(uintptr(b) - uintptr(prevSize))
}

// nextRaw returns the block immediately above b in address order.
func nextRaw(b block) block {
	return block(uintptr(b) + uintptr(size(b)))
}

// alignUp rounds n up to the next multiple of align, align a power of
// two.
func alignUp(n, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}

// classOf selects the free-list index for a block of byte size s. s must
// be a positive multiple of Alignment; the engine never calls this with
// s == 0, so the (s>>3)-1 branch never sees the degenerate -1 result
// that formula would otherwise produce for s == 0.
//
// Block sizes below 512 bytes are always a multiple of 16, so (s>>3)-1
// only ever lands on the odd indices 1,3,...,61 — the even indices
// 2,4,...,62 are structurally unreachable. This is preserved exactly
// rather than "fixed", per spec: a port that compacted the small-list
// range would no longer be behaviorally equivalent.
func classOf(s int64) int {
	if s < 512 {
		return int(s>>3) - 1
	}
	t := s >> 10
	l := lib.Bit64(t).Highbit() + 1
	if l < 12 {
		return 63 + l
	}
	return 74
}
