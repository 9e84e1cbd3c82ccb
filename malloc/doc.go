// Package malloc is a segregated free-list dynamic memory allocator
// with boundary-tag coalescing, in the classic style of a textbook
// heap manager:
//
//  * Types and functions exported by this package are not thread safe.
//    A single Arena is meant to serve a single-threaded caller.
//  * Memory is carved out of one contiguous, reserved region grown on
//    demand through an api.Breaker; once grown, the heap never shrinks
//    back to the OS.
//  * Every block carries a boundary tag (header and footer, each one
//    machine word) so a block's free or allocated neighbors can be
//    found and merged in O(1) without walking the whole heap.
//  * Free blocks are organized into 75 segregated lists: an unsorted
//    list for blocks not yet classified, 62 exact-size lists, and 12
//    power-of-two lists for anything larger. See classOf in block.go.
//  * Freeing a block is O(1): it is marked quick and pushed onto the
//    unsorted list. Real coalescing with neighbors happens lazily, the
//    next time the allocator drains the unsorted list looking for a
//    fit.
//  * Pointers returned by Malloc, Calloc and a successful Realloc are
//    always Alignment-aligned and, once handed out, never move except
//    by an explicit Realloc call.
//
// Arena is independently constructible via NewArena; the package-level
// Malloc, Free, Calloc and Realloc functions forward to one lazily
// constructed default Arena for callers who just want a process-wide
// heap.
package malloc
