// Package api defines the contracts between the allocator engine and its
// external collaborators: the OS facility that grows the heap, and the
// sink that formats diagnostic output. Both are deliberately narrow —
// the engine never reaches past these interfaces for anything else.
package api

// Breaker is the sbrk-style OS facility the heap arena manager uses to
// grow the process's address space. A call with delta == 0 queries the
// current break without growing it, matching the classic sbrk(2)
// contract. Implementations must never move memory already handed out
// by a prior Sbrk call — callers rely on addresses staying stable for
// the lifetime of the arena.
type Breaker interface {
	// Sbrk grows the managed region by delta bytes and returns the
	// address of the old end (the base of the newly available bytes).
	// delta == 0 returns the current end without growing. Returns an
	// error if the OS (or the Breaker's own reservation) cannot satisfy
	// the request.
	Sbrk(delta int64) (oldEnd uintptr, err error)
}

// Stats is a read-only snapshot of an arena's memory accounting.
type Stats struct {
	Capacity int64 // bytes reserved for the arena, ceiling on Heap
	Heap     int64 // bytes currently committed from the OS
	Alloc    int64 // payload bytes of allocated blocks (block size minus header and footer)
	Overhead int64 // bytes spent on the header and footer of every block, free or allocated
}

// Diagnostics is the sink for allocator-produced diagnostic output. The
// engine calls Snapshot after every heap growth and at no other time;
// formatting is entirely the sink's concern.
type Diagnostics interface {
	Snapshot(stats Stats)
}
