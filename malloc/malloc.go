package malloc

import "sync"
import "unsafe"

// defOnce guards lazy construction of the process-wide default Arena
// that the package-level Malloc/Free/Calloc/Realloc functions forward
// to. Nothing stops an embedder from building their own Arena with
// NewArena instead and ignoring these entirely; they exist for the
// common case of "one heap per process", the same shape as the C
// allocator these functions mirror.
var (
	defOnce  sync.Once
	defArena *Arena
)

func defaultArena() *Arena {
	defOnce.Do(func() {
		defArena = NewArena(Options{Reserve: defaultReserve(), Diagnostics: NewDiagnostics()})
	})
	return defArena
}

// Malloc forwards to the process's default Arena. See Arena.Malloc.
func Malloc(n int64) (unsafe.Pointer, error) {
	return defaultArena().Malloc(n)
}

// Free forwards to the process's default Arena. See Arena.Free.
func Free(ptr unsafe.Pointer) {
	defaultArena().Free(ptr)
}

// Calloc forwards to the process's default Arena. See Arena.Calloc.
func Calloc(nmemb, size int64) (unsafe.Pointer, error) {
	return defaultArena().Calloc(nmemb, size)
}

// Realloc forwards to the process's default Arena. See Arena.Realloc.
func Realloc(ptr unsafe.Pointer, newSize int64) (unsafe.Pointer, error) {
	return defaultArena().Realloc(ptr, newSize)
}
