package malloc

// Word is the native machine word size this engine assumes. Every block
// header, footer and free-list link occupies exactly one Word.
const Word = int64(8)

// Alignment all user pointers are aligned to. Two words, matching the
// platform C allocator's 16-byte guarantee on a 64-bit machine.
const Alignment = 2 * Word

// MinBlock is the smallest block the engine ever carves: one header
// word, two free-list link words, one footer word.
const MinBlock = 4 * Word

// flagAlloc and flagQuick are the two flag bits packed into the low end
// of a block's size word; flagMask covers all three low bits. Bit 2 is
// reserved for a future third flag and is always clear in this port.
const (
	flagAlloc uint64 = 1 << 0
	flagQuick uint64 = 1 << 1
	flagMask  uint64 = 0x7
)

// nlists is the size of the segregated free-list array: one unsorted
// list at index 0, 62 exact-size small lists, 12 power-of-two large
// lists.
const nlists = 75

// Maxarenasize bounds the reservation a Breaker is asked to make for the
// default arena. 1TB, matching the teacher's own Maxarenasize.
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024)
