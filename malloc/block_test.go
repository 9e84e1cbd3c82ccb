package malloc

import "testing"
import "unsafe"

func newTestBlock(buf []byte, s int64) block {
	b := block(uintptr(unsafe.Pointer(&buf[0])))
	setFreeSize(b, s)
	return b
}

func TestBlockFlags(t *testing.T) {
	buf := make([]byte, 128)
	b := newTestBlock(buf, 64)

	if size(b) != 64 {
		t.Fatalf("size = %d, want 64", size(b))
	}
	if isAlloc(b) || isQuick(b) {
		t.Fatalf("freshly freed block should be neither alloc nor quick")
	}

	markAlloc(b)
	if !isAlloc(b) {
		t.Fatalf("markAlloc did not set ALLOC")
	}
	if loadWord(footerOf(b)) != loadWord(uintptr(b)) {
		t.Fatalf("footer out of sync after markAlloc")
	}

	markFree(b)
	if isAlloc(b) {
		t.Fatalf("markFree did not clear ALLOC")
	}

	markQuick(b)
	if !isQuick(b) {
		t.Fatalf("markQuick did not set QUICK")
	}
	markUnquick(b)
	if isQuick(b) {
		t.Fatalf("markUnquick did not clear QUICK")
	}
}

func TestQuickFree(t *testing.T) {
	buf := make([]byte, 64)
	b := newTestBlock(buf, 64)
	markAlloc(b)

	quickFree(b)
	if isAlloc(b) {
		t.Fatalf("quickFree left ALLOC set")
	}
	if !isQuick(b) {
		t.Fatalf("quickFree did not set QUICK")
	}
	if size(b) != 64 {
		t.Fatalf("quickFree changed size to %d", size(b))
	}
}

func TestUserBlockRoundtrip(t *testing.T) {
	buf := make([]byte, 64)
	b := newTestBlock(buf, 64)
	markAlloc(b)

	ptr := userOf(b)
	if got := blockOf(ptr); got != b {
		t.Fatalf("blockOf(userOf(b)) = %#x, want %#x", uintptr(got), uintptr(b))
	}
}

func TestPrevNextRaw(t *testing.T) {
	buf := make([]byte, 128)
	base := uintptr(unsafe.Pointer(&buf[0]))

	b1 := block(base)
	setFreeSize(b1, 32)
	b2 := block(base + 32)
	setFreeSize(b2, 32)

	if got := nextRaw(b1); got != b2 {
		t.Fatalf("nextRaw(b1) = %#x, want %#x", uintptr(got), uintptr(b2))
	}
	if got := prevRaw(b2); got != b1 {
		t.Fatalf("prevRaw(b2) = %#x, want %#x", uintptr(got), uintptr(b1))
	}
}

func TestSetSizeAndSyncPreservesFlags(t *testing.T) {
	buf := make([]byte, 128)
	b := newTestBlock(buf, 32)
	markAlloc(b)

	setSizeAndSync(b, 64)
	if size(b) != 64 {
		t.Fatalf("size = %d, want 64", size(b))
	}
	if !isAlloc(b) {
		t.Fatalf("setSizeAndSync lost ALLOC flag")
	}
}

func TestClassOfSmallLists(t *testing.T) {
	cases := []struct {
		s    int64
		want int
	}{
		{16, 1},
		{32, 3},
		{48, 5},
		{496, 61},
	}
	for _, c := range cases {
		if got := classOf(c.s); got != c.want {
			t.Errorf("classOf(%d) = %d, want %d", c.s, got, c.want)
		}
	}
}

func TestClassOfLargeLists(t *testing.T) {
	cases := []struct {
		s    int64
		want int
	}{
		{512, 63},
		{1024, 64},
		{2048, 65},
		{524288, 73},   // 512 KiB: spec prose's claimed class-74 cutoff, actually class 73
		{1048576, 74},  // 1 MiB: where the formula actually saturates to the catch-all
		{1 << 30, 74},  // well above the cutoff, still the catch-all
	}
	for _, c := range cases {
		if got := classOf(c.s); got != c.want {
			t.Errorf("classOf(%d) = %d, want %d", c.s, got, c.want)
		}
	}
}
