package memheap

import "testing"

func newTestAllocator(t *testing.T, arenaSize int) *Allocator {
	t.Helper()
	a := NewAllocator(make([]byte, arenaSize))
	a.Bootstrap(0)
	return a
}

func TestAllocateZeroSizeReturnsFalse(t *testing.T) {
	a := newTestAllocator(t, 4096)
	if _, ok := a.Allocate(0, 8); ok {
		t.Fatal("expected Allocate(0, _) to fail")
	}
}

func TestAllocateRoundTrip(t *testing.T) {
	a := newTestAllocator(t, 4096)
	before := a.FreeBytes()

	ptr, ok := a.Allocate(64, 8)
	if !ok {
		t.Fatal("expected allocation to succeed")
	}
	if ptr%8 != 0 {
		t.Errorf("ptr = %d, not 8-aligned", ptr)
	}
	if ptr+64 > uint32(len(a.arena)) {
		t.Errorf("allocation [%d,%d) exceeds arena of %d bytes", ptr, ptr+64, len(a.arena))
	}

	a.Deallocate(ptr)
	if got := a.FreeBytes(); got != before {
		t.Errorf("FreeBytes() after round trip = %d, want %d", got, before)
	}
}

func TestAllocateAlignment(t *testing.T) {
	a := newTestAllocator(t, 8192)
	for _, align := range []uint32{8, 16, 32, 64} {
		ptr, ok := a.Allocate(17, align)
		if !ok {
			t.Fatalf("allocate(17, %d) failed", align)
		}
		if ptr%align != 0 {
			t.Errorf("allocate(17, %d) = %d, not aligned", align, ptr)
		}
	}
}

func TestAllocateFailsWhenExhausted(t *testing.T) {
	a := newTestAllocator(t, 64) // arena minus header leaves little room
	var ptrs []uint32
	for i := 0; i < 100; i++ {
		ptr, ok := a.Allocate(8, 8)
		if !ok {
			break
		}
		ptrs = append(ptrs, ptr)
	}
	if len(ptrs) == 0 {
		t.Fatal("expected at least one allocation to succeed in a 64-byte arena")
	}
	if _, ok := a.Allocate(1<<20, 8); ok {
		t.Fatal("expected an over-large allocation to fail")
	}
}

func TestFreeListAddressSorted(t *testing.T) {
	a := newTestAllocator(t, 8192)

	var ptrs []uint32
	for i := 0; i < 5; i++ {
		ptr, ok := a.Allocate(32, 8)
		if !ok {
			t.Fatalf("allocation %d failed", i)
		}
		ptrs = append(ptrs, ptr)
	}
	// free out of order
	a.Deallocate(ptrs[3])
	a.Deallocate(ptrs[1])
	a.Deallocate(ptrs[4])

	segs := a.FreeList()
	for i := 1; i < len(segs); i++ {
		if segs[i-1].Offset >= segs[i].Offset {
			t.Fatalf("free list not address-sorted: %#v", segs)
		}
	}
}

func TestFreeListCoalescesFullyOnTotalFree(t *testing.T) {
	a := newTestAllocator(t, 8192)
	before := a.FreeBytes()

	var ptrs []uint32
	for i := 0; i < 4; i++ {
		ptr, ok := a.Allocate(40, 8)
		if !ok {
			t.Fatalf("allocation %d failed", i)
		}
		ptrs = append(ptrs, ptr)
	}
	for _, p := range ptrs {
		a.Deallocate(p)
	}

	segs := a.FreeList()
	if len(segs) != 1 {
		t.Fatalf("expected full coalescing into a single free segment, got %d: %#v", len(segs), segs)
	}
	if got := a.FreeBytes(); got != before {
		t.Errorf("FreeBytes() after freeing everything = %d, want %d", got, before)
	}
}

func TestMultibootParseAndPickLargest(t *testing.T) {
	buf := encodeMmapEntries(t, []Entry{
		{BaseAddr: 0x0, Length: 0x9FC00, Type: 1},
		{BaseAddr: 0x100000, Length: 4 * 1024 * 1024, Type: 1},
		{BaseAddr: 0xF00000, Length: 1024, Type: 2}, // reserved, ignored
	})

	entries := ParseMemoryMap(buf)
	if len(entries) != 3 {
		t.Fatalf("parsed %d entries, want 3", len(entries))
	}

	best, ok := LargestAvailableRegion(entries, 2*1024*1024)
	if !ok {
		t.Fatal("expected a region >= 2 MiB to be found")
	}
	if best.BaseAddr != 0x100000 {
		t.Errorf("best.BaseAddr = %#x, want 0x100000", best.BaseAddr)
	}
}

// encodeMmapEntries builds a raw Multiboot-style mmap buffer from
// Entry values, inverting ParseMemoryMap's decode for test fixtures.
func encodeMmapEntries(t *testing.T, entries []Entry) []byte {
	t.Helper()
	var buf []byte
	for _, e := range entries {
		rec := make([]byte, 4+20)
		putU32(rec[0:4], 20)
		putU32(rec[4:8], uint32(e.BaseAddr))
		putU32(rec[8:12], uint32(e.BaseAddr>>32))
		putU32(rec[12:16], uint32(e.Length))
		putU32(rec[16:20], uint32(e.Length>>32))
		putU32(rec[20:24], e.Type)
		buf = append(buf, rec...)
	}
	return buf
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
