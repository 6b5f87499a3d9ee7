// Package memheap implements a first-fit free-list heap allocator over
// a fixed byte arena standing in for a physical region carved out of
// the Multiboot memory map, with in-band free/used headers read and
// written through encoding/binary.
package memheap

import (
	"encoding/binary"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
)

const (
	// freeHeaderSize is the in-band free-segment header {size:u32, next:u32}.
	freeHeaderSize = 8
	// usedHeaderSize is the in-band used-segment header {size:u32}.
	usedHeaderSize = 4

	// noNext marks an offset field as "no next segment". An arena this
	// large would exceed any HeapSize this kernel configures, so it is
	// never a real offset.
	noNext uint32 = 0xFFFFFFFF
)

// Allocator is a first-fit free-list allocator over a fixed byte
// arena. It is not safe for concurrent use; callers must run it with
// interrupts disabled when it might be reached from both task and
// interrupt context.
type Allocator struct {
	arena     []byte
	firstFree uint32 // offset into arena, or noNext if the list is empty
}

// NewAllocator wraps arena; call Bootstrap before the first Allocate.
func NewAllocator(arena []byte) *Allocator {
	return &Allocator{arena: arena, firstFree: noNext}
}

func alignUp(v, alignment uint32) uint32 {
	return (v + alignment - 1) &^ (alignment - 1)
}

func alignDown(v, alignment uint32) uint32 {
	return v &^ (alignment - 1)
}

// Bootstrap publishes a single initial free segment covering the
// arena from start (inclusive) to its end, after aligning start up to
// constants.HeapAlignment. start is the offset where usable memory
// begins — the caller has already computed it as the point past
// whatever this kernel build reserves at the front of the chosen
// Multiboot region (kernel image, boot stack).
func (a *Allocator) Bootstrap(start uint32) {
	aligned := alignUp(start, constants.HeapAlignment)
	if uint64(aligned)+freeHeaderSize > uint64(len(a.arena)) {
		a.firstFree = noNext
		return
	}
	size := uint32(len(a.arena)) - aligned - freeHeaderSize
	a.writeFreeHeader(aligned, size, noNext)
	a.firstFree = aligned
}

func (a *Allocator) readFreeHeader(offset uint32) (size, next uint32) {
	b := a.arena[offset : offset+freeHeaderSize]
	return binary.LittleEndian.Uint32(b[0:4]), binary.LittleEndian.Uint32(b[4:8])
}

func (a *Allocator) writeFreeHeader(offset, size, next uint32) {
	b := a.arena[offset : offset+freeHeaderSize]
	binary.LittleEndian.PutUint32(b[0:4], size)
	binary.LittleEndian.PutUint32(b[4:8], next)
}

func (a *Allocator) readUsedSize(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(a.arena[offset : offset+usedHeaderSize])
}

func (a *Allocator) writeUsedSize(offset, size uint32) {
	binary.LittleEndian.PutUint32(a.arena[offset:offset+usedHeaderSize], size)
}

// Allocate reserves size bytes aligned to alignment (a power of two)
// and returns the offset of the usable region, or ok=false if size is
// zero or no free segment fits.
//
// Alignment is achieved by trimming the tail of a candidate free
// segment rather than carving a gap before the allocation: the
// used-header always sits immediately before the aligned user region,
// and its recorded size spans from the header to the free segment's
// original end, so Deallocate can reconstruct the free region
// exactly.
func (a *Allocator) Allocate(size, alignment uint32) (uint32, bool) {
	if size == 0 {
		return 0, false
	}

	var prev uint32
	hasPrev := false
	cur := a.firstFree

	for cur != noNext {
		curSize, curNext := a.readFreeHeader(cur)
		segmentEnd := cur + freeHeaderSize + curSize

		alignedData := alignDown(segmentEnd-size, alignment)
		headerPtr := alignedData - usedHeaderSize
		dataStart := cur + freeHeaderSize

		if headerPtr >= dataStart {
			fullAllocSize := segmentEnd - headerPtr
			if fullAllocSize <= curSize {
				a.writeUsedSize(headerPtr, fullAllocSize)

				remaining := curSize - fullAllocSize
				if remaining == 0 {
					if !hasPrev {
						a.firstFree = curNext
					} else {
						prevSize, _ := a.readFreeHeader(prev)
						a.writeFreeHeader(prev, prevSize, curNext)
					}
				} else {
					a.writeFreeHeader(cur, remaining, curNext)
				}
				return alignedData, true
			}
		}

		prev = cur
		hasPrev = true
		cur = curNext
	}

	return 0, false
}

// segmentsAdjacent reports whether second immediately follows first
// with no gap: first's header + size reaches exactly second's address.
func segmentsAdjacent(firstOffset, firstSize, secondOffset uint32) bool {
	return secondOffset == firstOffset+freeHeaderSize+firstSize
}

// Deallocate returns the region at ptr (an offset previously returned
// by Allocate) to the free list, coalescing with adjacent neighbours
// on both sides. A zero-value ptr mirroring a nil pointer is not a
// valid call here — callers that track "no pointer" as a Go bool
// should simply not call Deallocate.
func (a *Allocator) Deallocate(ptr uint32) {
	headerPtr := ptr - usedHeaderSize
	totalSize := a.readUsedSize(headerPtr)

	// The freed region's declared span is [headerPtr, headerPtr+freeHeaderSize+size),
	// and that must equal the span being freed, [headerPtr, headerPtr+totalSize),
	// so the usable size recovered here subtracts the FREE header (8
	// bytes) rather than the USED header (4 bytes) that was actually in
	// place.
	freedSize := totalSize - freeHeaderSize

	cur := a.firstFree
	var prev uint32
	hasPrev := false
	for cur != noNext && cur < headerPtr {
		prev = cur
		hasPrev = true
		_, next := a.readFreeHeader(cur)
		cur = next
	}

	a.writeFreeHeader(headerPtr, freedSize, cur)
	if !hasPrev {
		a.firstFree = headerPtr
	} else {
		prevSize, _ := a.readFreeHeader(prev)
		a.writeFreeHeader(prev, prevSize, headerPtr)
	}

	if cur != noNext && segmentsAdjacent(headerPtr, freedSize, cur) {
		curSize, curNext := a.readFreeHeader(cur)
		mergedSize := freedSize + freeHeaderSize + curSize
		a.writeFreeHeader(headerPtr, mergedSize, curNext)
		freedSize = mergedSize
	}

	if hasPrev {
		prevSize, _ := a.readFreeHeader(prev)
		if segmentsAdjacent(prev, prevSize, headerPtr) {
			_, freedNext := a.readFreeHeader(headerPtr)
			a.writeFreeHeader(prev, prevSize+freeHeaderSize+freedSize, freedNext)
		}
	}
}

// FreeSegmentView is a read-only snapshot of one free-list node, used
// by tests asserting address-sort and coalescing invariants.
type FreeSegmentView struct {
	Offset uint32
	Size   uint32
}

// FreeList walks the free list head to tail for inspection.
func (a *Allocator) FreeList() []FreeSegmentView {
	var out []FreeSegmentView
	cur := a.firstFree
	for cur != noNext {
		size, next := a.readFreeHeader(cur)
		out = append(out, FreeSegmentView{Offset: cur, Size: size})
		cur = next
	}
	return out
}

// FreeBytes sums usable bytes (excluding headers) across the free
// list.
func (a *Allocator) FreeBytes() uint32 {
	var total uint32
	for _, seg := range a.FreeList() {
		total += seg.Size
	}
	return total
}
