package memheap

import (
	"encoding/binary"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
)

// Entry is one Multiboot memory-map record, decoded field-at-a-time
// via encoding/binary.
type Entry struct {
	BaseAddr uint64
	Length   uint64
	Type     uint32
}

// minEntryRecordSize is the byte count of the fixed part of a
// Multiboot memory-map entry (everything after its own size field):
// base_addr_low/high, length_low/high, type.
const minEntryRecordSize = 20

// ParseMemoryMap walks a raw Multiboot mmap buffer. Each record is
// prefixed by its own size (not counting the size field itself), so
// the next record starts size+4 bytes later. Malformed trailing data
// is ignored.
func ParseMemoryMap(mmap []byte) []Entry {
	var entries []Entry
	offset := 0
	for offset+4 <= len(mmap) {
		size := binary.LittleEndian.Uint32(mmap[offset : offset+4])
		if size < minEntryRecordSize || offset+4+int(size) > len(mmap) {
			break
		}
		rec := mmap[offset+4 : offset+4+int(size)]
		entries = append(entries, Entry{
			BaseAddr: uint64(binary.LittleEndian.Uint32(rec[0:4])) | uint64(binary.LittleEndian.Uint32(rec[4:8]))<<32,
			Length:   uint64(binary.LittleEndian.Uint32(rec[8:12])) | uint64(binary.LittleEndian.Uint32(rec[12:16]))<<32,
			Type:     binary.LittleEndian.Uint32(rec[16:20]),
		})
		offset += 4 + int(size)
	}
	return entries
}

// LargestAvailableRegion returns the largest type-1 (available)
// region at least minLength bytes long, found with a single-pass scan.
func LargestAvailableRegion(entries []Entry, minLength uint64) (Entry, bool) {
	var best Entry
	found := false
	for _, e := range entries {
		if e.Type != constants.MultibootAvailableType {
			continue
		}
		if e.Length < minLength {
			continue
		}
		if !found || e.Length > best.Length {
			best, found = e, true
		}
	}
	return best, found
}
