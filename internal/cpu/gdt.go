// Package cpu implements the segment and interrupt infrastructure: the
// GDT, the 8259 PIC driver, and the IDT with its dynamic
// vector-to-handler registry.
package cpu

import "unsafe"

// gdtEntry is the packed 8-byte GDT descriptor the LGDT instruction
// expects.
type gdtEntry struct {
	LimitLow       uint16
	BaseLow        uint16
	BaseMid        uint8
	Access         uint8
	LimitHighFlags uint8
	BaseHigh       uint8
}

var _ [8]byte = [unsafe.Sizeof(gdtEntry{})]byte{}

const (
	gdtPresent    uint8 = 0x80
	gdtSegment    uint8 = 0x10
	gdtExecutable uint8 = 0x08
	gdtReadWrite  uint8 = 0x02

	// gdt4KGranularity32Bit sets the 4 KiB granularity and 32-bit
	// default-operand-size flag bits alongside the limit's top nibble.
	gdt4KGranularity32Bit uint8 = 0xC0

	flatLimit uint32 = 0xFFFFF
)

// Selector values for the two non-null descriptors GDT installs.
// CodeSegmentSelector fills the IDT's code-segment field;
// DataSegmentSelector is not referenced elsewhere in this module.
const (
	CodeSegmentSelector uint16 = 0x08
	DataSegmentSelector uint16 = 0x10
)

// GDT holds the three flat-model descriptors this kernel runs under: a
// null descriptor, a 4 GiB ring-0 code segment, and a 4 GiB ring-0 data
// segment. Nothing mutates the table after Install.
type GDT struct {
	entries [3]gdtEntry
}

// NewGDT builds the descriptor table. It does not touch hardware;
// call Install to load it.
func NewGDT() *GDT {
	g := &GDT{}
	g.entries[1] = buildDescriptor(0, flatLimit, gdtPresent|gdtSegment|gdtExecutable|gdtReadWrite)
	g.entries[2] = buildDescriptor(0, flatLimit, gdtPresent|gdtSegment|gdtReadWrite)
	return g
}

func buildDescriptor(base, limit uint32, access uint8) gdtEntry {
	return gdtEntry{
		BaseLow:        uint16(base & 0xFFFF),
		BaseMid:        uint8((base >> 16) & 0xFF),
		BaseHigh:       uint8((base >> 24) & 0xFF),
		LimitLow:       uint16(limit & 0xFFFF),
		LimitHighFlags: uint8((limit>>16)&0x0F) | gdt4KGranularity32Bit,
		Access:         access,
	}
}

// cpuControl is the slice of hwio.CPUControl Install needs; declared
// locally to avoid an import cycle concern and keep this file testable
// with any stand-in that implements LoadGDT.
type cpuControl interface {
	LoadGDT(base uint32, limit uint16)
}

// Install loads the table via LGDT. base is the linear address of the
// first entry, computed from the table's actual memory address.
func (g *GDT) Install(cpu cpuControl) {
	base := uint32(uintptr(unsafe.Pointer(&g.entries[0])))
	limit := uint16(unsafe.Sizeof(g.entries) - 1)
	cpu.LoadGDT(base, limit)
}

// Entries exposes the raw table for inspection in tests and for
// print_gdt_info-style diagnostics; callers must not mutate it.
func (g *GDT) Entries() [3]gdtEntry { return g.entries }
