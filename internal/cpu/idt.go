package cpu

import (
	"unsafe"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
)

// idtEntry is the packed 8-byte interrupt-gate descriptor x86 expects
// in the IDT.
type idtEntry struct {
	OffsetLow  uint16
	Selector   uint16
	Zero       uint8
	TypeAttr   uint8
	OffsetHigh uint16
}

var _ [8]byte = [unsafe.Sizeof(idtEntry{})]byte{}

const (
	idtPresent     uint8 = 0x80
	idtInterrupt32 uint8 = 0x0E

	numVectors = 256
)

// typeAttrInterruptGate is the present|ring-0|32-bit-interrupt-gate
// byte every installed vector uses.
const typeAttrInterruptGate = idtPresent | idtInterrupt32

// Handler is a registered interrupt handler. It takes no arguments and
// returns nothing, matching the C ABI's void(*)(void) handler shape —
// the trampoline has already stripped the vector/error-code framing by
// the time the generic dispatcher calls it.
type Handler func()

// IRQClass distinguishes the three sources an interrupt vector can
// come from.
type IRQClass int

const (
	IRQInternal IRQClass = iota
	IRQMaster
	IRQSlave
)

// IRQID names an interrupt line independent of its assigned vector.
type IRQID struct {
	Class IRQClass
	Index uint8
}

// Vector resolves id to its IDT vector number: internal(k) -> k,
// pic_master(k) -> 0x40+k, pic_slave(k) -> 0x48+k.
func (id IRQID) Vector() uint8 {
	switch id.Class {
	case IRQMaster:
		return constants.PICMasterVectorBase + id.Index
	case IRQSlave:
		return constants.PICSlaveVectorBase + id.Index
	default:
		return id.Index
	}
}

// IDT holds the 256-entry interrupt-gate table, a dynamic
// vector-to-handler registry, and the PIC used to EOI dispatched
// interrupts — installing a vector and dispatching to it are one
// cohesive responsibility.
type IDT struct {
	entries  [numVectors]idtEntry
	handlers [numVectors]Handler
	pic      *PIC
}

// NewIDT builds an empty table. Handlers may be registered before or
// after Install, since Install loads the table by address.
func NewIDT(pic *PIC) *IDT {
	return &IDT{pic: pic}
}

// Register installs handler for vector. A nil handler clears the
// slot.
func (t *IDT) Register(vector uint8, handler Handler) {
	if handler == nil {
		t.entries[vector] = idtEntry{}
		t.handlers[vector] = nil
		return
	}
	t.handlers[vector] = handler
	t.entries[vector] = idtEntry{
		Selector: CodeSegmentSelector,
		TypeAttr: typeAttrInterruptGate,
	}
}

// RegisterIRQ maps id to its vector per Vector and registers handler
// there.
func (t *IDT) RegisterIRQ(id IRQID, handler Handler) {
	t.Register(id.Vector(), handler)
}

// Unregister clears vector's handler and descriptor.
func (t *IDT) Unregister(vector uint8) {
	t.handlers[vector] = nil
	t.entries[vector] = idtEntry{}
}

// UnregisterIRQ clears id's mapped vector.
func (t *IDT) UnregisterIRQ(id IRQID) {
	t.Unregister(id.Vector())
}

// Handler returns the handler registered for vector, or nil.
func (t *IDT) Handler(vector uint8) Handler {
	return t.handlers[vector]
}

// cpuControlIDT is the slice of hwio.CPUControl Install needs.
type cpuControlIDT interface {
	LoadIDT(base uint32, limit uint16)
}

// Install loads the table via LIDT.
func (t *IDT) Install(cpu cpuControlIDT) {
	base := uint32(uintptr(unsafe.Pointer(&t.entries[0])))
	limit := uint16(unsafe.Sizeof(t.entries) - 1)
	cpu.LoadIDT(base, limit)
}

// Dispatch is the generic interrupt dispatcher every trampoline calls
// after framing the vector number: it runs the registered handler, if
// any, then sends PIC EOI for that vector.
func (t *IDT) Dispatch(vector uint8) {
	if h := t.handlers[vector]; h != nil {
		h()
	}
	if t.pic != nil {
		t.pic.SendEOI(vector)
	}
}

// Descriptor returns a copy of vector's installed descriptor, useful
// for print-style diagnostics and tests asserting a vector is set.
func (t *IDT) Descriptor(vector uint8) (offsetLow, offsetHigh uint16, isSet bool) {
	e := t.entries[vector]
	return e.OffsetLow, e.OffsetHigh, e.TypeAttr != 0
}
