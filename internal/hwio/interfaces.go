// Package hwio is the narrow seam between the hardware-agnostic kernel
// core and the x86 port space / CPU control instructions it drives.
// Every other package in this module depends only on the interfaces
// below; see real_linux_amd64.go for the privileged cgo implementation
// and fake.go for the in-memory double every unit test runs against.
package hwio

// PortIO is single-byte x86 port I/O: the `in`/`out` instruction pair.
type PortIO interface {
	InB(port uint16) uint8
	OutB(port uint16, value uint8)
}

// CPUControl wraps the small set of privileged instructions the core
// needs beyond port I/O: interrupt masking, halting, and loading the
// two descriptor tables.
type CPUControl interface {
	DisableInterrupts()
	EnableInterrupts()

	// Halt executes hlt and returns when any interrupt (masked or not)
	// resumes execution. It never inspects IF itself; callers that need
	// "sti; hlt; cli" compose it from EnableInterrupts/Halt/DisableInterrupts.
	Halt()

	// LoadGDT and LoadIDT issue lgdt/lidt with the given linear base and
	// byte limit (table size - 1).
	LoadGDT(base uint32, limit uint16)
	LoadIDT(base uint32, limit uint16)
}

// Hardware bundles both seams; Boot takes one so callers choose the
// real backend or hwio.NewFake() in a single place.
type Hardware interface {
	PortIO
	CPUControl
}
