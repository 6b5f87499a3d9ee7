package hwio

import "sync"

// Fake is an in-memory stand-in for x86 port space and CPU control,
// used by every unit test in this module and by cmd/shogunctl's
// default (non --real) run mode. It tracks enough state — a byte per
// port, an interrupt-enable flag, and call counters — to let tests
// assert on both the value a driver wrote and the sequence of
// operations it performed.
type Fake struct {
	mu sync.Mutex

	ports map[uint16]uint8

	interruptsEnabled bool
	haltCalls         int
	gdtBase           uint32
	gdtLimit          uint16
	idtBase           uint32
	idtLimit          uint16

	// OnInB, if set, is consulted before the stored port value is
	// returned, letting a test script a register like CMOS's
	// update-in-progress bit flipping across successive reads.
	OnInB func(port uint16) (uint8, bool)
}

// NewFake returns a Fake with interrupts initially enabled, matching
// the CPU state the boot stub hands off.
func NewFake() *Fake {
	return &Fake{
		ports:             make(map[uint16]uint8),
		interruptsEnabled: true,
	}
}

func (f *Fake) InB(port uint16) uint8 {
	f.mu.Lock()
	hook := f.OnInB
	f.mu.Unlock()
	// The hook runs without the lock held so it may call PortValue.
	if hook != nil {
		if v, ok := hook(port); ok {
			return v
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ports[port]
}

func (f *Fake) OutB(port uint16, value uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ports[port] = value
}

// PortValue returns the last value written to port, for test
// assertions; it does not go through OnInB.
func (f *Fake) PortValue(port uint16) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ports[port]
}

// SetPort seeds a port's value directly, for test setup.
func (f *Fake) SetPort(port uint16, value uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ports[port] = value
}

func (f *Fake) DisableInterrupts() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interruptsEnabled = false
}

func (f *Fake) EnableInterrupts() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interruptsEnabled = true
}

func (f *Fake) InterruptsEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interruptsEnabled
}

// Halt counts the call and returns immediately. Simulated time has no
// real interrupts to block on, so tests that depend on hlt actually
// blocking drive the clock forward explicitly instead.
func (f *Fake) Halt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.haltCalls++
}

// HaltCalls reports how many times Halt was invoked, used by
// executor tests to verify the idle path was taken the expected
// number of times.
func (f *Fake) HaltCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.haltCalls
}

func (f *Fake) LoadGDT(base uint32, limit uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gdtBase, f.gdtLimit = base, limit
}

func (f *Fake) LoadIDT(base uint32, limit uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idtBase, f.idtLimit = base, limit
}

// LoadedGDT and LoadedIDT report the last table handed to LoadGDT/LoadIDT.
func (f *Fake) LoadedGDT() (base uint32, limit uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gdtBase, f.gdtLimit
}

func (f *Fake) LoadedIDT() (base uint32, limit uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.idtBase, f.idtLimit
}
