// Package critical implements a re-entrant interrupt-disable primitive
// that the log ring and wake-up list serialize access through.
package critical

import (
	"sync/atomic"

	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
)

// Section is a re-entrant interrupt guard: nested Enter/Leave pairs
// only re-enable interrupts when the outermost Leave brings the
// nesting depth back to zero. The counter lives on the Section itself
// so independent call sites don't share nesting state by accident.
type Section struct {
	cpu   hwio.CPUControl
	depth atomic.Int32
}

// NewSection returns a Section guarding cpu's interrupt flag.
func NewSection(cpu hwio.CPUControl) *Section {
	return &Section{cpu: cpu}
}

// Enter disables interrupts unconditionally and increments the
// nesting depth, even if interrupts were already disabled by an outer
// Enter.
func (s *Section) Enter() {
	s.cpu.DisableInterrupts()
	s.depth.Add(1)
}

// Leave decrements the nesting depth and re-enables interrupts only
// when depth returns to zero.
func (s *Section) Leave() {
	if s.depth.Add(-1) == 0 {
		s.cpu.EnableInterrupts()
	}
}

// Depth reports the current nesting depth, mainly for tests asserting
// the nesting invariant.
func (s *Section) Depth() int32 {
	return s.depth.Load()
}
