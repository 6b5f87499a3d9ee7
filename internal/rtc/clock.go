package rtc

import (
	"sync/atomic"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/logging"
)

// Clock is the process-wide monotonic tick counter: incremented
// exactly once per periodic RTC interrupt, read without locking.
type Clock struct {
	ticks atomic.Uint32
}

// NewClock returns a clock starting at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// Ticks returns the current tick count. Safe to call from any
// context; writers are interrupt-only.
func (c *Clock) Ticks() uint32 {
	return c.ticks.Load()
}

// Tick advances the counter by one. Called from the RTC interrupt
// handler only.
func (c *Clock) Tick() {
	c.ticks.Add(1)
}

// SleepTicks blocks the calling context until the tick counter has
// advanced by at least n, halting the CPU between checks so the RTC
// interrupt that advances the counter gets to run. Bounded by
// constants.SleepSafetyBoundIterations against a non-incrementing
// counter (stuck clock, masked interrupts).
func (c *Clock) SleepTicks(cpu hwio.CPUControl, n uint32) {
	target := c.Ticks() + n
	for i := 0; c.Ticks() < target; i++ {
		if i >= constants.SleepSafetyBoundIterations {
			logging.Default().Warn("rtc: sleep_ticks hit its safety bound without the clock advancing")
			return
		}
		cpu.EnableInterrupts()
		cpu.Halt()
	}
}

// SleepSeconds sleeps for approximately seconds real time, converting
// via constants.RTCTickHz.
func (c *Clock) SleepSeconds(cpu hwio.CPUControl, seconds uint32) {
	c.SleepTicks(cpu, seconds*constants.RTCTickHz)
}
