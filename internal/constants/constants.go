// Package constants holds the tunables shared across the kernel core.
package constants

import "time"

// Heap allocator (C2)
const (
	// HeapSize is the minimum size of the physical region the bootstrap
	// scan accepts as the heap's backing store (Boot also requires the
	// region to be at least as large as its Arena).
	HeapSize = 2 * 1024 * 1024 // 2 MiB

	// HeapAlignment is the alignment the bootstrap start address is
	// rounded up to before the initial free segment is published.
	HeapAlignment = 8

	// MultibootAvailableType is the memory-map entry type value meaning
	// "available RAM" per the Multiboot spec.
	MultibootAvailableType = 1
)

// Port registry (C1)
const (
	// MaxTrackedPorts is the fixed capacity of the port registry.
	MaxTrackedPorts = 64
)

// RTC + monotonic clock (C6)
const (
	// CMOSControlPort and CMOSDataPort are the CMOS index/data port pair.
	CMOSControlPort uint16 = 0x70
	CMOSDataPort    uint16 = 0x71

	// NMIDisableMask is ORed into the CMOS register-select byte to mask NMI.
	NMIDisableMask uint8 = 0x80

	// CMOS register indices.
	CMOSRegSeconds uint8 = 0x00
	CMOSRegMinutes uint8 = 0x02
	CMOSRegHours   uint8 = 0x04
	CMOSRegWeekday uint8 = 0x06
	CMOSRegDay     uint8 = 0x07
	CMOSRegMonth   uint8 = 0x08
	CMOSRegYear    uint8 = 0x09
	CMOSRegA       uint8 = 0x0A
	CMOSRegB       uint8 = 0x0B
	CMOSRegC       uint8 = 0x0C
	CMOSRegD       uint8 = 0x0D

	// RTCTickHz is the periodic interrupt rate register A is programmed
	// for (rate code 8 -> 32768 / 2^(8-1) = 256 Hz). Every tick-to-seconds
	// conversion in this module assumes this value.
	RTCTickHz = 256

	// RTCRateCode is the register-A rate-selection nibble for RTCTickHz.
	RTCRateCode uint8 = 0x08

	// RTCSlaveIRQIndex is the slave-PIC IRQ index (IRQ 8) the RTC
	// delivers periodic interrupts on.
	RTCSlaveIRQIndex uint8 = 0

	// SleepSafetyBoundIterations bounds sleep_ticks against a
	// non-incrementing tick counter.
	SleepSafetyBoundIterations = 1_000_000
)

// PIC (C4)
const (
	PICMasterCommandPort uint16 = 0x20
	PICMasterDataPort    uint16 = 0x21
	PICSlaveCommandPort  uint16 = 0xA0
	PICSlaveDataPort     uint16 = 0xA1

	PICEOI uint8 = 0x20

	// PICMasterVectorBase and PICSlaveVectorBase are the vector bases
	// installed by the remap (avoids collision with CPU exceptions 0-31).
	PICMasterVectorBase uint8 = 0x40
	PICSlaveVectorBase  uint8 = 0x48
)

// Log ring (C8)
const (
	// LogRingCapacity is the number of entries the bounded FIFO holds.
	LogRingCapacity = 64

	// LogModuleMaxLen and LogMessageMaxLen bound the log entry's
	// embedded strings so the entry stays a fixed-size value type.
	LogModuleMaxLen  = 16
	LogMessageMaxLen = 96
)

// Serial (COM1), an external collaborator needed so C11's serial-write
// future has a transmit-empty bit to poll.
const (
	SerialBasePort uint16 = 0x3F8

	// Line-status register transmit-empty bits.
	SerialLSRTransmitEmpty uint8 = 0x20
	SerialLSRTransmitIdle  uint8 = 0x40
)

// Boot sequencing.
//
// Boot drives a multi-step privileged handshake and polls for each
// step's precondition instead of assuming it is instantaneous.
const (
	// BootStepPollInterval is how often Boot re-checks a step's
	// precondition while waiting for it to become true.
	BootStepPollInterval = time.Millisecond

	// BootStepTimeout bounds how long Boot waits on any single step.
	BootStepTimeout = 2 * time.Second
)
