// Package shogun boots and wires together the kernel core: segment
// tables, interrupt handling, the heap allocator, the RTC driver, and
// the cooperative executor. It is the public entry point a downstream
// embedder (such as cmd/shogunctl) calls into; every
// privileged primitive lives one layer down in internal/.
package shogun

import (
	"context"
	"fmt"
	"time"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/cpu"
	"github.com/SarthakRawat-1/shogun-os/internal/critical"
	"github.com/SarthakRawat-1/shogun-os/internal/executor"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/logging"
	"github.com/SarthakRawat-1/shogun-os/internal/logring"
	"github.com/SarthakRawat-1/shogun-os/internal/memheap"
	"github.com/SarthakRawat-1/shogun-os/internal/ports"
	"github.com/SarthakRawat-1/shogun-os/internal/rtc"
)

// Config parameterizes Boot. Hardware selects the privileged backend:
// hwio.NewFake() for tests and simulated runs, the cgo `real` backend
// (internal/hwio) for an actual ring-0 target.
type Config struct {
	// Hardware is the port-I/O and CPU-control backend Boot drives.
	Hardware hwio.Hardware

	// Arena is the byte slice standing in for the physical region the
	// Multiboot memory map would otherwise describe; the allocator
	// manages it directly rather than real physical addresses.
	Arena []byte

	// MemoryMap, if non-nil, is a Multiboot-format memory map Boot
	// parses to check that it has an available region at least as large
	// as both Arena and constants.HeapSize; when nil, Boot skips that
	// check. Either way the heap is bootstrapped over the whole Arena,
	// which stands in for the selected region.
	MemoryMap []byte

	// Logger receives structured boot-sequence diagnostics. Defaults
	// to logging.Default() when nil.
	Logger *logging.Logger
}

// Kernel is the fully booted core: every component Boot brought up,
// held together so callers can spawn futures, read the clock, or push
// log entries.
type Kernel struct {
	Hardware  hwio.Hardware
	PortReg   *ports.Registry
	GDT       *cpu.GDT
	PIC       *cpu.PIC
	IDT       *cpu.IDT
	Allocator *memheap.Allocator
	RTC       *rtc.Driver
	Clock     *rtc.Clock
	Section   *critical.Section
	LogRing   *logring.Ring
	WakeUps   *executor.WakeUpList
	Executor  *executor.Executor
	Metrics   *Metrics

	logger *logging.Logger
}

// Boot brings the core up in dependency order: GDT -> PIC init and
// remap -> IDT (which EOIs through the PIC) -> allocator init
// (checking the memory map, if given) -> RTC driver -> executor
// construction, logging as each step starts. Once the RTC has settled
// out of its update-in-progress window (bounded by
// BootStepTimeout/BootStepPollInterval), its IRQ handler is
// registered, the line is unmasked at the PIC, periodic interrupts are
// armed, and the hardware's interrupt flag is enabled.
func Boot(ctx context.Context, cfg Config) (*Kernel, error) {
	if cfg.Hardware == nil {
		return nil, fmt.Errorf("shogun: boot: Config.Hardware is required")
	}
	if len(cfg.Arena) == 0 {
		return nil, fmt.Errorf("shogun: boot: Config.Arena is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	k := &Kernel{Hardware: cfg.Hardware, Metrics: NewMetrics(), logger: logger}

	logger.Info("boot: installing GDT")
	k.GDT = cpu.NewGDT()
	k.GDT.Install(cfg.Hardware)

	k.PortReg = ports.NewRegistry()

	logger.Info("boot: configuring PIC")
	pic, err := cpu.NewPIC(cfg.Hardware, k.PortReg)
	if err != nil {
		return nil, fmt.Errorf("shogun: boot: pic: %w", err)
	}
	pic.Remap()
	k.PIC = pic

	k.IDT = cpu.NewIDT(pic)
	k.IDT.Install(cfg.Hardware)

	logger.Info("boot: bootstrapping heap", "arena_bytes", len(cfg.Arena))
	heapStart := uint32(0)
	if cfg.MemoryMap != nil {
		entries := memheap.ParseMemoryMap(cfg.MemoryMap)
		minLength := uint64(len(cfg.Arena))
		if minLength < constants.HeapSize {
			minLength = constants.HeapSize
		}
		region, ok := memheap.LargestAvailableRegion(entries, minLength)
		if !ok {
			return nil, fmt.Errorf("shogun: boot: no available memory region large enough for the heap")
		}
		logger.Debug("boot: selected memory region", "base", region.BaseAddr, "length", region.Length)
	}
	k.Allocator = memheap.NewAllocator(cfg.Arena)
	k.Allocator.Bootstrap(heapStart)

	logger.Info("boot: initializing RTC")
	rtcDriver, err := rtc.NewDriver(cfg.Hardware, k.PortReg)
	if err != nil {
		return nil, fmt.Errorf("shogun: boot: rtc: %w", err)
	}
	k.RTC = rtcDriver
	k.Clock = rtc.NewClock()

	k.Section = critical.NewSection(cfg.Hardware)
	k.LogRing = logring.NewRing(k.Section)
	k.WakeUps = executor.NewWakeUpList(k.Section)
	k.Executor = executor.New(cfg.Hardware)
	k.Executor.OnComplete(func() { k.Metrics.TasksCompleted.Add(1) })

	deadline := time.Now().Add(constants.BootStepTimeout)
	for !rtcDriver.Settled() && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("shogun: boot: %w", ctx.Err())
		case <-time.After(constants.BootStepPollInterval):
		}
	}

	rtcDriver.EnablePeriodicInterrupts(k.IDT, k.PIC, k.tickHandler)
	cfg.Hardware.EnableInterrupts()

	logger.Info("boot: core online")
	return k, nil
}

// tickHandler is the RTC interrupt handler wired in by Boot: advance
// the monotonic clock, run any wake-up list entries that are now due,
// acknowledge the interrupt, and record it in Metrics.
func (k *Kernel) tickHandler() {
	k.Clock.Tick()
	k.WakeUps.CheckAndExecute(k.Clock.Ticks())
	k.RTC.ClearInterrupt()
	k.Metrics.Ticks.Add(1)
}

// Spawn adds future to the executor's task list.
func (k *Kernel) Spawn(future executor.Future) {
	k.Executor.Spawn(future)
	k.Metrics.TasksSpawned.Add(1)
}

// Run drives the executor loop until ctx is cancelled.
func (k *Kernel) Run(ctx context.Context) {
	k.Executor.Run(ctx)
}

// Allocate requests size bytes aligned to alignment from the heap,
// recording the result in Metrics.
func (k *Kernel) Allocate(size, alignment uint32) (uint32, error) {
	ptr, ok := k.Allocator.Allocate(size, alignment)
	if !ok {
		return 0, NewError("heap.allocate", ErrCodeHeapExhausted, "no free segment large enough")
	}
	k.Metrics.Allocations.Add(1)
	k.Metrics.BytesInUse.Add(int64(size))
	return ptr, nil
}

// Free releases a region previously returned by Allocate. size must
// match the value Allocate was called with, since the allocator
// itself reconstructs the segment from its header rather than
// tracking the caller's requested size.
func (k *Kernel) Free(ptr uint32, size uint32) {
	k.Allocator.Deallocate(ptr)
	k.Metrics.Deallocations.Add(1)
	k.Metrics.BytesInUse.Add(-int64(size))
}

// Log pushes entry into the kernel's log ring, recording a drop in
// Metrics if the ring was full.
func (k *Kernel) Log(entry logring.Entry) {
	if k.LogRing.Push(entry) {
		k.Metrics.LogDrops.Add(1)
	}
	k.Metrics.LogPushes.Add(1)
}
