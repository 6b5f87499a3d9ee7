package shogun

import (
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters for a booted kernel core using
// atomic fields so interrupt handlers and executor tasks can update
// them without a lock.
type Metrics struct {
	// Ticks counts RTC periodic interrupts serviced.
	Ticks atomic.Uint64

	// TasksSpawned/TasksCompleted count executor task lifecycle events.
	TasksSpawned   atomic.Uint64
	TasksCompleted atomic.Uint64

	// Allocations/Deallocations/BytesInUse track heap allocator use
	// through the Kernel.Allocate/Kernel.Free wrappers.
	Allocations   atomic.Uint64
	Deallocations atomic.Uint64
	BytesInUse    atomic.Int64

	// LogPushes/LogDrops count entries pushed through Kernel.Log and
	// how many of those overwrote an unread entry (ring was full).
	LogPushes atomic.Uint64
	LogDrops  atomic.Uint64

	StartTime atomic.Int64 // UnixNano
}

// NewMetrics returns a Metrics with StartTime set to now.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

// MetricsSnapshot is a point-in-time copy of Metrics' counters.
type MetricsSnapshot struct {
	Ticks          uint64
	TasksSpawned   uint64
	TasksCompleted uint64
	Allocations    uint64
	Deallocations  uint64
	BytesInUse     int64
	LogPushes      uint64
	LogDrops       uint64
	UptimeNs       uint64
}

// Snapshot copies every counter into a MetricsSnapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Ticks:          m.Ticks.Load(),
		TasksSpawned:   m.TasksSpawned.Load(),
		TasksCompleted: m.TasksCompleted.Load(),
		Allocations:    m.Allocations.Load(),
		Deallocations:  m.Deallocations.Load(),
		BytesInUse:     m.BytesInUse.Load(),
		LogPushes:      m.LogPushes.Load(),
		LogDrops:       m.LogDrops.Load(),
		UptimeNs:       uint64(time.Now().UnixNano() - m.StartTime.Load()),
	}
}

// Reset zeroes every counter except StartTime, which is set to now.
func (m *Metrics) Reset() {
	m.Ticks.Store(0)
	m.TasksSpawned.Store(0)
	m.TasksCompleted.Store(0)
	m.Allocations.Store(0)
	m.Deallocations.Store(0)
	m.BytesInUse.Store(0)
	m.LogPushes.Store(0)
	m.LogDrops.Store(0)
	m.StartTime.Store(time.Now().UnixNano())
}
