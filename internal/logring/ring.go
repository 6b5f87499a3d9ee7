// Package logring implements a bounded FIFO log buffer: producers
// push under a critical section, the service routine drains to a
// sink outside any section.
package logring

import (
	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/critical"
)

// Level orders log severities from most to least verbose. The ring
// stores entries of every level; it does no filtering by level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Entry is one log record. Module and Message are truncated to
// constants.LogModuleMaxLen/LogMessageMaxLen on Push.
type Entry struct {
	Level   Level
	Module  string
	Message string
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Ring is a fixed-capacity FIFO. Push drops the oldest entry on
// overflow rather than blocking or failing.
type Ring struct {
	section *critical.Section
	buf     [constants.LogRingCapacity]Entry
	head    int
	tail    int
	count   int
}

// NewRing returns an empty ring guarded by section.
func NewRing(section *critical.Section) *Ring {
	return &Ring{section: section}
}

// Push enqueues entry, acquiring the critical section for the
// duration of the buffer mutation. If the ring is full the oldest
// entry is dropped first; Push reports whether that happened so a
// caller can track drops.
func (r *Ring) Push(entry Entry) (dropped bool) {
	entry.Module = truncate(entry.Module, constants.LogModuleMaxLen)
	entry.Message = truncate(entry.Message, constants.LogMessageMaxLen)

	r.section.Enter()
	defer r.section.Leave()

	if r.count >= constants.LogRingCapacity {
		r.head = (r.head + 1) % constants.LogRingCapacity
		r.count--
		dropped = true
	}
	r.buf[r.tail] = entry
	r.tail = (r.tail + 1) % constants.LogRingCapacity
	r.count++
	return dropped
}

// Pop dequeues the oldest entry, reporting ok=false if the ring is
// empty. Pop also runs under the critical section: the ring's
// head/tail/count fields are shared with Push, which can run from
// interrupt context.
func (r *Ring) Pop() (Entry, bool) {
	r.section.Enter()
	defer r.section.Leave()

	if r.count == 0 {
		return Entry{}, false
	}
	e := r.buf[r.head]
	r.head = (r.head + 1) % constants.LogRingCapacity
	r.count--
	return e, true
}

// Count reports the number of buffered entries.
func (r *Ring) Count() int {
	r.section.Enter()
	defer r.section.Leave()
	return r.count
}

// Sink receives drained entries; Service calls it for each popped
// entry outside the critical section.
type Sink func(Entry)

// Service drains every buffered entry to sink. It takes no critical
// section itself beyond what each Pop call holds momentarily, so the
// drain runs outside interrupt context with no section held across
// iterations and producers are never blocked by a slow sink.
func (r *Ring) Service(sink Sink) {
	for {
		e, ok := r.Pop()
		if !ok {
			return
		}
		sink(e)
	}
}
