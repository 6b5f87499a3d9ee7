package executor

import "github.com/SarthakRawat-1/shogun-os/internal/critical"

// wakeUpEntry is one pending timer registration: fire callback once
// the clock reaches tick.
type wakeUpEntry struct {
	tick     uint32
	callback func()
}

// WakeUpList holds timer registrations the RTC handler scans on every
// tick increment, invoking and removing any entry whose target has
// been reached. Add and CheckAndExecute are critical-section-guarded
// since both the RTC interrupt handler and task-context callers
// (sleep future creation) touch the list.
type WakeUpList struct {
	section *critical.Section
	entries []wakeUpEntry
}

// NewWakeUpList returns an empty list guarded by section.
func NewWakeUpList(section *critical.Section) *WakeUpList {
	return &WakeUpList{section: section}
}

// Add registers callback to fire once the tick counter reaches tick.
func (l *WakeUpList) Add(tick uint32, callback func()) {
	l.section.Enter()
	defer l.section.Leave()
	l.entries = append(l.entries, wakeUpEntry{tick: tick, callback: callback})
}

// CheckAndExecute invokes and removes every entry whose tick has been
// reached by current. Called from the RTC interrupt handler after
// each tick increment.
func (l *WakeUpList) CheckAndExecute(current uint32) {
	l.section.Enter()
	due := l.entries[:0]
	var ready []func()
	for _, e := range l.entries {
		if current >= e.tick {
			ready = append(ready, e.callback)
			continue
		}
		due = append(due, e)
	}
	l.entries = due
	l.section.Leave()

	for _, cb := range ready {
		cb()
	}
}

// Len reports the number of pending entries, for diagnostics/tests.
func (l *WakeUpList) Len() int {
	return len(l.entries)
}
