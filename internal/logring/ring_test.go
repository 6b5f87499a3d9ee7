package logring

import (
	"strconv"
	"strings"
	"testing"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/critical"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
)

func newTestRing(t *testing.T) *Ring {
	t.Helper()
	return NewRing(critical.NewSection(hwio.NewFake()))
}

func TestPopEmptyReturnsFalse(t *testing.T) {
	r := newTestRing(t)
	if _, ok := r.Pop(); ok {
		t.Fatal("expected Pop on an empty ring to fail")
	}
}

func TestPushPopFIFOOrder(t *testing.T) {
	r := newTestRing(t)
	r.Push(Entry{Level: LevelInfo, Module: "boot", Message: "one"})
	r.Push(Entry{Level: LevelInfo, Module: "boot", Message: "two"})

	e1, ok := r.Pop()
	if !ok || e1.Message != "one" {
		t.Fatalf("first pop = %#v, want message 'one'", e1)
	}
	e2, ok := r.Pop()
	if !ok || e2.Message != "two" {
		t.Fatalf("second pop = %#v, want message 'two'", e2)
	}
}

func TestPushOverflowDropsOldest(t *testing.T) {
	r := newTestRing(t)
	total := constants.LogRingCapacity + 5
	for i := 0; i < total; i++ {
		r.Push(Entry{Level: LevelInfo, Module: "m", Message: strconv.Itoa(i)})
	}

	if r.Count() != constants.LogRingCapacity {
		t.Fatalf("count = %d, want %d", r.Count(), constants.LogRingCapacity)
	}

	// the oldest 5 entries (0..4) should have been dropped; the next
	// pop must be entry 5.
	e, ok := r.Pop()
	if !ok || e.Message != strconv.Itoa(5) {
		t.Fatalf("first surviving entry = %#v, want message %q", e, strconv.Itoa(5))
	}
}

func TestPushTruncatesOversizedFields(t *testing.T) {
	r := newTestRing(t)
	longModule := strings.Repeat("m", constants.LogModuleMaxLen+10)
	longMessage := strings.Repeat("x", constants.LogMessageMaxLen+10)

	r.Push(Entry{Level: LevelError, Module: longModule, Message: longMessage})

	e, ok := r.Pop()
	if !ok {
		t.Fatal("expected a popped entry")
	}
	if len(e.Module) != constants.LogModuleMaxLen {
		t.Errorf("module len = %d, want %d", len(e.Module), constants.LogModuleMaxLen)
	}
	if len(e.Message) != constants.LogMessageMaxLen {
		t.Errorf("message len = %d, want %d", len(e.Message), constants.LogMessageMaxLen)
	}
}

func TestServiceDrainsAllToSink(t *testing.T) {
	r := newTestRing(t)
	for i := 0; i < 10; i++ {
		r.Push(Entry{Level: LevelDebug, Module: "svc", Message: strconv.Itoa(i)})
	}

	var drained []string
	r.Service(func(e Entry) { drained = append(drained, e.Message) })

	if len(drained) != 10 {
		t.Fatalf("drained %d entries, want 10", len(drained))
	}
	if r.Count() != 0 {
		t.Fatalf("count after Service = %d, want 0", r.Count())
	}
}

