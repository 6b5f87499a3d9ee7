package executor

import (
	"context"
	"sync/atomic"

	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
)

// task is one node of the executor's task list.
type task struct {
	future Future
	waker  *Waker
}

// Executor is the single-threaded cooperative task runner: a task
// list, a should-poll flag any interrupt handler (or a waker) can
// set, and an idle-halt path taken only when nothing is ready and
// nothing asked to be re-polled.
type Executor struct {
	cpu        hwio.CPUControl
	shouldPoll atomic.Bool
	tasks      []*task
	onComplete func()
}

// New returns an executor driving cpu's halt/interrupt instructions.
func New(cpu hwio.CPUControl) *Executor {
	return &Executor{cpu: cpu}
}

// OnComplete registers fn to be called once for every task that
// reaches Ready, after its Cleanup has run. Callers use this to feed
// an external counter (e.g. Metrics.TasksCompleted) without the
// executor needing to know about it.
func (e *Executor) OnComplete(fn func()) {
	e.onComplete = fn
}

// Spawn adds future to the task list, attaches a waker whose Wake sets
// should-poll, and marks the executor for an immediate pass.
func (e *Executor) Spawn(future Future) {
	t := &task{future: future}
	t.waker = newWaker(func() { e.shouldPoll.Store(true) })
	e.tasks = append(e.tasks, t)
	e.shouldPoll.Store(true)
}

// WakeUp sets should-poll from outside the loop — the Go-hosted
// analogue of executor_wake_up, called by interrupt handlers and
// wake-up list callbacks.
func (e *Executor) WakeUp() {
	e.shouldPoll.Store(true)
}

// TaskCount reports the number of tasks still on the list.
func (e *Executor) TaskCount() int {
	return len(e.tasks)
}

// pollOnce walks the task list once, removing every task whose future
// is now Ready. It reports whether any task remained Pending.
func (e *Executor) pollOnce() (hasPending bool) {
	live := e.tasks[:0]
	for _, t := range e.tasks {
		if t.future.Poll() == Ready {
			t.future.Cleanup()
			t.waker.release()
			if e.onComplete != nil {
				e.onComplete()
			}
			continue
		}
		hasPending = true
		live = append(live, t)
	}
	e.tasks = live
	return hasPending
}

// Run drives the loop until ctx is cancelled. Each iteration: poll
// every task once; if none are pending and should-poll is still
// false, halt until an interrupt; otherwise clear should-poll and loop
// immediately.
func (e *Executor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		hasPending := false
		if len(e.tasks) > 0 {
			hasPending = e.pollOnce()
		}

		if !hasPending && !e.shouldPoll.Load() {
			e.cpu.EnableInterrupts()
			e.cpu.Halt()
			e.cpu.DisableInterrupts()
		} else {
			e.shouldPoll.Store(false)
		}
	}
}
