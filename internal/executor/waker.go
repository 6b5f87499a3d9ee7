package executor

import "sync/atomic"

// Waker lets a future's external event source (an interrupt handler,
// a wake-up list callback) tell the executor it's worth re-polling;
// the wake function sets the executor's should-poll flag.
//
// The refcount begins at 1 and is decremented once, on task
// completion. No holder currently clones a waker, so the atomic is
// precautionary for a future where a waker is shared across tasks.
type Waker struct {
	refcount atomic.Int32
	wake     func()
}

func newWaker(wake func()) *Waker {
	w := &Waker{wake: wake}
	w.refcount.Store(1)
	return w
}

// Wake invokes the wake function. Safe to call from interrupt context.
func (w *Waker) Wake() {
	if w != nil {
		w.wake()
	}
}

// release drops a reference.
func (w *Waker) release() {
	w.refcount.Add(-1)
}
