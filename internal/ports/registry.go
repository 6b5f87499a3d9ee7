// Package ports provides single-writer ownership of I/O port numbers.
// It is a fixed-capacity registry, not a general map: a real machine
// has a finite, known set of ports drivers fight over, and a bounded
// linear scan over 64 slots is cheap enough to run on every
// request/release.
package ports

import "github.com/SarthakRawat-1/shogun-os/internal/constants"

// Handle is a claimed port; its zero value is never returned to a
// caller (RequestPort returns nil on failure).
type Handle struct {
	portNumber uint16
	owned      bool
}

// Port returns the underlying port number the handle was acquired for.
func (h *Handle) Port() uint16 { return h.portNumber }

// Registry tracks at most one owner per port number across a fixed
// number of slots. Not safe for concurrent use — it is expected to be
// called outside interrupt context, where this kernel core has
// exactly one thread of control.
type Registry struct {
	slots [constants.MaxTrackedPorts]Handle
}

// NewRegistry returns an empty registry. Boot constructs one per
// kernel and hands it to every driver it brings up; tests construct
// their own for isolation.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Default returns a process-wide registry, created at package
// initialization. Boot does not use it; each booted kernel owns the
// registry it creates with NewRegistry.
func Default() *Registry { return defaultRegistry }

// RequestPort claims port n, returning nil if it is already owned or
// the registry is full.
func (r *Registry) RequestPort(n uint16) *Handle {
	for i := range r.slots {
		if r.slots[i].owned && r.slots[i].portNumber == n {
			return nil
		}
	}
	for i := range r.slots {
		if !r.slots[i].owned {
			r.slots[i].portNumber = n
			r.slots[i].owned = true
			return &r.slots[i]
		}
	}
	return nil
}

// ReleasePort releases a previously acquired handle. A nil handle, or
// a handle not owned by this registry, is a no-op.
func (r *Registry) ReleasePort(h *Handle) {
	if h == nil {
		return
	}
	for i := range r.slots {
		if &r.slots[i] == h {
			r.slots[i].owned = false
			return
		}
	}
}

// IsInUse reports whether port n currently has an owner.
func (r *Registry) IsInUse(n uint16) bool {
	for i := range r.slots {
		if r.slots[i].owned && r.slots[i].portNumber == n {
			return true
		}
	}
	return false
}
