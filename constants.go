package shogun

import "github.com/SarthakRawat-1/shogun-os/internal/constants"

// Re-exported tunables, so an embedder doesn't need to import
// internal/constants directly.
const (
	HeapAlignment   = constants.HeapAlignment
	RTCTickHz       = constants.RTCTickHz
	LogRingCapacity = constants.LogRingCapacity
)
