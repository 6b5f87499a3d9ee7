package shogun

import "github.com/SarthakRawat-1/shogun-os/internal/hwio"

// NewFakeHardware returns an in-memory hwio.Hardware suitable for
// Boot in tests and simulated runs, without touching real port space.
func NewFakeHardware() hwio.Hardware {
	return hwio.NewFake()
}
