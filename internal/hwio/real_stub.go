//go:build !(linux && cgo && amd64)

package hwio

import "fmt"

// NewReal is unavailable on this platform/build configuration (real
// port I/O needs cgo, amd64 and Linux's iopl syscall). Build with
// linux/amd64 and cgo enabled, or use NewFake for simulated hardware.
func NewReal() (Hardware, error) {
	return nil, fmt.Errorf("hwio: real backend requires linux, amd64 and cgo")
}
