package cpu

import (
	"fmt"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/ports"
)

// Serial register offsets from the UART's base port.
const (
	serialOffsetData         = 0
	serialOffsetInterrupt    = 1
	serialOffsetDivisorLow   = 0
	serialOffsetDivisorHigh  = 1
	serialOffsetFIFOControl  = 2
	serialOffsetLineControl  = 3
	serialOffsetModemControl = 4
	serialOffsetLineStatus   = 5

	serialLineEnableDLAB = 0x80
	serialLineControl8N1 = 0x03
	serialDivisor38400   = 0x03

	serialFIFOEnableClearThreshold14 = 0xC7

	serialModemLoopbackTest = 0x1E
	serialModemNormalOps    = 0x0F
	serialLoopbackTestByte  = 0xAE
)

// Serial is the COM1 UART driver: initialized into 8N1 at 38400 baud
// with the transmit FIFO enabled (DLAB toggle to program the divisor
// latch, line control, FIFO control, then a loopback self-test before
// returning the port to normal operation).
type Serial struct {
	io   hwio.PortIO
	port *ports.Handle
}

// NewSerial acquires the COM1 port and programs the UART. It returns
// an error if either the port is unavailable or the loopback
// self-test fails, so callers notice a misconfigured/absent UART
// instead of silently losing every byte written to it.
func NewSerial(io hwio.PortIO, reg *ports.Registry) (*Serial, error) {
	h := reg.RequestPort(constants.SerialBasePort)
	if h == nil {
		return nil, fmt.Errorf("cpu: serial: could not acquire COM1 base port")
	}
	s := &Serial{io: io, port: h}

	base := h.Port()
	io.OutB(base+serialOffsetInterrupt, 0x00)

	io.OutB(base+serialOffsetLineControl, serialLineEnableDLAB)
	io.OutB(base+serialOffsetDivisorLow, serialDivisor38400)
	io.OutB(base+serialOffsetDivisorHigh, 0x00)
	io.OutB(base+serialOffsetLineControl, serialLineControl8N1)

	io.OutB(base+serialOffsetFIFOControl, serialFIFOEnableClearThreshold14)

	io.OutB(base+serialOffsetModemControl, serialModemLoopbackTest)
	io.OutB(base+serialOffsetData, serialLoopbackTestByte)
	if io.InB(base+serialOffsetData) != serialLoopbackTestByte {
		reg.ReleasePort(h)
		return nil, fmt.Errorf("cpu: serial: loopback self-test failed")
	}

	io.OutB(base+serialOffsetModemControl, serialModemNormalOps)
	return s, nil
}

// TransmitEmpty reports whether the UART's transmit holding register
// is free to accept another byte.
func (s *Serial) TransmitEmpty() bool {
	status := s.io.InB(s.port.Port() + serialOffsetLineStatus)
	return status&constants.SerialLSRTransmitEmpty != 0
}

// WriteByte writes a single byte without checking TransmitEmpty;
// callers that must not block (the executor's serial-write future)
// check TransmitEmpty themselves before calling this.
func (s *Serial) WriteByte(c byte) {
	s.io.OutB(s.port.Port(), c)
}
