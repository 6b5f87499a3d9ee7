package executor

// serialPort is the capability SerialWriteFuture needs from the UART
// driver (internal/cpu.Serial satisfies it).
type serialPort interface {
	TransmitEmpty() bool
	WriteByte(c byte)
}

// SerialWriteFuture writes buf to the UART one byte per ready poll:
// each poll writes the next byte only while the transmit register is
// empty, returning Pending otherwise and Ready once every byte is
// written. Nothing in this package wakes the executor on line-status
// change; a Pending task is polled again on the executor's next pass.
type SerialWriteFuture struct {
	port    serialPort
	buf     []byte
	written int
}

// NewSerialWriteFuture returns a future that writes buf to port.
func NewSerialWriteFuture(port serialPort, buf []byte) *SerialWriteFuture {
	return &SerialWriteFuture{port: port, buf: buf}
}

func (f *SerialWriteFuture) Poll() State {
	if f.written >= len(f.buf) {
		return Ready
	}
	if !f.port.TransmitEmpty() {
		return Pending
	}
	f.port.WriteByte(f.buf[f.written])
	f.written++
	if f.written >= len(f.buf) {
		return Ready
	}
	return Pending
}

func (f *SerialWriteFuture) Cleanup() {}

// Written reports how many bytes have been written so far.
func (f *SerialWriteFuture) Written() int { return f.written }
