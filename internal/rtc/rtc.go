// Package rtc implements the CMOS real-time-clock driver and
// monotonic tick source: register protocol with NMI masking and
// update-in-progress retry, periodic IRQ 8 delivery, and a tick
// counter the executor's timer futures key their wake-ups on.
package rtc

import (
	"fmt"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/cpu"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/ports"
)

const (
	registerBDataModeBit = 1 << 1
	registerB24HourBit   = 1 << 2
	registerAUIPBit      = 1 << 7
	registerBPIEBit      = 1 << 6
	registerARateMask    = 0x0F
)

// Driver is the CMOS RTC: an index/data port pair plus whether NMI
// delivery is currently masked.
type Driver struct {
	io         hwio.PortIO
	control    *ports.Handle
	data       *ports.Handle
	nmiEnabled bool
}

// NewDriver acquires the CMOS ports and programs binary/24-hour mode.
func NewDriver(io hwio.PortIO, reg *ports.Registry) (*Driver, error) {
	control := reg.RequestPort(constants.CMOSControlPort)
	if control == nil {
		return nil, fmt.Errorf("rtc: could not acquire CMOS control port")
	}
	data := reg.RequestPort(constants.CMOSDataPort)
	if data == nil {
		reg.ReleasePort(control)
		return nil, fmt.Errorf("rtc: could not acquire CMOS data port")
	}

	d := &Driver{io: io, control: control, data: data, nmiEnabled: true}
	d.setDataFormat()
	return d, nil
}

// readRegister and writeRegister re-establish the NMI mask bit on
// every access, since writing the index port toggles NMI as a side
// effect of selecting the register.
func (d *Driver) readRegister(reg uint8) uint8 {
	d.io.OutB(d.control.Port(), d.regSelectByte(reg))
	return d.io.InB(d.data.Port())
}

func (d *Driver) writeRegister(reg, value uint8) {
	d.io.OutB(d.control.Port(), d.regSelectByte(reg))
	d.io.OutB(d.data.Port(), value)
}

func (d *Driver) regSelectByte(reg uint8) uint8 {
	if d.nmiEnabled {
		return reg
	}
	return reg | constants.NMIDisableMask
}

func (d *Driver) setDataFormat() {
	b := d.readRegister(constants.CMOSRegB)
	b |= registerBDataModeBit | registerB24HourBit
	d.writeRegister(constants.CMOSRegB, b)
}

func (d *Driver) updateInProgress() bool {
	return d.readRegister(constants.CMOSRegA)&registerAUIPBit != 0
}

// Settled reports whether the RTC is currently outside its
// update-in-progress window, so the caller can safely reprogram
// registers A/B without racing a clock tick update.
func (d *Driver) Settled() bool {
	return !d.updateInProgress()
}

// updateGuarded spins while an update is in progress, runs op, then
// retries from the top if an update started during op.
func (d *Driver) updateGuarded(op func()) {
	for {
		for d.updateInProgress() {
		}
		op()
		if !d.updateInProgress() {
			return
		}
	}
}

// ReadTime reads seconds/minutes/hours under the update guard.
func (d *Driver) ReadTime() (seconds, minutes, hours uint8) {
	d.updateGuarded(func() {
		seconds = d.readRegister(constants.CMOSRegSeconds)
		minutes = d.readRegister(constants.CMOSRegMinutes)
		hours = d.readRegister(constants.CMOSRegHours)
	})
	return
}

// WriteTime writes seconds/minutes/hours under the update guard.
func (d *Driver) WriteTime(seconds, minutes, hours uint8) {
	d.updateGuarded(func() {
		d.writeRegister(constants.CMOSRegSeconds, seconds)
		d.writeRegister(constants.CMOSRegMinutes, minutes)
		d.writeRegister(constants.CMOSRegHours, hours)
	})
}

// EnablePeriodicInterrupts wires handler to the RTC's slave-PIC IRQ
// (RTCSlaveIRQIndex -> vector 0x48), programs register A for
// constants.RTCTickHz, sets register B's PIE bit, and unmasks the
// line.
func (d *Driver) EnablePeriodicInterrupts(idt *cpu.IDT, pic *cpu.PIC, handler cpu.Handler) {
	id := cpu.IRQID{Class: cpu.IRQSlave, Index: constants.RTCSlaveIRQIndex}
	idt.RegisterIRQ(id, handler)

	a := d.readRegister(constants.CMOSRegA)
	a = (a &^ registerARateMask) | constants.RTCRateCode
	d.writeRegister(constants.CMOSRegA, a)

	b := d.readRegister(constants.CMOSRegB)
	b |= registerBPIEBit
	d.writeRegister(constants.CMOSRegB, b)

	pic.UnmaskIRQ(8)
}

// DisablePeriodicInterrupts clears register B's PIE bit and
// unregisters the handler.
func (d *Driver) DisablePeriodicInterrupts(idt *cpu.IDT) {
	b := d.readRegister(constants.CMOSRegB)
	b &^= registerBPIEBit
	d.writeRegister(constants.CMOSRegB, b)

	idt.UnregisterIRQ(cpu.IRQID{Class: cpu.IRQSlave, Index: constants.RTCSlaveIRQIndex})
}

// ClearInterrupt reads register C, which the handler must do on every
// periodic interrupt or the RTC stops delivering further ones.
func (d *Driver) ClearInterrupt() {
	d.readRegister(constants.CMOSRegC)
}
