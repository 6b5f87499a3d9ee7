package cpu

import (
	"fmt"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/ports"
)

// PIC ICW bytes for the standard 8259 remap dance.
const (
	icw1Init8086             uint8 = 0x11
	icw3MasterCascadeOnIRQ2  uint8 = 0x04
	icw3SlaveCascadeIdentity uint8 = 0x02
	icw4_8086Mode            uint8 = 0x01

	maskAllIRQs uint8 = 0xFF
)

// PIC drives the cascaded master/slave 8259 pair: it owns all four PIC
// ports through internal/ports, masks everything on init, remaps the
// vector ranges to 0x40-0x4F to dodge CPU exception vectors 0-31, and
// answers EOI/mask requests for the IDT dispatcher.
type PIC struct {
	io                    hwio.PortIO
	masterCmd, masterData *ports.Handle
	slaveCmd, slaveData   *ports.Handle
}

// NewPIC acquires the four PIC ports from reg and masks all IRQs.
func NewPIC(io hwio.PortIO, reg *ports.Registry) (*PIC, error) {
	p := &PIC{io: io}
	p.masterCmd = reg.RequestPort(constants.PICMasterCommandPort)
	p.masterData = reg.RequestPort(constants.PICMasterDataPort)
	p.slaveCmd = reg.RequestPort(constants.PICSlaveCommandPort)
	p.slaveData = reg.RequestPort(constants.PICSlaveDataPort)

	if p.masterCmd == nil || p.masterData == nil || p.slaveCmd == nil || p.slaveData == nil {
		return nil, fmt.Errorf("cpu: pic: could not acquire one or more PIC ports")
	}

	io.OutB(p.masterData.Port(), maskAllIRQs)
	io.OutB(p.slaveData.Port(), maskAllIRQs)
	return p, nil
}

// Remap reprograms both PICs from their power-on vector ranges
// (0x20-0x2F) to 0x40-0x4F, preserving the current IRQ masks across
// the reprogram.
func (p *PIC) Remap() {
	masterMask := p.io.InB(p.masterData.Port())
	slaveMask := p.io.InB(p.slaveData.Port())

	p.io.OutB(p.masterCmd.Port(), icw1Init8086)
	p.io.OutB(p.slaveCmd.Port(), icw1Init8086)

	p.io.OutB(p.masterData.Port(), constants.PICMasterVectorBase)
	p.io.OutB(p.slaveData.Port(), constants.PICSlaveVectorBase)

	p.io.OutB(p.masterData.Port(), icw3MasterCascadeOnIRQ2)
	p.io.OutB(p.slaveData.Port(), icw3SlaveCascadeIdentity)

	p.io.OutB(p.masterData.Port(), icw4_8086Mode)
	p.io.OutB(p.slaveData.Port(), icw4_8086Mode)

	p.io.OutB(p.masterData.Port(), masterMask)
	p.io.OutB(p.slaveData.Port(), slaveMask)
}

// SendEOI acknowledges interrupt vector, sending to both PICs when it
// came from the slave's range and the master alone otherwise. vector
// is checked against the post-remap ranges (0x40-0x47 master,
// 0x48-0x4F slave) since that is what Dispatch actually passes in.
func (p *PIC) SendEOI(vector uint8) {
	switch {
	case vector >= constants.PICSlaveVectorBase && vector <= constants.PICSlaveVectorBase+7:
		p.io.OutB(p.slaveCmd.Port(), constants.PICEOI)
		p.io.OutB(p.masterCmd.Port(), constants.PICEOI)
	case vector >= constants.PICMasterVectorBase && vector <= constants.PICMasterVectorBase+7:
		p.io.OutB(p.masterCmd.Port(), constants.PICEOI)
	}
}

// UnmaskIRQ clears line's mask bit on whichever PIC owns it (0-7
// master, 8-15 slave).
func (p *PIC) UnmaskIRQ(line uint8) {
	if line < 8 {
		port := p.masterData.Port()
		p.io.OutB(port, p.io.InB(port)&^(1<<line))
		return
	}
	port := p.slaveData.Port()
	p.io.OutB(port, p.io.InB(port)&^(1<<(line-8)))
}

// MaskIRQ sets line's mask bit, the inverse of UnmaskIRQ.
func (p *PIC) MaskIRQ(line uint8) {
	if line < 8 {
		port := p.masterData.Port()
		p.io.OutB(port, p.io.InB(port)|(1<<line))
		return
	}
	port := p.slaveData.Port()
	p.io.OutB(port, p.io.InB(port)|(1<<(line-8)))
}
