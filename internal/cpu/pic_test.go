package cpu

import (
	"testing"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/ports"
)

func TestNewPICMasksAllIRQs(t *testing.T) {
	io := hwio.NewFake()
	reg := ports.NewRegistry()

	p, err := NewPIC(io, reg)
	if err != nil {
		t.Fatalf("NewPIC: %v", err)
	}

	if got := io.PortValue(constants.PICMasterDataPort); got != 0xFF {
		t.Errorf("master data = %#x, want 0xff", got)
	}
	if got := io.PortValue(constants.PICSlaveDataPort); got != 0xFF {
		t.Errorf("slave data = %#x, want 0xff", got)
	}
	_ = p
}

func TestNewPICPortExhaustion(t *testing.T) {
	io := hwio.NewFake()
	reg := ports.NewRegistry()
	reg.RequestPort(constants.PICMasterCommandPort) // steal a port PIC needs

	if _, err := NewPIC(io, reg); err == nil {
		t.Fatal("expected NewPIC to fail when a PIC port is already owned")
	}
}

func TestPICRemapPreservesMasks(t *testing.T) {
	io := hwio.NewFake()
	reg := ports.NewRegistry()
	p, err := NewPIC(io, reg)
	if err != nil {
		t.Fatalf("NewPIC: %v", err)
	}

	io.SetPort(constants.PICMasterDataPort, 0xAA)
	io.SetPort(constants.PICSlaveDataPort, 0x55)

	p.Remap()

	if got := io.PortValue(constants.PICMasterDataPort); got != 0xAA {
		t.Errorf("master mask after remap = %#x, want 0xaa (preserved)", got)
	}
	if got := io.PortValue(constants.PICSlaveDataPort); got != 0x55 {
		t.Errorf("slave mask after remap = %#x, want 0x55 (preserved)", got)
	}
}

func TestPICSendEOI(t *testing.T) {
	io := hwio.NewFake()
	reg := ports.NewRegistry()
	p, err := NewPIC(io, reg)
	if err != nil {
		t.Fatalf("NewPIC: %v", err)
	}

	tests := []struct {
		name          string
		vector        uint8
		wantMaster    bool
		wantSlave     bool
	}{
		{"master range low", 0x40, true, false},
		{"master range high", 0x47, true, false},
		{"slave range low", 0x48, true, true},
		{"slave range high", 0x4F, true, true},
		{"outside any range", 0x30, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			io.SetPort(constants.PICMasterCommandPort, 0)
			io.SetPort(constants.PICSlaveCommandPort, 0)

			p.SendEOI(tt.vector)

			gotMaster := io.PortValue(constants.PICMasterCommandPort) == constants.PICEOI
			gotSlave := io.PortValue(constants.PICSlaveCommandPort) == constants.PICEOI
			if gotMaster != tt.wantMaster {
				t.Errorf("master EOI sent = %v, want %v", gotMaster, tt.wantMaster)
			}
			if gotSlave != tt.wantSlave {
				t.Errorf("slave EOI sent = %v, want %v", gotSlave, tt.wantSlave)
			}
		})
	}
}

func TestPICUnmaskAndMaskIRQ(t *testing.T) {
	io := hwio.NewFake()
	reg := ports.NewRegistry()
	p, err := NewPIC(io, reg)
	if err != nil {
		t.Fatalf("NewPIC: %v", err)
	}

	p.UnmaskIRQ(0)
	if got := io.PortValue(constants.PICMasterDataPort); got&0x01 != 0 {
		t.Errorf("IRQ0 bit still set after unmask: %#x", got)
	}

	p.UnmaskIRQ(8)
	if got := io.PortValue(constants.PICSlaveDataPort); got&0x01 != 0 {
		t.Errorf("IRQ8 bit still set after unmask: %#x", got)
	}

	p.MaskIRQ(0)
	if got := io.PortValue(constants.PICMasterDataPort); got&0x01 == 0 {
		t.Errorf("IRQ0 bit not set after mask: %#x", got)
	}
}
