package rtc

import (
	"testing"

	"github.com/SarthakRawat-1/shogun-os/internal/constants"
	"github.com/SarthakRawat-1/shogun-os/internal/cpu"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/ports"
)

func newTestDriver(t *testing.T) (*hwio.Fake, *Driver) {
	t.Helper()
	io := hwio.NewFake()
	d, err := NewDriver(io, ports.NewRegistry())
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	return io, d
}

func TestNewDriverSetsDataFormat(t *testing.T) {
	io, _ := newTestDriver(t)
	regB := io.PortValue(constants.CMOSDataPort)
	if regB&(registerBDataModeBit|registerB24HourBit) == 0 {
		t.Errorf("register B = %#x, want binary+24h bits set", regB)
	}
}

func TestNewDriverPortExhaustion(t *testing.T) {
	io := hwio.NewFake()
	reg := ports.NewRegistry()
	reg.RequestPort(constants.CMOSControlPort)
	if _, err := NewDriver(io, reg); err == nil {
		t.Fatal("expected NewDriver to fail when CMOS control port is taken")
	}
}

func TestRegisterSelectReestablishesNMIMask(t *testing.T) {
	io, d := newTestDriver(t)
	d.nmiEnabled = false

	d.readRegister(constants.CMOSRegSeconds)
	got := io.PortValue(constants.CMOSControlPort)
	want := constants.CMOSRegSeconds | constants.NMIDisableMask
	if got != want {
		t.Errorf("control port = %#x, want %#x", got, want)
	}
}

func TestReadTimeWaitsOutUIP(t *testing.T) {
	io, d := newTestDriver(t)

	uipReads := 0
	io.OnInB = func(port uint16) (uint8, bool) {
		if port != constants.CMOSDataPort {
			return 0, false
		}
		selected := io.PortValue(constants.CMOSControlPort) &^ constants.NMIDisableMask
		if selected == constants.CMOSRegA {
			uipReads++
			if uipReads <= 2 {
				return 0x80, true
			}
			return 0x00, true
		}
		return 0, false
	}

	seconds, minutes, hours := d.ReadTime()
	_ = seconds
	_ = minutes
	_ = hours
	if uipReads < 3 {
		t.Errorf("expected at least 3 UIP polls, got %d", uipReads)
	}
}

func TestEnableDisablePeriodicInterrupts(t *testing.T) {
	io, d := newTestDriver(t)
	idt := cpu.NewIDT(nil)
	pic, err := cpu.NewPIC(io, ports.NewRegistry())
	if err != nil {
		t.Fatalf("NewPIC: %v", err)
	}

	called := false
	d.EnablePeriodicInterrupts(idt, pic, func() { called = true })

	regA := io.PortValue(constants.CMOSDataPort) // last write wins per our fake model; see below
	_ = regA

	if idt.Handler(0x48) == nil {
		t.Fatal("expected handler registered at vector 0x48")
	}
	idt.Dispatch(0x48)
	if !called {
		t.Error("expected RTC handler to fire on dispatch")
	}

	d.DisablePeriodicInterrupts(idt)
	if idt.Handler(0x48) != nil {
		t.Error("expected handler to be cleared after disable")
	}
}

func TestClearInterruptReadsRegisterC(t *testing.T) {
	io, d := newTestDriver(t)
	read := false
	io.OnInB = func(port uint16) (uint8, bool) {
		if port != constants.CMOSDataPort {
			return 0, false
		}
		selected := io.PortValue(constants.CMOSControlPort) &^ constants.NMIDisableMask
		if selected == constants.CMOSRegC {
			read = true
		}
		return 0, false
	}
	d.ClearInterrupt()
	if !read {
		t.Error("expected ClearInterrupt to read register C")
	}
}
