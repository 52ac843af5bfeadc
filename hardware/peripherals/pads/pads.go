// Package pads implements the PADS_BANK0 register block: per-pin pad
// electrical configuration (drive strength, pulls, schmitt, slew) plus the
// board voltage-select and SWD debug-pad registers.
package pads

import (
	"github.com/rp2350sim/core/hardware/gpio"
	"github.com/rp2350sim/core/hardware/peripherals"
)

const (
	VoltageSelect = 0x00
	gpioStart     = 0x04
	gpioEnd       = 0xc0
	gpioStep      = 0x04
	SWCLK         = 0xc4
	SWD           = 0xc8
)

// Voltage is the pad bank's supply-voltage selection.
type Voltage uint32

const (
	Voltage3V3 Voltage = 0
	Voltage1V8 Voltage = 1
)

// PadsBank0 exposes a shared gpio.Controller's pad registers over the bus.
type PadsBank0 struct {
	gpio     *gpio.Controller
	voltage  Voltage
	swclk    uint32
	swd      uint32
}

func New(g *gpio.Controller) *PadsBank0 {
	return &PadsBank0{gpio: g}
}

func (p *PadsBank0) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch {
	case address >= gpioStart && address <= gpioEnd:
		index := int((address - gpioStart) / gpioStep)
		pin := p.gpio.Pin(index)
		if pin == nil {
			return 0, nil
		}
		return pin.Pad(), nil
	case address == VoltageSelect:
		return uint32(p.voltage), nil
	case address == SWCLK:
		return p.swclk, nil
	case address == SWD:
		return p.swd, nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (p *PadsBank0) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch {
	case address >= gpioStart && address <= gpioEnd:
		index := int((address - gpioStart) / gpioStep)
		p.gpio.UpdatePads(index, value)
	case address == VoltageSelect:
		p.voltage = Voltage(value & 1)
	case address == SWCLK:
		p.swclk = value
	case address == SWD:
		p.swd = value
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}
