// Package iobank implements the IO_BANK0 register block: per-pin
// STATUS/CTRL registers plus the four nibble-packed interrupt register
// banks (raw/enable/force/status), each covering 8 pins per 32-bit word.
package iobank

import (
	"github.com/rp2350sim/core/hardware/gpio"
	"github.com/rp2350sim/core/hardware/peripherals"
)

const (
	gpioStatus = 0x00
	gpioCtrl   = 0x04
	gpioStep   = 0x08
	gpioEnd    = 0x17c

	intr0 = 0x230
	intr5 = 0x244

	proc0Inte0 = 0x248
	proc0Inte5 = 0x25c
	proc0Intf0 = 0x260
	proc0Intf5 = 0x274
	proc0Ints0 = 0x278
	proc0Ints5 = 0x28c
)

// IOBank0 exposes a shared gpio.Controller's pin registers over the bus.
type IOBank0 struct {
	gpio *gpio.Controller
}

func New(g *gpio.Controller) *IOBank0 {
	return &IOBank0{gpio: g}
}

func nibbleBank(base uint16, address uint16, get func(pin int) uint8) uint32 {
	index := (address - base) / 4
	var result uint32
	for i := 7; i >= 0; i-- {
		pinIndex := int(i) + int(index)*8
		result <<= 4
		result |= uint32(get(pinIndex))
	}
	return result
}

func writeNibbleBank(base uint16, address uint16, value uint32, set func(pin int, nibble uint8)) {
	index := (address - base) / 4
	for i := 0; i < 8; i++ {
		pinIndex := i + int(index)*8
		nibble := uint8((value >> (uint(i) * 4)) & 0xF)
		set(pinIndex, nibble)
	}
}

func (b *IOBank0) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch {
	case address <= gpioEnd:
		index := int(address / gpioStep)
		switch address % gpioStep {
		case gpioStatus:
			return b.gpio.Status(index), nil
		case gpioCtrl:
			pin := b.gpio.Pin(index)
			if pin == nil {
				return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
			}
			return pin.Ctrl(), nil
		default:
			return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
		}

	case address >= intr0 && address <= intr5:
		return nibbleBank(intr0, address, b.gpio.InterruptRaw), nil
	case address >= proc0Inte0 && address <= proc0Inte5:
		return nibbleBank(proc0Inte0, address, b.gpio.InterruptMask), nil
	case address >= proc0Intf0 && address <= proc0Intf5:
		return nibbleBank(proc0Intf0, address, b.gpio.InterruptForce), nil
	case address >= proc0Ints0 && address <= proc0Ints5:
		return nibbleBank(proc0Ints0, address, b.gpio.InterruptStatus), nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (b *IOBank0) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch {
	case address <= gpioEnd:
		index := int(address / gpioStep)
		switch address % gpioStep {
		case gpioStatus:
			// read-only
		case gpioCtrl:
			b.gpio.UpdateCtrl(index, value)
		default:
			return peripherals.Error{Kind: peripherals.OutOfBounds}
		}

	case address >= intr0 && address <= intr5:
		writeNibbleBank(intr0, address, value, b.gpio.AcknowledgeInterrupt)
	case address >= proc0Inte0 && address <= proc0Inte5:
		writeNibbleBank(proc0Inte0, address, value, b.gpio.SetInterruptMask)
	case address >= proc0Intf0 && address <= proc0Intf5:
		writeNibbleBank(proc0Intf0, address, value, b.gpio.SetInterruptForce)
	case address >= proc0Ints0 && address <= proc0Ints5:
		// read-only
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}
