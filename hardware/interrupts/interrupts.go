// Package interrupts implements the RP2350's shared interrupt line state:
// 46 global lines plus a core-local overlay for the 9 lines (bits 21..30)
// that are banked per-core.
package interrupts

import "math/bits"

// IRQ identifies one of the 46 named interrupt lines.
type IRQ uint8

// Named interrupt lines, in bit-index order. IRQs 46..51 are spare and never
// fire; they exist only so that offset arithmetic against the real RP2350
// datasheet numbering lines up.
const (
	Timer0IRQ0 IRQ = iota
	Timer0IRQ1
	Timer0IRQ2
	Timer0IRQ3
	Timer1IRQ0
	Timer1IRQ1
	Timer1IRQ2
	Timer1IRQ3
	PWMIRQWrap0
	PWMIRQWrap1
	DMAIRQ0
	DMAIRQ1
	DMAIRQ2
	DMAIRQ3
	USBCtrlIRQ
	PIO0IRQ0
	PIO0IRQ1
	PIO1IRQ0
	PIO1IRQ1
	PIO2IRQ0
	PIO2IRQ1
	IOIRQBank0
	IOIRQBank0NS
	IOIRQQSPI
	IOIRQQSPINS
	SIOIRQFifo
	SIOIRQBell
	SIOIRQFifoNS
	SIOIRQBellNS
	SIOIRQMtimecmp
	ClocksIRQ
	SPI0IRQ
	SPI1IRQ
	UART0IRQ
	UART1IRQ
	ADCIRQFifo
	I2C0IRQ
	I2C1IRQ
	OTPIRQ
	TRNGIRQ
	Proc0IRQCTI
	Proc1IRQCTI
	PLLSysIRQ
	PLLUsbIRQ
	PowmanIRQPow
	PowmanIRQTimer
	spareIRQ0
	spareIRQ1
	spareIRQ2
	spareIRQ3
	spareIRQ4
	spareIRQ5
)

// coreLocalMask covers the 9 bits (21..30) that are banked per-core rather
// than shared.
const coreLocalMask uint64 = 0x1FF << 21

// Interrupts holds the pending-interrupt bitmaps for both cores. The zero
// value is valid and has no pending interrupts.
type Interrupts struct {
	global uint64
	core1  uint64
}

// SetIRQ sets or clears a global interrupt line, observed identically by
// both cores (unless it also falls in the core-local range, in which case
// this sets core 0's view of it — see SetCoreLocalIRQ).
func (i *Interrupts) SetIRQ(irq IRQ, value bool) {
	if value {
		i.global |= 1 << irq
	} else {
		i.ClearIRQ(irq)
	}
}

// ClearIRQ clears irq from the global bitmap.
func (i *Interrupts) ClearIRQ(irq IRQ) {
	i.global &^= 1 << irq
}

// SetCoreLocalIRQ sets or clears irq in the given core's private view. Core
// must be 0 or 1.
func (i *Interrupts) SetCoreLocalIRQ(core uint8, irq IRQ, value bool) {
	if value {
		if core == 0 {
			i.global |= 1 << irq
		} else {
			i.core1 |= 1 << irq
		}
		return
	}
	i.ClearCoreLocalIRQ(core, irq)
}

// ClearCoreLocalIRQ clears irq from the given core's private view.
func (i *Interrupts) ClearCoreLocalIRQ(core uint8, irq IRQ) {
	if core == 0 {
		i.global &^= 1 << irq
	} else {
		i.core1 &^= 1 << irq
	}
}

// Pending returns the bitmap of pending interrupts as seen by the given
// core: core 0 sees global unmodified; core 1 sees global with the
// core-local bits masked out, OR'd with its own private core-local bitmap.
func (i *Interrupts) Pending(core uint8) uint64 {
	if core == 0 {
		return i.global
	}
	return (i.global &^ coreLocalMask) | i.core1
}

// Iter returns the pending interrupt numbers for the given core, in
// ascending bit-index order.
func (i *Interrupts) Iter(core uint8) []IRQ {
	bitmap := i.Pending(core)

	var out []IRQ
	for bitmap != 0 {
		n := bits.TrailingZeros64(bitmap)
		out = append(out, IRQ(n))
		bitmap &= bitmap - 1
	}
	return out
}
