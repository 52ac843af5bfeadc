package gpio

const (
	irqLevelLow  uint8 = 1 << 0
	irqLevelHigh uint8 = 1 << 1
	irqEdgeLow   uint8 = 1 << 2
	irqEdgeHigh  uint8 = 1 << 3
)

func extractBit(v uint32, bit uint) uint32 {
	return (v >> bit) & 1
}

func extractBits(v uint32, lo, hi uint) uint32 {
	width := hi - lo + 1
	mask := uint32(1)<<width - 1
	return (v >> lo) & mask
}

// Pin is the per-pin CTRL/PAD register state plus the raw boundary value
// driven onto it from outside the chip.
type Pin struct {
	index int

	ctrl uint32
	pad  uint32

	rawInput bool

	interruptRaw   uint8
	interruptMask  uint8
	interruptForce uint8
}

func newPin(index int) Pin {
	return Pin{
		index: index,
		ctrl:  0x1f,
		pad:   0b1_0001_0110,
	}
}

func (p *Pin) Ctrl() uint32        { return p.ctrl }
func (p *Pin) WriteCtrl(v uint32)  { p.ctrl = v }
func (p *Pin) Pad() uint32         { return p.pad }
func (p *Pin) WritePad(v uint32)   { p.pad = v }

// FuncSel is the function currently selected by the low 4 bits of CTRL.
func (p *Pin) FuncSel() FunctionSelect {
	index := p.ctrl & 0b1111
	row := functionSelects[p.index]
	if int(index) >= len(row) {
		return FuncNone
	}
	return row[index]
}

func (p *Pin) OutOverride() Override { return Override(extractBits(p.ctrl, 12, 13)) }
func (p *Pin) OEOverride() Override  { return Override(extractBits(p.ctrl, 14, 15)) }
func (p *Pin) InOverride() Override  { return Override(extractBits(p.ctrl, 16, 17)) }
func (p *Pin) IRQOverride() Override { return Override(extractBits(p.ctrl, 28, 29)) }

func (p *Pin) SlewFast() bool        { return extractBit(p.pad, 0) == 1 }
func (p *Pin) Schmitt() bool         { return extractBit(p.pad, 1) == 1 }
func (p *Pin) PullDown() bool        { return extractBit(p.pad, 2) == 1 }
func (p *Pin) PullUp() bool          { return extractBit(p.pad, 3) == 1 }
func (p *Pin) DriveStrength() DriveStrength {
	return DriveStrength(extractBits(p.pad, 4, 5))
}
func (p *Pin) OutputDisable() bool   { return extractBit(p.pad, 7) == 1 }
func (p *Pin) PadIsolated() bool     { return extractBit(p.pad, 8) == 1 }
func (p *Pin) InputEnable() bool     { return extractBit(p.ctrl, 6) == 1 }

// InputValue is the logical input value after the in-override is applied.
func (p *Pin) InputValue() bool {
	return p.InOverride().ApplyBool(p.rawInput)
}

func (p *Pin) interruptStatus() uint8 {
	return (p.interruptRaw & p.interruptMask) | p.interruptForce
}

// Interrupting reports whether this pin currently contributes to its bank's
// IRQ line, after the irq-override is applied.
func (p *Pin) Interrupting() bool {
	return p.IRQOverride().ApplyBool(p.interruptStatus() != 0)
}

// acknowledgeInterrupt clears whichever edge-triggered sticky bits are set
// in value (a write to an INTR register).
func (p *Pin) acknowledgeInterrupt(value uint8) {
	if value&irqEdgeLow != 0 {
		p.interruptRaw &^= irqEdgeLow
	}
	if value&irqEdgeHigh != 0 {
		p.interruptRaw &^= irqEdgeHigh
	}
}

// SetInput drives a new raw boundary value onto the pin and updates its
// level/edge sticky interrupt bits accordingly. Returns true if the pin's
// interrupt status did not change as a result (mirrors the original's
// "was this state change irq-silent" check).
func (p *Pin) SetInput(value bool) bool {
	p.rawInput = value
	before := p.interruptStatus()

	if value && p.InputEnable() {
		p.interruptRaw |= irqEdgeHigh | irqLevelHigh
		p.interruptRaw &^= irqLevelLow
	} else {
		p.interruptRaw |= irqEdgeLow | irqLevelLow
		p.interruptRaw &^= irqLevelHigh
	}

	return before == p.interruptStatus()
}
