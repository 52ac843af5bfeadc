// Package busctrl implements the bus fabric's priority register and its
// four configurable performance counters.
package busctrl

import "github.com/rp2350sim/core/hardware/peripherals"

// Priority bit positions within the priority register.
const (
	PriorityProc0 = 1 << 0
	PriorityProc1 = 1 << 4
	PriorityDmaR  = 1 << 8
	PriorityDmaW  = 1 << 12
)

// BusCtrl models the 4 performance counters and their event-source
// selectors, plus the priority register. Counters advance only through
// IncrementCounter, which hardware/soc does not call; this package only
// holds the register-level state and the PERFSELn encode/decode.
type BusCtrl struct {
	priority  uint32
	perfctrEn bool
	perfctr   [4]uint32
	perfsel   [4]uint32
}

// New creates a BusCtrl with all counters at zero.
func New() *BusCtrl {
	return &BusCtrl{}
}

// IncrementCounter bumps counter i if counting is enabled and its selector
// matches the given source/event pair, encoded as PERFSELn would hold it
// (event in bits 1:0, source in bits 6:2).
func (b *BusCtrl) IncrementCounter(i int, encodedSourceEvent uint32) {
	if !b.perfctrEn {
		return
	}
	if i < 0 || i >= len(b.perfctr) {
		return
	}
	if b.perfsel[i] == encodedSourceEvent {
		b.perfctr[i]++
	}
}

func (b *BusCtrl) Read(addr uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch addr & 0xFFF {
	case 0x00:
		return b.priority, nil
	case 0x04:
		return 1, nil // priority acknowledge; this model never stalls arbitration
	case 0x08:
		if b.perfctrEn {
			return 1, nil
		}
		return 0, nil
	case 0x0C:
		return b.perfctr[0], nil
	case 0x10:
		return b.perfsel[0], nil
	case 0x14:
		return b.perfctr[1], nil
	case 0x18:
		return b.perfsel[1], nil
	case 0x1C:
		return b.perfctr[2], nil
	case 0x20:
		return b.perfsel[2], nil
	case 0x24:
		return b.perfctr[3], nil
	case 0x28:
		return b.perfsel[3], nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (b *BusCtrl) WriteRaw(addr uint16, value uint32, ctx peripherals.AccessContext) error {
	switch addr & 0xFFF {
	case 0x00:
		b.priority = value
	case 0x04:
		// priority acknowledge is read-only
	case 0x08:
		b.perfctrEn = value&1 == 1
	case 0x0C:
		b.perfctr[0] = value
	case 0x10:
		b.perfsel[0] = value & 0x7F
	case 0x14:
		b.perfctr[1] = value
	case 0x18:
		b.perfsel[1] = value & 0x7F
	case 0x1C:
		b.perfctr[2] = value
	case 0x20:
		b.perfsel[2] = value & 0x7F
	case 0x24:
		b.perfctr[3] = value
	case 0x28:
		b.perfsel[3] = value & 0x7F
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}
