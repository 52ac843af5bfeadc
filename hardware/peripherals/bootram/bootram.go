// Package bootram implements the RP2350's secure boot scratch RAM: 256
// words of data, two OR-merge write-once words, and 8 claim-on-read boot
// locks.
package bootram

import "github.com/rp2350sim/core/hardware/peripherals"

const (
	offWriteOnce0 = 0x800
	offWriteOnce1 = 0x804
	offLockStatus = 0x808
	offLocksStart = 0x80C
	offLocksEnd   = 0x828
)

// BootRAM is a secure-only peripheral: any access with ctx.Secure == false
// fails with MissingPermission.
type BootRAM struct {
	data       [256]uint32
	writeOnces [2]uint32
	locks      uint8
}

// New creates a zeroed, fully-unclaimed BootRAM.
func New() *BootRAM {
	return &BootRAM{}
}

func (b *BootRAM) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	if !ctx.Secure {
		return 0, peripherals.Error{Kind: peripherals.MissingPermission}
	}

	switch {
	case address == offWriteOnce0:
		return b.writeOnces[0], nil
	case address == offWriteOnce1:
		return b.writeOnces[1], nil
	case address == offLockStatus:
		return uint32(b.locks), nil
	case address >= offLocksStart && address <= offLocksEnd:
		pos := (address - offLocksStart) / 4
		mask := uint8(1) << pos
		if b.locks&mask != 0 {
			return 0, nil
		}
		b.locks |= mask
		return uint32(mask), nil
	default:
		idx := int(address) / 4
		if idx >= len(b.data) {
			return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
		}
		return b.data[idx], nil
	}
}

func (b *BootRAM) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	if !ctx.Secure {
		return peripherals.Error{Kind: peripherals.MissingPermission}
	}

	switch {
	case address == offWriteOnce0:
		b.writeOnces[0] |= value
	case address == offWriteOnce1:
		b.writeOnces[1] |= value
	case address == offLockStatus:
		b.locks = uint8(value)
	case address >= offLocksStart && address <= offLocksEnd:
		pos := (address - offLocksStart) / 4
		b.locks &^= uint8(1) << pos
	default:
		idx := int(address) / 4
		if idx >= len(b.data) {
			return peripherals.Error{Kind: peripherals.OutOfBounds}
		}
		b.data[idx] = value
	}

	return nil
}
