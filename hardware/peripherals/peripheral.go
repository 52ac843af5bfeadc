// Package peripherals implements the APB/AHB peripheral address space: the
// atomic alias-write decoder shared by every register-mapped peripheral,
// and the registry that routes a bus address to a concrete instance.
package peripherals

import "github.com/rp2350sim/core/hardware/common"

// AccessContext carries the parts of a bus access a peripheral needs to
// know about: who is asking, and whether they are a secure requestor.
type AccessContext struct {
	Secure    bool
	Requestor common.Requestor
}

// DefaultAccessContext returns the access context used by fetch-equivalent
// paths and tests: secure, Proc0.
func DefaultAccessContext() AccessContext {
	return AccessContext{Secure: true, Requestor: common.Proc0}
}

// ErrorKind distinguishes the two ways a peripheral access can fail.
type ErrorKind int

const (
	// OutOfBounds means the offset does not correspond to any register.
	OutOfBounds ErrorKind = iota
	// MissingPermission means the peripheral requires a secure requestor
	// and ctx.Secure was false.
	MissingPermission
)

// Error is the error type returned by Peripheral methods.
type Error struct {
	Kind ErrorKind
}

func (e Error) Error() string {
	switch e.Kind {
	case MissingPermission:
		return "peripheral error: missing permission"
	default:
		return "peripheral error: out of bounds"
	}
}

// Peripheral is implemented by every register-mapped device in the APB/AHB
// address space. Offset is the 12-bit intra-peripheral register offset
// (bits 11:0); the alias bits (13:12) are decoded by Write before
// WriteRaw is called, so implementations never see them.
type Peripheral interface {
	Read(offset uint16, ctx AccessContext) (uint32, error)
	WriteRaw(offset uint16, value uint32, ctx AccessContext) error
}

// Write decodes the atomic alias bits (13:12) of a full 14-bit
// peripheral-relative offset and applies the corresponding read-modify-write
// to p, or a plain write for the "normal" alias. This is the bus's entry
// point for all peripheral stores except SIO, which bypasses aliasing
// entirely.
func Write(p Peripheral, offset uint16, value uint32, ctx AccessContext) error {
	alias := (offset >> 12) & 0x3
	reg := offset & 0x0FFF

	switch alias {
	case 0x0:
		return p.WriteRaw(reg, value, ctx)
	case 0x1:
		current, err := p.Read(reg, ctx)
		if err != nil {
			return err
		}
		return p.WriteRaw(reg, current^value, ctx)
	case 0x2:
		current, err := p.Read(reg, ctx)
		if err != nil {
			return err
		}
		return p.WriteRaw(reg, current|value, ctx)
	case 0x3:
		current, err := p.Read(reg, ctx)
		if err != nil {
			return err
		}
		return p.WriteRaw(reg, current&^value, ctx)
	default:
		return Error{Kind: OutOfBounds}
	}
}

// UnimplementedPeripheral is a generic stub for address-mapped regions that
// the simulator does not model in detail: reads return 0, writes are
// accepted and discarded. It satisfies Peripheral so the registry's address
// map can still route to every real RP2350 peripheral base, modelled or
// not.
type UnimplementedPeripheral struct{}

func (UnimplementedPeripheral) Read(offset uint16, ctx AccessContext) (uint32, error) {
	return 0, nil
}

func (*UnimplementedPeripheral) WriteRaw(offset uint16, value uint32, ctx AccessContext) error {
	return nil
}
