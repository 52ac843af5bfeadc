package hazard3

import "github.com/rp2350sim/core/errors"

// Exception identifies one of the ten synchronous trap causes a Hazard3
// core can raise. The numeric values match mcause's low bits directly.
type Exception uint32

const (
	InstructionAlignment Exception = 0x0
	InstructionFetchFault Exception = 0x1
	IllegalInstruction   Exception = 0x2
	BreakPoint           Exception = 0x3
	LoadAlignment        Exception = 0x4
	LoadFault            Exception = 0x5
	StoreAlignment       Exception = 0x6
	StoreFault           Exception = 0x7
	EcallUMode           Exception = 0x8
	EcallMMode           Exception = 0x9
)

// curatedMessage maps an Exception to the errors package's curated message
// head, used both for returned errors and for the Cause string reported to
// an inspector.
func (e Exception) curatedMessage() string {
	switch e {
	case InstructionAlignment:
		return errors.InstructionAlignment
	case InstructionFetchFault:
		return errors.InstructionFetchFault
	case IllegalInstruction:
		return errors.IllegalInstruction
	case BreakPoint:
		return errors.BreakPoint
	case LoadAlignment:
		return errors.LoadAlignment
	case LoadFault:
		return errors.LoadFault
	case StoreAlignment:
		return errors.StoreAlignmentMsg
	case StoreFault:
		return errors.StoreFault
	case EcallUMode:
		return errors.EcallUMode
	case EcallMMode:
		return errors.EcallMMode
	default:
		return errors.IllegalInstruction
	}
}

// AsError renders the exception as a curated error carrying pc (and, for
// IllegalInstruction, the offending instruction word too).
func (e Exception) AsError(pc uint32, instruction uint32) error {
	switch e {
	case IllegalInstruction:
		return errors.Errorf(e.curatedMessage(), instruction, pc)
	default:
		return errors.Errorf(e.curatedMessage(), pc)
	}
}

// Trap is either one of the synchronous Exceptions or an asynchronous
// interrupt, identified by its IRQ number as seen by mip/mie.
type Trap struct {
	Exception   Exception
	isInterrupt bool
	irq         uint32
}

// ExceptionTrap wraps a synchronous exception as a Trap.
func ExceptionTrap(e Exception) Trap { return Trap{Exception: e} }

// InterruptTrap wraps a pending interrupt number as a Trap.
func InterruptTrap(irq uint32) Trap { return Trap{isInterrupt: true, irq: irq} }

// ToCause computes the value trap_handle writes to mcause: bit 31 set and
// the IRQ number in the low bits for an interrupt, or the bare exception
// code for an exception.
func (t Trap) ToCause() uint32 {
	if t.isInterrupt {
		return (1 << 31) | t.irq
	}
	return uint32(t.Exception)
}
