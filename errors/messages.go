// Package errors is a helper package for the plain Go language error type.

package errors

// error messages, grouped by the subsystem that raises them. These are the
// curated message strings passed to Errorf; the chain-normalising Error()
// implementation means a message can safely be re-wrapped by a caller
// without producing duplicated text.
const (
	// scheduler
	SchedulerBadKind = "scheduler error: unrecognised event kind (%v)"

	// bus
	BusFault          = "bus error: bus fault at address %#08x"
	ConcurrentAccess  = "bus error: concurrent access at address %#08x"
	LoadError         = "bus error: load error at address %#08x"
	StoreError        = "bus error: store error at address %#08x"
	ExclusiveNotSRAM  = "bus error: exclusive access outside SRAM at address %#08x"
	NoOutstandingAccess = "bus error: no outstanding access for requestor %v"

	// generic memory
	MemoryOutOfBounds = "memory error: out of bounds access at offset %#08x (capacity %#08x)"

	// peripherals
	PeripheralOutOfBounds     = "peripheral error: offset %#04x out of bounds"
	PeripheralMissingPermission = "peripheral error: secure access required at offset %#04x"
	PeripheralNotFound        = "peripheral error: no peripheral mapped at address %#08x"

	// firmware / uf2
	FileTooLarge   = "firmware error: file too large (%d bytes, maximum %d)"
	InvalidUF2File = "uf2 error: invalid uf2 file (%v)"

	// hazard3 core
	IllegalInstruction      = "hazard3 error: illegal instruction %#08x at pc %#08x"
	InstructionAlignment    = "hazard3 error: instruction address misaligned at pc %#08x"
	InstructionFetchFault   = "hazard3 error: instruction fetch fault at pc %#08x"
	LoadAlignment           = "hazard3 error: load address misaligned at %#08x"
	StoreAlignmentMsg       = "hazard3 error: store address misaligned at %#08x"
	LoadFault               = "hazard3 error: load fault at %#08x"
	StoreFault              = "hazard3 error: store fault at %#08x"
	BreakPoint              = "hazard3 error: breakpoint at pc %#08x"
	EcallMMode              = "hazard3 error: ecall from machine mode at pc %#08x"
	EcallUMode              = "hazard3 error: ecall from user mode at pc %#08x"
	UnimplementedInstruction = "hazard3 error: unimplemented instruction %#08x at pc %#08x"

	// gpio / soc wiring
	GPIOIndexOutOfRange = "gpio error: pin index %d out of range"
)
