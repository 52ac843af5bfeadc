// Package inspector defines the one-way observation channel the rest of
// the simulator fires events into: instruction retirement, exceptions,
// bus traffic, UART bits and the like. Producers never block on it and
// never branch on what it returns, matching the fire-and-forget shape of
// the scheduler's own deferred closures.
package inspector

// Event is the closed set of everything the simulator can report to an
// observer. It is implemented only by the types in this file; external
// packages consume events through a type switch on Event, not by adding
// new implementations.
type Event interface {
	event()
}

// TrngGenerated reports a fresh 32 bits of entropy produced by a read of
// one of the TRNG's EHR_DATA registers.
type TrngGenerated struct {
	Value uint32
}

// ExecutedInstruction reports one retired core instruction.
type ExecutedInstruction struct {
	Core        uint8
	Instruction uint32
	Address     uint32
	Name        string
	Operands    string
}

// Exception reports a trap taken by a core, naming the exception's curated
// error-message head (see the errors package) as Cause.
type Exception struct {
	Core  uint8
	Cause string
}

// TickCore reports that a core was advanced by one clock tick, whether or
// not it retired an instruction on that tick.
type TickCore struct {
	Core uint8
}

// WakeCore reports that a sleeping (WFI) core woke up because a pending
// interrupt bit became set.
type WakeCore struct {
	Core uint8
}

// UartTx reports one transmitted line-level bit from UART index Index.
type UartTx struct {
	Index int
	Value bool
}

// UartRx reports one byte accepted into UART index Index's receive FIFO.
type UartRx struct {
	Index int
	Value byte
}

// BusLoad reports a completed bus load.
type BusLoad struct {
	Requestor string
	Address   uint32
	Size      int
}

// BusStore reports a completed bus store.
type BusStore struct {
	Requestor string
	Address   uint32
	Value     uint32
	Size      int
}

// FlashedBinary reports that new firmware was loaded into XIP flash via
// FlashBin or FlashUF2.
type FlashedBinary struct{}

func (TrngGenerated) event()       {}
func (ExecutedInstruction) event() {}
func (Exception) event()           {}
func (TickCore) event()            {}
func (WakeCore) event()            {}
func (UartTx) event()              {}
func (UartRx) event()              {}
func (BusLoad) event()             {}
func (BusStore) event()            {}
func (FlashedBinary) event()       {}

// Inspector receives InspectionEvents as they occur. Implementations must
// not block and must not panic; the core calling Notify has no recovery
// path for an observer's mistakes.
type Inspector interface {
	Notify(Event)
}

// Func adapts a plain function to the Inspector interface.
type Func func(Event)

func (f Func) Notify(e Event) { f(e) }

// null is the default Inspector installed when none has been set: it
// discards every event.
type null struct{}

func (null) Notify(Event) {}

// Null is the shared no-op Inspector. SetInspector(nil) on a SoC is
// equivalent to SetInspector(Null).
var Null Inspector = null{}
