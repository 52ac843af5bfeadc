// Package uart implements a PL011-style UART: an 8-deep TX/RX FIFO pair
// driven by a bit-shifter state machine scheduled through the simulator's
// event queue, plus the usual line-control/status register set.
package uart

import (
	"github.com/rp2350sim/core/hardware/inspector"
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/scheduler"
)

const (
	DR     = 0x000
	RSR    = 0x004
	FR     = 0x018
	ILPR   = 0x020
	IBRD   = 0x024
	FBRD   = 0x028
	LCRH   = 0x02C
	CR     = 0x030
	IFLS   = 0x034
	IMSC   = 0x038
	RIS    = 0x03C
	MIS    = 0x040
	ICR    = 0x044
	DMACR  = 0x048
	PeriphID0 = 0xFE0
	PeriphID1 = 0xFE4
	PeriphID2 = 0xFE8
	PeriphID3 = 0xFEC
	PCellID0  = 0xFF0
	PCellID1  = 0xFF4
	PCellID2  = 0xFF8
	PCellID3  = 0xFFC
)

const (
	frBusy  = 1 << 3
	frRxfe  = 1 << 4
	frTxff  = 1 << 5
	frRxff  = 1 << 6
	frTxfe  = 1 << 7

	crUARTEN = 1 << 0
	crTXE    = 1 << 8
	crRXE    = 1 << 9

	lcrhPEN  = 1 << 1
	lcrhEPS  = 1 << 2
	lcrhSTP2 = 1 << 3
	lcrhWLenShift = 5

	errFrame  = 1 << 7
	errParity = 1 << 8
	errOverrun = 1 << 10

	intRX = 1 << 4
	intTX = 1 << 5
	intOE = 1 << 10
)

type transmitState int

const (
	txIdle transmitState = iota
	txStart
	txData
	txParity
	txStop
)

// txStep is a single transition of the transmit bit-shifter: which state
// it's leaving, the byte being sent, and (for txData/txStop) the bit or
// stop-bit index within that state.
type txStep struct {
	state transmitState
	data  uint8
	index uint8
}

// Uart is one of the two UART instances (index 0 or 1).
type Uart struct {
	index int

	txFifo fifo8u16
	rxFifo fifo8u16

	cr   uint16
	lcrh uint16
	ibrd uint16
	fbrd uint16
	ifls uint16
	imsc uint16
	ris  uint16
	icrLast uint16

	busy  bool
	error uint16

	sched *scheduler.Scheduler
	ints  *interrupts.Interrupts
	insp  inspector.Inspector
}

// New creates UART index (0 or 1), disabled.
func New(index int, sched *scheduler.Scheduler, ints *interrupts.Interrupts) *Uart {
	return &Uart{index: index, sched: sched, ints: ints, insp: inspector.Null}
}

// SetInspector installs the observer notified of transmitted bits and
// received bytes. A nil argument restores the null inspector.
func (u *Uart) SetInspector(insp inspector.Inspector) {
	if insp == nil {
		insp = inspector.Null
	}
	u.insp = insp
}

// Receive pushes a byte into the receive FIFO, as if sampled off the wire.
// It is silently dropped if the FIFO is full, matching real PL011 overrun
// behaviour (the overrun error flag is raised instead of blocking).
func (u *Uart) Receive(b byte) {
	if !u.enabled() {
		return
	}
	if !u.rxFifo.push(uint16(b)) {
		u.error |= errOverrun
		u.updateInterrupt()
		return
	}
	u.insp.Notify(inspector.UartRx{Index: u.index, Value: b})
	u.updateInterrupt()
}

func (u *Uart) enabled() bool        { return u.cr&crUARTEN != 0 }
func (u *Uart) transmitEnabled() bool { return u.cr&crTXE != 0 }
func (u *Uart) wordLen() int {
	return int((u.lcrh>>lcrhWLenShift)&0b11) + 5
}
func (u *Uart) parityEnabled() bool { return u.lcrh&lcrhPEN != 0 }
func (u *Uart) parityEven() bool    { return u.lcrh&lcrhEPS != 0 }
func (u *Uart) twoStopBits() bool   { return u.lcrh&lcrhSTP2 != 0 }

// bitTime approximates one bit period from IBRD alone (FBRD is ignored) at a
// 150 MHz system clock; the 16x oversampling factor matches the PL011
// UARTCLK/16 divisor.
func (u *Uart) bitTime() scheduler.Delay {
	divisor := uint64(u.ibrd)
	if divisor == 0 {
		divisor = 1
	}
	return scheduler.Ticks(divisor * 16)
}

func evenParity(data uint8, bits int) uint8 {
	var count uint8
	for i := 0; i < bits; i++ {
		count += (data >> i) & 1
	}
	return count & 1
}

func oddParity(data uint8, bits int) uint8 {
	return evenParity(data, bits) ^ 1
}

func (u *Uart) txIRQ() bool {
	return u.txFifo.isEmpty()
}

func (u *Uart) rxIRQ() bool {
	return !u.rxFifo.isEmpty()
}

func (u *Uart) updateInterrupt() {
	u.ris = 0
	if u.txIRQ() {
		u.ris |= intTX
	}
	if u.rxIRQ() {
		u.ris |= intRX
	}
	if u.error&errOverrun != 0 {
		u.ris |= intOE
	}

	masked := u.ris & u.imsc
	u.ints.SetIRQ(u.irqLine(), masked != 0)
}

func (u *Uart) irqLine() interrupts.IRQ {
	return interrupts.UART0IRQ + interrupts.IRQ(u.index)
}

// startTransmitting arms the TX bit-shifter if it isn't already running.
func (u *Uart) startTransmitting() {
	if u.sched.IsScheduled(scheduler.UartTx(u.index)) {
		return
	}
	u.transmit(txStep{state: txIdle})
}

// transmit advances the bit-shifter by one step and, unless it has gone
// idle with nothing queued, schedules the next step one bit-time later.
func (u *Uart) transmit(step txStep) {
	if !u.enabled() || !u.transmitEnabled() {
		return
	}

	var next txStep
	var bit bool

	switch step.state {
	case txIdle:
		v, ok := u.txFifo.pop()
		if !ok {
			u.updateInterrupt()
			return
		}
		u.busy = true
		u.updateInterrupt()
		next = txStep{state: txStart, data: uint8(v)}
		u.sched.Schedule(u.bitTime(), scheduler.UartTx(u.index), func() { u.transmit(next) })
		return

	case txStart:
		bit = false
		next = txStep{state: txData, data: step.data, index: 0}

	case txData:
		bit = (step.data>>step.index)&1 != 0
		if int(step.index) < u.wordLen()-1 {
			next = txStep{state: txData, data: step.data, index: step.index + 1}
		} else if u.parityEnabled() {
			next = txStep{state: txParity, data: step.data}
		} else {
			next = txStep{state: txStop, data: step.data}
		}

	case txParity:
		if u.parityEven() {
			bit = evenParity(step.data, u.wordLen()) != 0
		} else {
			bit = oddParity(step.data, u.wordLen()) != 0
		}
		next = txStep{state: txStop, data: step.data}

	case txStop:
		bit = true
		if u.twoStopBits() && step.index == 0 {
			next = txStep{state: txStop, data: step.data, index: 1}
		} else {
			u.busy = false
			next = txStep{state: txIdle}
		}
	}

	u.insp.Notify(inspector.UartTx{Index: u.index, Value: bit})

	u.sched.Schedule(u.bitTime(), scheduler.UartTx(u.index), func() { u.transmit(next) })
}

func (u *Uart) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch address & 0xFFF {
	case DR:
		v, ok := u.rxFifo.pop()
		if !ok {
			return 0, nil
		}
		u.updateInterrupt()
		return uint32(v), nil
	case RSR:
		return uint32(u.error), nil
	case FR:
		var fr uint16
		if u.busy {
			fr |= frBusy
		}
		if u.rxFifo.isEmpty() {
			fr |= frRxfe
		}
		if u.rxFifo.isFull() {
			fr |= frRxff
		}
		if u.txFifo.isFull() {
			fr |= frTxff
		}
		if u.txFifo.isEmpty() {
			fr |= frTxfe
		}
		return uint32(fr), nil
	case IBRD:
		return uint32(u.ibrd), nil
	case FBRD:
		return uint32(u.fbrd), nil
	case LCRH:
		return uint32(u.lcrh), nil
	case CR:
		return uint32(u.cr), nil
	case IFLS:
		return uint32(u.ifls), nil
	case IMSC:
		return uint32(u.imsc), nil
	case RIS:
		return uint32(u.ris), nil
	case MIS:
		return uint32(u.ris & u.imsc), nil
	case PeriphID0:
		return 0x11, nil
	case PeriphID1:
		return 0x1 << 4, nil
	case PeriphID2:
		return (0x3 << 4) | 4, nil
	case PeriphID3:
		return 0, nil
	case PCellID0:
		return 0x0D, nil
	case PCellID1:
		return 0xF0, nil
	case PCellID2:
		return 0x05, nil
	case PCellID3:
		return 0xB1, nil
	case ILPR, ICR, DMACR:
		return 0, nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (u *Uart) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch address & 0xFFF {
	case DR:
		if !u.txFifo.isFull() {
			u.txFifo.push(uint16(value))
			u.startTransmitting()
		}
	case RSR:
		u.error = 0
	case IBRD:
		u.ibrd = uint16(value)
	case FBRD:
		u.fbrd = uint16(value)
	case LCRH:
		u.lcrh = uint16(value)
	case CR:
		u.cr = uint16(value)
		if u.enabled() && u.transmitEnabled() {
			u.startTransmitting()
		}
	case IFLS:
		u.ifls = uint16(value)
	case IMSC:
		u.imsc = uint16(value)
		u.updateInterrupt()
	case ICR:
		u.ris &^= uint16(value)
		u.updateInterrupt()
	case DMACR, ILPR:
	case FR, RIS, MIS, PeriphID0, PeriphID1, PeriphID2, PeriphID3,
		PCellID0, PCellID1, PCellID2, PCellID3:
		// read-only
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}
