// Package sio implements the RP2350's SIO (Single-cycle IO) peripheral: the
// per-core register block used for GPIO bit-banging, the inter-core
// mailboxes and spinlocks, the two fixed-point interpolators, the RISC-V
// platform timer, and the inter-core doorbells. TMDS encoding is left
// unmodeled, matching the reference implementation this package is ported
// from.
package sio

import (
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/scheduler"
)

// Register offsets, relative to the SIO peripheral base.
const (
	regCPUID          = 0x000
	regGPIOIn         = 0x004
	regGPIOHiIn       = 0x008
	regGPIOOut        = 0x010
	regGPIOHiOut      = 0x014
	regGPIOOutSet     = 0x018
	regGPIOOutClr     = 0x020
	regGPIOOutXor     = 0x028
	regGPIOOE         = 0x030
	regGPIOOESet      = 0x038
	regGPIOOEClr      = 0x040
	regGPIOOEXor      = 0x048
	regFifoST         = 0x050
	regFifoWR         = 0x054
	regFifoRD         = 0x058
	regSpinlockST     = 0x05C
	regInterp0First   = 0x080
	regInterp0Last    = 0x0BC
	regInterp1First   = 0x0C0
	regInterp1Last    = 0x0FC
	regSpinlock0      = 0x100
	regSpinlock31     = 0x17C
	regDoorbellOutSet = 0x180
	regDoorbellOutClr = 0x184
	regDoorbellInSet  = 0x188
	regDoorbellInClr  = 0x18C
	regRiscVSoftIRQ   = 0x1A0
	regMTimeCtrl      = 0x1A4
	regMTime          = 0x1B0
	regMTimeH         = 0x1B4
	regMTimeCmp       = 0x1B8
	regMTimeCmpH      = 0x1BC
)

// interpRegs are the per-lane register offsets within an interpolator's
// 0x40-byte window, relative to that interpolator's first register.
const (
	iAccum0 = 0x00
	iAccum1 = 0x04
	iBase0  = 0x08
	iBase1  = 0x0C
	iBase2  = 0x10
	iPop0   = 0x14
	iPop1   = 0x18
	iPopF   = 0x1C
	iPeek0  = 0x20
	iPeek1  = 0x24
	iPeekF  = 0x28
	iCtrl0  = 0x2C
	iCtrl1  = 0x30
	iAdd0   = 0x34
	iAdd1   = 0x38
	iBase01 = 0x3C
)

// shared is the state visible to both cores: the mailboxes, the spinlock
// bitmap and the doorbell flags. Both SIO instances hold a pointer to the
// same shared block.
type shared struct {
	mailboxes mailboxes
	spinlock  spinLock
	doorbell  [2]uint32 // doorbell[core] = pending doorbell bits posted TO that core
}

func newShared() *shared {
	return &shared{}
}

// SIO is one core's view of the SIO peripheral. Core 0 and core 1 each get
// their own SIO value sharing a *shared block; the interpolators, the
// RISC-V timer and the GPIO output latch are private per SIO instance to
// match the real RP2350, where each core's SIO block is a physically
// distinct register set.
type SIO struct {
	core  uint8
	s     *shared
	sched *scheduler.Scheduler
	ints  *interrupts.Interrupts

	interp0 *Interpolator
	interp1 *Interpolator
	timer   *riscVPlatformTimer

	gpioValue uint32
	gpioOE    uint32

	// GPIOIn, if set, returns the live input level of GPIO0..31 (bit i is
	// pin i). Left nil until hardware/gpio is wired in, in which case
	// GPIO_IN reads back as 0.
	GPIOIn func() uint32
}

// New creates core's SIO register block, backed by the shared inter-core
// state s.
func New(core uint8, s *shared, sched *scheduler.Scheduler, ints *interrupts.Interrupts) *SIO {
	return &SIO{
		core:    core,
		s:       s,
		sched:   sched,
		ints:    ints,
		interp0: NewInterpolator(0),
		interp1: NewInterpolator(1),
		timer:   newRiscVPlatformTimer(),
	}
}

// NewShared creates the state block common to a core-0/core-1 SIO pair.
func NewShared() *shared { return newShared() }

func (s *SIO) requestor() common.Requestor {
	if s.core == 0 {
		return common.Proc0
	}
	return common.Proc1
}

func (s *SIO) otherCore() uint8 {
	if s.core == 0 {
		return 1
	}
	return 0
}

func (s *SIO) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch {
	case address == regCPUID:
		return uint32(s.core), nil

	case address == regGPIOIn:
		if s.GPIOIn != nil {
			return s.GPIOIn(), nil
		}
		return 0, nil
	case address == regGPIOHiIn:
		return 0, nil
	case address == regGPIOOut:
		return s.gpioValue, nil
	case address == regGPIOOE:
		return s.gpioOE, nil

	case address == regFifoST:
		return s.s.mailboxes.state(s.requestor()), nil
	case address == regFifoRD:
		return s.s.mailboxes.read(s.requestor()), nil
	case address == regFifoWR:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}

	case address == regSpinlockST:
		return s.s.spinlock.state(), nil
	case address >= regSpinlock0 && address <= regSpinlock31:
		index := uint16(address-regSpinlock0) / 4
		return s.s.spinlock.claim(index), nil

	case address >= regInterp0First && address <= regInterp0Last:
		return s.readInterp(s.interp0, address-regInterp0First), nil
	case address >= regInterp1First && address <= regInterp1Last:
		return s.readInterp(s.interp1, address-regInterp1First), nil

	case address == regDoorbellInSet || address == regDoorbellInClr:
		return s.s.doorbell[s.core], nil
	case address == regDoorbellOutSet || address == regDoorbellOutClr:
		return s.s.doorbell[s.otherCore()], nil

	case address == regMTimeCtrl:
		return uint32(s.timer.ctrl), nil
	case address == regMTime:
		return uint32(s.timer.counter), nil
	case address == regMTimeH:
		return uint32(s.timer.counter >> 32), nil
	case address == regMTimeCmp:
		return uint32(s.timer.cmp), nil
	case address == regMTimeCmpH:
		return uint32(s.timer.cmp >> 32), nil

	case address == regRiscVSoftIRQ,
		address == regGPIOOutSet, address == regGPIOOutClr, address == regGPIOOutXor,
		address == regGPIOOESet, address == regGPIOOEClr, address == regGPIOOEXor,
		address == regGPIOHiOut:
		return 0, nil

	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (s *SIO) readInterp(it *Interpolator, reg uint16) uint32 {
	switch reg {
	case iAccum0:
		return it.Accum[0]
	case iAccum1:
		return it.Accum[1]
	case iBase0:
		return it.Base[0]
	case iBase1:
		return it.Base[1]
	case iBase2:
		return it.Base[2]
	case iPop0:
		v := it.Result[0]
		it.Writeback()
		return v
	case iPop1:
		v := it.Result[1]
		it.Writeback()
		return v
	case iPopF:
		v := it.Result[2]
		it.Writeback()
		return v
	case iPeek0:
		return it.Result[0]
	case iPeek1:
		return it.Result[1]
	case iPeekF:
		return it.Result[2]
	case iCtrl0:
		return it.Ctrl[0]
	case iCtrl1:
		return it.Ctrl[1]
	case iAdd0:
		return it.SMResult[0]
	case iAdd1:
		return it.SMResult[1]
	default:
		return 0
	}
}

func (s *SIO) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch {
	case address == regGPIOOut:
		s.gpioValue = value
	case address == regGPIOOutSet:
		s.gpioValue |= value
	case address == regGPIOOutClr:
		s.gpioValue &^= value
	case address == regGPIOOutXor:
		s.gpioValue ^= value
	case address == regGPIOOE:
		s.gpioOE = value
	case address == regGPIOOESet:
		s.gpioOE |= value
	case address == regGPIOOEClr:
		s.gpioOE &^= value
	case address == regGPIOOEXor:
		s.gpioOE ^= value

	case address == regFifoST:
		if value&(1<<2) != 0 {
			s.s.mailboxes.clearWOF(s.requestor())
		}
		if value&(1<<3) != 0 {
			s.s.mailboxes.clearROE(s.requestor())
		}
	case address == regFifoWR:
		s.s.mailboxes.write(value, s.requestor())
	case address == regFifoRD:
		return peripherals.Error{Kind: peripherals.OutOfBounds}

	case address >= regSpinlock0 && address <= regSpinlock31:
		index := uint16(address-regSpinlock0) / 4
		s.s.spinlock.release(index)

	case address >= regInterp0First && address <= regInterp0Last:
		s.writeInterp(s.interp0, address-regInterp0First, value)
	case address >= regInterp1First && address <= regInterp1Last:
		s.writeInterp(s.interp1, address-regInterp1First, value)

	case address == regDoorbellOutSet:
		s.s.doorbell[s.otherCore()] |= value
	case address == regDoorbellOutClr:
		s.s.doorbell[s.otherCore()] &^= value
	case address == regDoorbellInSet:
		s.s.doorbell[s.core] |= value
	case address == regDoorbellInClr:
		s.s.doorbell[s.core] &^= value

	case address == regMTimeCtrl:
		s.timer.setCtrl(s.core, uint8(value), s.sched, s.ints)
	case address == regMTime:
		s.timer.counter = (s.timer.counter &^ 0xFFFFFFFF) | uint64(value)
	case address == regMTimeH:
		s.timer.counter = (s.timer.counter & 0xFFFFFFFF) | (uint64(value) << 32)
	case address == regMTimeCmp:
		s.timer.cmp = (s.timer.cmp &^ 0xFFFFFFFF) | uint64(value)
		s.timer.updateInterrupt(s.core, s.ints)
	case address == regMTimeCmpH:
		s.timer.cmp = (s.timer.cmp & 0xFFFFFFFF) | (uint64(value) << 32)
		s.timer.updateInterrupt(s.core, s.ints)

	case address == regRiscVSoftIRQ, address == regGPIOHiOut, address == regGPIOHiIn:
		// unmodeled cross-GPIO / software-interrupt paths

	case address == regCPUID, address == regSpinlockST,
		address == regGPIOIn:
		// read-only

	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}

	return nil
}

func (s *SIO) writeInterp(it *Interpolator, reg uint16, value uint32) {
	switch reg {
	case iAccum0:
		it.Accum[0] = value
		it.Update()
	case iAccum1:
		it.Accum[1] = value
		it.Update()
	case iBase0:
		it.Base[0] = value
		it.Update()
	case iBase1:
		it.Base[1] = value
		it.Update()
	case iBase2:
		it.Base[2] = value
		it.Update()
	case iCtrl0:
		it.Ctrl[0] = value
		it.Update()
	case iCtrl1:
		it.Ctrl[1] = value
		it.Update()
	case iAdd0:
		it.Accum[0] += value
		it.Update()
	case iAdd1:
		it.Accum[1] += value
		it.Update()
	case iBase01:
		it.SetBase01(value)
	default:
		// POP/PEEK registers and anything else are read-only
	}
}
