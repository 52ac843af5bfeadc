package sio

import (
	"testing"

	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/scheduler"
	"github.com/rp2350sim/core/test"
)

func newPair() (*SIO, *SIO) {
	sch := scheduler.New()
	ints := &interrupts.Interrupts{}
	sh := NewShared()
	return New(0, sh, sch, ints), New(1, sh, sch, ints)
}

func TestCPUIDDiffersPerCore(t *testing.T) {
	core0, core1 := newPair()
	ctx := peripherals.AccessContext{}

	v0, _ := core0.Read(regCPUID, ctx)
	v1, _ := core1.Read(regCPUID, ctx)
	test.ExpectEquality(t, v0, uint32(0))
	test.ExpectEquality(t, v1, uint32(1))
}

func TestGPIOOutSetClearXor(t *testing.T) {
	core0, _ := newPair()
	ctx := peripherals.AccessContext{}

	test.ExpectSuccess(t, core0.WriteRaw(regGPIOOutSet, 0b101, ctx))
	v, _ := core0.Read(regGPIOOut, ctx)
	test.ExpectEquality(t, v, uint32(0b101))

	core0.WriteRaw(regGPIOOutClr, 0b001, ctx)
	v, _ = core0.Read(regGPIOOut, ctx)
	test.ExpectEquality(t, v, uint32(0b100))

	core0.WriteRaw(regGPIOOutXor, 0b110, ctx)
	v, _ = core0.Read(regGPIOOut, ctx)
	test.ExpectEquality(t, v, uint32(0b010))
}

func TestFifoCrossesCores(t *testing.T) {
	core0, core1 := newPair()
	ctx := peripherals.AccessContext{}

	core0.WriteRaw(regFifoWR, 0xABCD, ctx)
	v, _ := core1.Read(regFifoRD, ctx)
	test.ExpectEquality(t, v, uint32(0xABCD))
}

func TestSpinlockSharedAcrossCores(t *testing.T) {
	core0, core1 := newPair()
	ctx := peripherals.AccessContext{}

	v, _ := core0.Read(regSpinlock0, ctx)
	test.ExpectEquality(t, v, uint32(1))

	v, _ = core1.Read(regSpinlock0, ctx)
	test.ExpectEquality(t, v, uint32(0)) // already held

	core1.WriteRaw(regSpinlock0, 0, ctx)
	v, _ = core0.Read(regSpinlock0, ctx)
	test.ExpectEquality(t, v, uint32(1)) // released, reclaimable
}

func TestInterpolatorAccumRoundTrip(t *testing.T) {
	core0, _ := newPair()
	ctx := peripherals.AccessContext{}

	core0.WriteRaw(regInterp0First+iAccum0, 0x42, ctx)
	v, _ := core0.Read(regInterp0First+iAccum0, ctx)
	test.ExpectEquality(t, v, uint32(0x42))
}

func TestDoorbellIsPostedToOppositeCore(t *testing.T) {
	core0, core1 := newPair()
	ctx := peripherals.AccessContext{}

	core0.WriteRaw(regDoorbellOutSet, 0x1, ctx)
	v, _ := core1.Read(regDoorbellInSet, ctx)
	test.ExpectEquality(t, v, uint32(0x1))

	core1.WriteRaw(regDoorbellInClr, 0x1, ctx)
	v, _ = core1.Read(regDoorbellInSet, ctx)
	test.ExpectEquality(t, v, uint32(0))
}

func TestMTimeCmpRaisesCoreLocalInterrupt(t *testing.T) {
	core0, _ := newPair()
	ctx := peripherals.AccessContext{}

	core0.WriteRaw(regMTimeCtrl, 0, ctx) // disabled, counter stays at 0
	core0.WriteRaw(regMTimeCmp, 0, ctx)
	core0.WriteRaw(regMTimeCmpH, 0, ctx)

	test.ExpectEquality(t, core0.ints.Pending(0)&(uint64(1)<<interrupts.SIOIRQMtimecmp) != 0, true)
}
