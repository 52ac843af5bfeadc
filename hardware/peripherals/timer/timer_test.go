package timer_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/peripherals/timer"
	"github.com/rp2350sim/core/hardware/scheduler"
	"github.com/rp2350sim/core/test"
)

func TestCounterAdvancesAt1MHzBy150To1(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	tm := timer.New(0, sched, ints)

	for i := 0; i < 149; i++ {
		sched.Tick()
		v, _ := tm.Read(timer.TimeLR, peripherals.AccessContext{})
		test.ExpectEquality(t, v, uint32(0))
	}
	sched.Tick()
	v, _ := tm.Read(timer.TimeLR, peripherals.AccessContext{})
	test.ExpectEquality(t, v, uint32(1))
}

func TestSwitchingToSysClockTicksEveryCycle(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	tm0 := timer.New(0, sched, ints)
	tm1 := timer.New(1, sched, ints)

	test.ExpectSuccess(t, peripherals.Write(tm0, timer.Source, 1, peripherals.AccessContext{}))

	for i := 1; i < 150; i++ {
		sched.Tick()
		v0, _ := tm0.Read(timer.TimeLR, peripherals.AccessContext{})
		v1, _ := tm1.Read(timer.TimeLR, peripherals.AccessContext{})
		test.ExpectEquality(t, v0, uint32(i))
		test.ExpectEquality(t, v1, uint32(0))
	}
}

func TestAlarmFiresInterruptOnMatch(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	tm := timer.New(0, sched, ints)

	peripherals.Write(tm, timer.Source, uint32(timer.SourceSys), peripherals.AccessContext{})
	peripherals.Write(tm, timer.Alarm0, 5, peripherals.AccessContext{})
	peripherals.Write(tm, timer.Inte, 0b1, peripherals.AccessContext{})

	for i := 0; i < 5; i++ {
		sched.Tick()
	}

	test.ExpectEquality(t, ints.Pending(0)&(uint64(1)<<interrupts.Timer0IRQ0) != 0, true)
}

func TestLockedTimerIgnoresWrites(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	tm := timer.New(0, sched, ints)

	peripherals.Write(tm, timer.Locked, 1, peripherals.AccessContext{})
	peripherals.Write(tm, timer.Alarm0, 99, peripherals.AccessContext{})

	v, _ := tm.Read(timer.Alarm0, peripherals.AccessContext{})
	test.ExpectEquality(t, v, uint32(0))
}
