package sio

import (
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/scheduler"
)

// riscVPlatformTimer is the per-core RISC-V standard platform timer exposed
// through SIO's MTIME/MTIMECMP registers.
type riscVPlatformTimer struct {
	ctrl    uint8
	counter uint64
	cmp     uint64
}

func newRiscVPlatformTimer() *riscVPlatformTimer {
	return &riscVPlatformTimer{
		ctrl: 0b1101,
		cmp:  0xFFFF_FFFF_FFFF_FFFF,
	}
}

func (rt *riscVPlatformTimer) enabled() bool { return rt.ctrl&0x1 != 0 }
func (rt *riscVPlatformTimer) fullSpeed() bool { return rt.ctrl&0x2 != 0 }

func (rt *riscVPlatformTimer) nextDelay() scheduler.Delay {
	if rt.fullSpeed() {
		return scheduler.Ticks(1)
	}
	// 1 MHz tick at a 150 MHz simulator base.
	return scheduler.Ticks(150)
}

// updateInterrupt raises or clears the core-local MTIMECMP line depending
// on whether the comparator has been reached.
func (rt *riscVPlatformTimer) updateInterrupt(core uint8, ints *interrupts.Interrupts) {
	ints.SetCoreLocalIRQ(core, interrupts.SIOIRQMtimecmp, rt.cmp == rt.counter)
}

// schedule arms the next tick of the timer if it isn't already
// outstanding.
func (rt *riscVPlatformTimer) schedule(core uint8, sched *scheduler.Scheduler, ints *interrupts.Interrupts) {
	if !rt.enabled() {
		return
	}
	if sched.IsScheduled(scheduler.RiscVTimer()) {
		return
	}

	sched.Schedule(rt.nextDelay(), scheduler.RiscVTimer(), func() {
		rt.counter++
		rt.updateInterrupt(core, ints)
		rt.schedule(core, sched, ints)
	})
}

// setCtrl updates CTRL and reschedules if enable or speed changed.
func (rt *riscVPlatformTimer) setCtrl(core uint8, value uint8, sched *scheduler.Scheduler, ints *interrupts.Interrupts) {
	last := rt.ctrl
	rt.ctrl = value

	if !rt.enabled() {
		sched.Cancel(scheduler.RiscVTimer())
	} else {
		rt.schedule(core, sched, ints)
	}

	if (value&0x2 != 0) != (last&0x2 != 0) {
		sched.Cancel(scheduler.RiscVTimer())
		rt.schedule(core, sched, ints)
	}
}
