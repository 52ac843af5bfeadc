package pwm_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/peripherals/pwm"
	"github.com/rp2350sim/core/hardware/scheduler"
	"github.com/rp2350sim/core/test"
)

func TestEnableBitStartsChannelCounting(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	p := pwm.New(sched, ints)
	ctx := peripherals.AccessContext{}

	test.ExpectSuccess(t, p.WriteRaw(pwm.ChnDiv, 1<<4, ctx)) // channel 0 div = 1.0
	test.ExpectSuccess(t, p.WriteRaw(0x0F0, 0x1, ctx))       // EN bit 0

	v, _ := p.Read(0x0F0, ctx)
	test.ExpectEquality(t, v, uint32(1))

	sched.Tick()
	v, _ = p.Read(pwm.ChnCtr, ctx)
	test.ExpectEquality(t, v, uint32(1))
}

func TestDisableCancelsScheduledAdvance(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	p := pwm.New(sched, ints)
	ctx := peripherals.AccessContext{}

	p.WriteRaw(0x0F0, 0x1, ctx)
	p.WriteRaw(0x0F0, 0x0, ctx)

	sched.Tick()
	v, _ := p.Read(pwm.ChnCtr, ctx)
	test.ExpectEquality(t, v, uint32(0))
}

func TestCSRPhaseAdvanceBumpsCounter(t *testing.T) {
	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	p := pwm.New(sched, ints)
	ctx := peripherals.AccessContext{}

	p.WriteRaw(pwm.ChnCSR, 1<<7, ctx)
	v, _ := p.Read(pwm.ChnCtr, ctx)
	test.ExpectEquality(t, v, uint32(1))
}
