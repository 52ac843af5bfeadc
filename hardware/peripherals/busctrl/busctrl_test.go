package busctrl_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/peripherals/busctrl"
	"github.com/rp2350sim/core/test"
)

func TestPriorityRegisterReadWrite(t *testing.T) {
	b := busctrl.New()
	ctx := peripherals.AccessContext{}

	test.ExpectSuccess(t, b.WriteRaw(0x00, busctrl.PriorityProc0, ctx))
	v, err := b.Read(0x00, ctx)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(busctrl.PriorityProc0))
}

func TestPriorityAckAlwaysOne(t *testing.T) {
	b := busctrl.New()
	ctx := peripherals.AccessContext{}
	v, _ := b.Read(0x04, ctx)
	test.ExpectEquality(t, v, uint32(1))
}

func TestCounterOnlyIncrementsWhenEnabledAndSelectorMatches(t *testing.T) {
	b := busctrl.New()
	ctx := peripherals.AccessContext{}

	b.WriteRaw(0x10, 0x05, ctx) // perfsel0
	b.IncrementCounter(0, 0x05)
	v, _ := b.Read(0x0C, ctx)
	test.ExpectEquality(t, v, uint32(0))

	b.WriteRaw(0x08, 1, ctx) // enable
	b.IncrementCounter(0, 0x05)
	v, _ = b.Read(0x0C, ctx)
	test.ExpectEquality(t, v, uint32(1))

	b.IncrementCounter(0, 0x06) // different selector, no match
	v, _ = b.Read(0x0C, ctx)
	test.ExpectEquality(t, v, uint32(1))
}

func TestOutOfBoundsOffset(t *testing.T) {
	b := busctrl.New()
	ctx := peripherals.AccessContext{}
	_, err := b.Read(0x100, ctx)
	test.ExpectFailure(t, err)
}
