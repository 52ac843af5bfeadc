package gpio_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/gpio"
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/test"
)

func TestDriveHighSetsLevelHighInterrupt(t *testing.T) {
	ints := &interrupts.Interrupts{}
	c := gpio.New(ints)

	pin := c.Pin(0)
	pin.WriteCtrl(pin.Ctrl() | (1 << 6)) // input_enable

	c.Drive(0, true)
	test.ExpectEquality(t, c.InterruptRaw(0)&(1<<1) != 0, true) // level high
}

func TestMaskGatesInterruptLine(t *testing.T) {
	ints := &interrupts.Interrupts{}
	c := gpio.New(ints)

	pin := c.Pin(3)
	pin.WriteCtrl(pin.Ctrl() | (1 << 6))

	c.SetInterruptMask(3, 0) // mask everything off
	c.Drive(3, true)
	test.ExpectEquality(t, ints.Pending(0)&(uint64(1)<<interrupts.IOIRQBank0) != 0, false)

	c.SetInterruptMask(3, 0xF)
	c.Drive(3, false) // toggles level-low, raises raw again
	test.ExpectEquality(t, ints.Pending(0)&(uint64(1)<<interrupts.IOIRQBank0) != 0, true)
}

func TestFuncSelLooksUpPerPinTable(t *testing.T) {
	c := gpio.New(nil)
	pin := c.Pin(0)
	pin.WriteCtrl(5) // SIO per GPIO 0's row
	test.ExpectEquality(t, pin.FuncSel(), gpio.FuncSIO)
}

func TestSelectFindsFirstPinWithFunction(t *testing.T) {
	c := gpio.New(nil)
	c.Pin(2).WriteCtrl(5) // SIO
	found := c.Select(gpio.FuncSIO)
	test.ExpectInequality(t, found, (*gpio.Pin)(nil))
}

func TestInOverrideInvertsInput(t *testing.T) {
	c := gpio.New(nil)
	pin := c.Pin(0)
	pin.WriteCtrl(pin.Ctrl() | (uint32(gpio.OverrideInvert) << 16))
	c.Drive(0, true)
	test.ExpectEquality(t, pin.InputValue(), false)
}
