package iobank_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/gpio"
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/peripherals/iobank"
	"github.com/rp2350sim/core/test"
)

func TestCtrlRoundTrip(t *testing.T) {
	ints := &interrupts.Interrupts{}
	g := gpio.New(ints)
	b := iobank.New(g)
	ctx := peripherals.AccessContext{}

	test.ExpectSuccess(t, b.WriteRaw(0x04, 7, ctx)) // gpio0 CTRL
	v, err := b.Read(0x04, ctx)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(7))
}

func TestIntrBankReflectsEightPinsPerWord(t *testing.T) {
	ints := &interrupts.Interrupts{}
	g := gpio.New(ints)
	b := iobank.New(g)
	ctx := peripherals.AccessContext{}

	// force pin 0's level_low|level_high irq bits (0b0011) via PROC0_INTF0
	test.ExpectSuccess(t, b.WriteRaw(0x260, 0b0011, ctx)) // PROC0_INTF0, pin 0 nibble
	v, _ := b.Read(0x278, ctx)                            // PROC0_INTS0
	test.ExpectEquality(t, v&0xF, uint32(0b0011))
}
