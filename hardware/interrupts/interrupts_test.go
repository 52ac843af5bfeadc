package interrupts_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/test"
)

func TestEmptyByDefault(t *testing.T) {
	var i interrupts.Interrupts
	test.ExpectEquality(t, len(i.Iter(0)), 0)
	test.ExpectEquality(t, len(i.Iter(1)), 0)
}

func TestSetAndClearGlobalIRQ(t *testing.T) {
	var i interrupts.Interrupts

	i.SetIRQ(interrupts.Timer0IRQ0, true)
	test.ExpectEquality(t, i.Iter(0), []interrupts.IRQ{interrupts.Timer0IRQ0})

	i.ClearIRQ(interrupts.Timer0IRQ0)
	test.ExpectEquality(t, len(i.Iter(0)), 0)
}

func TestSetFalseIsANoOpNotASet(t *testing.T) {
	var i interrupts.Interrupts
	i.SetIRQ(interrupts.Timer0IRQ1, false)
	test.ExpectEquality(t, len(i.Iter(0)), 0)
}

func TestGlobalIRQVisibleToBothCores(t *testing.T) {
	var i interrupts.Interrupts
	i.SetIRQ(interrupts.UART0IRQ, true)

	test.ExpectEquality(t, i.Iter(0), []interrupts.IRQ{interrupts.UART0IRQ})
	test.ExpectEquality(t, i.Iter(1), []interrupts.IRQ{interrupts.UART0IRQ})
}

func TestCoreLocalIRQIsBankedPerCore(t *testing.T) {
	var i interrupts.Interrupts

	i.SetCoreLocalIRQ(0, interrupts.SIOIRQFifo, true)
	test.ExpectEquality(t, i.Iter(0), []interrupts.IRQ{interrupts.SIOIRQFifo})
	test.ExpectEquality(t, len(i.Iter(1)), 0)

	i.SetCoreLocalIRQ(1, interrupts.SIOIRQBell, true)
	test.ExpectEquality(t, i.Iter(0), []interrupts.IRQ{interrupts.SIOIRQFifo})
	test.ExpectEquality(t, i.Iter(1), []interrupts.IRQ{interrupts.SIOIRQBell})
}

func TestIterIsAscendingByBitIndex(t *testing.T) {
	var i interrupts.Interrupts
	i.SetIRQ(interrupts.DMAIRQ2, true)
	i.SetIRQ(interrupts.Timer0IRQ0, true)
	i.SetIRQ(interrupts.UART1IRQ, true)

	test.ExpectEquality(t, i.Iter(0), []interrupts.IRQ{
		interrupts.Timer0IRQ0, interrupts.DMAIRQ2, interrupts.UART1IRQ,
	})
}
