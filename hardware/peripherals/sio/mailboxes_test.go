package sio

import "testing"

import (
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/test"
)

func TestMailboxStateReflectsAvailability(t *testing.T) {
	m := &mailboxes{}

	// nothing written yet on either FIFO: proc0 can't read, but can write (not full)
	st := m.state(common.Proc0)
	test.ExpectEquality(t, st&0x1, uint32(0)) // VLD (read side) is the 1->0 fifo, empty

	m.write(42, common.Proc1) // fills the 1->0 fifo proc0 reads from
	st = m.state(common.Proc0)
	test.ExpectEquality(t, st&0x1, uint32(1))
}

func TestMailboxRoundTrip(t *testing.T) {
	m := &mailboxes{}

	m.write(7, common.Proc0) // proc0 writes the 0->1 fifo
	v := m.read(common.Proc1)
	test.ExpectEquality(t, v, uint32(7))
}

func TestMailboxReadOnEmptySetsStickyROE(t *testing.T) {
	m := &mailboxes{}

	v := m.read(common.Proc0)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectEquality(t, m.roe[0], true)

	m.clearROE(common.Proc0)
	test.ExpectEquality(t, m.roe[0], false)
}

func TestMailboxWriteOnFullSetsStickyWOF(t *testing.T) {
	m := &mailboxes{}

	for i := 0; i < 8; i++ {
		m.write(uint32(i), common.Proc0)
	}
	m.write(99, common.Proc0)
	test.ExpectEquality(t, m.wof[0], true)

	m.clearWOF(common.Proc0)
	test.ExpectEquality(t, m.wof[0], false)
}
