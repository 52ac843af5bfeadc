package sio

import "github.com/rp2350sim/core/hardware/common"

// mailboxes implements the two 8-deep inter-core FIFOs (proc0->proc1 and
// proc1->proc0) with sticky read-on-empty / write-on-full error flags.
type mailboxes struct {
	data [2]fifo8
	roe  [2]bool
	wof  [2]bool
}

// state returns FIFO_ST for the given requestor: bit0 VLD (data available to
// read), bit1 RDY (space available to write), bit2 WOF, bit3 ROE.
func (m *mailboxes) state(requestor common.Requestor) uint32 {
	index := 0
	if requestor == common.Proc1 {
		index = 1
	}

	vld := boolBit(!m.data[1-index].isEmpty())
	rdy := boolBit(!m.data[index].isFull())
	wof := boolBit(m.wof[index])
	roe := boolBit(m.roe[index])

	return vld | (rdy << 1) | (wof << 2) | (roe << 3)
}

// read returns core 0's view of the 1->0 FIFO and core 1's view of the 0->1
// FIFO.
func (m *mailboxes) read(requestor common.Requestor) uint32 {
	index, roeIndex := 0, 0
	if requestor == common.Proc0 {
		index, roeIndex = 1, 0
	} else {
		index, roeIndex = 0, 1
	}

	if v, ok := m.data[index].pop(); ok {
		return v
	}
	m.roe[roeIndex] = true
	return 0
}

func (m *mailboxes) write(value uint32, requestor common.Requestor) {
	index := 0
	if requestor == common.Proc1 {
		index = 1
	}

	if !m.data[index].push(value) {
		m.wof[index] = true
	}
}

func (m *mailboxes) clearROE(requestor common.Requestor) {
	switch requestor {
	case common.Proc0:
		m.roe[0] = false
	case common.Proc1:
		m.roe[1] = false
	}
}

func (m *mailboxes) clearWOF(requestor common.Requestor) {
	switch requestor {
	case common.Proc0:
		m.wof[0] = false
	case common.Proc1:
		m.wof[1] = false
	}
}
