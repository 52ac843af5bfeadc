package pwm

import (
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/scheduler"
)

const (
	ChnCSR = 0x000
	ChnDiv = 0x004
	ChnCtr = 0x008
	ChnCC  = 0x00C
	ChnTop = 0x010

	regEN       = 0x0F0
	regIntr     = 0x0F4
	regIRQ0Inte = 0x0F8
	regIRQ0Intf = 0x0FC
	regIRQ0Ints = 0x100
	regIRQ1Inte = 0x104
	regIRQ1Intf = 0x108
	regIRQ1Ints = 0x10C

	channelStride = 0x014
	numChannels   = 12
)

// Pwm is the shared register block for all 12 channels.
type Pwm struct {
	interruptsMask   [2]uint16
	interruptsForced [2]uint16
	channels         [numChannels]Channel

	sched *scheduler.Scheduler
	ints  *interrupts.Interrupts
}

// New creates a Pwm with every channel disabled and DIV=1.0.
func New(sched *scheduler.Scheduler, ints *interrupts.Interrupts) *Pwm {
	p := &Pwm{sched: sched, ints: ints}
	for i := range p.channels {
		p.channels[i] = newChannel()
	}
	return p
}

func (p *Pwm) interruptRaw(isWrap0 bool) uint16 {
	var result uint16
	for i := range p.channels {
		on := p.channels[i].irqWrap1
		if isWrap0 {
			on = p.channels[i].irqWrap0
		}
		if on {
			result |= 1 << i
		}
	}
	return result
}

func (p *Pwm) enableStatus() uint32 {
	var result uint32
	for i := range p.channels {
		if p.channels[i].isEnabled() {
			result |= 1 << i
		}
	}
	return result
}

func (p *Pwm) updateInterrupt() {
	irq0 := (p.interruptRaw(true) & p.interruptsMask[0]) | p.interruptsForced[0]
	irq1 := (p.interruptRaw(false) & p.interruptsMask[1]) | p.interruptsForced[1]
	p.ints.SetIRQ(interrupts.PWMIRQWrap0, irq0 != 0)
	p.ints.SetIRQ(interrupts.PWMIRQWrap1, irq1 != 0)
}

func (p *Pwm) startChannel(i int) {
	if !p.channels[i].isEnabled() {
		return
	}
	p.sched.Schedule(scheduler.Ticks(p.channels[i].nextUpdate()), scheduler.Pwm(i), func() {
		p.channelUpdate(i)
	})
}

func (p *Pwm) channelUpdate(i int) {
	p.channels[i].advance()
	p.updateInterrupt()
	p.sched.Schedule(scheduler.Ticks(p.channels[i].nextUpdate()), scheduler.Pwm(i), func() {
		p.channelUpdate(i)
	})
}

func (p *Pwm) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch {
	case address <= 0x0EC:
		index := address / channelStride
		if int(index) >= numChannels {
			return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
		}
		ch := &p.channels[index]
		switch address % channelStride {
		case ChnCSR:
			return uint32(ch.csr), nil
		case ChnDiv:
			return uint32(ch.div), nil
		case ChnCtr:
			return uint32(ch.ctr), nil
		case ChnCC:
			return ch.cc, nil
		case ChnTop:
			return uint32(ch.top), nil
		default:
			return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
		}
	case address == regEN:
		return p.enableStatus(), nil
	case address == regIntr:
		return uint32(p.interruptRaw(true) | p.interruptRaw(false)), nil
	case address == regIRQ0Inte:
		return uint32(p.interruptsMask[0]), nil
	case address == regIRQ0Intf:
		return uint32(p.interruptsForced[0]), nil
	case address == regIRQ0Ints:
		return uint32((p.interruptRaw(true) & p.interruptsMask[0]) | p.interruptsForced[0]), nil
	case address == regIRQ1Inte:
		return uint32(p.interruptsMask[1]), nil
	case address == regIRQ1Intf:
		return uint32(p.interruptsForced[1]), nil
	case address == regIRQ1Ints:
		return uint32((p.interruptRaw(false) & p.interruptsMask[1]) | p.interruptsForced[1]), nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (p *Pwm) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch {
	case address <= 0x0EC:
		index := address / channelStride
		if int(index) >= numChannels {
			return peripherals.Error{Kind: peripherals.OutOfBounds}
		}
		ch := &p.channels[index]
		switch address % channelStride {
		case ChnCSR:
			ch.updateCSR(uint8(value))
		case ChnDiv:
			ch.div = uint16(value)
		case ChnCtr:
			ch.ctr = uint16(value)
		case ChnCC:
			ch.cc = value
		case ChnTop:
			ch.top = uint16(value)
		default:
			return peripherals.Error{Kind: peripherals.OutOfBounds}
		}
	case address == regEN:
		for i := 0; i < numChannels; i++ {
			if value&(1<<i) != 0 {
				p.channels[i].enable()
				p.startChannel(i)
			} else {
				p.channels[i].disable()
				p.sched.Cancel(scheduler.Pwm(i))
			}
		}
	case address == regIntr:
		for i := range p.channels {
			if value&(1<<i) != 0 {
				p.channels[i].clearInterrupt()
			}
		}
	case address == regIRQ0Inte:
		p.interruptsMask[0] = uint16(value) & 0x0FFF
	case address == regIRQ0Intf:
		p.interruptsForced[0] = uint16(value) & 0x0FFF
	case address == regIRQ1Inte:
		p.interruptsMask[1] = uint16(value) & 0x0FFF
	case address == regIRQ1Intf:
		p.interruptsForced[1] = uint16(value) & 0x0FFF
	case address == regIRQ0Ints, address == regIRQ1Ints:
		// read-only
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}

	p.updateInterrupt()
	return nil
}
