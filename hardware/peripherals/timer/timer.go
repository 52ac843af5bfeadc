// Package timer implements the RP2350's APB Timer peripheral: a 64-bit
// free-running counter with 4 alarms and a selectable clock source.
package timer

import (
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/scheduler"
)

const (
	TimeHW    = 0x00
	TimeLW    = 0x04
	TimeHR    = 0x08
	TimeLR    = 0x0C
	Alarm0    = 0x10
	Alarm1    = 0x14
	Alarm2    = 0x18
	Alarm3    = 0x1C
	Armed     = 0x20
	TimeRawH  = 0x24
	TimeRawL  = 0x28
	DbgPause  = 0x2C
	Pause     = 0x30
	Locked    = 0x34
	Source    = 0x38
	Intr      = 0x3C
	Inte      = 0x40
	Intf      = 0x44
	Ints      = 0x48
)

// CountSource selects the clock that advances the counter.
type CountSource uint32

const (
	Source1MHz CountSource = 0
	SourceSys  CountSource = 1
)

type alarm struct {
	time        uint32
	armed       bool
	interrupting bool
}

// Timer is one of the two APB Timer instances (index 0 or 1), each of which
// owns 4 alarms and its own named IRQ lines.
type Timer struct {
	index   int
	counter uint64
	alarms  [4]alarm

	interruptMask  uint8
	interruptForce uint8
	paused         bool
	locked         bool
	source         CountSource

	sched *scheduler.Scheduler
	ints  *interrupts.Interrupts
}

// New creates timer index (0 or 1) and arms its first tick.
func New(index int, sched *scheduler.Scheduler, ints *interrupts.Interrupts) *Timer {
	t := &Timer{index: index, sched: sched, ints: ints}
	t.start()
	return t
}

func (t *Timer) nextDelay() scheduler.Delay {
	if t.source == SourceSys {
		return scheduler.Ticks(1)
	}
	return scheduler.Ticks(150)
}

func (t *Timer) start() {
	t.sched.Schedule(t.nextDelay(), scheduler.Timer(t.index), t.tick)
}

func (t *Timer) reschedule() {
	t.sched.Cancel(scheduler.Timer(t.index))
	t.start()
}

func (t *Timer) tick() {
	if !t.paused {
		t.counter++
		c := uint32(t.counter)
		for i := range t.alarms {
			if t.alarms[i].armed && c == t.alarms[i].time {
				t.alarms[i].interrupting = true
			}
		}
		t.updateInterrupts()
	}
	t.start()
}

func (t *Timer) interruptNum(alarmIndex int) interrupts.IRQ {
	base := interrupts.Timer0IRQ0
	if t.index == 1 {
		base = interrupts.Timer1IRQ0
	}
	return base + interrupts.IRQ(alarmIndex)
}

func (t *Timer) updateInterrupts() {
	for i := range t.alarms {
		t.ints.SetIRQ(t.interruptNum(i), t.alarms[i].interrupting)
	}
}

func (t *Timer) interruptRaw() uint8 {
	var raw uint8
	for i := range t.alarms {
		if t.alarms[i].interrupting {
			raw |= 1 << i
		}
	}
	return raw
}

func (t *Timer) interruptStatus() uint8 {
	var status uint8
	for i := range t.alarms {
		if t.alarms[i].armed && t.alarms[i].interrupting {
			status |= 1 << i
		}
	}
	return (status | t.interruptForce) & t.interruptMask
}

func (t *Timer) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch address & 0xFFF {
	case TimeHR, TimeRawH:
		return uint32(t.counter >> 32), nil
	case TimeLR, TimeRawL:
		return uint32(t.counter), nil
	case Alarm0:
		return t.alarms[0].time, nil
	case Alarm1:
		return t.alarms[1].time, nil
	case Alarm2:
		return t.alarms[2].time, nil
	case Alarm3:
		return t.alarms[3].time, nil
	case Armed:
		var armed uint32
		for i := range t.alarms {
			if t.alarms[i].armed {
				armed |= 1 << i
			}
		}
		return armed, nil
	case DbgPause:
		return 0, nil
	case Pause:
		return boolU32(t.paused), nil
	case Locked:
		return boolU32(t.locked), nil
	case Source:
		return uint32(t.source), nil
	case Intr:
		return uint32(t.interruptRaw()), nil
	case Inte:
		return uint32(t.interruptMask), nil
	case Intf:
		return uint32(t.interruptForce), nil
	case Ints:
		return uint32(t.interruptStatus()), nil
	case TimeHW, TimeLW:
		return 0, nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (t *Timer) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	if t.locked {
		return nil
	}

	switch address & 0xFFF {
	case TimeHW:
		t.counter = (t.counter & 0x00000000FFFFFFFF) | (uint64(value) << 32)
	case TimeLW:
		t.counter = (t.counter & 0xFFFFFFFF00000000) | uint64(value)
	case Alarm0:
		t.alarms[0].time = value
		t.alarms[0].armed = true
	case Alarm1:
		t.alarms[1].time = value
		t.alarms[1].armed = true
	case Alarm2:
		t.alarms[2].time = value
		t.alarms[2].armed = true
	case Alarm3:
		t.alarms[3].time = value
		t.alarms[3].armed = true
	case Armed:
		for i := range t.alarms {
			t.alarms[i].armed = value&(1<<i) != 0
		}
	case Pause:
		t.paused = value&1 != 0
	case Locked:
		t.locked = value&1 != 0
	case Source:
		t.source = CountSource(value)
		t.reschedule()
	case Intr:
		for i := range t.alarms {
			if value&(1<<i) != 0 {
				t.alarms[i].interrupting = false
			}
		}
	case Inte:
		t.interruptMask = uint8(value) & 0b1111
		t.updateInterrupts()
	case Intf:
		t.interruptForce = uint8(value) & 0b1111
		t.updateInterrupts()
	case DbgPause:
	case Ints, TimeRawH, TimeRawL, TimeHR, TimeLR:
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
