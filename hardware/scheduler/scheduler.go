package scheduler

import (
	"math"
	"time"
)

// Tick is the simulator's monotonic tick counter.
type Tick uint64

// Delay is a number of ticks to wait before an event fires. It can be built
// from an exact tick count or from a wall-clock Duration, which is
// converted at a 150 MHz base and rounded up.
type Delay struct {
	ticks uint64
}

// Ticks builds a Delay from an exact tick count.
func Ticks(n uint64) Delay { return Delay{ticks: n} }

// FromDuration builds a Delay by converting d to ticks at a 150 MHz base,
// rounding up so that the event never fires early.
func FromDuration(d time.Duration) Delay {
	const base = 1.0 / 150_000_000.0
	n := math.Ceil(d.Seconds() / base)
	if n < 0 {
		n = 0
	}
	return Delay{ticks: uint64(n)}
}

type entry struct {
	at  Tick
	seq uint64
	typ Kind
	fn  func()
}

// Scheduler is the ordered multimap of activation_tick -> (kind, closure)
// described by the module it implements. It is not safe for concurrent use;
// the simulator is single-threaded by design.
type Scheduler struct {
	now     Tick
	nextSeq uint64
	events  []entry
}

// New creates an empty Scheduler at tick 0.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current tick count. Scheduler implements random.Clock via
// this method under the name Ticks; Now is the more natural name to call
// from inside the simulator itself.
func (s *Scheduler) Now() Tick { return s.now }

// Ticks implements random.Clock.
func (s *Scheduler) Ticks() uint64 { return uint64(s.now) }

// Schedule arranges for fn to run once activation_tick (now + delay) is
// reached. If an event of the same kind is already outstanding, it is
// cancelled first: at most one event per kind may be outstanding at a time.
// It returns the activation tick, which combined with kind can be used to
// reason about ordering.
func (s *Scheduler) Schedule(delay Delay, kind Kind, fn func()) Tick {
	s.Cancel(kind)

	at := s.now + Tick(delay.ticks)
	s.events = append(s.events, entry{
		at:  at,
		seq: s.nextSeq,
		typ: kind,
		fn:  fn,
	})
	s.nextSeq++

	return at
}

// Cancel removes any outstanding event of the given kind. It is a no-op if
// none is scheduled.
func (s *Scheduler) Cancel(kind Kind) {
	for i, e := range s.events {
		if e.typ == kind {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

// IsScheduled reports whether an event of the given kind is currently
// outstanding.
func (s *Scheduler) IsScheduled(kind Kind) bool {
	for _, e := range s.events {
		if e.typ == kind {
			return true
		}
	}
	return false
}

// Tick advances now by one and then repeatedly pops and invokes every event
// whose activation tick has been reached, in ascending activation-tick
// order with ties broken by scheduling order (FIFO). A closure that
// schedules a new event at the current tick does not see it run on this
// call: the new event's activation tick is compared against now as it
// stands when Tick next begins, so anything scheduled with a zero delay
// fires on the following Tick, never the current one.
func (s *Scheduler) Tick() {
	s.now++
	limit := s.nextSeq

	for {
		idx := -1
		for i, e := range s.events {
			if e.at > s.now || e.seq >= limit {
				continue
			}
			if idx == -1 || e.at < s.events[idx].at || (e.at == s.events[idx].at && e.seq < s.events[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			return
		}

		e := s.events[idx]
		s.events = append(s.events[:idx], s.events[idx+1:]...)
		e.fn()
	}
}
