// Package random provides the injectable entropy source used by the TRNG
// peripheral (and anywhere else in the simulator that needs a random u32).
// Depending on a seam here, rather than calling math/rand directly, lets
// tests pin the stream (ZeroSeed) while production code still gets a
// genuinely varying sequence.
package random

import "math/rand"

// Clock is the minimal view of "now" that Random needs in order to let a
// caller ask for the same pseudo-random value again for the same tick
// (Rewindable) without that value depending on global mutable state.
type Clock interface {
	// Ticks returns the current monotonic tick count.
	Ticks() uint64
}

// Random is an injectable source of pseudo-random u32 values.
type Random struct {
	// ZeroSeed forces every derived seed to ignore the clock, producing a
	// fully deterministic sequence. Tests that need two independent Random
	// instances to agree bit-for-bit (e.g. comparing a rewound run against
	// a fresh one) set this to true.
	ZeroSeed bool

	clock Clock
	free  *rand.Rand
}

// NewRandom creates a Random bound to clock. If clock is nil, Rewindable
// behaves as though ZeroSeed were always true.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
		free:  rand.New(rand.NewSource(rand.Int63())),
	}
}

// Rewindable returns a pseudo-random u32 that is a pure function of the
// current clock tick and the caller-supplied index i. Calling it again at
// the same tick with the same i reproduces the same value; this is what
// makes it safe to use inside a peripheral whose register read may be
// issued more than once for the same tick (e.g. speculative re-reads), and
// what makes two independently-seeded simulators agree when ZeroSeed is set
// on both.
func (r *Random) Rewindable(i int) uint32 {
	var tick uint64
	if !r.ZeroSeed && r.clock != nil {
		tick = r.clock.Ticks()
	}

	seed1 := tick*2654435761 + uint64(i)
	seed2 := uint64(i)*0x9E3779B97F4A7C15 + 1

	src := rand.New(rand.NewSource(int64(seed1 ^ seed2)))
	return src.Uint32()
}

// Uint32 returns a freely-varying pseudo-random u32, not tied to the clock.
// This is what the default TRNG entropy source draws from in production.
func (r *Random) Uint32() uint32 {
	return r.free.Uint32()
}
