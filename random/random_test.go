package random_test

import (
	"testing"

	"github.com/rp2350sim/core/random"
	"github.com/rp2350sim/core/test"
)

type fixedClock struct {
	tick uint64
}

func (f fixedClock) Ticks() uint64 { return f.tick }

func TestRewindableIsDeterministic(t *testing.T) {
	a := random.NewRandom(fixedClock{tick: 42})
	b := random.NewRandom(fixedClock{tick: 42})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Rewindable(i), b.Rewindable(i))
	}
}

func TestRewindableVariesWithIndex(t *testing.T) {
	r := random.NewRandom(fixedClock{tick: 1})
	test.ExpectInequality(t, r.Rewindable(0), r.Rewindable(1))
}

func TestRewindableVariesWithTick(t *testing.T) {
	a := random.NewRandom(fixedClock{tick: 1})
	b := random.NewRandom(fixedClock{tick: 2})
	test.ExpectInequality(t, a.Rewindable(3), b.Rewindable(3))
}

func TestZeroSeedIgnoresClock(t *testing.T) {
	a := random.NewRandom(fixedClock{tick: 1})
	a.ZeroSeed = true
	b := random.NewRandom(fixedClock{tick: 999})
	b.ZeroSeed = true

	test.ExpectEquality(t, a.Rewindable(5), b.Rewindable(5))
}

func TestNilClockBehavesAsZeroSeed(t *testing.T) {
	a := random.NewRandom(nil)
	b := random.NewRandom(fixedClock{tick: 0})
	test.ExpectEquality(t, a.Rewindable(2), b.Rewindable(2))
}
