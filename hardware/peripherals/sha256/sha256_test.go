package sha256_test

import (
	"crypto/sha256"
	"testing"

	"github.com/rp2350sim/core/hardware/peripherals"
	sha "github.com/rp2350sim/core/hardware/peripherals/sha256"
	"github.com/rp2350sim/core/hardware/scheduler"
	"github.com/rp2350sim/core/test"
)

func TestFullBlockComputesAfter57Ticks(t *testing.T) {
	sched := scheduler.New()
	s := sha.New(sched)
	ctx := peripherals.AccessContext{}

	test.ExpectSuccess(t, s.WriteRaw(sha.CSR, 1|1<<12, ctx)) // start, keep bswap set

	var block [64]byte
	for i := range block {
		block[i] = byte(i)
	}
	for i := 0; i < 16; i++ {
		word := uint32(block[i*4])<<24 | uint32(block[i*4+1])<<16 | uint32(block[i*4+2])<<8 | uint32(block[i*4+3])
		test.ExpectSuccess(t, s.WriteRaw(sha.WDATA, word, ctx))
	}

	v, _ := s.Read(sha.CSR, ctx)
	test.ExpectEquality(t, v&(1<<2), uint32(0)) // sum not valid yet

	for i := 0; i < 57; i++ {
		sched.Tick()
	}

	v, _ = s.Read(sha.CSR, ctx)
	test.ExpectEquality(t, v&(1<<2) != 0, true)

	expected := sha256.Sum256(block[:])
	sum0, _ := s.Read(sha.SUM0, ctx)
	expectedSum0 := uint32(expected[0]) | uint32(expected[1])<<8 | uint32(expected[2])<<16 | uint32(expected[3])<<24
	test.ExpectEquality(t, sum0, expectedSum0)
}
