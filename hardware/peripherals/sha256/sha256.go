// Package sha256 implements the RP2350's streaming SHA256 accelerator:
// words written to WDATA feed a running digest, and after a full 64-byte
// block the peripheral "computes" for 57 ticks before SUM0..7 become valid.
//
// The digest itself is computed with the standard library's crypto/sha256;
// there is no domain reason to prefer a third-party hash implementation
// over it, and the reference implementation this is ported from uses its
// own ecosystem's equivalent standard hashing crate for the same reason.
package sha256

import (
	"crypto/sha256"
	"hash"

	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/scheduler"
)

const (
	CSR  = 0x0000
	WDATA = 0x0004
	SUM0 = 0x0008
	SUM1 = 0x000C
	SUM2 = 0x0010
	SUM3 = 0x0014
	SUM4 = 0x0018
	SUM5 = 0x001C
	SUM6 = 0x0020
	SUM7 = 0x0024
)

const (
	csrStart          = 1 << 0
	csrErrWdataNotRdy = 1 << 4
	csrBswap          = 1 << 12
)

// Sha256 is the accelerator's register-level state.
type Sha256 struct {
	bswap          bool
	dmaSize        uint8
	errWdataNotRdy bool
	sumVld         bool
	wdataRdy       bool
	sum          [32]byte
	writtenCount uint8

	core hash.Hash

	sched *scheduler.Scheduler
}

// New creates a Sha256 accelerator, ready to accept its first block.
func New(sched *scheduler.Scheduler) *Sha256 {
	return &Sha256{
		bswap:    true,
		dmaSize:  2,
		sumVld:   true,
		wdataRdy: true,
		sched:    sched,
		core:     sha256.New(),
	}
}

func (s *Sha256) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch address & 0xFFF {
	case CSR:
		var v uint32
		if s.wdataRdy {
			v |= 1 << 1
		}
		if s.sumVld {
			v |= 1 << 2
		}
		if s.errWdataNotRdy {
			v |= 1 << 4
		}
		v |= uint32(s.dmaSize) << 8
		if s.bswap {
			v |= csrBswap
		}
		return v, nil
	case WDATA:
		return 0, nil
	case SUM0, SUM1, SUM2, SUM3, SUM4, SUM5, SUM6, SUM7:
		if !s.sumVld {
			return 0, nil
		}
		index := (address - SUM0) / 4
		b := s.sum[index*4 : index*4+4]
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (s *Sha256) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch address & 0xFFF {
	case CSR:
		if value&csrStart != 0 {
			s.wdataRdy = true
			s.sumVld = true
		}
		if value&csrErrWdataNotRdy != 0 {
			s.errWdataNotRdy = false
		}
		s.dmaSize = uint8((value >> 8) & 0b11)
		s.bswap = value&csrBswap != 0

	case WDATA:
		if !s.wdataRdy {
			s.errWdataNotRdy = true
			return nil
		}

		var bytes [4]byte
		if s.bswap {
			bytes = [4]byte{byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value)}
		} else {
			bytes = [4]byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)}
		}

		s.core.Write(bytes[:])
		s.writtenCount += 4
		s.sumVld = false

		if s.writtenCount < 64 {
			return nil
		}

		s.wdataRdy = false
		s.sched.Schedule(scheduler.Ticks(57), scheduler.Sha256(), func() {
			sum := s.core.Sum(nil)
			copy(s.sum[:], sum)
			s.sumVld = true
			s.writtenCount = 0
			s.core.Reset()
		})

	case SUM0, SUM1, SUM2, SUM3, SUM4, SUM5, SUM6, SUM7:
		// read-only
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}
