package soc_test

import (
	"testing"

	"github.com/rp2350sim/core/errors"
	"github.com/rp2350sim/core/hardware/bus"
	"github.com/rp2350sim/core/hardware/cpu/hazard3"
	"github.com/rp2350sim/core/hardware/inspector"
	"github.com/rp2350sim/core/hardware/soc"
	"github.com/rp2350sim/core/test"
)

func encI(opcode, funct3 uint32, rd, rs1 uint8, imm uint32) uint32 {
	return (imm&0xFFF)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

func encR(opcode, funct3, funct7 uint32, rd, rs1, rs2 uint8) uint32 {
	return funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

const ebreakWord = 0x00100073

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

// TestAddTwoSmallNumbers is the end-to-end scenario from the component
// design doc: ADDI x1,x0,5; ADDI x2,x0,7; ADD x3,x1,x2; EBREAK run on core
// 0, observed entirely through SoC.Tick.
func TestAddTwoSmallNumbers(t *testing.T) {
	rom := make([]byte, 16)
	putU32(rom, 0, encI(0b0010011, 0, 1, 0, 5))
	putU32(rom, 4, encI(0b0010011, 0, 2, 0, 7))
	putU32(rom, 8, encR(0b0110011, 0, 0, 3, 1, 2))
	putU32(rom, 12, ebreakWord)

	var events []inspector.Event
	s := soc.New(soc.Options{
		BootROM:   rom,
		Inspector: inspector.Func(func(e inspector.Event) { events = append(events, e) }),
	})

	for i := 0; i < 5; i++ {
		s.Tick()
	}

	test.ExpectEquality(t, s.Core0.Regs.Read(3), uint32(12))

	last := events[len(events)-1]
	exc, ok := last.(inspector.Exception)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, exc.Cause, errors.BreakPoint)
}

func TestFlashBinRejectsOversizedImage(t *testing.T) {
	s := soc.New(soc.Options{})
	huge := make([]byte, 4*1024*1024+1)

	err := s.FlashBin(huge)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, errors.Is(err, errors.FileTooLarge), true)
}

func TestFlashBinCopiesToXIPBase(t *testing.T) {
	s := soc.New(soc.Options{})
	image := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	test.ExpectSuccess(t, s.FlashBin(image))

	v, err := s.Bus.XIP.ReadU32(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xEFBEADDE))
}

func makeUF2Block(targetAddr uint32, payload []byte, familyID uint32, withFamily bool) []byte {
	b := make([]byte, 512)
	putU32(b, 0, 0x0A324655)
	putU32(b, 4, 0x9E5D5157)
	putU32(b, 508, 0x0AB16F30)

	flags := uint32(0)
	if withFamily {
		flags |= 0x2000
	}
	putU32(b, 8, flags)
	putU32(b, 12, targetAddr)
	putU32(b, 16, uint32(len(payload)))
	putU32(b, 20, 0)
	putU32(b, 24, 1)
	if withFamily {
		putU32(b, 28, familyID)
	}
	copy(b[32:], payload)
	return b
}

func TestFlashUF2WritesBlockAtTargetOffset(t *testing.T) {
	s := soc.New(soc.Options{})
	payload := []byte("firmware")
	data := makeUF2Block(bus.RegionXIP+0x40, payload, 0xe48bff5a, true)

	test.ExpectSuccess(t, s.FlashUF2(data))

	got := make([]byte, len(payload))
	for i := range got {
		v, err := s.Bus.XIP.ReadU8(0x40 + uint32(i))
		test.ExpectSuccess(t, err)
		got[i] = v
	}
	test.ExpectEquality(t, got, payload)
}

// Flashing a UF2 image twice must yield identical flash contents.
func TestFlashUF2IsIdempotent(t *testing.T) {
	s := soc.New(soc.Options{})
	data := makeUF2Block(bus.RegionXIP+0x100, []byte("abc"), 0xe48bff5a, true)

	test.ExpectSuccess(t, s.FlashUF2(data))
	first, _ := s.Bus.XIP.ReadU32(0x100)

	test.ExpectSuccess(t, s.FlashUF2(data))
	second, _ := s.Bus.XIP.ReadU32(0x100)

	test.ExpectEquality(t, first, second)
}

func TestFlashUF2SkipsBlockWithNoFamilyID(t *testing.T) {
	s := soc.New(soc.Options{})
	data := makeUF2Block(bus.RegionXIP+0x200, []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0, false)

	test.ExpectSuccess(t, s.FlashUF2(data))

	v, err := s.Bus.XIP.ReadU32(0x200)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))
}

func TestResetYieldsIndependentInstance(t *testing.T) {
	s1 := soc.New(soc.Options{})
	test.ExpectSuccess(t, s1.FlashBin([]byte{1, 2, 3, 4}))

	s2 := soc.Reset(soc.Options{})

	v1, _ := s1.Bus.XIP.ReadU32(0)
	v2, _ := s2.Bus.XIP.ReadU32(0)
	test.ExpectEquality(t, v1, uint32(0x04030201))
	test.ExpectEquality(t, v2, uint32(0))
}

func TestCore1StartsAsleepOnConstruction(t *testing.T) {
	s := soc.New(soc.Options{})
	test.ExpectEquality(t, s.Core1.State, hazard3.StateWfi)
}
