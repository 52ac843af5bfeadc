package memory_test

import (
	"testing"

	"github.com/rp2350sim/core/errors"
	"github.com/rp2350sim/core/hardware/memory"
	"github.com/rp2350sim/core/test"
)

func TestReadWriteRoundTrip(t *testing.T) {
	m := memory.New(16)

	test.ExpectSuccess(t, m.WriteU32(0, 0xDEADBEEF))
	v, err := m.ReadU32(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xDEADBEEF))

	test.ExpectSuccess(t, m.WriteU16(4, 0xABCD))
	v16, err := m.ReadU16(4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v16, uint16(0xABCD))

	test.ExpectSuccess(t, m.WriteU8(6, 0x7F))
	v8, err := m.ReadU8(6)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v8, uint8(0x7F))
}

func TestLittleEndianByteOrder(t *testing.T) {
	m := memory.New(4)
	test.ExpectSuccess(t, m.WriteU32(0, 0x04030201))

	b0, _ := m.ReadU8(0)
	b1, _ := m.ReadU8(1)
	b2, _ := m.ReadU8(2)
	b3, _ := m.ReadU8(3)

	test.ExpectEquality(t, []uint8{b0, b1, b2, b3}, []uint8{0x01, 0x02, 0x03, 0x04})
}

func TestOutOfBoundsIsCuratedMemoryError(t *testing.T) {
	m := memory.New(4)

	_, err := m.ReadU32(2)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, errors.Is(err, errors.MemoryOutOfBounds), true)

	err = m.WriteU8(4, 1)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, errors.Is(err, errors.MemoryOutOfBounds), true)
}

func TestNewFromBytesWrapsWithoutCopy(t *testing.T) {
	b := make([]byte, 4)
	m := memory.NewFromBytes(b)
	test.ExpectSuccess(t, m.WriteU8(0, 0x42))
	test.ExpectEquality(t, b[0], byte(0x42))
}

func TestWriteSliceCopiesSpan(t *testing.T) {
	m := memory.New(8)
	test.ExpectSuccess(t, m.WriteSlice(2, []byte{0xAA, 0xBB, 0xCC}))

	v0, _ := m.ReadU8(2)
	v1, _ := m.ReadU8(3)
	v2, _ := m.ReadU8(4)
	test.ExpectEquality(t, []uint8{v0, v1, v2}, []uint8{0xAA, 0xBB, 0xCC})

	err := m.WriteSlice(6, []byte{1, 2, 3})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, errors.Is(err, errors.MemoryOutOfBounds), true)
}
