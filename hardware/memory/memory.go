// Package memory implements the flat, bounds-checked, little-endian backing
// store used for ROM, SRAM, and XIP flash regions.
package memory

import (
	"github.com/rp2350sim/core/errors"
)

// GenericMemory is a fixed-capacity byte array with little-endian 8/16/32
// bit accessors. There is no alignment requirement.
type GenericMemory struct {
	buf []byte
}

// New creates a GenericMemory with the given capacity, zero-initialised.
func New(capacity int) *GenericMemory {
	return &GenericMemory{buf: make([]byte, capacity)}
}

// NewFromBytes wraps an existing byte slice directly (not copied); its
// length becomes the memory's capacity.
func NewFromBytes(b []byte) *GenericMemory {
	return &GenericMemory{buf: b}
}

// Len returns the memory's capacity in bytes.
func (m *GenericMemory) Len() int { return len(m.buf) }

// Bytes exposes the underlying buffer directly, for bulk firmware loads.
func (m *GenericMemory) Bytes() []byte { return m.buf }

func (m *GenericMemory) bounds(offset uint32, size uint32) error {
	if uint64(offset)+uint64(size) > uint64(len(m.buf)) {
		return errors.Errorf(errors.MemoryOutOfBounds, offset, len(m.buf))
	}
	return nil
}

// ReadU8 reads a single byte at offset.
func (m *GenericMemory) ReadU8(offset uint32) (uint8, error) {
	if err := m.bounds(offset, 1); err != nil {
		return 0, err
	}
	return m.buf[offset], nil
}

// WriteU8 writes a single byte at offset.
func (m *GenericMemory) WriteU8(offset uint32, v uint8) error {
	if err := m.bounds(offset, 1); err != nil {
		return err
	}
	m.buf[offset] = v
	return nil
}

// ReadU16 reads a little-endian halfword at offset.
func (m *GenericMemory) ReadU16(offset uint32) (uint16, error) {
	if err := m.bounds(offset, 2); err != nil {
		return 0, err
	}
	return uint16(m.buf[offset]) | uint16(m.buf[offset+1])<<8, nil
}

// WriteU16 writes a little-endian halfword at offset.
func (m *GenericMemory) WriteU16(offset uint32, v uint16) error {
	if err := m.bounds(offset, 2); err != nil {
		return err
	}
	m.buf[offset] = byte(v)
	m.buf[offset+1] = byte(v >> 8)
	return nil
}

// ReadU32 reads a little-endian word at offset.
func (m *GenericMemory) ReadU32(offset uint32) (uint32, error) {
	if err := m.bounds(offset, 4); err != nil {
		return 0, err
	}
	return uint32(m.buf[offset]) |
		uint32(m.buf[offset+1])<<8 |
		uint32(m.buf[offset+2])<<16 |
		uint32(m.buf[offset+3])<<24, nil
}

// WriteSlice copies data into the buffer starting at offset, bounds-checked
// as a single span. Used by the firmware loader to copy a raw binary or a
// UF2 block's payload in one go rather than word at a time.
func (m *GenericMemory) WriteSlice(offset uint32, data []byte) error {
	if err := m.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.buf[offset:], data)
	return nil
}

// WriteU32 writes a little-endian word at offset.
func (m *GenericMemory) WriteU32(offset uint32, v uint32) error {
	if err := m.bounds(offset, 4); err != nil {
		return err
	}
	m.buf[offset] = byte(v)
	m.buf[offset+1] = byte(v >> 8)
	m.buf[offset+2] = byte(v >> 16)
	m.buf[offset+3] = byte(v >> 24)
	return nil
}
