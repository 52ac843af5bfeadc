// Package bus implements the RP2350 address decode, multi-requestor
// arbitration, exclusive monitor, and latency accounting described by the
// simulator's memory model: every load or store is a deferred operation
// that completes some number of ticks after it is issued.
package bus

import (
	"github.com/rp2350sim/core/errors"
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/hardware/memory"
	"github.com/rp2350sim/core/hardware/peripherals"
)

// Region base addresses, decoded from bits 31:28 of the address.
const (
	RegionROM   uint32 = 0x0000_0000
	RegionXIP   uint32 = 0x1000_0000
	RegionSRAM  uint32 = 0x2000_0000
	RegionAPB   uint32 = 0x4000_0000
	RegionAHB   uint32 = 0x5000_0000
	RegionSIO   uint32 = 0xD000_0000
	RegionM33   uint32 = 0xE000_0000
)

const (
	romSize  = 32 * common.KB
	sramSize = 520 * common.KB
	xipSize  = 64 * common.MB
)

// AccessContext carries everything the bus needs to know about a single
// load or store beyond the address and value.
type AccessContext struct {
	Secure       bool
	Requestor    common.Requestor
	Size         common.Size
	Signed       bool
	Exclusive    bool
	Architecture common.Architecture
}

// DefaultAccessContext is the context used by fetch() and other
// convenience paths that don't care about exclusivity or signedness.
func DefaultAccessContext() AccessContext {
	return AccessContext{Secure: true, Requestor: common.Proc0, Size: common.SizeWord, Architecture: common.Hazard3}
}

// LoadState is the lifecycle of a deferred load.
type LoadState int

const (
	LoadWaiting LoadState = iota
	LoadDone
	LoadExclusiveDone
	LoadFailed
)

// LoadStatus is the shared cell a requestor polls after issuing Load.
type LoadStatus struct {
	State LoadState
	Value uint32
	Err   error
}

// StoreState is the lifecycle of a deferred store.
type StoreState int

const (
	StoreWaiting StoreState = iota
	StoreDone
	StoreExclusiveDone
	StoreFailed
)

// StoreStatus is the shared cell a requestor polls after issuing Store.
type StoreStatus struct {
	State StoreState
	Err   error
}

type pendingLoad struct {
	address    uint32
	waitCycles int
	ctx        AccessContext
	status     *LoadStatus
}

type pendingStore struct {
	address    uint32
	value      uint32
	waitCycles int
	ctx        AccessContext
	status     *StoreStatus
}

// Bus is the memory and peripheral fabric shared by both cores and the DMA
// engine.
type Bus struct {
	ROM  *memory.GenericMemory
	SRAM *memory.GenericMemory
	XIP  *memory.GenericMemory

	SIO        peripherals.Peripheral
	Registry   *peripherals.Registry

	core0Access *pendingLoad
	core1Access *pendingLoad
	dmaAccess   *pendingLoad

	core0Store *pendingStore
	core1Store *pendingStore
	dmaStore   *pendingStore

	core0Exclusive *uint32
	core1Exclusive *uint32
	dmaExclusive   *uint32
}

// New creates a Bus with freshly-sized ROM, SRAM and XIP regions and an
// empty peripheral registry. Callers typically replace registry fields and
// Bus.SIO with concrete peripheral models before first use.
func New() *Bus {
	return &Bus{
		ROM:      memory.New(romSize),
		SRAM:     memory.New(sramSize),
		XIP:      memory.New(xipSize),
		Registry: peripherals.NewRegistry(),
	}
}

func regionOf(address uint32) uint32 {
	return address & 0xF000_0000
}

func cyclesFor(address uint32) (read, write int) {
	switch regionOf(address) {
	case RegionROM, RegionSRAM, RegionSIO, RegionXIP:
		return 1, 1
	default:
		return 3, 4
	}
}

// Fetch is a synchronous 32-bit read used by the instruction decoder. Only
// ROM, SRAM and XIP are fetchable; anything else is a BusFault.
func (b *Bus) Fetch(address uint32) (uint32, error) {
	switch regionOf(address) {
	case RegionROM, RegionSRAM, RegionXIP:
	default:
		return 0, errors.Errorf(errors.BusFault, address)
	}
	return b.readU32(address, DefaultAccessContext())
}

// Load issues a deferred load for the given requestor, returning a status
// cell the caller should poll after subsequent Tick calls.
func (b *Bus) Load(address uint32, ctx AccessContext) (*LoadStatus, error) {
	if err := b.checkAddress(address, ctx); err != nil {
		return nil, err
	}

	readCycles, _ := cyclesFor(address)
	status := &LoadStatus{State: LoadWaiting}
	pending := &pendingLoad{address: address, waitCycles: readCycles, ctx: ctx, status: status}

	switch ctx.Requestor {
	case common.Proc0:
		b.core0Access = pending
	case common.Proc1:
		b.core1Access = pending
	default:
		b.dmaAccess = pending
	}

	return status, nil
}

// Store issues a deferred store for the given requestor, returning a status
// cell the caller should poll after subsequent Tick calls.
func (b *Bus) Store(address uint32, value uint32, ctx AccessContext) (*StoreStatus, error) {
	if err := b.checkAddress(address, ctx); err != nil {
		return nil, err
	}

	_, writeCycles := cyclesFor(address)
	status := &StoreStatus{State: StoreWaiting}
	pending := &pendingStore{address: address, value: value, waitCycles: writeCycles, ctx: ctx, status: status}

	switch ctx.Requestor {
	case common.Proc0:
		b.core0Store = pending
	case common.Proc1:
		b.core1Store = pending
	default:
		b.dmaStore = pending
	}

	return status, nil
}

func (b *Bus) checkAddress(address uint32, ctx AccessContext) error {
	if ctx.Exclusive && regionOf(address) != RegionSRAM {
		return errors.Errorf(errors.ExclusiveNotSRAM, address)
	}

	switch regionOf(address) {
	case RegionROM, RegionSRAM, RegionXIP:
		return nil
	}

	if _, err := b.peripheralFor(address, ctx); err != nil {
		return errors.Errorf(errors.BusFault, address)
	}
	return nil
}

// Tick advances every outstanding access by one cycle, completing any whose
// wait has elapsed. Loads and stores for the same requestor never overlap
// in this model: a requestor issues at most one of each at a time.
func (b *Bus) Tick() {
	if b.core0Access != nil {
		b.core0Access = b.stepLoad(b.core0Access)
	}
	if b.core1Access != nil {
		b.core1Access = b.stepLoad(b.core1Access)
	}
	if b.dmaAccess != nil {
		b.dmaAccess = b.stepLoad(b.dmaAccess)
	}
	if b.core0Store != nil {
		b.core0Store = b.stepStore(b.core0Store)
	}
	if b.core1Store != nil {
		b.core1Store = b.stepStore(b.core1Store)
	}
	if b.dmaStore != nil {
		b.dmaStore = b.stepStore(b.dmaStore)
	}
}

func (b *Bus) stepLoad(p *pendingLoad) *pendingLoad {
	if p.waitCycles > 1 {
		p.waitCycles--
		return p
	}

	var value uint32
	var err error

	switch p.ctx.Size {
	case common.SizeByte:
		var v uint8
		v, err = b.readU8(p.address, p.ctx)
		value = uint32(v)
		if err == nil && p.ctx.Signed {
			value = common.SignExtend(value, 7)
		}
	case common.SizeHalf:
		var v uint16
		v, err = b.readU16(p.address, p.ctx)
		value = uint32(v)
		if err == nil && p.ctx.Signed {
			value = common.SignExtend(value, 15)
		}
	default:
		value, err = b.readU32(p.address, p.ctx)
	}

	switch {
	case err == nil && p.ctx.Exclusive:
		p.status.State = LoadExclusiveDone
		p.status.Value = value
	case err == nil:
		p.status.State = LoadDone
		p.status.Value = value
	case errors.Is(err, errors.ConcurrentAccess):
		return p // retry next tick, state stays Waiting
	default:
		p.status.State = LoadFailed
		p.status.Err = errors.Errorf(errors.LoadError, p.address)
	}

	return nil
}

func (b *Bus) stepStore(p *pendingStore) *pendingStore {
	if p.waitCycles > 1 {
		p.waitCycles--
		return p
	}

	var err error
	switch p.ctx.Size {
	case common.SizeByte:
		err = b.writeU8(p.address, p.value, p.ctx)
	case common.SizeHalf:
		err = b.writeU16(p.address, p.value, p.ctx)
	default:
		err = b.writeU32(p.address, p.value, p.ctx)
	}

	switch {
	case err == nil && p.ctx.Exclusive:
		p.status.State = StoreExclusiveDone
	case err == nil:
		p.status.State = StoreDone
	case errors.Is(err, errors.ConcurrentAccess):
		return p
	default:
		p.status.State = StoreFailed
		p.status.Err = errors.Errorf(errors.StoreError, p.address)
	}

	return nil
}

func (b *Bus) isAddressFree(address uint32, ctx AccessContext) bool {
	held := func(reserved *uint32) bool { return reserved != nil && *reserved == address }

	switch ctx.Requestor {
	case common.Proc0:
		return !held(b.core1Exclusive) && !held(b.dmaExclusive)
	case common.Proc1:
		return !held(b.core0Exclusive) && !held(b.dmaExclusive)
	default:
		return !held(b.core0Exclusive) && !held(b.core1Exclusive)
	}
}

func (b *Bus) reservationFor(requestor common.Requestor) **uint32 {
	switch requestor {
	case common.Proc0:
		return &b.core0Exclusive
	case common.Proc1:
		return &b.core1Exclusive
	default:
		return &b.dmaExclusive
	}
}

func (b *Bus) readU32(address uint32, ctx AccessContext) (uint32, error) {
	if !b.isAddressFree(address, ctx) {
		return 0, errors.Errorf(errors.ConcurrentAccess, address)
	}
	if ctx.Exclusive {
		a := address
		*b.reservationFor(ctx.Requestor) = &a
	}

	switch regionOf(address) {
	case RegionROM:
		return b.ROM.ReadU32(address)
	case RegionSRAM:
		return b.SRAM.ReadU32(address - RegionSRAM)
	case RegionXIP:
		return b.XIP.ReadU32(address - RegionXIP)
	default:
		p, err := b.peripheralFor(address, ctx)
		if err != nil {
			return 0, errors.Errorf(errors.BusFault, address)
		}
		v, err := p.Read(uint16(address&0x0FFF), peripheralCtx(ctx))
		if err != nil {
			return 0, errors.Errorf(errors.BusFault, address)
		}
		return v, nil
	}
}

func (b *Bus) writeU32(address uint32, value uint32, ctx AccessContext) error {
	if !b.isAddressFree(address, ctx) {
		return errors.Errorf(errors.ConcurrentAccess, address)
	}
	if ctx.Exclusive {
		*b.reservationFor(ctx.Requestor) = nil
	}

	switch regionOf(address) {
	case RegionROM:
		return b.ROM.WriteU32(address, value)
	case RegionSRAM:
		return b.SRAM.WriteU32(address-RegionSRAM, value)
	case RegionXIP:
		return b.XIP.WriteU32(address-RegionXIP, value)
	default:
		p, err := b.peripheralFor(address, ctx)
		if err != nil {
			return errors.Errorf(errors.BusFault, address)
		}

		if regionOf(address) == RegionSIO {
			// SIO bypasses the atomic alias decoder entirely.
			if err := p.WriteRaw(uint16(address), value, peripheralCtx(ctx)); err != nil {
				return errors.Errorf(errors.BusFault, address)
			}
			return nil
		}

		if err := peripherals.Write(p, uint16(address), value, peripheralCtx(ctx)); err != nil {
			return errors.Errorf(errors.BusFault, address)
		}
		return nil
	}
}

func (b *Bus) readU16(address uint32, ctx AccessContext) (uint16, error) {
	switch regionOf(address) {
	case RegionROM:
		return b.ROM.ReadU16(address)
	case RegionSRAM:
		return b.SRAM.ReadU16(address - RegionSRAM)
	case RegionXIP:
		return b.XIP.ReadU16(address - RegionXIP)
	default:
		value, err := b.readU32(address&^0b11, ctx)
		if err != nil {
			return 0, err
		}
		if address&0b11 == 0 {
			return uint16(value), nil
		}
		return uint16(value >> 16), nil
	}
}

func (b *Bus) writeU16(address uint32, value uint32, ctx AccessContext) error {
	switch regionOf(address) {
	case RegionROM:
		return b.ROM.WriteU16(address, uint16(value))
	case RegionSRAM:
		return b.SRAM.WriteU16(address-RegionSRAM, uint16(value))
	case RegionXIP:
		return b.XIP.WriteU16(address-RegionXIP, uint16(value))
	default:
		// Peripheral registers don't support native narrow writes: read the
		// enclosing word, overlay the new halfword at its byte offset, and
		// write the merged word back.
		wordAddr := address &^ 0b11
		existing, err := b.readU32(wordAddr, ctx)
		if err != nil {
			return err
		}

		shift := uint(8 * (address & 0b11))
		merged := (existing &^ (0x0000_FFFF << shift)) | ((value & 0xFFFF) << shift)
		return b.writeU32(wordAddr, merged, ctx)
	}
}

func (b *Bus) readU8(address uint32, ctx AccessContext) (uint8, error) {
	switch regionOf(address) {
	case RegionROM:
		return b.ROM.ReadU8(address)
	case RegionSRAM:
		return b.SRAM.ReadU8(address - RegionSRAM)
	case RegionXIP:
		return b.XIP.ReadU8(address - RegionXIP)
	default:
		value, err := b.readU32(address&^0b11, ctx)
		if err != nil {
			return 0, err
		}
		return byte(value >> (8 * (address & 0b11))), nil
	}
}

func (b *Bus) writeU8(address uint32, value uint32, ctx AccessContext) error {
	switch regionOf(address) {
	case RegionROM:
		return b.ROM.WriteU8(address, uint8(value))
	case RegionSRAM:
		return b.SRAM.WriteU8(address-RegionSRAM, uint8(value))
	case RegionXIP:
		return b.XIP.WriteU8(address-RegionXIP, uint8(value))
	default:
		wordAddr := address &^ 0b11
		existing, err := b.readU32(wordAddr, ctx)
		if err != nil {
			return err
		}

		shift := uint(8 * (address & 0b11))
		merged := (existing &^ (0xFF << shift)) | ((value & 0xFF) << shift)
		return b.writeU32(wordAddr, merged, ctx)
	}
}

func peripheralCtx(ctx AccessContext) peripherals.AccessContext {
	return peripherals.AccessContext{Secure: ctx.Secure, Requestor: ctx.Requestor}
}

type notMapped struct{}

func (notMapped) Error() string { return "bus: address not mapped" }

// peripheralFor resolves address to a concrete peripheral. ROM/SRAM/XIP
// never reach here; callers guard against that region first.
func (b *Bus) peripheralFor(address uint32, ctx AccessContext) (peripherals.Peripheral, error) {
	switch regionOf(address) {
	case RegionAPB:
		p, ok := b.Registry.LookupAPB(address & 0x0FFF_F000)
		if !ok {
			return nil, notMapped{}
		}
		return p, nil
	case RegionAHB:
		p, ok := b.Registry.LookupAHB(address & 0x0FFF_F000)
		if !ok {
			return nil, notMapped{}
		}
		return p, nil
	case RegionSIO:
		if !ctx.Requestor.IsProc() {
			return nil, notMapped{}
		}
		if b.SIO == nil {
			return nil, notMapped{}
		}
		return b.SIO, nil
	default:
		return nil, notMapped{}
	}
}
