package bus_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/bus"
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/test"
)

func TestFetchFromSRAM(t *testing.T) {
	b := bus.New()
	ctx := bus.DefaultAccessContext()
	ctx.Requestor = common.Proc0

	status, err := b.Store(bus.RegionSRAM, 0x1234_5678, ctx)
	test.ExpectSuccess(t, err)
	b.Tick()
	test.ExpectEquality(t, status.State, bus.StoreDone)

	v, err := b.Fetch(bus.RegionSRAM)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x1234_5678))
}

func TestFetchOutsideFetchableRegionsFaults(t *testing.T) {
	b := bus.New()
	_, err := b.Fetch(bus.RegionAPB)
	test.ExpectFailure(t, err)
}

func TestLoadStoreRoundTripThroughSRAMTakesOneTickEach(t *testing.T) {
	b := bus.New()
	ctx := bus.DefaultAccessContext()

	storeStatus, err := b.Store(bus.RegionSRAM+0x100, 42, ctx)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, storeStatus.State, bus.StoreWaiting)
	b.Tick()
	test.ExpectEquality(t, storeStatus.State, bus.StoreDone)

	loadStatus, err := b.Load(bus.RegionSRAM+0x100, ctx)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, loadStatus.State, bus.LoadWaiting)
	b.Tick()
	test.ExpectEquality(t, loadStatus.State, bus.LoadDone)
	test.ExpectEquality(t, loadStatus.Value, uint32(42))
}

func TestPeripheralAccessTakesThreeReadFourWriteCycles(t *testing.T) {
	b := bus.New()
	ctx := bus.DefaultAccessContext()

	storeStatus, err := b.Store(bus.RegionAPB+0x6_8000, 1, ctx)
	test.ExpectSuccess(t, err)
	for i := 0; i < 3; i++ {
		b.Tick()
		test.ExpectEquality(t, storeStatus.State, bus.StoreWaiting)
	}
	b.Tick()
	test.ExpectEquality(t, storeStatus.State, bus.StoreDone)

	loadStatus, err := b.Load(bus.RegionAPB+0x6_8000, ctx)
	test.ExpectSuccess(t, err)
	for i := 0; i < 2; i++ {
		b.Tick()
		test.ExpectEquality(t, loadStatus.State, bus.LoadWaiting)
	}
	b.Tick()
	test.ExpectEquality(t, loadStatus.State, bus.LoadDone)
}

func TestExclusiveLoadOutsideSRAMIsBusFault(t *testing.T) {
	b := bus.New()
	ctx := bus.DefaultAccessContext()
	ctx.Exclusive = true

	_, err := b.Load(bus.RegionAPB+0x6_8000, ctx)
	test.ExpectFailure(t, err)
}

func TestConcurrentExclusiveAccessWaits(t *testing.T) {
	b := bus.New()

	proc0 := bus.DefaultAccessContext()
	proc0.Requestor = common.Proc0
	proc0.Exclusive = true

	proc1 := bus.DefaultAccessContext()
	proc1.Requestor = common.Proc1

	addr := bus.RegionSRAM + 0x200

	loadStatus, err := b.Load(addr, proc0)
	test.ExpectSuccess(t, err)
	b.Tick()
	test.ExpectEquality(t, loadStatus.State, bus.LoadExclusiveDone)

	storeStatus, err := b.Store(addr, 7, proc1)
	test.ExpectSuccess(t, err)
	b.Tick()
	test.ExpectEquality(t, storeStatus.State, bus.StoreWaiting)
}

func TestSuccessfulExclusiveStoreClearsReservation(t *testing.T) {
	b := bus.New()
	ctx := bus.DefaultAccessContext()
	ctx.Exclusive = true
	addr := bus.RegionSRAM + 0x300

	loadStatus, err := b.Load(addr, ctx)
	test.ExpectSuccess(t, err)
	b.Tick()
	test.ExpectEquality(t, loadStatus.State, bus.LoadExclusiveDone)

	storeStatus, err := b.Store(addr, 99, ctx)
	test.ExpectSuccess(t, err)
	b.Tick()
	test.ExpectEquality(t, storeStatus.State, bus.StoreExclusiveDone)

	other := bus.DefaultAccessContext()
	other.Requestor = common.Proc1
	otherStore, err := b.Store(addr, 1, other)
	test.ExpectSuccess(t, err)
	b.Tick()
	test.ExpectEquality(t, otherStore.State, bus.StoreDone)
}

type fakeRegister struct {
	value uint32
}

func (f *fakeRegister) Read(offset uint16, ctx peripherals.AccessContext) (uint32, error) {
	return f.value, nil
}

func (f *fakeRegister) WriteRaw(offset uint16, value uint32, ctx peripherals.AccessContext) error {
	f.value = value
	return nil
}

func TestSubWordWriteToPeripheralMergesIntoEnclosingWord(t *testing.T) {
	b := bus.New()
	b.Registry.BusCtrl = &fakeRegister{}
	ctx := bus.DefaultAccessContext()
	ctx.Size = common.SizeWord

	base := bus.RegionAPB + 0x6_8000
	storeStatus, err := b.Store(base, 0xAABBCCDD, ctx)
	test.ExpectSuccess(t, err)
	for i := 0; i < 4; i++ {
		b.Tick()
	}
	test.ExpectEquality(t, storeStatus.State, bus.StoreDone)

	byteCtx := ctx
	byteCtx.Size = common.SizeByte
	byteStore, err := b.Store(base+1, 0xFF, byteCtx)
	test.ExpectSuccess(t, err)
	for i := 0; i < 4; i++ {
		b.Tick()
	}
	test.ExpectEquality(t, byteStore.State, bus.StoreDone)

	loadStatus, err := b.Load(base, ctx)
	test.ExpectSuccess(t, err)
	for i := 0; i < 3; i++ {
		b.Tick()
	}
	test.ExpectEquality(t, loadStatus.Value, uint32(0xAABBFFDD))
}
