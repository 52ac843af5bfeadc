package soc

import (
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/hardware/peripherals/sio"
)

// sioRouter is the peripheral the bus's single SIO field is set to. The
// RP2350 maps each core's SIO block at the same address but backed by
// physically distinct registers; the bus has no requestor-aware dispatch
// of its own (see bus.peripheralFor), so this router picks the core-0 or
// core-1 SIO instance by the access's requestor before delegating.
type sioRouter struct {
	core0 *sio.SIO
	core1 *sio.SIO
}

func (r *sioRouter) pick(ctx peripherals.AccessContext) *sio.SIO {
	if ctx.Requestor == common.Proc1 {
		return r.core1
	}
	return r.core0
}

func (r *sioRouter) Read(offset uint16, ctx peripherals.AccessContext) (uint32, error) {
	return r.pick(ctx).Read(offset, ctx)
}

func (r *sioRouter) WriteRaw(offset uint16, value uint32, ctx peripherals.AccessContext) error {
	return r.pick(ctx).WriteRaw(offset, value, ctx)
}
