package sio

import "testing"

import "github.com/rp2350sim/core/test"

func TestInterpolatorPassthroughWithNoShiftOrMask(t *testing.T) {
	it := NewInterpolator(0)
	it.Ctrl[0] = newInterpolatorConfig(0).toUint32() // shift 0, default mask
	// mask 0 maps to maskLSB=0, maskMSB=0 -> only bit 0 kept. Use explicit full mask instead.
	cfg := newInterpolatorConfig(0)
	cfg.maskMSB = 31
	it.Ctrl[0] = cfg.toUint32()
	it.Accum[0] = 0x12345678
	it.Base[0] = 0
	it.Update()

	test.ExpectEquality(t, it.Result[0], uint32(0x12345678))
}

func TestInterpolatorShiftAndMask(t *testing.T) {
	it := NewInterpolator(0)
	cfg := newInterpolatorConfig(0)
	cfg.shift = 4
	cfg.maskLSB = 0
	cfg.maskMSB = 7
	it.Ctrl[0] = cfg.toUint32()
	it.Accum[0] = 0xFF0
	it.Base[0] = 0
	it.Update()

	test.ExpectEquality(t, it.Result[0], uint32(0xFF))
}

func TestInterpolatorUnsignedClampOnLane1(t *testing.T) {
	it := NewInterpolator(1)
	cfg := newInterpolatorConfig(0)
	cfg.maskMSB = 31
	cfg.clamp = true
	it.Ctrl[0] = cfg.toUint32()
	it.Base[0] = 10
	it.Base[1] = 20
	it.Accum[0] = 5
	it.Update()

	test.ExpectEquality(t, it.Result[0], uint32(10))

	it.Accum[0] = 25
	it.Update()
	test.ExpectEquality(t, it.Result[0], uint32(20))
}

func TestInterpolatorBlendOnLane0(t *testing.T) {
	it := NewInterpolator(0)
	cfg := newInterpolatorConfig(0)
	cfg.maskMSB = 31
	cfg.blend = true
	it.Ctrl[0] = cfg.toUint32()

	cfg1 := newInterpolatorConfig(0)
	cfg1.maskMSB = 31
	it.Ctrl[1] = cfg1.toUint32()

	it.Base[0] = 0
	it.Base[1] = 256
	it.Accum[1] = 128 // becomes alpha for the blend, via lane 1's result
	it.Update()

	test.ExpectEquality(t, it.Result[0], uint32(128))
}

func TestWritebackFeedsResultIntoAccum(t *testing.T) {
	it := NewInterpolator(0)
	cfg := newInterpolatorConfig(0)
	cfg.maskMSB = 31
	it.Ctrl[0] = cfg.toUint32()
	it.Base[0] = 1
	it.Accum[0] = 10
	it.Update()
	test.ExpectEquality(t, it.Result[0], uint32(11))

	it.Writeback()
	test.ExpectEquality(t, it.Accum[0], uint32(11))
}

func TestSetBase01PacksBothHalves(t *testing.T) {
	it := NewInterpolator(0)
	it.SetBase01(0x00020001)
	test.ExpectEquality(t, it.Base[0], uint32(1))
	test.ExpectEquality(t, it.Base[1], uint32(2))
}
