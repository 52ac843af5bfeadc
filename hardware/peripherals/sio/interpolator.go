package sio

// interpolatorConfig decodes and re-encodes one lane's CTRLn register.
type interpolatorConfig struct {
	shift       uint32
	maskLSB     uint32
	maskMSB     uint32
	signed      bool
	crossInput  bool
	crossResult bool
	addRaw      bool
	forceMSB    uint32
	blend       bool
	clamp       bool
	overF0      bool
	overF1      bool
	overF       bool
}

func newInterpolatorConfig(value uint32) interpolatorConfig {
	return interpolatorConfig{
		shift:       (value >> 0) & 0b11111,
		maskLSB:     (value >> 5) & 0b11111,
		maskMSB:     (value >> 10) & 0b11111,
		signed:      (value>>15)&1 != 0,
		crossInput:  (value>>16)&1 != 0,
		crossResult: (value>>17)&1 != 0,
		addRaw:      (value>>18)&1 != 0,
		forceMSB:    (value >> 19) & 0b11,
		blend:       (value>>21)&1 != 0,
		clamp:       (value>>22)&1 != 0,
		overF0:      (value>>23)&1 != 0,
		overF1:      (value>>24)&1 != 0,
		overF:       (value>>25)&1 != 0,
	}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (c interpolatorConfig) toUint32() uint32 {
	return (c.shift & 0b11111) |
		((c.maskLSB & 0b11111) << 5) |
		((c.maskMSB & 0b11111) << 10) |
		(boolBit(c.signed) << 15) |
		(boolBit(c.crossInput) << 16) |
		(boolBit(c.crossResult) << 17) |
		(boolBit(c.addRaw) << 18) |
		((c.forceMSB & 0b11) << 19) |
		(boolBit(c.blend) << 21) |
		(boolBit(c.clamp) << 22) |
		(boolBit(c.overF0) << 23) |
		(boolBit(c.overF1) << 24) |
		(boolBit(c.overF) << 25)
}

// Interpolator is a two-lane fixed-point unit. index distinguishes
// interpolator 0 (which may blend) from interpolator 1 (which may clamp),
// matching the const-generic N parameter of the original.
type Interpolator struct {
	index  int
	Accum  [2]uint32
	Base   [3]uint32
	Ctrl   [2]uint32
	Result [3]uint32
	SMResult [2]uint32
}

// NewInterpolator creates interpolator index (0 or 1) in its reset state.
func NewInterpolator(index int) *Interpolator {
	it := &Interpolator{index: index}
	it.Update()
	return it
}

// Update recomputes Result, SMResult and the overflow flags in CTRL0 from
// the current ACCUM/BASE/CTRL registers. It must be called after any write
// to those registers.
func (it *Interpolator) Update() {
	ctrl0 := newInterpolatorConfig(it.Ctrl[0])
	ctrl1 := newInterpolatorConfig(it.Ctrl[1])

	doClamp := ctrl0.clamp && it.index == 1
	doBlend := ctrl0.blend && it.index == 0

	ctrl0.clamp = doClamp
	ctrl0.blend = doBlend
	ctrl1.clamp = false
	ctrl1.blend = false
	ctrl1.overF0 = false
	ctrl1.overF1 = false
	ctrl1.overF = false

	input0 := int32(it.Accum[0])
	if ctrl0.crossInput {
		input0 = int32(it.Accum[1])
	}
	input1 := int32(it.Accum[1])
	if ctrl1.crossInput {
		input1 = int32(it.Accum[0])
	}

	msbmask0 := msbMask(ctrl0.maskMSB)
	msbmask1 := msbMask(ctrl1.maskMSB)
	mask0 := msbmask0 &^ ((uint32(1) << ctrl0.maskLSB) - 1)
	mask1 := msbmask1 &^ ((uint32(1) << ctrl1.maskLSB) - 1)

	uresult0 := (uint32(input0) >> ctrl0.shift) & mask0
	uresult1 := (uint32(input1) >> ctrl1.shift) & mask1

	overf0 := (uint32(input0)>>ctrl0.shift)&^msbmask0 != 0
	overf1 := (uint32(input1)>>ctrl1.shift)&^msbmask1 != 0
	overf := overf0 || overf1

	var sextmask0, sextmask1 uint32
	if uresult0&(1<<ctrl0.maskMSB) != 0 {
		sextmask0 = ^uint32(0) << ctrl0.maskMSB
	}
	if uresult1&(1<<ctrl1.maskMSB) != 0 {
		sextmask1 = ^uint32(0) << ctrl1.maskMSB
	}

	sresult0 := uresult0 | sextmask0
	sresult1 := uresult1 | sextmask1

	result0 := uresult0
	if ctrl0.signed {
		result0 = sresult0
	}
	result1 := uresult1
	if ctrl1.signed {
		result1 = sresult1
	}

	addInput0 := result0
	if ctrl0.addRaw {
		addInput0 = uint32(input0)
	}
	addInput1 := result1
	if ctrl1.addRaw {
		addInput1 = uint32(input1)
	}

	addresult0 := it.Base[0] + addInput0
	addresult1 := it.Base[1] + addInput1
	addresult2 := it.Base[2] + result0
	if !doBlend {
		addresult2 += result1
	}

	uclamp0 := result0
	if result0 < it.Base[0] {
		uclamp0 = it.Base[0]
	} else if result0 > it.Base[1] {
		uclamp0 = it.Base[1]
	}

	sclamp0 := result0
	if int32(result0) < int32(it.Base[0]) {
		sclamp0 = it.Base[0]
	} else if int32(result0) > int32(it.Base[1]) {
		sclamp0 = it.Base[1]
	}

	clamp0 := uclamp0
	if ctrl0.signed {
		clamp0 = sclamp0
	}

	alpha1 := float64(result1 & 0xff)
	ublend1 := it.Base[0] + uint32(int32(alpha1*float64(it.Base[1]-it.Base[0])/256.0))
	sblend1 := uint32(int32(it.Base[0]) + int32(alpha1*float64(int32(it.Base[1])-int32(it.Base[0]))/256.0))
	blend1 := ublend1
	if ctrl1.signed {
		blend1 = sblend1
	}

	it.SMResult[0] = result0
	it.SMResult[1] = result1

	if doBlend {
		it.Result[0] = uint32(alpha1)
	} else {
		res := addresult0
		if doClamp {
			res = clamp0
		}
		it.Result[0] = res | (ctrl0.forceMSB << 28)
	}

	if doBlend {
		it.Result[1] = blend1 | (ctrl0.forceMSB << 28)
	} else {
		it.Result[1] = addresult1 | (ctrl0.forceMSB << 28)
	}
	it.Result[2] = addresult2

	ctrl0.overF0 = overf0
	ctrl0.overF1 = overf1
	ctrl0.overF = overf
	it.Ctrl[0] = ctrl0.toUint32()
	it.Ctrl[1] = ctrl1.toUint32()
}

func msbMask(maskMSB uint32) uint32 {
	if maskMSB == 31 {
		return 0xFFFFFFFF
	}
	return (uint32(1) << (maskMSB + 1)) - 1
}

// Writeback implements a POP read: Result feeds back into Accum (crossed
// per CTRL bit 17), then Update recomputes.
func (it *Interpolator) Writeback() {
	ctrl0 := newInterpolatorConfig(it.Ctrl[0])
	ctrl1 := newInterpolatorConfig(it.Ctrl[1])

	if ctrl0.crossResult {
		it.Accum[0] = it.Result[1]
	} else {
		it.Accum[0] = it.Result[0]
	}
	if ctrl1.crossResult {
		it.Accum[1] = it.Result[0]
	} else {
		it.Accum[1] = it.Result[1]
	}

	it.Update()
}

// SetBase01 writes BASE0 and BASE1 from a single packed 32-bit value (the
// BASE01 alias register), sign-extending each 16-bit half per lane as
// configured.
func (it *Interpolator) SetBase01(value uint32) {
	ctrl0 := newInterpolatorConfig(it.Ctrl[0])
	ctrl1 := newInterpolatorConfig(it.Ctrl[1])

	doBlend := ctrl0.blend && it.index == 0

	input0 := int32(int16(value & 0xffff))
	input1 := int32(int16((value >> 16) & 0xffff))

	signed0 := ctrl0.signed
	if doBlend {
		signed0 = ctrl1.signed
	}

	base0 := uint32(input0) & 0xffff
	if signed0 {
		base0 = uint32(input0)
	}
	base1 := uint32(input1) & 0xffff
	if ctrl1.signed {
		base1 = uint32(input1)
	}

	it.Base[0] = base0
	it.Base[1] = base1

	it.Update()
}
