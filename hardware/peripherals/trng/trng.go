// Package trng implements the RP2350's TRNG (CRI/Rambus-style true random
// number generator) register block. Entropy is produced on demand by an
// injected random.Random source rather than sampled from a physical ring
// oscillator.
package trng

import (
	"github.com/rp2350sim/core/hardware/inspector"
	"github.com/rp2350sim/core/hardware/peripherals"
	"github.com/rp2350sim/core/random"
)

const (
	RngIMR            = 0x0100
	RngISR            = 0x0104
	RngICR            = 0x0108
	TrngConfig        = 0x010C
	TrngValid         = 0x0110
	EHRData0          = 0x0114
	EHRData1          = 0x0118
	EHRData2          = 0x011C
	EHRData3          = 0x0120
	EHRData4          = 0x0124
	EHRData5          = 0x0128
	RndSourceEnable   = 0x012C
	SampleCnt1        = 0x0130
	AutocorrStatistic = 0x0134
	TrngDebugControl  = 0x0138
	TrngSWReset       = 0x0140
	RngDebugEnInput   = 0x01B4
	TrngBusy          = 0x01B8
	RstBitsCounter    = 0x01BC
	RngVersion        = 0x01C0
	RngBistCntr0      = 0x01E0
	RngBistCntr1      = 0x01E4
	RngBistCntr2      = 0x01E8
)

const (
	vnErr      uint8 = 1 << 3
	crngtErr   uint8 = 1 << 2
	autocorrErr uint8 = 1 << 1
	ehrValid   uint8 = 1 << 0
)

// Trng is the register-level TRNG state.
type Trng struct {
	interruptMask uint8
	interrupts    uint8
	config        uint8
	sourceEnable  bool
	sampleCnt1    uint32
	isValid       bool
	isBusy        bool
	autocorrFails uint16
	autocorrTrys  uint16
	debugControl  uint8
	debugEnable   bool
	bistCntr      [3]uint32

	entropy *random.Random
	insp    inspector.Inspector
}

// New creates a Trng whose EHR_DATA reads draw from entropy.
func New(entropy *random.Random) *Trng {
	return &Trng{
		sampleCnt1:    0xFFFF,
		interruptMask: 0b1111,
		interrupts:    ehrValid,
		entropy:       entropy,
		insp:          inspector.Null,
	}
}

// SetInspector installs the observer notified of every EHR_DATA read. A nil
// argument restores the null inspector.
func (t *Trng) SetInspector(insp inspector.Inspector) {
	if insp == nil {
		insp = inspector.Null
	}
	t.insp = insp
}

func (t *Trng) Read(address uint16, ctx peripherals.AccessContext) (uint32, error) {
	switch address & 0xFFFF {
	case RngIMR:
		return uint32(t.interruptMask), nil
	case RngISR:
		return uint32(t.interrupts), nil
	case RngICR:
		return 0, nil
	case TrngConfig:
		return uint32(t.config), nil
	case TrngValid:
		return boolU32(t.isValid), nil
	case EHRData0, EHRData1, EHRData2, EHRData3, EHRData4, EHRData5:
		v := t.entropy.Uint32()
		t.insp.Notify(inspector.TrngGenerated{Value: v})
		return v, nil
	case RndSourceEnable:
		return boolU32(t.sourceEnable), nil
	case SampleCnt1:
		return t.sampleCnt1, nil
	case AutocorrStatistic:
		return uint32(t.autocorrTrys) | uint32(t.autocorrFails)<<14, nil
	case TrngDebugControl:
		return uint32(t.debugControl), nil
	case TrngSWReset:
		return 0, nil
	case RngDebugEnInput:
		return boolU32(t.debugEnable), nil
	case TrngBusy:
		return boolU32(t.isBusy), nil
	case RstBitsCounter:
		return 0, nil
	case RngVersion:
		return 0, nil
	case RngBistCntr0:
		return t.bistCntr[0], nil
	case RngBistCntr1:
		return t.bistCntr[1], nil
	case RngBistCntr2:
		return t.bistCntr[2], nil
	default:
		return 0, peripherals.Error{Kind: peripherals.OutOfBounds}
	}
}

func (t *Trng) WriteRaw(address uint16, value uint32, ctx peripherals.AccessContext) error {
	switch address & 0xFFFF {
	case RngIMR:
		t.interruptMask = uint8(value)
	case RngICR:
		v := uint8(value)
		if v&vnErr != 0 {
			t.interrupts &^= vnErr
		}
		if v&crngtErr != 0 {
			t.interrupts &^= crngtErr
		}
		if v&ehrValid != 0 {
			t.interrupts &^= ehrValid
		}
	case TrngConfig:
		t.config = uint8(value)
	case RndSourceEnable:
		t.sourceEnable = value&1 != 0
	case SampleCnt1:
		t.sampleCnt1 = value
	case AutocorrStatistic:
		t.autocorrFails = uint16(value >> 14)
		t.autocorrTrys = uint16(value)
	case TrngDebugControl:
		t.debugControl = uint8(value)
	case TrngSWReset:
		// entropy is generated on demand; nothing to reset
	case RngDebugEnInput:
		t.debugEnable = value&1 != 0
	case RstBitsCounter:
		// entropy is generated on demand; nothing to reset
	case TrngValid, RngISR, TrngBusy, RngVersion, RngBistCntr0, RngBistCntr1, RngBistCntr2,
		EHRData0, EHRData1, EHRData2, EHRData3, EHRData4, EHRData5:
		// read-only
	default:
		return peripherals.Error{Kind: peripherals.OutOfBounds}
	}
	return nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
