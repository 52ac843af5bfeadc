package peripherals

// Registry is the single-source-of-truth address map from a peripheral
// base address (within the APB or AHB region) to a concrete peripheral
// instance. Every field defaults to an UnimplementedPeripheral; callers
// (typically hardware/soc) replace the fields they have a concrete model
// for.
//
// SIO is deliberately not a field here: it lives directly on the bus and
// bypasses both this registry and the alias decoder (see hardware/bus).
type Registry struct {
	// APB peripherals, in base-address order.
	Sysinfo            Peripheral
	Syscfg             Peripheral
	Clocks             Peripheral
	Psm                Peripheral
	Resets             Peripheral
	IOBank0            Peripheral
	IOQSPI             Peripheral
	PadsBank0          Peripheral
	PadsQSPI           Peripheral
	XOSC               Peripheral
	PLLSys             Peripheral
	PLLUsb             Peripheral
	AccessCtrl         Peripheral
	BusCtrl            Peripheral
	UART               [2]Peripheral
	SPI                [2]Peripheral
	I2C                [2]Peripheral
	ADC                Peripheral
	PWM                Peripheral
	Timer              [2]Peripheral
	HSTXCtrl           Peripheral
	XIPCtrl            Peripheral
	XIPQMI             Peripheral
	Watchdog           Peripheral
	BootRAM            Peripheral
	ROSC               Peripheral
	TRNG               Peripheral
	SHA256             Peripheral
	Powman             Peripheral
	Ticks              Peripheral
	OTP                Peripheral
	OTPData            Peripheral
	OTPDataRaw         Peripheral
	OTPDataGuarded     Peripheral
	OTPDataRawGuarded  Peripheral
	CoresightPeriph    Peripheral
	CoresightAHBAP     [2]Peripheral
	CoresightTimestamp Peripheral
	CoresightATBFunnel Peripheral
	CoresightTPIU      Peripheral
	CoresightCTI       Peripheral
	CoresightAPBAPRV   Peripheral
	GlitchDetector     Peripheral
	TBMan              Peripheral

	// AHB peripherals.
	DMA             Peripheral
	USBCtrl         Peripheral
	USBCtrlRegs     Peripheral
	PIO             [3]Peripheral
	XIPAux          Peripheral
	HSTXFifo        Peripheral
	CoresightTrace  Peripheral
}

func unimpl() Peripheral { return &UnimplementedPeripheral{} }

// NewRegistry builds a Registry with every field defaulted to
// UnimplementedPeripheral.
func NewRegistry() *Registry {
	r := &Registry{
		Sysinfo:            unimpl(),
		Syscfg:             unimpl(),
		Clocks:             unimpl(),
		Psm:                unimpl(),
		Resets:             unimpl(),
		IOBank0:            unimpl(),
		IOQSPI:             unimpl(),
		PadsBank0:          unimpl(),
		PadsQSPI:           unimpl(),
		XOSC:               unimpl(),
		PLLSys:             unimpl(),
		PLLUsb:             unimpl(),
		AccessCtrl:         unimpl(),
		BusCtrl:            unimpl(),
		ADC:                unimpl(),
		PWM:                unimpl(),
		HSTXCtrl:           unimpl(),
		XIPCtrl:            unimpl(),
		XIPQMI:             unimpl(),
		Watchdog:           unimpl(),
		BootRAM:            unimpl(),
		ROSC:               unimpl(),
		TRNG:               unimpl(),
		SHA256:             unimpl(),
		Powman:             unimpl(),
		Ticks:              unimpl(),
		OTP:                unimpl(),
		OTPData:            unimpl(),
		OTPDataRaw:         unimpl(),
		OTPDataGuarded:     unimpl(),
		OTPDataRawGuarded:  unimpl(),
		CoresightPeriph:    unimpl(),
		CoresightTimestamp: unimpl(),
		CoresightATBFunnel: unimpl(),
		CoresightTPIU:      unimpl(),
		CoresightCTI:       unimpl(),
		CoresightAPBAPRV:   unimpl(),
		GlitchDetector:     unimpl(),
		TBMan:              unimpl(),
		DMA:                unimpl(),
		USBCtrl:            unimpl(),
		USBCtrlRegs:        unimpl(),
		XIPAux:             unimpl(),
		HSTXFifo:           unimpl(),
		CoresightTrace:     unimpl(),
	}
	for i := range r.UART {
		r.UART[i] = unimpl()
	}
	for i := range r.SPI {
		r.SPI[i] = unimpl()
	}
	for i := range r.I2C {
		r.I2C[i] = unimpl()
	}
	for i := range r.Timer {
		r.Timer[i] = unimpl()
	}
	for i := range r.CoresightAHBAP {
		r.CoresightAHBAP[i] = unimpl()
	}
	for i := range r.PIO {
		r.PIO[i] = unimpl()
	}
	return r
}

// LookupAPB routes the APB-region bits of address (bits 27:12, i.e. address &
// 0x0FFF_F000 relative to the APB base) to a concrete peripheral. ok is
// false when no peripheral is mapped there.
func (r *Registry) LookupAPB(base uint32) (Peripheral, bool) {
	switch base {
	case 0x0000_0000:
		return r.Sysinfo, true
	case 0x0000_8000:
		return r.Syscfg, true
	case 0x0001_0000:
		return r.Clocks, true
	case 0x0001_8000:
		return r.Psm, true
	case 0x0002_0000:
		return r.Resets, true
	case 0x0002_8000:
		return r.IOBank0, true
	case 0x0003_0000:
		return r.IOQSPI, true
	case 0x0003_8000:
		return r.PadsBank0, true
	case 0x0004_0000:
		return r.PadsQSPI, true
	case 0x0004_8000:
		return r.XOSC, true
	case 0x0005_0000:
		return r.PLLSys, true
	case 0x0005_8000:
		return r.PLLUsb, true
	case 0x0006_0000:
		return r.AccessCtrl, true
	case 0x0006_8000:
		return r.BusCtrl, true
	case 0x0007_0000:
		return r.UART[0], true
	case 0x0007_8000:
		return r.UART[1], true
	case 0x0008_0000:
		return r.SPI[0], true
	case 0x0008_8000:
		return r.SPI[1], true
	case 0x0009_0000:
		return r.I2C[0], true
	case 0x0009_8000:
		return r.I2C[1], true
	case 0x000A_0000:
		return r.ADC, true
	case 0x000A_8000:
		return r.PWM, true
	case 0x000B_0000:
		return r.Timer[0], true
	case 0x000B_8000:
		return r.Timer[1], true
	case 0x000C_0000:
		return r.HSTXCtrl, true
	case 0x000C_8000:
		return r.XIPCtrl, true
	case 0x000D_0000:
		return r.XIPQMI, true
	case 0x000D_8000:
		return r.Watchdog, true
	case 0x000E_0000:
		return r.BootRAM, true
	case 0x000E_8000:
		return r.ROSC, true
	case 0x000F_0000:
		return r.TRNG, true
	case 0x000F_8000:
		return r.SHA256, true
	case 0x0010_0000:
		return r.Powman, true
	case 0x0010_8000:
		return r.Ticks, true
	case 0x0012_0000:
		return r.OTP, true
	case 0x0013_0000:
		return r.OTPData, true
	case 0x0013_4000:
		return r.OTPDataRaw, true
	case 0x0013_8000:
		return r.OTPDataGuarded, true
	case 0x0013_C000:
		return r.OTPDataRawGuarded, true
	case 0x0014_0000:
		return r.CoresightPeriph, true
	case 0x0014_2000:
		return r.CoresightAHBAP[0], true
	case 0x0014_4000:
		return r.CoresightAHBAP[1], true
	case 0x0014_6000:
		return r.CoresightTimestamp, true
	case 0x0014_7000:
		return r.CoresightATBFunnel, true
	case 0x0014_8000:
		return r.CoresightTPIU, true
	case 0x0014_9000:
		return r.CoresightCTI, true
	case 0x0014_A000:
		return r.CoresightAPBAPRV, true
	case 0x0015_8000:
		return r.GlitchDetector, true
	case 0x0016_0000:
		return r.TBMan, true
	default:
		return nil, false
	}
}

// LookupAHB routes the AHB-region bits of address to a concrete peripheral.
func (r *Registry) LookupAHB(base uint32) (Peripheral, bool) {
	switch base {
	case 0x0000_0000:
		return r.DMA, true
	case 0x0010_0000:
		return r.USBCtrl, true
	case 0x0011_0000:
		return r.USBCtrlRegs, true
	case 0x0020_0000:
		return r.PIO[0], true
	case 0x0030_8000:
		return r.PIO[1], true
	case 0x0040_0000:
		return r.PIO[2], true
	case 0x0050_0000:
		return r.XIPAux, true
	case 0x0060_0000:
		return r.HSTXFifo, true
	case 0x0070_0000:
		return r.CoresightTrace, true
	default:
		return nil, false
	}
}
