// Package gpio models the RP2350's 30-pin GPIO controller: per-pin
// function-select, drive override, pad configuration, and edge/level
// interrupt computation. It is shared by the IO_BANK0/PADS_BANK0
// peripherals and by SIO's GPIO mirror registers.
package gpio

// FunctionSelect is the peripheral signal routed to a pin's output/input,
// selected by the low 4 bits of its CTRL register.
type FunctionSelect int

const (
	FuncNone FunctionSelect = iota
	FuncSPI0RX
	FuncSPI0CSn
	FuncSPI0SCK
	FuncSPI0TX
	FuncSPI1RX
	FuncSPI1CSn
	FuncSPI1SCK
	FuncSPI1TX
	FuncUART0TX
	FuncUART0RX
	FuncUART0CTS
	FuncUART0RTS
	FuncUART1TX
	FuncUART1RX
	FuncUART1CTS
	FuncUART1RTS
	FuncI2C0SDA
	FuncI2C0SCL
	FuncI2C1SDA
	FuncI2C1SCL
	FuncPWM0A
	FuncPWM0B
	FuncPWM1A
	FuncPWM1B
	FuncPWM2A
	FuncPWM2B
	FuncPWM3A
	FuncPWM3B
	FuncPWM4A
	FuncPWM4B
	FuncPWM5A
	FuncPWM5B
	FuncPWM6A
	FuncPWM6B
	FuncPWM7A
	FuncPWM7B
	FuncSIO
	FuncPIO0
	FuncPIO1
	FuncPIO2
	FuncHSTX
	FuncQMICS1n
	FuncTraceCLK
	FuncTraceData0
	FuncTraceData1
	FuncTraceData2
	FuncTraceData3
	FuncClockGPIn0
	FuncClockGPOut0
	FuncClockGPIn1
	FuncClockGPOut1
	FuncClockGPOut2
	FuncClockGPOut3
	FuncUSBOvcurDet
	FuncUSBVBusDet
	FuncUSBVBusEn
)

// functionSelects mirrors the RP2350 datasheet's per-pin function table
// (section 1.2.3): up to 12 selectable functions per pin, indexed by the
// low 4 bits of CTRL (index 12-15 are unused/reserved on every pin).
var functionSelects = [30][12]FunctionSelect{
	{FuncNone, FuncSPI0RX, FuncUART0TX, FuncI2C0SDA, FuncPWM0A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncQMICS1n, FuncUSBOvcurDet, FuncNone},
	{FuncNone, FuncSPI0CSn, FuncUART0RX, FuncI2C0SCL, FuncPWM0B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncTraceCLK, FuncUSBVBusDet, FuncNone},
	{FuncNone, FuncSPI0SCK, FuncUART0CTS, FuncI2C1SDA, FuncPWM1A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncTraceData0, FuncUSBVBusEn, FuncUART0TX},
	{FuncNone, FuncSPI0TX, FuncUART0RTS, FuncI2C1SCL, FuncPWM1B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncTraceData1, FuncUSBOvcurDet, FuncUART0RX},
	{FuncNone, FuncSPI0RX, FuncUART1TX, FuncI2C0SDA, FuncPWM2A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncTraceData2, FuncUSBVBusDet, FuncNone},
	{FuncNone, FuncSPI0CSn, FuncUART1RX, FuncI2C0SCL, FuncPWM2B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncTraceData3, FuncUSBVBusEn, FuncNone},
	{FuncNone, FuncSPI0SCK, FuncUART1CTS, FuncI2C1SDA, FuncPWM3A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBOvcurDet, FuncUART1TX},
	{FuncNone, FuncSPI0TX, FuncUART1RTS, FuncI2C1SCL, FuncPWM3B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusDet, FuncUART1RX},
	{FuncNone, FuncSPI1RX, FuncUART1TX, FuncI2C0SDA, FuncPWM4A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncQMICS1n, FuncUSBVBusEn, FuncNone},
	{FuncNone, FuncSPI1CSn, FuncUART1RX, FuncI2C0SCL, FuncPWM4B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBOvcurDet, FuncNone},
	{FuncNone, FuncSPI1SCK, FuncUART1CTS, FuncI2C1SDA, FuncPWM5A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusDet, FuncUART1TX},
	{FuncNone, FuncSPI1TX, FuncUART1RTS, FuncI2C1SCL, FuncPWM5B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusEn, FuncUART1RX},
	{FuncHSTX, FuncSPI1RX, FuncUART0TX, FuncI2C0SDA, FuncPWM6A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPIn0, FuncUSBOvcurDet, FuncNone},
	{FuncHSTX, FuncSPI1CSn, FuncUART0RX, FuncI2C0SCL, FuncPWM6B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPOut0, FuncUSBVBusDet, FuncNone},
	{FuncHSTX, FuncSPI1SCK, FuncUART0CTS, FuncI2C1SDA, FuncPWM7A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPIn1, FuncUSBVBusEn, FuncUART0TX},
	{FuncHSTX, FuncSPI1TX, FuncUART0RTS, FuncI2C1SCL, FuncPWM7B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPOut1, FuncUSBOvcurDet, FuncUART0RX},
	{FuncHSTX, FuncSPI0RX, FuncUART0TX, FuncI2C0SDA, FuncPWM0A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusDet, FuncNone},
	{FuncHSTX, FuncSPI0CSn, FuncUART0RX, FuncI2C0SCL, FuncPWM0B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusEn, FuncNone},
	{FuncHSTX, FuncSPI0SCK, FuncUART0CTS, FuncI2C1SDA, FuncPWM1A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBOvcurDet, FuncUART0TX},
	{FuncHSTX, FuncSPI0TX, FuncUART0RTS, FuncI2C1SCL, FuncPWM1B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncQMICS1n, FuncUSBVBusDet, FuncUART0RX},
	{FuncNone, FuncSPI0RX, FuncUART1TX, FuncI2C0SDA, FuncPWM2A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPIn0, FuncUSBVBusEn, FuncNone},
	{FuncNone, FuncSPI0CSn, FuncUART1RX, FuncI2C0SCL, FuncPWM2B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPOut0, FuncUSBOvcurDet, FuncNone},
	{FuncNone, FuncSPI0SCK, FuncUART1CTS, FuncI2C1SDA, FuncPWM3A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPIn1, FuncUSBVBusDet, FuncUART1TX},
	{FuncNone, FuncSPI0TX, FuncUART1RTS, FuncI2C1SCL, FuncPWM3B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPOut1, FuncUSBVBusEn, FuncUART1RX},
	{FuncNone, FuncSPI1RX, FuncUART1TX, FuncI2C0SDA, FuncPWM4A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPOut2, FuncUSBOvcurDet, FuncNone},
	{FuncNone, FuncSPI1CSn, FuncUART1RX, FuncI2C0SCL, FuncPWM4B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncClockGPOut3, FuncUSBVBusDet, FuncNone},
	{FuncNone, FuncSPI1SCK, FuncUART1CTS, FuncI2C1SDA, FuncPWM5A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusEn, FuncUART1TX},
	{FuncNone, FuncSPI1TX, FuncUART1RTS, FuncI2C1SCL, FuncPWM5B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBOvcurDet, FuncUART1RX},
	{FuncNone, FuncSPI1RX, FuncUART0TX, FuncI2C0SDA, FuncPWM6A, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusDet, FuncNone},
	{FuncNone, FuncSPI1CSn, FuncUART0RX, FuncI2C0SCL, FuncPWM6B, FuncSIO, FuncPIO0, FuncPIO1, FuncPIO2, FuncNone, FuncUSBVBusEn, FuncNone},
}

// DriveStrength is the pad output drive current, selected by PAD bits 5:4.
type DriveStrength int

const (
	Drive2mA DriveStrength = iota
	Drive4mA
	Drive8mA
	Drive12mA
)

// Override selects how a pin's output/input/output-enable/irq signal is
// driven relative to the peripheral signal chosen by its function select.
type Override int

const (
	OverrideNormal Override = iota
	OverrideInvert
	OverrideLow
	OverrideHigh
)

func (o Override) ApplyBool(value bool) bool {
	switch o {
	case OverrideInvert:
		return !value
	case OverrideLow:
		return false
	case OverrideHigh:
		return true
	default:
		return value
	}
}

func (o Override) Enabled() bool  { return o == OverrideHigh }
func (o Override) Disabled() bool { return o == OverrideLow }
