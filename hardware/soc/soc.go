// Package soc wires every modelled RP2350 component into a single runnable
// machine: the scheduler, the bus and its peripheral registry, both
// Hazard3 cores, and the firmware loader that gets bytes onto the XIP
// flash window in the first place. It is the simulator's one entry point
// for a host application — construct a SoC, flash an image, call Tick in a
// loop.
package soc

import (
	"github.com/rp2350sim/core/errors"
	"github.com/rp2350sim/core/hardware/bus"
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/hardware/cpu/hazard3"
	"github.com/rp2350sim/core/hardware/firmware/uf2"
	"github.com/rp2350sim/core/hardware/gpio"
	"github.com/rp2350sim/core/hardware/inspector"
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/hardware/peripherals/bootram"
	"github.com/rp2350sim/core/hardware/peripherals/busctrl"
	"github.com/rp2350sim/core/hardware/peripherals/iobank"
	"github.com/rp2350sim/core/hardware/peripherals/pads"
	"github.com/rp2350sim/core/hardware/peripherals/pwm"
	"github.com/rp2350sim/core/hardware/peripherals/sha256"
	"github.com/rp2350sim/core/hardware/peripherals/sio"
	"github.com/rp2350sim/core/hardware/peripherals/timer"
	"github.com/rp2350sim/core/hardware/peripherals/trng"
	"github.com/rp2350sim/core/hardware/peripherals/uart"
	"github.com/rp2350sim/core/hardware/scheduler"
	"github.com/rp2350sim/core/logger"
	"github.com/rp2350sim/core/random"
)

// resetPC is the address both cores fetch their first instruction from:
// the base of Boot ROM. Core 1 is held in Wfi from construction regardless
// (see hazard3.NewCore) until core 0 wakes it with a launch vector.
const resetPC = 0

// maxFlashBin is the largest raw binary FlashBin accepts.
const maxFlashBin = 4 * common.MB

// Options configures a SoC at construction. The zero value is usable: a
// fresh entropy source and the null inspector.
type Options struct {
	// BootROM, if non-nil, is copied into the Boot ROM region at
	// construction instead of leaving it zeroed.
	BootROM []byte

	// Inspector receives every InspectionEvent the running machine
	// produces. Nil installs inspector.Null.
	Inspector inspector.Inspector

	// Entropy backs the TRNG peripheral. Nil constructs a fresh
	// random.Random bound to the SoC's own scheduler clock.
	Entropy *random.Random
}

// SoC is the fully wired RP2350 core: scheduler, bus, peripheral registry,
// and both Hazard3 cores.
type SoC struct {
	Scheduler  *scheduler.Scheduler
	Bus        *bus.Bus
	Interrupts *interrupts.Interrupts
	GPIO       *gpio.Controller
	Core0      *hazard3.Core
	Core1      *hazard3.Core

	trng *trng.Trng
	uart [2]*uart.Uart

	insp inspector.Inspector
}

// New constructs a SoC with every modelled peripheral wired into its bus
// registry, ready to be flashed and ticked.
func New(opts Options) *SoC {
	insp := opts.Inspector
	if insp == nil {
		insp = inspector.Null
	}

	sched := scheduler.New()
	ints := &interrupts.Interrupts{}
	gpioCtrl := gpio.New(ints)

	entropy := opts.Entropy
	if entropy == nil {
		entropy = random.NewRandom(sched)
	}

	b := bus.New()

	sioShared := sio.NewShared()
	core0SIO := sio.New(0, sioShared, sched, ints)
	core1SIO := sio.New(1, sioShared, sched, ints)
	core0SIO.GPIOIn = gpioCtrl.InputBitmap
	core1SIO.GPIOIn = gpioCtrl.InputBitmap
	b.SIO = &sioRouter{core0: core0SIO, core1: core1SIO}

	trngPeriph := trng.New(entropy)
	trngPeriph.SetInspector(insp)

	uart0 := uart.New(0, sched, ints)
	uart1 := uart.New(1, sched, ints)
	uart0.SetInspector(insp)
	uart1.SetInspector(insp)

	b.Registry.BootRAM = bootram.New()
	b.Registry.BusCtrl = busctrl.New()
	b.Registry.IOBank0 = iobank.New(gpioCtrl)
	b.Registry.PadsBank0 = pads.New(gpioCtrl)
	b.Registry.PWM = pwm.New(sched, ints)
	b.Registry.SHA256 = sha256.New(sched)
	b.Registry.TRNG = trngPeriph

	s := &SoC{
		Scheduler:  sched,
		Bus:        b,
		Interrupts: ints,
		GPIO:       gpioCtrl,
		Core0:      hazard3.NewCore(0, resetPC),
		Core1:      hazard3.NewCore(1, resetPC),
		trng:       trngPeriph,
		uart:       [2]*uart.Uart{uart0, uart1},
		insp:       insp,
	}

	s.Bus.Registry.UART[0] = uart0
	s.Bus.Registry.UART[1] = uart1
	s.Bus.Registry.Timer[0] = timer.New(0, sched, ints)
	s.Bus.Registry.Timer[1] = timer.New(1, sched, ints)

	s.Core0.SetInspector(insp)
	s.Core1.SetInspector(insp)

	if opts.BootROM != nil {
		copyBootROM(b, opts.BootROM)
	}

	return s
}

func copyBootROM(b *bus.Bus, image []byte) {
	if len(image) > b.ROM.Len() {
		image = image[:b.ROM.Len()]
	}
	_ = b.ROM.WriteSlice(0, image)
}

// SetInspector replaces the inspector every wired component reports to. A
// nil insp restores inspector.Null.
func (s *SoC) SetInspector(insp inspector.Inspector) {
	if insp == nil {
		insp = inspector.Null
	}
	s.insp = insp
	s.trng.SetInspector(insp)
	s.uart[0].SetInspector(insp)
	s.uart[1].SetInspector(insp)
	s.Core0.SetInspector(insp)
	s.Core1.SetInspector(insp)
}

// FlashBin copies bin verbatim to flash offset 0 (XIP base). Images over
// 4 MiB are rejected outright; nothing is written in that case.
func (s *SoC) FlashBin(bin []byte) error {
	if len(bin) > maxFlashBin {
		return errors.Errorf(errors.FileTooLarge, len(bin), maxFlashBin)
	}
	// A write past the end of the XIP window is impossible here (bin is
	// already bounded above by maxFlashBin, well under XIP's capacity),
	// but mirror the original loader's tolerance for a failed write
	// rather than surfacing it as a FlashBin error.
	_ = s.Bus.XIP.WriteSlice(0, bin)
	s.insp.Notify(inspector.FlashedBinary{})
	return nil
}

// FlashUF2 parses data as a UF2 container and writes every flashable block
// to its target address, offset against the XIP base. A block with no
// family ID or an unsupported family ID is skipped, with a warning logged.
// A malformed container is rejected before anything is written.
func (s *SoC) FlashUF2(data []byte) error {
	blocks, err := uf2.Read(data)
	if err != nil {
		return err
	}

	for _, block := range blocks {
		if !block.HasFamily {
			logger.Log("soc", "uf2 block with no family ID, skipping")
			continue
		}
		if !uf2.IsSupportedFamilyID(block.FamilyID) {
			logger.Logf("soc", "unsupported UF2 family ID %#x", block.FamilyID)
			continue
		}

		offset := (block.TargetAddr - bus.RegionXIP) & 0x1FFF_FFFF
		if err := s.Bus.XIP.WriteSlice(offset, block.Data); err != nil {
			logger.Logf("soc", "failed to write UF2 block at %#x: %v", block.TargetAddr, err)
		}
	}

	s.insp.Notify(inspector.FlashedBinary{})
	return nil
}

// Reset discards the current machine state entirely in favour of a freshly
// constructed one. There is no partial reset: every owned component (ROM
// image aside, which callers reflash via FlashBin/FlashUF2 after Reset)
// starts over from its power-on default.
func Reset(opts Options) *SoC {
	return New(opts)
}

// Tick advances the machine by one 150 MHz clock: the scheduler first (so
// any event whose activation tick has just arrived fires before the bus
// and cores observe it), then the bus's deferred-access pipeline, then
// each core in turn.
func (s *SoC) Tick() {
	s.Scheduler.Tick()
	s.Bus.Tick()
	s.Core0.Tick(s.Bus, s.Interrupts)
	s.Core1.Tick(s.Bus, s.Interrupts)
}
