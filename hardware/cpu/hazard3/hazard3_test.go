package hazard3_test

import (
	"testing"

	"github.com/rp2350sim/core/hardware/bus"
	"github.com/rp2350sim/core/hardware/cpu/hazard3"
	"github.com/rp2350sim/core/hardware/interrupts"
	"github.com/rp2350sim/core/test"
)

const (
	opAluImm = 0b0010011
	opAluReg = 0b0110011
	opAtomic = 0b0101111

	csrMstatus = 0x300
	csrMie     = 0x304
	csrMepc    = 0x341
	csrMcause  = 0x342
)

func encI(opcode, funct3 uint32, rd, rs1 hazard3.Register, imm uint32) uint32 {
	return (imm&0xFFF)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

func encR(opcode, funct3, funct7 uint32, rd, rs1, rs2 hazard3.Register) uint32 {
	return funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

func encAtomic(funct5, funct3 uint32, rd, rs1, rs2 hazard3.Register) uint32 {
	return funct5<<27 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opAtomic
}

const (
	wfiWord    = 0x10500073
	ebreakWord = 0x00100073
)

func load(t *testing.T, rom []byte, addr uint32, word uint32) {
	t.Helper()
	rom[addr] = byte(word)
	rom[addr+1] = byte(word >> 8)
	rom[addr+2] = byte(word >> 16)
	rom[addr+3] = byte(word >> 24)
}

func TestBasicArithmeticSequence(t *testing.T) {
	b := bus.New()
	rom := b.ROM.Bytes()

	load(t, rom, 0, encI(opAluImm, 0, 1, 0, 5))          // addi x1, x0, 5
	load(t, rom, 4, encI(opAluImm, 0, 2, 0, 10))         // addi x2, x0, 10
	load(t, rom, 8, encR(opAluReg, 0, 0, 3, 1, 2))       // add x3, x1, x2
	load(t, rom, 12, ebreakWord)

	core := hazard3.NewCore(0, 0)
	ints := &interrupts.Interrupts{}

	for i := 0; i < 3; i++ {
		core.Tick(b, ints)
		b.Tick()
	}

	test.ExpectEquality(t, core.Regs.Read(1), uint32(5))
	test.ExpectEquality(t, core.Regs.Read(2), uint32(10))
	test.ExpectEquality(t, core.Regs.Read(3), uint32(15))
}

func TestEbreakRaisesBreakpointTrap(t *testing.T) {
	b := bus.New()
	rom := b.ROM.Bytes()
	load(t, rom, 0x40, ebreakWord)

	core := hazard3.NewCore(0, 0x40)
	ints := &interrupts.Interrupts{}
	core.Tick(b, ints)

	cause, ok := core.Csrs.Read(csrMcause)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, cause, uint32(0x3))

	mepc, ok := core.Csrs.Read(csrMepc)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, mepc, uint32(0x40))
}

// CSR writes stage into a pending slot and are only applied at Commit, so a
// read between Write and Commit still observes the old value.
func TestCSRWriteIsDeferredUntilCommit(t *testing.T) {
	core := hazard3.NewCore(0, 0)

	ok := core.Csrs.Write(csrMie, 0xABCD)
	test.ExpectEquality(t, ok, true)

	v, readOK := core.Csrs.Read(csrMie)
	test.ExpectEquality(t, readOK, true)
	test.ExpectEquality(t, v, uint32(0))

	core.Csrs.Commit(false)

	v, readOK = core.Csrs.Read(csrMie)
	test.ExpectEquality(t, readOK, true)
	test.ExpectEquality(t, v, uint32(0xABCD))
}

func TestCSRWriteRejectedForInsufficientPrivilegeNeverStages(t *testing.T) {
	core := hazard3.NewCore(0, 0)

	// Drop to User mode via mret with mstatus.MPP cleared to 0b00.
	core.Csrs.Write(csrMstatus, 0)
	core.Csrs.Commit(false)
	core.Csrs.TrapMRET()
	test.ExpectEquality(t, core.Csrs.PrivilegeMode(), hazard3.UserMode)

	// mstatus's minimum required privilege (bits 9:8 of its address) is
	// Machine; a write issued from User mode must be rejected outright,
	// not merely staged and discarded later.
	ok := core.Csrs.Write(csrMstatus, 1<<3)
	test.ExpectEquality(t, ok, false)
}

func TestLrwScwRoundTrip(t *testing.T) {
	b := bus.New()
	rom := b.ROM.Bytes()

	addr := bus.RegionSRAM + 0x40
	test.ExpectSuccess(t, b.SRAM.WriteU32(0x40, 0x1111_2222))

	load(t, rom, 0, encAtomic(0b00010, 0b010, 2, 1, 0)) // lr.w x2, (x1)
	load(t, rom, 4, encAtomic(0b00011, 0b010, 3, 1, 4)) // sc.w x3, x4, (x1)

	core := hazard3.NewCore(0, 0)
	ints := &interrupts.Interrupts{}
	core.Regs.Write(1, addr)
	core.Regs.Write(4, 0x3333_4444)

	// lr.w issues the deferred exclusive load; the bus resolves it one
	// tick later.
	core.Tick(b, ints)
	b.Tick()
	core.Tick(b, ints) // resolves the load into x2, then issues sc.w
	b.Tick()
	core.Tick(b, ints) // resolves the store, writing the success code to x3

	test.ExpectEquality(t, core.Regs.Read(2), uint32(0x1111_2222))
	test.ExpectEquality(t, core.Regs.Read(3), uint32(0))

	stored, err := b.SRAM.ReadU32(0x40)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, stored, uint32(0x3333_4444))
}

// A core asleep on wfi wakes as soon as an enabled external line goes
// pending, and if the global interrupt enable also permits it, takes the
// trap in that same tick rather than falling through to fetch the next
// instruction.
func TestWfiWakesAndTakesTrapOnPendingInterrupt(t *testing.T) {
	b := bus.New()
	rom := b.ROM.Bytes()
	load(t, rom, 0, wfiWord)

	core := hazard3.NewCore(0, 0)
	ints := &interrupts.Interrupts{}

	core.Tick(b, ints)
	b.Tick()
	test.ExpectEquality(t, core.Regs.Read(0), uint32(0)) // sanity: x0 stays zero

	// Enable the external line at the CSR level and globally.
	core.Csrs.Write(csrMie, 1<<11)
	core.Csrs.Commit(false)
	core.Csrs.Write(csrMstatus, 1<<3)
	core.Csrs.Commit(false)

	ints.SetIRQ(interrupts.Timer0IRQ0, true)

	core.Tick(b, ints)

	mepc, _ := core.Csrs.Read(csrMepc)
	test.ExpectEquality(t, mepc, uint32(4))

	cause, _ := core.Csrs.Read(csrMcause)
	test.ExpectEquality(t, cause, uint32(1<<31)|11)
}

func TestWfiStaysAsleepWithoutPendingLine(t *testing.T) {
	b := bus.New()
	rom := b.ROM.Bytes()
	load(t, rom, 0, wfiWord)

	core := hazard3.NewCore(0, 0)
	ints := &interrupts.Interrupts{}

	core.Tick(b, ints)
	b.Tick()
	core.Tick(b, ints)
	b.Tick()
	core.Tick(b, ints)

	mepc, _ := core.Csrs.Read(csrMepc)
	test.ExpectEquality(t, mepc, uint32(0))
}

func TestCore1StartsAsleep(t *testing.T) {
	core := hazard3.NewCore(1, 0x1000)
	test.ExpectEquality(t, core.PC, uint32(0x1000))
	test.ExpectEquality(t, core.State, hazard3.StateWfi)

	core.Wake(0x2000)
	test.ExpectEquality(t, core.PC, uint32(0x2000))
	test.ExpectEquality(t, core.State, hazard3.StateRunning)
}
