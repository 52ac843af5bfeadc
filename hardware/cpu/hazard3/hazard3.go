// Package hazard3 implements the dual RISC-V "Hazard3" processor core: an
// RV32IMA_Zicsr_Zifencei_Zba_Zbb_Zbs_Zbkb_Zca_Zcmp decoder and execute
// pipeline, its CSR file, and the trap-entry/trap-return and WFI
// state-machine semantics the RP2350 documents for this core. Zcb is not
// decoded: its encodings (C.LBU, C.LHU, C.LH, C.SB, C.SH, C.ZEXT.*, C.SEXT.*,
// C.NOT, C.MUL) raise IllegalInstruction.
package hazard3

import (
	"github.com/rp2350sim/core/hardware/bus"
	"github.com/rp2350sim/core/hardware/common"
	"github.com/rp2350sim/core/hardware/inspector"
	"github.com/rp2350sim/core/hardware/interrupts"
)

// State is a core's run state.
type State uint8

const (
	StateRunning State = iota
	StateWfi
)

type pendingLoad struct {
	status *bus.LoadStatus
	rd     Register
}

type pendingStore struct {
	status *bus.StoreStatus
	rd     *Register
}

// Core is one Hazard3 processor: a 32-bit integer register file, a CSR
// file, a program counter, and at most one outstanding load and one
// outstanding store (the bus allows no more than that per requestor).
type Core struct {
	ID    uint8
	PC    uint32
	Regs  registerFile
	Csrs  *csrFile
	State State
	Stats Stats

	load  *pendingLoad
	store *pendingStore

	predictor branchPredictor
	insp      inspector.Inspector
}

// NewCore creates a Hazard3 core with id identifying it to the bus and
// interrupt controller (0 or 1) and resetPC as its initial program
// counter. Per the RP2350 boot sequence, core 1 starts in Wfi and is
// released by core 0 once it has installed a launch vector.
func NewCore(id uint8, resetPC uint32) *Core {
	state := StateRunning
	if id == 1 {
		state = StateWfi
	}
	return &Core{
		ID:    id,
		PC:    resetPC,
		Csrs:  newCSRFile(id),
		State: state,
		Stats: newStats(),
		insp:  inspector.Null,
	}
}

// SetInspector installs insp as the destination for this core's
// execution-trace and trap events. A nil insp restores the no-op
// inspector.
func (c *Core) SetInspector(insp inspector.Inspector) {
	if insp == nil {
		insp = inspector.Null
	}
	c.insp = insp
}

// Wake transitions the core out of Wfi unconditionally, used by soc to
// implement core-1's launch sequence.
func (c *Core) Wake(pc uint32) {
	c.PC = pc
	c.State = StateRunning
}

func (c *Core) requestor() common.Requestor {
	if c.ID == 1 {
		return common.Proc1
	}
	return common.Proc0
}

// Tick advances the core by one clock: it resolves any load/store that
// completed on the bus this cycle, then, if the core is Running and has no
// outstanding memory access, fetches, decodes and executes exactly one
// instruction. CSR writes staged by that instruction are committed at the
// very end of the tick, matching the documented write-deferral behaviour:
// a CSR read earlier in the same tick never observes its own write.
func (c *Core) Tick(b *bus.Bus, ints *interrupts.Interrupts) {
	c.insp.Notify(inspector.TickCore{Core: c.ID})

	c.Csrs.SetExternalPending(ints.Pending(c.ID) != 0)

	retired := c.resolveLoad()
	retired = c.resolveStore() || retired

	if c.State == StateWfi {
		if c.Csrs.MIP()&c.Csrs.MIE() != 0 {
			c.State = StateRunning
			c.insp.Notify(inspector.WakeCore{Core: c.ID})
		}
	}

	if c.State == StateRunning && c.load == nil && c.store == nil {
		if pending := c.Csrs.MIP() & c.Csrs.MIE(); c.Csrs.InterruptsEnabled() && pending != 0 {
			irq := lowestSetBit(pending)
			trap := InterruptTrap(irq)
			c.PC = c.Csrs.TrapHandle(trap, c.PC)
			c.insp.Notify(inspector.Exception{Core: c.ID, Cause: "interrupt"})
		} else {
			retired = c.step(b) || retired
		}
	}

	c.Csrs.Commit(retired)
}

func (c *Core) resolveLoad() bool {
	if c.load == nil {
		return false
	}
	switch c.load.status.State {
	case bus.LoadWaiting:
		return false
	case bus.LoadDone, bus.LoadExclusiveDone:
		c.Regs.Write(c.load.rd, c.load.status.Value)
	case bus.LoadFailed:
		trap := ExceptionTrap(LoadFault)
		c.PC = c.Csrs.TrapHandle(trap, c.PC)
		c.insp.Notify(inspector.Exception{Core: c.ID, Cause: "load fault"})
	}
	c.load = nil
	return true
}

func (c *Core) resolveStore() bool {
	if c.store == nil {
		return false
	}
	switch c.store.status.State {
	case bus.StoreWaiting:
		return false
	case bus.StoreDone:
		// nothing to write back
	case bus.StoreExclusiveDone:
		if c.store.rd != nil {
			c.Regs.Write(*c.store.rd, 0)
		}
	case bus.StoreFailed:
		if c.store.rd != nil {
			c.Regs.Write(*c.store.rd, 1)
		} else {
			trap := ExceptionTrap(StoreFault)
			c.PC = c.Csrs.TrapHandle(trap, c.PC)
			c.insp.Notify(inspector.Exception{Core: c.ID, Cause: "store fault"})
		}
	}
	c.store = nil
	return true
}

// step fetches, decodes and executes one instruction, returning true if an
// instruction actually retired this tick. It returns false whenever a trap
// is taken instead, whether from an instruction-fetch fault or from the
// executed instruction.
func (c *Core) step(b *bus.Bus) bool {
	raw, err := b.Fetch(c.PC)
	if err != nil {
		trap := ExceptionTrap(InstructionFetchFault)
		c.PC = c.Csrs.TrapHandle(trap, c.PC)
		c.insp.Notify(inspector.Exception{Core: c.ID, Cause: "instruction fetch fault"})
		return false
	}

	inst := Decode(raw)
	mnemonic := kindName(inst.Kind)

	isBranch := isBranchKind(inst.Kind)
	pcBefore := c.PC

	trap, pcOverride := c.execute(b, inst)

	if isBranch {
		taken := pcOverride != nil
		miss := c.predictor.missPredicted(pcBefore, taken)
		c.Stats.recordBranch(miss)
	}

	if trap != nil {
		c.PC = c.Csrs.TrapHandle(*trap, pcBefore)
		c.insp.Notify(inspector.Exception{Core: c.ID, Cause: trap.Exception.curatedMessage()})
		return false
	}

	if pcOverride != nil {
		c.PC = *pcOverride
	} else {
		c.PC = pcBefore + inst.Size
	}

	c.Stats.recordRetired(mnemonic)
	c.insp.Notify(inspector.ExecutedInstruction{Core: c.ID, Instruction: inst.Raw, Address: pcBefore, Name: mnemonic})
	return true
}

func lowestSetBit(v uint32) uint32 {
	for i := uint32(0); i < 32; i++ {
		if v&(1<<i) != 0 {
			return i
		}
	}
	return 0
}

func isBranchKind(k Kind) bool {
	switch k {
	case KBeq, KBne, KBlt, KBge, KBltu, KBgeu:
		return true
	default:
		return false
	}
}

func kindName(k Kind) string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var kindNames = map[Kind]string{
	KEcall: "ecall", KEbreak: "ebreak", KFence: "fence", KFenceI: "fence.i",
	KMret: "mret", KWfi: "wfi", KLui: "lui", KAuipc: "auipc", KJal: "jal", KJalr: "jalr",
	KBeq: "beq", KBne: "bne", KBlt: "blt", KBge: "bge", KBltu: "bltu", KBgeu: "bgeu",
	KLb: "lb", KLh: "lh", KLw: "lw", KLbu: "lbu", KLhu: "lhu",
	KSb: "sb", KSh: "sh", KSw: "sw",
	KAddi: "addi", KSlti: "slti", KSltiu: "sltiu", KXori: "xori", KOri: "ori", KAndi: "andi",
	KSlli: "slli", KSrli: "srli", KSrai: "srai",
	KAdd: "add", KSub: "sub", KSll: "sll", KSlt: "slt", KSltu: "sltu", KXor: "xor",
	KSrl: "srl", KSra: "sra", KOr: "or", KAnd: "and",
	KMul: "mul", KMulh: "mulh", KMulhsu: "mulhsu", KMulhu: "mulhu",
	KDiv: "div", KDivu: "divu", KRem: "rem", KRemu: "remu",
	KSh1add: "sh1add", KSh2add: "sh2add", KSh3add: "sh3add",
	KLrW: "lr.w", KScW: "sc.w", KAmoswapW: "amoswap.w", KAmoaddW: "amoadd.w",
	KAmoxorW: "amoxor.w", KAmoandW: "amoand.w", KAmoorW: "amoor.w",
	KAmominW: "amomin.w", KAmomaxW: "amomax.w", KAmominuW: "amominu.w", KAmomaxuW: "amomaxu.w",
	KAndn: "andn", KOrn: "orn", KXnor: "xnor", KMax: "max", KMaxu: "maxu", KMin: "min", KMinu: "minu",
	KRol: "rol", KRor: "ror", KRori: "rori", KClz: "clz", KCtz: "ctz", KCpop: "cpop",
	KSextB: "sext.b", KSextH: "sext.h", KZextH: "zext.h", KOrcB: "orc.b", KRev8: "rev8",
	KBclr: "bclr", KBclri: "bclri", KBext: "bext", KBexti: "bexti",
	KBinv: "binv", KBinvi: "binvi", KBset: "bset", KBseti: "bseti",
	KPack: "pack", KPackh: "packh", KBrev8: "brev8", KZip: "zip", KUnzip: "unzip",
	KCsrrw: "csrrw", KCsrrs: "csrrs", KCsrrc: "csrrc", KCsrrwi: "csrrwi", KCsrrsi: "csrrsi", KCsrrci: "csrrci",
	KCmPush: "cm.push", KCmPop: "cm.pop", KCmPopret: "cm.popret", KCmPopretz: "cm.popretz",
	KCmMva01s: "cm.mva01s", KCmMvsa01: "cm.mvsa01",
}
