package hazard3

import (
	"github.com/rp2350sim/core/hardware/bus"
	"github.com/rp2350sim/core/hardware/common"
)

func asSigned(v uint32) int32 { return int32(v) }

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func loadCtx(core *Core, size common.Size, signed, exclusive bool) bus.AccessContext {
	return bus.AccessContext{
		Secure:       true,
		Requestor:    core.requestor(),
		Size:         size,
		Signed:       signed,
		Exclusive:    exclusive,
		Architecture: common.Hazard3,
	}
}

// execute runs one decoded instruction. It returns a trap if the
// instruction faulted, and an absolute pc override for control-flow
// instructions (branches taken, jumps, csr-driven jumps); a nil override
// means "advance by inst.Size".
func (c *Core) execute(b *bus.Bus, inst Instruction) (trap *Trap, pcOverride *uint32) {
	pc := c.PC

	switch inst.Kind {
	case KInvalid:
		t := ExceptionTrap(IllegalInstruction)
		return &t, nil

	case KEcall:
		var t Trap
		if c.Csrs.PrivilegeMode() == MachineMode {
			t = ExceptionTrap(EcallMMode)
		} else {
			t = ExceptionTrap(EcallUMode)
		}
		return &t, nil

	case KEbreak:
		t := ExceptionTrap(BreakPoint)
		return &t, nil

	case KFence, KFenceI:
		// No caches or store buffers modelled; both are no-ops.

	case KWfi:
		c.State = StateWfi

	case KMret:
		target := c.Csrs.TrapMRET()
		return nil, &target

	case KLui:
		c.Regs.Write(inst.Rd, inst.Imm)
	case KAuipc:
		c.Regs.Write(inst.Rd, pc+inst.Imm)

	case KJal:
		target := pc + inst.Imm
		c.Regs.Write(inst.Rd, pc+inst.Size)
		return nil, &target
	case KJalr:
		next := (c.Regs.Read(inst.Rs1) + inst.Imm) &^ 1
		c.Regs.Write(inst.Rd, pc+inst.Size)
		return nil, &next

	case KBeq, KBne, KBlt, KBge, KBltu, KBgeu:
		a, bv := c.Regs.Read(inst.Rs1), c.Regs.Read(inst.Rs2)
		var taken bool
		switch inst.Kind {
		case KBeq:
			taken = a == bv
		case KBne:
			taken = a != bv
		case KBlt:
			taken = asSigned(a) < asSigned(bv)
		case KBge:
			taken = asSigned(a) >= asSigned(bv)
		case KBltu:
			taken = a < bv
		case KBgeu:
			taken = a >= bv
		}
		if taken {
			target := pc + inst.Imm
			return nil, &target
		}

	case KLb, KLh, KLw, KLbu, KLhu:
		size, signed := loadShape(inst.Kind)
		if !isAligned(size, c.Regs.Read(inst.Rs1)+inst.Imm) {
			t := ExceptionTrap(LoadAlignment)
			return &t, nil
		}
		addr := c.Regs.Read(inst.Rs1) + inst.Imm
		status, err := b.Load(addr, loadCtx(c, size, signed, false))
		if err != nil {
			t := ExceptionTrap(LoadFault)
			return &t, nil
		}
		c.load = &pendingLoad{status: status, rd: inst.Rd}

	case KSb, KSh, KSw:
		size := storeShape(inst.Kind)
		addr := c.Regs.Read(inst.Rs1) + inst.Imm
		if !isAligned(size, addr) {
			t := ExceptionTrap(StoreAlignment)
			return &t, nil
		}
		status, err := b.Store(addr, c.Regs.Read(inst.Rs2), loadCtx(c, size, false, false))
		if err != nil {
			t := ExceptionTrap(StoreFault)
			return &t, nil
		}
		c.store = &pendingStore{status: status}

	case KAddi:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)+inst.Imm)
	case KSlti:
		c.Regs.Write(inst.Rd, boolToU32(asSigned(c.Regs.Read(inst.Rs1)) < asSigned(inst.Imm)))
	case KSltiu:
		c.Regs.Write(inst.Rd, boolToU32(c.Regs.Read(inst.Rs1) < inst.Imm))
	case KXori:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)^inst.Imm)
	case KOri:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)|inst.Imm)
	case KAndi:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)&inst.Imm)
	case KSlli:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)<<inst.Shamt)
	case KSrli:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)>>inst.Shamt)
	case KSrai:
		c.Regs.Write(inst.Rd, uint32(asSigned(c.Regs.Read(inst.Rs1))>>inst.Shamt))

	case KAdd:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)+c.Regs.Read(inst.Rs2))
	case KSub:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)-c.Regs.Read(inst.Rs2))
	case KSll:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)<<(c.Regs.Read(inst.Rs2)&0x1f))
	case KSlt:
		c.Regs.Write(inst.Rd, boolToU32(asSigned(c.Regs.Read(inst.Rs1)) < asSigned(c.Regs.Read(inst.Rs2))))
	case KSltu:
		c.Regs.Write(inst.Rd, boolToU32(c.Regs.Read(inst.Rs1) < c.Regs.Read(inst.Rs2)))
	case KXor:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)^c.Regs.Read(inst.Rs2))
	case KSrl:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)>>(c.Regs.Read(inst.Rs2)&0x1f))
	case KSra:
		c.Regs.Write(inst.Rd, uint32(asSigned(c.Regs.Read(inst.Rs1))>>(c.Regs.Read(inst.Rs2)&0x1f)))
	case KOr:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)|c.Regs.Read(inst.Rs2))
	case KAnd:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)&c.Regs.Read(inst.Rs2))

	case KMul:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)*c.Regs.Read(inst.Rs2))
	case KMulh:
		product := signExtend64(c.Regs.Read(inst.Rs1), 31) * signExtend64(c.Regs.Read(inst.Rs2), 31)
		c.Regs.Write(inst.Rd, uint32(product>>32))
	case KMulhsu:
		product := signExtend64(c.Regs.Read(inst.Rs1), 31) * int64(c.Regs.Read(inst.Rs2))
		c.Regs.Write(inst.Rd, uint32(product>>32))
	case KMulhu:
		product := uint64(c.Regs.Read(inst.Rs1)) * uint64(c.Regs.Read(inst.Rs2))
		c.Regs.Write(inst.Rd, uint32(product>>32))
	case KDiv:
		a, bv := asSigned(c.Regs.Read(inst.Rs1)), asSigned(c.Regs.Read(inst.Rs2))
		switch {
		case bv == 0:
			c.Regs.Write(inst.Rd, 0xFFFF_FFFF)
		case a == int32(-0x8000_0000) && bv == -1:
			c.Regs.Write(inst.Rd, 0x8000_0000)
		default:
			c.Regs.Write(inst.Rd, uint32(a/bv))
		}
	case KDivu:
		a, bv := c.Regs.Read(inst.Rs1), c.Regs.Read(inst.Rs2)
		if bv == 0 {
			c.Regs.Write(inst.Rd, 0xFFFF_FFFF)
		} else {
			c.Regs.Write(inst.Rd, a/bv)
		}
	case KRem:
		a, bv := asSigned(c.Regs.Read(inst.Rs1)), asSigned(c.Regs.Read(inst.Rs2))
		switch {
		case bv == 0:
			c.Regs.Write(inst.Rd, uint32(a))
		case a == int32(-0x8000_0000) && bv == -1:
			c.Regs.Write(inst.Rd, 0)
		default:
			c.Regs.Write(inst.Rd, uint32(a%bv))
		}
	case KRemu:
		a, bv := c.Regs.Read(inst.Rs1), c.Regs.Read(inst.Rs2)
		if bv == 0 {
			c.Regs.Write(inst.Rd, a)
		} else {
			c.Regs.Write(inst.Rd, a%bv)
		}

	case KSh1add:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)<<1)+c.Regs.Read(inst.Rs2))
	case KSh2add:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)<<2)+c.Regs.Read(inst.Rs2))
	case KSh3add:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)<<3)+c.Regs.Read(inst.Rs2))

	case KLrW, KScW, KAmoswapW, KAmoaddW, KAmoxorW, KAmoandW, KAmoorW, KAmominW, KAmomaxW, KAmominuW, KAmomaxuW:
		return c.executeAtomic(b, inst)

	case KAndn:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)&^c.Regs.Read(inst.Rs2))
	case KOrn:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)|^c.Regs.Read(inst.Rs2))
	case KXnor:
		c.Regs.Write(inst.Rd, ^(c.Regs.Read(inst.Rs1) ^ c.Regs.Read(inst.Rs2)))
	case KMax:
		a, bv := asSigned(c.Regs.Read(inst.Rs1)), asSigned(c.Regs.Read(inst.Rs2))
		if a > bv {
			c.Regs.Write(inst.Rd, uint32(a))
		} else {
			c.Regs.Write(inst.Rd, uint32(bv))
		}
	case KMaxu:
		a, bv := c.Regs.Read(inst.Rs1), c.Regs.Read(inst.Rs2)
		if a > bv {
			c.Regs.Write(inst.Rd, a)
		} else {
			c.Regs.Write(inst.Rd, bv)
		}
	case KMin:
		a, bv := asSigned(c.Regs.Read(inst.Rs1)), asSigned(c.Regs.Read(inst.Rs2))
		if a < bv {
			c.Regs.Write(inst.Rd, uint32(a))
		} else {
			c.Regs.Write(inst.Rd, uint32(bv))
		}
	case KMinu:
		a, bv := c.Regs.Read(inst.Rs1), c.Regs.Read(inst.Rs2)
		if a < bv {
			c.Regs.Write(inst.Rd, a)
		} else {
			c.Regs.Write(inst.Rd, bv)
		}
	case KRol:
		shamt := c.Regs.Read(inst.Rs2) & 0x1f
		v := c.Regs.Read(inst.Rs1)
		c.Regs.Write(inst.Rd, (v<<shamt)|(v>>((32-shamt)&0x1f)))
	case KRor:
		shamt := c.Regs.Read(inst.Rs2) & 0x1f
		v := c.Regs.Read(inst.Rs1)
		c.Regs.Write(inst.Rd, (v>>shamt)|(v<<((32-shamt)&0x1f)))
	case KRori:
		shamt := inst.Shamt & 0x1f
		v := c.Regs.Read(inst.Rs1)
		c.Regs.Write(inst.Rd, (v>>shamt)|(v<<((32-shamt)&0x1f)))
	case KClz:
		v := c.Regs.Read(inst.Rs1)
		n := uint32(0)
		for n < 32 && v&(1<<(31-n)) == 0 {
			n++
		}
		c.Regs.Write(inst.Rd, n)
	case KCtz:
		v := c.Regs.Read(inst.Rs1)
		n := uint32(0)
		for n < 32 && v&(1<<n) == 0 {
			n++
		}
		c.Regs.Write(inst.Rd, n)
	case KCpop:
		v := c.Regs.Read(inst.Rs1)
		n := uint32(0)
		for v != 0 {
			n += v & 1
			v >>= 1
		}
		c.Regs.Write(inst.Rd, n)
	case KSextB:
		c.Regs.Write(inst.Rd, signExtend(c.Regs.Read(inst.Rs1)&0xff, 7))
	case KSextH:
		c.Regs.Write(inst.Rd, signExtend(c.Regs.Read(inst.Rs1)&0xffff, 15))
	case KZextH:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)&0xffff)
	case KOrcB:
		v := c.Regs.Read(inst.Rs1)
		var out uint32
		for i := 0; i < 4; i++ {
			shift := uint(i * 8)
			if (v>>shift)&0xff != 0 {
				out |= 0xff << shift
			}
		}
		c.Regs.Write(inst.Rd, out)
	case KRev8:
		v := c.Regs.Read(inst.Rs1)
		c.Regs.Write(inst.Rd, v>>24|(v>>8)&0xff00|(v<<8)&0xff0000|v<<24)

	case KBclr:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)&^(1<<(c.Regs.Read(inst.Rs2)&0x1f)))
	case KBclri:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)&^(1<<(inst.Shamt&0x1f)))
	case KBext:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)>>(c.Regs.Read(inst.Rs2)&0x1f))&1)
	case KBexti:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)>>(inst.Shamt&0x1f))&1)
	case KBinv:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)^(1<<(c.Regs.Read(inst.Rs2)&0x1f)))
	case KBinvi:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)^(1<<(inst.Shamt&0x1f)))
	case KBset:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)|(1<<(c.Regs.Read(inst.Rs2)&0x1f)))
	case KBseti:
		c.Regs.Write(inst.Rd, c.Regs.Read(inst.Rs1)|(1<<(inst.Shamt&0x1f)))

	case KPack:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)&0xffff)|(c.Regs.Read(inst.Rs2)<<16))
	case KPackh:
		c.Regs.Write(inst.Rd, (c.Regs.Read(inst.Rs1)&0xff)|((c.Regs.Read(inst.Rs2)&0xff)<<8))
	case KBrev8:
		v := c.Regs.Read(inst.Rs1)
		var out uint32
		for i := 0; i < 4; i++ {
			b := byte(v >> (uint(i) * 8))
			var r byte
			for bit := 0; bit < 8; bit++ {
				r |= ((b >> bit) & 1) << (7 - bit)
			}
			out |= uint32(r) << (uint(i) * 8)
		}
		c.Regs.Write(inst.Rd, out)
	case KZip:
		c.Regs.Write(inst.Rd, bitZip(c.Regs.Read(inst.Rs1)))
	case KUnzip:
		c.Regs.Write(inst.Rd, bitUnzip(c.Regs.Read(inst.Rs1)))

	case KCsrrw, KCsrrs, KCsrrc, KCsrrwi, KCsrrsi, KCsrrci:
		return c.executeCsr(inst)

	case KCmPush:
		return c.executePush(b, inst)
	case KCmPop, KCmPopret, KCmPopretz:
		return c.executePop(b, inst)
	case KCmMva01s:
		c.Regs.Write(10, c.Regs.Read(inst.Rd))
		c.Regs.Write(11, c.Regs.Read(inst.Rs1))
	case KCmMvsa01:
		c.Regs.Write(inst.Rd, c.Regs.Read(10))
		c.Regs.Write(inst.Rs1, c.Regs.Read(11))

	default:
		t := ExceptionTrap(IllegalInstruction)
		return &t, nil
	}

	return nil, nil
}

func loadShape(k Kind) (common.Size, bool) {
	switch k {
	case KLb:
		return common.SizeByte, true
	case KLh:
		return common.SizeHalf, true
	case KLbu:
		return common.SizeByte, false
	case KLhu:
		return common.SizeHalf, false
	default:
		return common.SizeWord, false
	}
}

func storeShape(k Kind) common.Size {
	switch k {
	case KSb:
		return common.SizeByte
	case KSh:
		return common.SizeHalf
	default:
		return common.SizeWord
	}
}

func isAligned(size common.Size, addr uint32) bool {
	switch size {
	case common.SizeHalf:
		return addr&1 == 0
	case common.SizeWord:
		return addr&0b11 == 0
	default:
		return true
	}
}

func bitZip(v uint32) uint32 {
	var out uint32
	for i := 0; i < 16; i++ {
		out |= ((v >> i) & 1) << (2 * i)
		out |= ((v >> (16 + i)) & 1) << (2*i + 1)
	}
	return out
}

func bitUnzip(v uint32) uint32 {
	var out uint32
	for i := 0; i < 16; i++ {
		out |= ((v >> (2 * i)) & 1) << i
		out |= ((v >> (2*i + 1)) & 1) << (16 + i)
	}
	return out
}

// executeAtomic implements the A-extension: LR.W/SC.W and the nine
// AMO*.W read-modify-write ops. AMOs use Bus.Fetch for the synchronous
// pre-read (valid since exclusives/AMOs are restricted to SRAM) and
// Bus.Store for the deferred write-back; the destination register
// receives the pre-op value immediately, as RISC-V requires.
func (c *Core) executeAtomic(b *bus.Bus, inst Instruction) (*Trap, *uint32) {
	addr := c.Regs.Read(inst.Rs1)
	if !isAligned(common.SizeWord, addr) {
		t := ExceptionTrap(StoreAlignment)
		return &t, nil
	}

	if inst.Kind == KLrW {
		status, err := b.Load(addr, loadCtx(c, common.SizeWord, false, true))
		if err != nil {
			t := ExceptionTrap(LoadFault)
			return &t, nil
		}
		c.load = &pendingLoad{status: status, rd: inst.Rd}
		return nil, nil
	}

	if inst.Kind == KScW {
		status, err := b.Store(addr, c.Regs.Read(inst.Rs2), loadCtx(c, common.SizeWord, false, true))
		if err != nil {
			t := ExceptionTrap(StoreFault)
			return &t, nil
		}
		rd := inst.Rd
		c.store = &pendingStore{status: status, rd: &rd}
		return nil, nil
	}

	old, err := b.Fetch(addr)
	if err != nil {
		t := ExceptionTrap(LoadFault)
		return &t, nil
	}

	rhs := c.Regs.Read(inst.Rs2)
	var result uint32
	switch inst.Kind {
	case KAmoswapW:
		result = rhs
	case KAmoaddW:
		result = old + rhs
	case KAmoxorW:
		result = old ^ rhs
	case KAmoandW:
		result = old & rhs
	case KAmoorW:
		result = old | rhs
	case KAmominW:
		if asSigned(old) < asSigned(rhs) {
			result = old
		} else {
			result = rhs
		}
	case KAmomaxW:
		if asSigned(old) > asSigned(rhs) {
			result = old
		} else {
			result = rhs
		}
	case KAmominuW:
		if old < rhs {
			result = old
		} else {
			result = rhs
		}
	case KAmomaxuW:
		if old > rhs {
			result = old
		} else {
			result = rhs
		}
	}

	status, err := b.Store(addr, result, loadCtx(c, common.SizeWord, false, false))
	if err != nil {
		t := ExceptionTrap(StoreFault)
		return &t, nil
	}
	c.store = &pendingStore{status: status}
	c.Regs.Write(inst.Rd, old)
	return nil, nil
}

// executeCsr implements the six CSRRW/CSRRS/CSRRC/CSRRWI/CSRRSI/CSRRCI
// forms. The read (if any) observes the CSR's value before this
// instruction's own write is staged; the write itself is deferred to the
// csrFile's pending-write slot and only applied at the start of the next
// tick, so a same-instruction read-then-write never observes its own
// write.
func (c *Core) executeCsr(inst Instruction) (*Trap, *uint32) {
	var operand uint32
	readsRs1 := inst.Kind == KCsrrw || inst.Kind == KCsrrs || inst.Kind == KCsrrc
	if readsRs1 {
		operand = c.Regs.Read(inst.Rs1)
	} else {
		operand = inst.Imm
	}

	needsRead := inst.Kind != KCsrrw && inst.Kind != KCsrrwi || inst.Rd != 0
	var current uint32
	if needsRead {
		v, ok := c.Csrs.Read(inst.CsrAddr)
		if !ok {
			t := ExceptionTrap(IllegalInstruction)
			return &t, nil
		}
		current = v
	}

	var newValue uint32
	switch inst.Kind {
	case KCsrrw, KCsrrwi:
		newValue = operand
	case KCsrrs, KCsrrsi:
		newValue = current | operand
	case KCsrrc, KCsrrci:
		newValue = current &^ operand
	}

	writesCsr := !((inst.Kind == KCsrrs || inst.Kind == KCsrrsi || inst.Kind == KCsrrc || inst.Kind == KCsrrci) && operand == 0)
	if writesCsr {
		if !c.Csrs.Write(inst.CsrAddr, newValue) {
			t := ExceptionTrap(IllegalInstruction)
			return &t, nil
		}
	}

	if inst.Rd != 0 {
		c.Regs.Write(inst.Rd, current)
	}
	return nil, nil
}

// executePush implements cm.push: store ra, s0..sN downward from the new
// stack pointer, then adjust sp.
func (c *Core) executePush(b *bus.Bus, inst Instruction) (*Trap, *uint32) {
	sp := c.Regs.Read(2) - inst.StackAdj
	addr := sp + inst.StackAdj - 4
	for _, reg := range inst.Regs {
		if err := c.storeWordSync(b, addr, c.Regs.Read(reg)); err != nil {
			t := ExceptionTrap(StoreFault)
			return &t, nil
		}
		addr -= 4
	}
	c.Regs.Write(2, sp)
	return nil, nil
}

// executePop implements cm.pop/cm.popret/cm.popretz: restore ra, s0..sN
// from the stack, deallocate the frame, and (for the *ret* forms) return
// through ra, optionally zeroing a0 first.
func (c *Core) executePop(b *bus.Bus, inst Instruction) (*Trap, *uint32) {
	sp := c.Regs.Read(2)
	addr := sp + inst.StackAdj - 4
	for _, reg := range inst.Regs {
		v, err := c.loadWordSync(b, addr)
		if err != nil {
			t := ExceptionTrap(LoadFault)
			return &t, nil
		}
		c.Regs.Write(reg, v)
		addr -= 4
	}
	c.Regs.Write(2, sp+inst.StackAdj)

	if inst.Kind == KCmPopretz {
		c.Regs.Write(10, 0)
	}
	if inst.Kind == KCmPopret || inst.Kind == KCmPopretz {
		target := c.Regs.Read(1)
		return nil, &target
	}
	return nil, nil
}

// storeWordSync and loadWordSync give cm.push/cm.pop direct SRAM access
// for their multi-register stack spills. The bus's deferred Load/Store
// allows only one outstanding transaction per requestor, which a
// multi-register spill would immediately violate; real Hazard3 executes
// the whole sequence as one atomic microcoded bus burst, so going direct
// to the backing store (cm.push/pop only ever target the core's own
// stack, always in SRAM) reproduces that atomicity without modelling a
// burst transaction the bus doesn't otherwise support.
func (c *Core) storeWordSync(b *bus.Bus, addr uint32, value uint32) error {
	if regionOfAddr(addr) != bus.RegionSRAM {
		return errExclusiveRegion
	}
	return b.SRAM.WriteU32(addr-bus.RegionSRAM, value)
}

func (c *Core) loadWordSync(b *bus.Bus, addr uint32) (uint32, error) {
	if regionOfAddr(addr) != bus.RegionSRAM {
		return 0, errExclusiveRegion
	}
	return b.SRAM.ReadU32(addr - bus.RegionSRAM)
}

func regionOfAddr(addr uint32) uint32 { return addr & 0xF000_0000 }

type regionError struct{}

func (regionError) Error() string { return "hazard3: cm.push/cm.pop address outside SRAM" }

var errExclusiveRegion = regionError{}
