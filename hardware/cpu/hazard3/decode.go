package hazard3

// Kind identifies the operation a decoded instruction performs. Compressed
// (16-bit) encodings are expanded at decode time into the same Kind space
// as their 32-bit equivalents, so exec.go only has one dispatch table.
type Kind uint8

const (
	KInvalid Kind = iota
	KEcall
	KEbreak
	KFence
	KFenceI
	KMret
	KWfi

	KLui
	KAuipc
	KJal
	KJalr

	KBeq
	KBne
	KBlt
	KBge
	KBltu
	KBgeu

	KLb
	KLh
	KLw
	KLbu
	KLhu
	KSb
	KSh
	KSw

	KAddi
	KSlti
	KSltiu
	KXori
	KOri
	KAndi
	KSlli
	KSrli
	KSrai

	KAdd
	KSub
	KSll
	KSlt
	KSltu
	KXor
	KSrl
	KSra
	KOr
	KAnd

	KMul
	KMulh
	KMulhsu
	KMulhu
	KDiv
	KDivu
	KRem
	KRemu

	KSh1add
	KSh2add
	KSh3add

	KLrW
	KScW
	KAmoswapW
	KAmoaddW
	KAmoxorW
	KAmoandW
	KAmoorW
	KAmominW
	KAmomaxW
	KAmominuW
	KAmomaxuW

	KAndn
	KOrn
	KXnor
	KMax
	KMaxu
	KMin
	KMinu
	KRol
	KRor
	KRori
	KClz
	KCtz
	KCpop
	KSextB
	KSextH
	KZextH
	KOrcB
	KRev8

	KBclr
	KBclri
	KBext
	KBexti
	KBinv
	KBinvi
	KBset
	KBseti

	KPack
	KPackh
	KBrev8
	KZip
	KUnzip

	KCsrrw
	KCsrrs
	KCsrrc
	KCsrrwi
	KCsrrsi
	KCsrrci

	KCmPush
	KCmPop
	KCmPopret
	KCmPopretz
	KCmMva01s
	KCmMvsa01
)

// Instruction is a fully-decoded instruction, ready for Execute. Compressed
// forms are pre-expanded so Imm/Rd/Rs1/Rs2 always mean the same thing
// regardless of Size.
type Instruction struct {
	Kind Kind
	Size uint32 // 2 or 4

	Rd, Rs1, Rs2 Register
	Imm          uint32
	Shamt        uint32
	CsrAddr      uint16

	// Regs lists the extra registers touched by a Zcmp push/pop, beyond Rd,
	// in push (high-address-first) order: ra, s0, s1, ...
	Regs      []Register
	StackAdj  uint32
	Raw       uint32
}

func extractBits(v uint32, lo, hi uint) uint32 {
	width := hi - lo + 1
	mask := uint32(1)<<width - 1
	return (v >> lo) & mask
}

func rd(inst uint32) Register  { return Register(extractBits(inst, 7, 11)) }
func rs1(inst uint32) Register { return Register(extractBits(inst, 15, 19)) }
func rs2(inst uint32) Register { return Register(extractBits(inst, 20, 24)) }
func funct3(inst uint32) uint32 { return extractBits(inst, 12, 14) }
func funct7(inst uint32) uint32 { return extractBits(inst, 25, 31) }

func iImm(inst uint32) uint32 {
	return signExtend(extractBits(inst, 20, 31), 11)
}

func sImm(inst uint32) uint32 {
	v := extractBits(inst, 25, 31)<<5 | extractBits(inst, 7, 11)
	return signExtend(v, 11)
}

func bImm(inst uint32) uint32 {
	v := extractBits(inst, 31, 31)<<12 | extractBits(inst, 7, 7)<<11 |
		extractBits(inst, 25, 30)<<5 | extractBits(inst, 8, 11)<<1
	return signExtend(v, 12)
}

func uImm(inst uint32) uint32 { return inst & 0xFFFFF000 }

func jImm(inst uint32) uint32 {
	v := extractBits(inst, 31, 31)<<20 | extractBits(inst, 12, 19)<<12 |
		extractBits(inst, 20, 20)<<11 | extractBits(inst, 21, 30)<<1
	return signExtend(v, 20)
}

const opcodeAtomic = 0b0101111

// Decode decodes a single instruction word. raw holds either a 16-bit
// compressed instruction in its low half, or a full 32-bit instruction,
// distinguished by the low two bits (0b11 means 32-bit).
func Decode(raw uint32) Instruction {
	if raw&0b11 == 0b11 {
		return decode32(raw)
	}
	return decode16(uint16(raw))
}

func decode32(inst uint32) Instruction {
	base := Instruction{Size: 4, Raw: inst}

	switch inst {
	case 0b00000000000000000000000001110011:
		base.Kind = KEcall
		return base
	case 0b00000000000100000000000001110011:
		base.Kind = KEbreak
		return base
	case 0b00110000001000000000000001110011:
		base.Kind = KMret
		return base
	case 0b00010000010100000000000001110011:
		base.Kind = KWfi
		return base
	case 0b00000000000000000001000000001111:
		base.Kind = KFenceI
		return base
	}
	if extractBits(inst, 0, 19) == 0b00000000000000001111 {
		base.Kind = KFence
		return base
	}

	opcode := inst & 0b1111111
	f3 := funct3(inst)
	f7 := funct7(inst)

	switch opcode {
	case 0b0110111:
		base.Kind, base.Rd, base.Imm = KLui, rd(inst), uImm(inst)
	case 0b0010111:
		base.Kind, base.Rd, base.Imm = KAuipc, rd(inst), uImm(inst)
	case 0b1101111:
		base.Kind, base.Rd, base.Imm = KJal, rd(inst), jImm(inst)
	case 0b1100111:
		base.Kind, base.Rd, base.Rs1, base.Imm = KJalr, rd(inst), rs1(inst), iImm(inst)

	case 0b1110011:
		base.Rd, base.Rs1, base.CsrAddr = rd(inst), rs1(inst), uint16(extractBits(inst, 20, 31))
		switch f3 {
		case 0b001:
			base.Kind = KCsrrw
		case 0b010:
			base.Kind = KCsrrs
		case 0b011:
			base.Kind = KCsrrc
		case 0b101:
			base.Kind, base.Imm = KCsrrwi, uint32(rs1(inst))
		case 0b110:
			base.Kind, base.Imm = KCsrrsi, uint32(rs1(inst))
		case 0b111:
			base.Kind, base.Imm = KCsrrci, uint32(rs1(inst))
		}

	case 0b1100011:
		base.Rs1, base.Rs2, base.Imm = rs1(inst), rs2(inst), bImm(inst)
		switch f3 {
		case 0b000:
			base.Kind = KBeq
		case 0b001:
			base.Kind = KBne
		case 0b100:
			base.Kind = KBlt
		case 0b101:
			base.Kind = KBge
		case 0b110:
			base.Kind = KBltu
		case 0b111:
			base.Kind = KBgeu
		}

	case 0b0000011:
		base.Rd, base.Rs1, base.Imm = rd(inst), rs1(inst), iImm(inst)
		switch f3 {
		case 0b000:
			base.Kind = KLb
		case 0b001:
			base.Kind = KLh
		case 0b010:
			base.Kind = KLw
		case 0b100:
			base.Kind = KLbu
		case 0b101:
			base.Kind = KLhu
		}

	case 0b0100011:
		base.Rs1, base.Rs2, base.Imm = rs1(inst), rs2(inst), sImm(inst)
		switch f3 {
		case 0b000:
			base.Kind = KSb
		case 0b001:
			base.Kind = KSh
		case 0b010:
			base.Kind = KSw
		}

	case 0b0010011:
		base.Rd, base.Rs1 = rd(inst), rs1(inst)
		base.Imm = iImm(inst)
		base.Shamt = extractBits(inst, 20, 24)
		r2 := rs2(inst)
		switch {
		case f3 == 0b000:
			base.Kind = KAddi
		case f3 == 0b010:
			base.Kind = KSlti
		case f3 == 0b011:
			base.Kind = KSltiu
		case f3 == 0b100:
			base.Kind = KXori
		case f3 == 0b110:
			base.Kind = KOri
		case f3 == 0b111:
			base.Kind = KAndi
		case f3 == 0b001 && f7 == 0b0100100:
			base.Kind = KBclri
		case f3 == 0b101 && f7 == 0b0100100:
			base.Kind = KBexti
		case f3 == 0b001 && f7 == 0b0110100:
			base.Kind = KBinvi
		case f3 == 0b001 && f7 == 0b0010100:
			base.Kind = KBseti
		case f3 == 0b001 && f7 == 0b0000000:
			base.Kind = KSlli
		case f3 == 0b001 && f7 == 0b0110000:
			switch r2 {
			case 0b00000:
				base.Kind = KClz
			case 0b00010:
				base.Kind = KCpop
			case 0b00001:
				base.Kind = KCtz
			case 0b00100:
				base.Kind = KSextB
			case 0b00101:
				base.Kind = KSextH
			}
		case f3 == 0b101 && f7 == 0b0000000:
			base.Kind = KSrli
		case f3 == 0b101 && f7 == 0b0100000:
			base.Kind = KSrai
		case f3 == 0b101 && f7 == 0b0010100 && r2 == 0b00111:
			base.Kind = KOrcB
		case f3 == 0b101 && f7 == 0b0110100 && r2 == 0b11000:
			base.Kind = KRev8
		case f3 == 0b101 && f7 == 0b0110000:
			base.Kind = KRori
		case f3 == 0b101 && f7 == 0b0110100 && r2 == 0b00111:
			base.Kind = KBrev8
		case f3 == 0b101 && f7 == 0b0000100 && r2 == 0b01111:
			base.Kind = KUnzip
		case f3 == 0b001 && f7 == 0b0000100 && r2 == 0b01111:
			base.Kind = KZip
		}

	case 0b0110011:
		base.Rd, base.Rs1, base.Rs2 = rd(inst), rs1(inst), rs2(inst)
		r2 := base.Rs2
		switch {
		case f3 == 0b000 && f7 == 0b0000000:
			base.Kind = KAdd
		case f3 == 0b000 && f7 == 0b0100000:
			base.Kind = KSub
		case f3 == 0b001 && f7 == 0b0000000:
			base.Kind = KSll
		case f3 == 0b010 && f7 == 0b0000000:
			base.Kind = KSlt
		case f3 == 0b011 && f7 == 0b0000000:
			base.Kind = KSltu
		case f3 == 0b100 && f7 == 0b0000000:
			base.Kind = KXor
		case f3 == 0b101 && f7 == 0b0000000:
			base.Kind = KSrl
		case f3 == 0b101 && f7 == 0b0100000:
			base.Kind = KSra
		case f3 == 0b110 && f7 == 0b0000000:
			base.Kind = KOr
		case f3 == 0b111 && f7 == 0b0000000:
			base.Kind = KAnd
		case f3 == 0b000 && f7 == 0b0000001:
			base.Kind = KMul
		case f3 == 0b001 && f7 == 0b0000001:
			base.Kind = KMulh
		case f3 == 0b010 && f7 == 0b0000001:
			base.Kind = KMulhsu
		case f3 == 0b011 && f7 == 0b0000001:
			base.Kind = KMulhu
		case f3 == 0b100 && f7 == 0b0000001:
			base.Kind = KDiv
		case f3 == 0b101 && f7 == 0b0000001:
			base.Kind = KDivu
		case f3 == 0b110 && f7 == 0b0000001:
			base.Kind = KRem
		case f3 == 0b111 && f7 == 0b0000001:
			base.Kind = KRemu
		case f3 == 0b010 && f7 == 0b0010000:
			base.Kind = KSh1add
		case f3 == 0b100 && f7 == 0b0010000:
			base.Kind = KSh2add
		case f3 == 0b110 && f7 == 0b0010000:
			base.Kind = KSh3add
		case f3 == 0b001 && f7 == 0b0100100:
			base.Kind = KBclr
		case f3 == 0b101 && f7 == 0b0100100:
			base.Kind = KBext
		case f3 == 0b001 && f7 == 0b0110100:
			base.Kind = KBinv
		case f3 == 0b001 && f7 == 0b0010100:
			base.Kind = KBset
		case f3 == 0b111 && f7 == 0b0100000:
			base.Kind = KAndn
		case f3 == 0b110 && f7 == 0b0000101:
			base.Kind = KMax
		case f3 == 0b111 && f7 == 0b0000101:
			base.Kind = KMaxu
		case f3 == 0b100 && f7 == 0b0000101:
			base.Kind = KMin
		case f3 == 0b101 && f7 == 0b0000101:
			base.Kind = KMinu
		case f3 == 0b110 && f7 == 0b0100000:
			base.Kind = KOrn
		case f3 == 0b001 && f7 == 0b0110000:
			base.Kind = KRol
		case f3 == 0b101 && f7 == 0b0110000:
			base.Kind = KRor
		case f3 == 0b100 && f7 == 0b0100000:
			base.Kind = KXnor
		case f3 == 0b100 && f7 == 0b0000100 && r2 == 0:
			base.Kind = KZextH
		case f3 == 0b100 && f7 == 0b0000100:
			base.Kind = KPack
		case f3 == 0b111 && f7 == 0b0000100:
			base.Kind = KPackh
		}

	case opcodeAtomic:
		if f3 != 0b010 {
			break
		}
		base.Rd, base.Rs1, base.Rs2 = rd(inst), rs1(inst), rs2(inst)
		switch extractBits(inst, 27, 31) {
		case 0b00010:
			if base.Rs2 == 0 {
				base.Kind = KLrW
			}
		case 0b00011:
			base.Kind = KScW
		case 0b00001:
			base.Kind = KAmoswapW
		case 0b00000:
			base.Kind = KAmoaddW
		case 0b00100:
			base.Kind = KAmoxorW
		case 0b01100:
			base.Kind = KAmoandW
		case 0b01000:
			base.Kind = KAmoorW
		case 0b10000:
			base.Kind = KAmominW
		case 0b10100:
			base.Kind = KAmomaxW
		case 0b11000:
			base.Kind = KAmominuW
		case 0b11100:
			base.Kind = KAmomaxuW
		}
	}

	return base
}

var zcmpRegOrder = []Register{1, 8, 9, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27}

// sRegisterTable maps the Zcmp 3-bit "sreg" field used by cm.mvsa01 and
// cm.mva01s to its architectural register number: s0-s1 are the
// contiguous x8-x9, but s2-s7 skip over a0/a1/a2-a7 to land at x18-x23.
var sRegisterTable = [8]Register{8, 9, 18, 19, 20, 21, 22, 23}

func sRegister(field uint32) Register { return sRegisterTable[field&0b111] }

// zcmpRegs returns the register list (ra, s0, s1, ...) pushed/popped by a
// Zcmp rlist encoding, and the stack adjustment in bytes (before the
// 2-bit spimm scaling is added by the caller).
func zcmpRegs(rlist uint32) ([]Register, uint32) {
	if rlist < 4 {
		return nil, 0
	}
	count := int(rlist - 3) // total saved regs, including ra, per the rlist table
	if rlist == 15 {
		count = 13 // ra, s0-s11: s10 and s11 are always saved together
	}
	if count > len(zcmpRegOrder) {
		count = len(zcmpRegOrder)
	}
	regs := zcmpRegOrder[:count]
	n := len(regs)
	var base uint32
	switch {
	case n <= 4:
		base = 16
	case n <= 8:
		base = 32
	case n <= 12:
		base = 48
	default:
		base = 64
	}
	return regs, base
}

func decode16(inst uint16) Instruction {
	base := Instruction{Size: 2, Raw: uint32(inst)}
	opcode := inst & 0b11
	f3 := uint16(extractBits(uint32(inst), 13, 15))

	rdRs1Wide := Register(extractBits(uint32(inst), 7, 11))
	rs2Wide := Register(extractBits(uint32(inst), 2, 6))
	rdPrime := Register(extractBits(uint32(inst), 2, 4)) + 8
	rs1Prime := Register(extractBits(uint32(inst), 7, 9)) + 8
	rs2Prime := Register(extractBits(uint32(inst), 2, 4)) + 8

	switch opcode {
	case 0b00:
		switch f3 {
		case 0b000: // C.ADDI4SPN
			nzuimm := extractBits(uint32(inst), 11, 12)<<4 | extractBits(uint32(inst), 7, 10)<<6 |
				extractBits(uint32(inst), 6, 6)<<2 | extractBits(uint32(inst), 5, 5)<<3
			if nzuimm == 0 {
				break
			}
			base.Kind, base.Rd, base.Rs1, base.Imm = KAddi, rdPrime, 2, nzuimm
		case 0b010: // C.LW
			imm := extractBits(uint32(inst), 10, 12)<<3 | extractBits(uint32(inst), 6, 6)<<2 | extractBits(uint32(inst), 5, 5)<<6
			base.Kind, base.Rd, base.Rs1, base.Imm = KLw, rdPrime, rs1Prime, imm
		case 0b110: // C.SW
			imm := extractBits(uint32(inst), 10, 12)<<3 | extractBits(uint32(inst), 6, 6)<<2 | extractBits(uint32(inst), 5, 5)<<6
			base.Kind, base.Rs1, base.Rs2, base.Imm = KSw, rs1Prime, rs2Prime, imm
		}

	case 0b01:
		switch f3 {
		case 0b000: // C.ADDI / C.NOP
			imm := signExtend(extractBits(uint32(inst), 12, 12)<<5|extractBits(uint32(inst), 2, 6), 5)
			base.Kind, base.Rd, base.Rs1, base.Imm = KAddi, rdRs1Wide, rdRs1Wide, imm
		case 0b001: // C.JAL (RV32)
			imm := jalCImm(inst)
			base.Kind, base.Rd, base.Imm = KJal, 1, imm
		case 0b010: // C.LI
			imm := signExtend(extractBits(uint32(inst), 12, 12)<<5|extractBits(uint32(inst), 2, 6), 5)
			base.Kind, base.Rd, base.Rs1, base.Imm = KAddi, rdRs1Wide, 0, imm
		case 0b011:
			if rdRs1Wide == 2 { // C.ADDI16SP
				imm := signExtend(
					extractBits(uint32(inst), 12, 12)<<9|extractBits(uint32(inst), 6, 6)<<4|
						extractBits(uint32(inst), 5, 5)<<6|extractBits(uint32(inst), 3, 4)<<7|
						extractBits(uint32(inst), 2, 2)<<5, 9)
				base.Kind, base.Rd, base.Rs1, base.Imm = KAddi, 2, 2, imm
			} else if rdRs1Wide != 0 { // C.LUI
				imm := signExtend(extractBits(uint32(inst), 12, 12)<<17|extractBits(uint32(inst), 2, 6)<<12, 17)
				base.Kind, base.Rd, base.Imm = KLui, rdRs1Wide, imm
			}
		case 0b100:
			funct2 := extractBits(uint32(inst), 10, 11)
			switch funct2 {
			case 0b00: // C.SRLI
				shamt := extractBits(uint32(inst), 12, 12)<<5 | extractBits(uint32(inst), 2, 6)
				base.Kind, base.Rd, base.Rs1, base.Shamt = KSrli, rs1Prime, rs1Prime, shamt
			case 0b01: // C.SRAI
				shamt := extractBits(uint32(inst), 12, 12)<<5 | extractBits(uint32(inst), 2, 6)
				base.Kind, base.Rd, base.Rs1, base.Shamt = KSrai, rs1Prime, rs1Prime, shamt
			case 0b10: // C.ANDI
				imm := signExtend(extractBits(uint32(inst), 12, 12)<<5|extractBits(uint32(inst), 2, 6), 5)
				base.Kind, base.Rd, base.Rs1, base.Imm = KAndi, rs1Prime, rs1Prime, imm
			case 0b11:
				// bit 12 == 1 holds the RV64-only C.*W forms and the Zcb
				// C.ZEXT.*/C.SEXT.*/C.NOT/C.MUL forms; none are decoded
				// here, so they stay KInvalid.
				if extractBits(uint32(inst), 12, 12) == 0 {
					funct2b := extractBits(uint32(inst), 5, 6)
					base.Rd, base.Rs1, base.Rs2 = rs1Prime, rs1Prime, rs2Prime
					switch funct2b {
					case 0b00:
						base.Kind = KSub
					case 0b01:
						base.Kind = KXor
					case 0b10:
						base.Kind = KOr
					case 0b11:
						base.Kind = KAnd
					}
				}
			}
		case 0b101: // C.J
			imm := jalCImm(inst)
			base.Kind, base.Rd, base.Imm = KJal, 0, imm
		case 0b110, 0b111: // C.BEQZ / C.BNEZ
			imm := signExtend(
				extractBits(uint32(inst), 12, 12)<<8|extractBits(uint32(inst), 10, 11)<<3|
					extractBits(uint32(inst), 5, 6)<<6|extractBits(uint32(inst), 3, 4)<<1|
					extractBits(uint32(inst), 2, 2)<<5, 8)
			base.Rs1, base.Rs2, base.Imm = rs1Prime, 0, imm
			if f3 == 0b110 {
				base.Kind = KBeq
			} else {
				base.Kind = KBne
			}
		}

	case 0b10:
		switch f3 {
		case 0b000: // C.SLLI
			if rdRs1Wide == 0 {
				break
			}
			shamt := extractBits(uint32(inst), 12, 12)<<5 | extractBits(uint32(inst), 2, 6)
			base.Kind, base.Rd, base.Rs1, base.Shamt = KSlli, rdRs1Wide, rdRs1Wide, shamt
		case 0b010: // C.LWSP
			if rdRs1Wide == 0 {
				break
			}
			imm := extractBits(uint32(inst), 12, 12)<<5 | extractBits(uint32(inst), 4, 6)<<2 | extractBits(uint32(inst), 2, 3)<<6
			base.Kind, base.Rd, base.Rs1, base.Imm = KLw, rdRs1Wide, 2, imm
		case 0b100:
			bit12 := extractBits(uint32(inst), 12, 12)
			switch {
			case bit12 == 0 && rs2Wide == 0 && rdRs1Wide != 0: // C.JR
				base.Kind, base.Rd, base.Rs1, base.Imm = KJalr, 0, rdRs1Wide, 0
			case bit12 == 0 && rs2Wide != 0: // C.MV
				base.Kind, base.Rd, base.Rs1, base.Rs2 = KAdd, rdRs1Wide, 0, rs2Wide
			case bit12 == 1 && rdRs1Wide == 0 && rs2Wide == 0: // C.EBREAK
				base.Kind = KEbreak
			case bit12 == 1 && rs2Wide == 0 && rdRs1Wide != 0: // C.JALR
				base.Kind, base.Rd, base.Rs1, base.Imm = KJalr, 1, rdRs1Wide, 0
			case bit12 == 1 && rs2Wide != 0: // C.ADD
				base.Kind, base.Rd, base.Rs1, base.Rs2 = KAdd, rdRs1Wide, rdRs1Wide, rs2Wide
			}
		case 0b110: // C.SWSP
			imm := extractBits(uint32(inst), 9, 12)<<2 | extractBits(uint32(inst), 7, 8)<<6
			base.Kind, base.Rs1, base.Rs2, base.Imm = KSw, 2, rs2Wide, imm
		case 0b101: // Zcmp: CM.PUSH / CM.POP / CM.POPRET / CM.POPRETZ / CM.MVA01S / CM.MVSA01
			bits1012 := extractBits(uint32(inst), 10, 12)
			bits89 := extractBits(uint32(inst), 8, 9)
			bits56 := extractBits(uint32(inst), 5, 6)
			rlist := extractBits(uint32(inst), 4, 7)
			spimm := extractBits(uint32(inst), 2, 3)

			switch {
			case bits1012 == 0b110 && bits89 == 0b00:
				regs, stackBase := zcmpRegs(rlist)
				base.Kind, base.Regs, base.StackAdj = KCmPush, regs, stackBase+spimm*16
			case bits1012 == 0b110 && bits89 == 0b10:
				regs, stackBase := zcmpRegs(rlist)
				base.Kind, base.Regs, base.StackAdj = KCmPop, regs, stackBase+spimm*16
			case bits1012 == 0b111 && bits89 == 0b00:
				regs, stackBase := zcmpRegs(rlist)
				base.Kind, base.Regs, base.StackAdj = KCmPopretz, regs, stackBase+spimm*16
			case bits1012 == 0b111 && bits89 == 0b10:
				regs, stackBase := zcmpRegs(rlist)
				base.Kind, base.Regs, base.StackAdj = KCmPopret, regs, stackBase+spimm*16
			case bits1012 == 0b011 && bits56 == 0b01:
				base.Kind = KCmMvsa01
				base.Rd = sRegister(extractBits(uint32(inst), 7, 9))
				base.Rs1 = sRegister(extractBits(uint32(inst), 2, 4))
			case bits1012 == 0b011 && bits56 == 0b11:
				base.Kind = KCmMva01s
				base.Rd = sRegister(extractBits(uint32(inst), 7, 9))
				base.Rs1 = sRegister(extractBits(uint32(inst), 2, 4))
			}
		}
	}

	return base
}

func jalCImm(inst uint16) uint32 {
	v := extractBits(uint32(inst), 12, 12)<<11 | extractBits(uint32(inst), 8, 8)<<10 |
		extractBits(uint32(inst), 9, 10)<<8 | extractBits(uint32(inst), 6, 6)<<7 |
		extractBits(uint32(inst), 7, 7)<<6 | extractBits(uint32(inst), 2, 2)<<5 |
		extractBits(uint32(inst), 11, 11)<<4 | extractBits(uint32(inst), 3, 5)<<1
	return signExtend(v, 11)
}
