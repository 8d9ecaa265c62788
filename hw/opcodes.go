package hw

// AddrMode enumerates the thirteen 6502 addressing modes.
type AddrMode uint8

const (
	addrImp AddrMode = iota
	addrAcc
	addrImm
	addrZP
	addrZPX
	addrZPY
	addrABS
	addrABX
	addrABY
	addrIND
	addrIZX
	addrIZY
	addrREL
)

// opcode describes one entry of the 256-entry dispatch table: mnemonic,
// addressing mode, base cycle count, whether a page cross earns an extra
// cycle, and the executor. Mnemonics starting with '*' are the documented
// illegal opcodes. Entries with a nil executor jam the CPU.
type opcode struct {
	name        string
	mode        AddrMode
	cycles      uint8
	pagePenalty bool
	fn          func(*CPU, stepInfo)
}

var opcodes = [256]opcode{
	0x00: {"BRK", addrImp, 7, false, brk},
	0x01: {"ORA", addrIZX, 6, false, ora},
	0x05: {"ORA", addrZP, 3, false, ora},
	0x06: {"ASL", addrZP, 5, false, asl},
	0x08: {"PHP", addrImp, 3, false, php},
	0x09: {"ORA", addrImm, 2, false, ora},
	0x0A: {"ASL", addrAcc, 2, false, asl},
	0x0D: {"ORA", addrABS, 4, false, ora},
	0x0E: {"ASL", addrABS, 6, false, asl},
	0x10: {"BPL", addrREL, 2, false, bpl},
	0x11: {"ORA", addrIZY, 5, true, ora},
	0x15: {"ORA", addrZPX, 4, false, ora},
	0x16: {"ASL", addrZPX, 6, false, asl},
	0x18: {"CLC", addrImp, 2, false, clc},
	0x19: {"ORA", addrABY, 4, true, ora},
	0x1D: {"ORA", addrABX, 4, true, ora},
	0x1E: {"ASL", addrABX, 7, false, asl},
	0x20: {"JSR", addrABS, 6, false, jsr},
	0x21: {"AND", addrIZX, 6, false, and},
	0x24: {"BIT", addrZP, 3, false, bit},
	0x25: {"AND", addrZP, 3, false, and},
	0x26: {"ROL", addrZP, 5, false, rol},
	0x28: {"PLP", addrImp, 4, false, plp},
	0x29: {"AND", addrImm, 2, false, and},
	0x2A: {"ROL", addrAcc, 2, false, rol},
	0x2C: {"BIT", addrABS, 4, false, bit},
	0x2D: {"AND", addrABS, 4, false, and},
	0x2E: {"ROL", addrABS, 6, false, rol},
	0x30: {"BMI", addrREL, 2, false, bmi},
	0x31: {"AND", addrIZY, 5, true, and},
	0x35: {"AND", addrZPX, 4, false, and},
	0x36: {"ROL", addrZPX, 6, false, rol},
	0x38: {"SEC", addrImp, 2, false, sec},
	0x39: {"AND", addrABY, 4, true, and},
	0x3D: {"AND", addrABX, 4, true, and},
	0x3E: {"ROL", addrABX, 7, false, rol},
	0x40: {"RTI", addrImp, 6, false, rti},
	0x41: {"EOR", addrIZX, 6, false, eor},
	0x45: {"EOR", addrZP, 3, false, eor},
	0x46: {"LSR", addrZP, 5, false, lsr},
	0x48: {"PHA", addrImp, 3, false, pha},
	0x49: {"EOR", addrImm, 2, false, eor},
	0x4A: {"LSR", addrAcc, 2, false, lsr},
	0x4C: {"JMP", addrABS, 3, false, jmp},
	0x4D: {"EOR", addrABS, 4, false, eor},
	0x4E: {"LSR", addrABS, 6, false, lsr},
	0x50: {"BVC", addrREL, 2, false, bvc},
	0x51: {"EOR", addrIZY, 5, true, eor},
	0x55: {"EOR", addrZPX, 4, false, eor},
	0x56: {"LSR", addrZPX, 6, false, lsr},
	0x58: {"CLI", addrImp, 2, false, cli},
	0x59: {"EOR", addrABY, 4, true, eor},
	0x5D: {"EOR", addrABX, 4, true, eor},
	0x5E: {"LSR", addrABX, 7, false, lsr},
	0x60: {"RTS", addrImp, 6, false, rts},
	0x61: {"ADC", addrIZX, 6, false, adc},
	0x65: {"ADC", addrZP, 3, false, adc},
	0x66: {"ROR", addrZP, 5, false, ror},
	0x68: {"PLA", addrImp, 4, false, pla},
	0x69: {"ADC", addrImm, 2, false, adc},
	0x6A: {"ROR", addrAcc, 2, false, ror},
	0x6C: {"JMP", addrIND, 5, false, jmp},
	0x6D: {"ADC", addrABS, 4, false, adc},
	0x6E: {"ROR", addrABS, 6, false, ror},
	0x70: {"BVS", addrREL, 2, false, bvs},
	0x71: {"ADC", addrIZY, 5, true, adc},
	0x75: {"ADC", addrZPX, 4, false, adc},
	0x76: {"ROR", addrZPX, 6, false, ror},
	0x78: {"SEI", addrImp, 2, false, sei},
	0x79: {"ADC", addrABY, 4, true, adc},
	0x7D: {"ADC", addrABX, 4, true, adc},
	0x7E: {"ROR", addrABX, 7, false, ror},
	0x81: {"STA", addrIZX, 6, false, sta},
	0x84: {"STY", addrZP, 3, false, sty},
	0x85: {"STA", addrZP, 3, false, sta},
	0x86: {"STX", addrZP, 3, false, stx},
	0x88: {"DEY", addrImp, 2, false, dey},
	0x8A: {"TXA", addrImp, 2, false, txa},
	0x8C: {"STY", addrABS, 4, false, sty},
	0x8D: {"STA", addrABS, 4, false, sta},
	0x8E: {"STX", addrABS, 4, false, stx},
	0x90: {"BCC", addrREL, 2, false, bcc},
	0x91: {"STA", addrIZY, 6, false, sta},
	0x94: {"STY", addrZPX, 4, false, sty},
	0x95: {"STA", addrZPX, 4, false, sta},
	0x96: {"STX", addrZPY, 4, false, stx},
	0x98: {"TYA", addrImp, 2, false, tya},
	0x99: {"STA", addrABY, 5, false, sta},
	0x9A: {"TXS", addrImp, 2, false, txs},
	0x9D: {"STA", addrABX, 5, false, sta},
	0xA0: {"LDY", addrImm, 2, false, ldy},
	0xA1: {"LDA", addrIZX, 6, false, lda},
	0xA2: {"LDX", addrImm, 2, false, ldx},
	0xA4: {"LDY", addrZP, 3, false, ldy},
	0xA5: {"LDA", addrZP, 3, false, lda},
	0xA6: {"LDX", addrZP, 3, false, ldx},
	0xA8: {"TAY", addrImp, 2, false, tay},
	0xA9: {"LDA", addrImm, 2, false, lda},
	0xAA: {"TAX", addrImp, 2, false, tax},
	0xAC: {"LDY", addrABS, 4, false, ldy},
	0xAD: {"LDA", addrABS, 4, false, lda},
	0xAE: {"LDX", addrABS, 4, false, ldx},
	0xB0: {"BCS", addrREL, 2, false, bcs},
	0xB1: {"LDA", addrIZY, 5, true, lda},
	0xB4: {"LDY", addrZPX, 4, false, ldy},
	0xB5: {"LDA", addrZPX, 4, false, lda},
	0xB6: {"LDX", addrZPY, 4, false, ldx},
	0xB8: {"CLV", addrImp, 2, false, clv},
	0xB9: {"LDA", addrABY, 4, true, lda},
	0xBA: {"TSX", addrImp, 2, false, tsx},
	0xBC: {"LDY", addrABX, 4, true, ldy},
	0xBD: {"LDA", addrABX, 4, true, lda},
	0xBE: {"LDX", addrABY, 4, true, ldx},
	0xC0: {"CPY", addrImm, 2, false, cpy},
	0xC1: {"CMP", addrIZX, 6, false, cmp},
	0xC4: {"CPY", addrZP, 3, false, cpy},
	0xC5: {"CMP", addrZP, 3, false, cmp},
	0xC6: {"DEC", addrZP, 5, false, dec},
	0xC8: {"INY", addrImp, 2, false, iny},
	0xC9: {"CMP", addrImm, 2, false, cmp},
	0xCA: {"DEX", addrImp, 2, false, dex},
	0xCC: {"CPY", addrABS, 4, false, cpy},
	0xCD: {"CMP", addrABS, 4, false, cmp},
	0xCE: {"DEC", addrABS, 6, false, dec},
	0xD0: {"BNE", addrREL, 2, false, bne},
	0xD1: {"CMP", addrIZY, 5, true, cmp},
	0xD5: {"CMP", addrZPX, 4, false, cmp},
	0xD6: {"DEC", addrZPX, 6, false, dec},
	0xD8: {"CLD", addrImp, 2, false, cld},
	0xD9: {"CMP", addrABY, 4, true, cmp},
	0xDD: {"CMP", addrABX, 4, true, cmp},
	0xDE: {"DEC", addrABX, 7, false, dec},
	0xE0: {"CPX", addrImm, 2, false, cpx},
	0xE1: {"SBC", addrIZX, 6, false, sbc},
	0xE4: {"CPX", addrZP, 3, false, cpx},
	0xE5: {"SBC", addrZP, 3, false, sbc},
	0xE6: {"INC", addrZP, 5, false, inc},
	0xE8: {"INX", addrImp, 2, false, inx},
	0xE9: {"SBC", addrImm, 2, false, sbc},
	0xEA: {"NOP", addrImp, 2, false, nop},
	0xEC: {"CPX", addrABS, 4, false, cpx},
	0xED: {"SBC", addrABS, 4, false, sbc},
	0xEE: {"INC", addrABS, 6, false, inc},
	0xF0: {"BEQ", addrREL, 2, false, beq},
	0xF1: {"SBC", addrIZY, 5, true, sbc},
	0xF5: {"SBC", addrZPX, 4, false, sbc},
	0xF6: {"INC", addrZPX, 6, false, inc},
	0xF8: {"SED", addrImp, 2, false, sed},
	0xF9: {"SBC", addrABY, 4, true, sbc},
	0xFD: {"SBC", addrABX, 4, true, sbc},
	0xFE: {"INC", addrABX, 7, false, inc},

	// Illegal opcodes exercised by the CPU validation trace.
	0x04: {"*NOP", addrZP, 3, false, nop},
	0x0C: {"*NOP", addrABS, 4, false, nop},
	0x14: {"*NOP", addrZPX, 4, false, nop},
	0x1A: {"*NOP", addrImp, 2, false, nop},
	0x1C: {"*NOP", addrABX, 4, true, nop},
	0x34: {"*NOP", addrZPX, 4, false, nop},
	0x3A: {"*NOP", addrImp, 2, false, nop},
	0x3C: {"*NOP", addrABX, 4, true, nop},
	0x44: {"*NOP", addrZP, 3, false, nop},
	0x54: {"*NOP", addrZPX, 4, false, nop},
	0x5A: {"*NOP", addrImp, 2, false, nop},
	0x5C: {"*NOP", addrABX, 4, true, nop},
	0x64: {"*NOP", addrZP, 3, false, nop},
	0x74: {"*NOP", addrZPX, 4, false, nop},
	0x7A: {"*NOP", addrImp, 2, false, nop},
	0x7C: {"*NOP", addrABX, 4, true, nop},
	0x80: {"*NOP", addrImm, 2, false, nop},
	0x82: {"*NOP", addrImm, 2, false, nop},
	0x89: {"*NOP", addrImm, 2, false, nop},
	0xC2: {"*NOP", addrImm, 2, false, nop},
	0xD4: {"*NOP", addrZPX, 4, false, nop},
	0xDA: {"*NOP", addrImp, 2, false, nop},
	0xDC: {"*NOP", addrABX, 4, true, nop},
	0xE2: {"*NOP", addrImm, 2, false, nop},
	0xF4: {"*NOP", addrZPX, 4, false, nop},
	0xFA: {"*NOP", addrImp, 2, false, nop},
	0xFC: {"*NOP", addrABX, 4, true, nop},

	0xA3: {"*LAX", addrIZX, 6, false, lax},
	0xA7: {"*LAX", addrZP, 3, false, lax},
	0xAF: {"*LAX", addrABS, 4, false, lax},
	0xB3: {"*LAX", addrIZY, 5, true, lax},
	0xB7: {"*LAX", addrZPY, 4, false, lax},
	0xBF: {"*LAX", addrABY, 4, true, lax},

	0x83: {"*SAX", addrIZX, 6, false, sax},
	0x87: {"*SAX", addrZP, 3, false, sax},
	0x8F: {"*SAX", addrABS, 4, false, sax},
	0x97: {"*SAX", addrZPY, 4, false, sax},

	0xC3: {"*DCP", addrIZX, 8, false, dcp},
	0xC7: {"*DCP", addrZP, 5, false, dcp},
	0xCF: {"*DCP", addrABS, 6, false, dcp},
	0xD3: {"*DCP", addrIZY, 8, false, dcp},
	0xD7: {"*DCP", addrZPX, 6, false, dcp},
	0xDB: {"*DCP", addrABY, 7, false, dcp},
	0xDF: {"*DCP", addrABX, 7, false, dcp},

	0xE3: {"*ISB", addrIZX, 8, false, isb},
	0xE7: {"*ISB", addrZP, 5, false, isb},
	0xEF: {"*ISB", addrABS, 6, false, isb},
	0xF3: {"*ISB", addrIZY, 8, false, isb},
	0xF7: {"*ISB", addrZPX, 6, false, isb},
	0xFB: {"*ISB", addrABY, 7, false, isb},
	0xFF: {"*ISB", addrABX, 7, false, isb},

	0x03: {"*SLO", addrIZX, 8, false, slo},
	0x07: {"*SLO", addrZP, 5, false, slo},
	0x0F: {"*SLO", addrABS, 6, false, slo},
	0x13: {"*SLO", addrIZY, 8, false, slo},
	0x17: {"*SLO", addrZPX, 6, false, slo},
	0x1B: {"*SLO", addrABY, 7, false, slo},
	0x1F: {"*SLO", addrABX, 7, false, slo},

	0x23: {"*RLA", addrIZX, 8, false, rla},
	0x27: {"*RLA", addrZP, 5, false, rla},
	0x2F: {"*RLA", addrABS, 6, false, rla},
	0x33: {"*RLA", addrIZY, 8, false, rla},
	0x37: {"*RLA", addrZPX, 6, false, rla},
	0x3B: {"*RLA", addrABY, 7, false, rla},
	0x3F: {"*RLA", addrABX, 7, false, rla},

	0x43: {"*SRE", addrIZX, 8, false, sre},
	0x47: {"*SRE", addrZP, 5, false, sre},
	0x4F: {"*SRE", addrABS, 6, false, sre},
	0x53: {"*SRE", addrIZY, 8, false, sre},
	0x57: {"*SRE", addrZPX, 6, false, sre},
	0x5B: {"*SRE", addrABY, 7, false, sre},
	0x5F: {"*SRE", addrABX, 7, false, sre},

	0x63: {"*RRA", addrIZX, 8, false, rra},
	0x67: {"*RRA", addrZP, 5, false, rra},
	0x6F: {"*RRA", addrABS, 6, false, rra},
	0x73: {"*RRA", addrIZY, 8, false, rra},
	0x77: {"*RRA", addrZPX, 6, false, rra},
	0x7B: {"*RRA", addrABY, 7, false, rra},
	0x7F: {"*RRA", addrABX, 7, false, rra},

	0x0B: {"*ANC", addrImm, 2, false, anc},
	0x2B: {"*ANC", addrImm, 2, false, anc},
	0x4B: {"*ALR", addrImm, 2, false, alr},
	0x6B: {"*ARR", addrImm, 2, false, arr},
	0xCB: {"*AXS", addrImm, 2, false, axs},
	0xEB: {"*SBC", addrImm, 2, false, sbc},
}

/* load/store */

func lda(c *CPU, s stepInfo) {
	c.A = c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
}

func ldx(c *CPU, s stepInfo) {
	c.X = c.Bus.Read8(s.addr)
	c.P.checkNZ(c.X)
}

func ldy(c *CPU, s stepInfo) {
	c.Y = c.Bus.Read8(s.addr)
	c.P.checkNZ(c.Y)
}

func sta(c *CPU, s stepInfo) { c.Bus.Write8(s.addr, c.A) }
func stx(c *CPU, s stepInfo) { c.Bus.Write8(s.addr, c.X) }
func sty(c *CPU, s stepInfo) { c.Bus.Write8(s.addr, c.Y) }

/* transfers */

func tax(c *CPU, _ stepInfo) { c.X = c.A; c.P.checkNZ(c.X) }
func tay(c *CPU, _ stepInfo) { c.Y = c.A; c.P.checkNZ(c.Y) }
func txa(c *CPU, _ stepInfo) { c.A = c.X; c.P.checkNZ(c.A) }
func tya(c *CPU, _ stepInfo) { c.A = c.Y; c.P.checkNZ(c.A) }
func tsx(c *CPU, _ stepInfo) { c.X = c.SP; c.P.checkNZ(c.X) }
func txs(c *CPU, _ stepInfo) { c.SP = c.X }

/* stack */

func pha(c *CPU, _ stepInfo) { c.push8(c.A) }

func php(c *CPU, _ stepInfo) {
	// PHP pushes P with both Break and Reserved set.
	c.push8(uint8(c.P | Break | Reserved))
}

func pla(c *CPU, _ stepInfo) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, _ stepInfo) {
	// The Break bit does not exist in the register proper; Reserved always
	// reads back as 1.
	c.P = P(c.pull8())&^Break | Reserved
}

/* arithmetic */

func (c *CPU) addWithCarry(val uint8) {
	carry := uint16(0)
	if c.P.hasFlag(Carry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(val) + carry
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

func adc(c *CPU, s stepInfo) {
	c.addWithCarry(c.Bus.Read8(s.addr))
}

// SBC is ADC with the operand complemented; binary mode only, the Decimal
// flag is tracked but has no effect on this CPU.
func sbc(c *CPU, s stepInfo) {
	c.addWithCarry(^c.Bus.Read8(s.addr))
}

/* logic */

func and(c *CPU, s stepInfo) {
	c.A &= c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
}

func ora(c *CPU, s stepInfo) {
	c.A |= c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
}

func eor(c *CPU, s stepInfo) {
	c.A ^= c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
}

func bit(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr)
	c.P.setFlag(Zero, c.A&val == 0)
	c.P.setFlag(Overflow, val&0x40 != 0)
	c.P.setFlag(Negative, val&0x80 != 0)
}

/* shifts and rotates */

func (c *CPU) shiftLeft(val uint8) uint8 {
	c.P.setFlag(Carry, val&0x80 != 0)
	val <<= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) shiftRight(val uint8) uint8 {
	c.P.setFlag(Carry, val&0x01 != 0)
	val >>= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) rotateLeft(val uint8) uint8 {
	carry := uint8(0)
	if c.P.hasFlag(Carry) {
		carry = 1
	}
	c.P.setFlag(Carry, val&0x80 != 0)
	val = val<<1 | carry
	c.P.checkNZ(val)
	return val
}

func (c *CPU) rotateRight(val uint8) uint8 {
	carry := uint8(0)
	if c.P.hasFlag(Carry) {
		carry = 0x80
	}
	c.P.setFlag(Carry, val&0x01 != 0)
	val = val>>1 | carry
	c.P.checkNZ(val)
	return val
}

// rmw applies f to the operand, in place for accumulator mode, through the
// bus otherwise, and returns the result.
func rmw(c *CPU, s stepInfo, f func(uint8) uint8) uint8 {
	if s.mode == addrAcc {
		c.A = f(c.A)
		return c.A
	}
	val := f(c.Bus.Read8(s.addr))
	c.Bus.Write8(s.addr, val)
	return val
}

func asl(c *CPU, s stepInfo) { rmw(c, s, c.shiftLeft) }
func lsr(c *CPU, s stepInfo) { rmw(c, s, c.shiftRight) }
func rol(c *CPU, s stepInfo) { rmw(c, s, c.rotateLeft) }
func ror(c *CPU, s stepInfo) { rmw(c, s, c.rotateRight) }

/* increments and decrements */

func inc(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr) + 1
	c.Bus.Write8(s.addr, val)
	c.P.checkNZ(val)
}

func dec(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr) - 1
	c.Bus.Write8(s.addr, val)
	c.P.checkNZ(val)
}

func inx(c *CPU, _ stepInfo) { c.X++; c.P.checkNZ(c.X) }
func iny(c *CPU, _ stepInfo) { c.Y++; c.P.checkNZ(c.Y) }
func dex(c *CPU, _ stepInfo) { c.X--; c.P.checkNZ(c.X) }
func dey(c *CPU, _ stepInfo) { c.Y--; c.P.checkNZ(c.Y) }

/* comparisons */

func (c *CPU) compare(reg, val uint8) {
	c.P.setFlag(Carry, reg >= val)
	c.P.checkNZ(reg - val)
}

func cmp(c *CPU, s stepInfo) { c.compare(c.A, c.Bus.Read8(s.addr)) }
func cpx(c *CPU, s stepInfo) { c.compare(c.X, c.Bus.Read8(s.addr)) }
func cpy(c *CPU, s stepInfo) { c.compare(c.Y, c.Bus.Read8(s.addr)) }

/* branches */

// branch takes the branch when cond holds: one extra cycle, two when the
// target lies in another page.
func branch(c *CPU, s stepInfo, cond bool) {
	if !cond {
		return
	}
	c.PC = s.addr
	c.Cycles++
	if s.pageCrossed {
		c.Cycles++
	}
}

func bpl(c *CPU, s stepInfo) { branch(c, s, !c.P.hasFlag(Negative)) }
func bmi(c *CPU, s stepInfo) { branch(c, s, c.P.hasFlag(Negative)) }
func bvc(c *CPU, s stepInfo) { branch(c, s, !c.P.hasFlag(Overflow)) }
func bvs(c *CPU, s stepInfo) { branch(c, s, c.P.hasFlag(Overflow)) }
func bcc(c *CPU, s stepInfo) { branch(c, s, !c.P.hasFlag(Carry)) }
func bcs(c *CPU, s stepInfo) { branch(c, s, c.P.hasFlag(Carry)) }
func bne(c *CPU, s stepInfo) { branch(c, s, !c.P.hasFlag(Zero)) }
func beq(c *CPU, s stepInfo) { branch(c, s, c.P.hasFlag(Zero)) }

/* jumps and returns */

func jmp(c *CPU, s stepInfo) { c.PC = s.addr }

func jsr(c *CPU, s stepInfo) {
	// The pushed value is the address of the last operand byte; RTS
	// compensates by incrementing after the pull.
	c.push16(c.PC - 1)
	c.PC = s.addr
}

func rts(c *CPU, _ stepInfo) {
	c.PC = c.pull16() + 1
}

func rti(c *CPU, _ stepInfo) {
	c.P = P(c.pull8())&^Break | Reserved
	c.PC = c.pull16()
}

func brk(c *CPU, _ stepInfo) {
	c.PC++ // padding byte
	c.push16(c.PC)
	c.push8(uint8(c.P | Break | Reserved))
	c.P.setFlags(Interrupt)
	c.PC = c.Bus.Read16(IRQVector)
}

/* flag operations */

func clc(c *CPU, _ stepInfo) { c.P.clearFlags(Carry) }
func cld(c *CPU, _ stepInfo) { c.P.clearFlags(Decimal) }
func cli(c *CPU, _ stepInfo) { c.P.clearFlags(Interrupt) }
func clv(c *CPU, _ stepInfo) { c.P.clearFlags(Overflow) }
func sec(c *CPU, _ stepInfo) { c.P.setFlags(Carry) }
func sed(c *CPU, _ stepInfo) { c.P.setFlags(Decimal) }
func sei(c *CPU, _ stepInfo) { c.P.setFlags(Interrupt) }

func nop(c *CPU, _ stepInfo) {}

/* illegal opcodes */

// LAX: load A and X from memory.
func lax(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr)
	c.A = val
	c.X = val
	c.P.checkNZ(val)
}

// SAX: store A AND X, no flags.
func sax(c *CPU, s stepInfo) {
	c.Bus.Write8(s.addr, c.A&c.X)
}

// DCP: DEC then CMP.
func dcp(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr) - 1
	c.Bus.Write8(s.addr, val)
	c.compare(c.A, val)
}

// ISB: INC then SBC.
func isb(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr) + 1
	c.Bus.Write8(s.addr, val)
	c.addWithCarry(^val)
}

// SLO: ASL then ORA.
func slo(c *CPU, s stepInfo) {
	val := c.shiftLeft(c.Bus.Read8(s.addr))
	c.Bus.Write8(s.addr, val)
	c.A |= val
	c.P.checkNZ(c.A)
}

// RLA: ROL then AND.
func rla(c *CPU, s stepInfo) {
	val := c.rotateLeft(c.Bus.Read8(s.addr))
	c.Bus.Write8(s.addr, val)
	c.A &= val
	c.P.checkNZ(c.A)
}

// SRE: LSR then EOR.
func sre(c *CPU, s stepInfo) {
	val := c.shiftRight(c.Bus.Read8(s.addr))
	c.Bus.Write8(s.addr, val)
	c.A ^= val
	c.P.checkNZ(c.A)
}

// RRA: ROR then ADC.
func rra(c *CPU, s stepInfo) {
	val := c.rotateRight(c.Bus.Read8(s.addr))
	c.Bus.Write8(s.addr, val)
	c.addWithCarry(val)
}

// ANC: AND, then copy N into C.
func anc(c *CPU, s stepInfo) {
	c.A &= c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
	c.P.setFlag(Carry, c.A&0x80 != 0)
}

// ALR: AND then LSR A.
func alr(c *CPU, s stepInfo) {
	c.A &= c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
	c.A = c.shiftRight(c.A)
}

// ARR: AND then ROR A, with C from bit 6 and V from bit 6 xor bit 5.
func arr(c *CPU, s stepInfo) {
	c.A &= c.Bus.Read8(s.addr)
	c.P.checkNZ(c.A)
	c.A = c.rotateRight(c.A)
	c.P.setFlag(Carry, c.A&0x40 != 0)
	c.P.setFlag(Overflow, (c.A>>6)&1 != (c.A>>5)&1)
}

// AXS: X <- (A AND X) - operand, carry as for CMP.
func axs(c *CPU, s stepInfo) {
	val := c.Bus.Read8(s.addr)
	ax := c.A & c.X
	c.P.setFlag(Carry, ax >= val)
	c.X = ax - val
	c.P.checkNZ(c.X)
}
