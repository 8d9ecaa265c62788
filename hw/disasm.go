package hw

import (
	"fmt"
)

// DisasmOp is the decoded form of one instruction, suitable for the
// execution tracer. Operand values are resolved through side-effect-free
// peeks, so disassembling never disturbs the machine.
type DisasmOp struct {
	Name string
	Oper string
	Buf  []byte
	PC   uint16
}

// Illegal reports whether this is one of the illegal opcodes; those are
// rendered one column to the left in the reference trace format.
func (d DisasmOp) Illegal() bool {
	return len(d.Name) > 0 && d.Name[0] == '*'
}

// operandSize returns the number of operand bytes following the opcode.
func operandSize(mode AddrMode) int {
	switch mode {
	case addrImp, addrAcc:
		return 0
	case addrABS, addrABX, addrABY, addrIND:
		return 2
	default:
		return 1
	}
}

// Disasm decodes the instruction at pc.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	peek := c.Bus.Peek8
	opcode := peek(pc)
	op := &opcodes[opcode]

	d := DisasmOp{PC: pc}
	if op.name == "" {
		d.Name = "???"
		d.Buf = []byte{opcode}
		return d
	}
	d.Name = op.name

	b1 := peek(pc + 1)
	b2 := peek(pc + 2)
	switch operandSize(op.mode) {
	case 0:
		d.Buf = []byte{opcode}
	case 1:
		d.Buf = []byte{opcode, b1}
	case 2:
		d.Buf = []byte{opcode, b1, b2}
	}

	switch op.mode {
	case addrImp:
	case addrAcc:
		d.Oper = "A"
	case addrImm:
		d.Oper = fmt.Sprintf("#$%02X", b1)
	case addrZP:
		d.Oper = fmt.Sprintf("$%02X = %02X", b1, peek(uint16(b1)))
	case addrZPX:
		addr := uint16(b1+c.X) & 0xFF
		d.Oper = fmt.Sprintf("$%02X,X @ %02X = %02X", b1, addr, peek(addr))
	case addrZPY:
		addr := uint16(b1+c.Y) & 0xFF
		d.Oper = fmt.Sprintf("$%02X,Y @ %02X = %02X", b1, addr, peek(addr))
	case addrABS:
		addr := uint16(b2)<<8 | uint16(b1)
		if opcode == 0x4C || opcode == 0x20 {
			d.Oper = fmt.Sprintf("$%04X", addr)
		} else {
			d.Oper = fmt.Sprintf("$%04X = %02X", addr, peek(addr))
		}
	case addrABX:
		base := uint16(b2)<<8 | uint16(b1)
		addr := base + uint16(c.X)
		d.Oper = fmt.Sprintf("$%04X,X @ %04X = %02X", base, addr, peek(addr))
	case addrABY:
		base := uint16(b2)<<8 | uint16(b1)
		addr := base + uint16(c.Y)
		d.Oper = fmt.Sprintf("$%04X,Y @ %04X = %02X", base, addr, peek(addr))
	case addrIND:
		ptr := uint16(b2)<<8 | uint16(b1)
		hiAddr := ptr&0xFF00 | (ptr+1)&0x00FF
		addr := uint16(peek(hiAddr))<<8 | uint16(peek(ptr))
		d.Oper = fmt.Sprintf("($%04X) = %04X", ptr, addr)
	case addrIZX:
		ptr := b1 + c.X
		addr := uint16(peek(uint16(ptr+1)&0xFF))<<8 | uint16(peek(uint16(ptr)))
		d.Oper = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", b1, ptr, addr, peek(addr))
	case addrIZY:
		base := uint16(peek(uint16(b1+1)&0xFF))<<8 | uint16(peek(uint16(b1)))
		addr := base + uint16(c.Y)
		d.Oper = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", b1, base, addr, peek(addr))
	case addrREL:
		addr := pc + 2 + uint16(int16(int8(b1)))
		d.Oper = fmt.Sprintf("$%04X", addr)
	}

	return d
}
