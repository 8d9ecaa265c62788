package hw

import (
	"io"

	"tanuki/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request / BRK
)

type CPU struct {
	Bus *Bus

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	Cycles int64

	// Interrupt lines latched by the bus, serviced at the next instruction
	// boundary.
	nmiPending bool
	irqPending bool

	// Non-nil when execution tracing is enabled.
	tracer *tracer

	halted bool
}

// NewCPU creates a new CPU at power-up state, attached to its bus.
func NewCPU(bus *Bus) *CPU {
	cpu := &CPU{
		Bus: bus,
		SP:  0xFD,
		P:   Reserved | Interrupt,
	}
	bus.CPU = cpu
	return cpu
}

// Reset performs a power-on reset: registers cleared, stack pointer at $FD,
// PC loaded from the reset vector, and the 7 startup cycles accounted for.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = Reserved | Interrupt
	c.PC = c.Bus.Read16(ResetVector)
	c.Cycles = 7
	c.nmiPending = false
	c.irqPending = false
	c.halted = false
}

// SoftReset models the console reset button: A/X/Y and RAM are preserved,
// the stack pointer drops by 3 and interrupts are masked.
func (c *CPU) SoftReset() {
	c.SP -= 3
	c.P.setFlags(Interrupt)
	c.PC = c.Bus.Read16(ResetVector)
	c.Cycles = 7
}

// stepInfo carries the resolved operand of the current instruction.
type stepInfo struct {
	addr        uint16
	mode        AddrMode
	pageCrossed bool
}

func pageDiff(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// resolve computes the effective address for the given addressing mode,
// advancing PC over the operand bytes.
func (c *CPU) resolve(mode AddrMode) stepInfo {
	switch mode {
	case addrImp, addrAcc:
		return stepInfo{mode: mode}
	case addrImm:
		addr := c.PC
		c.PC++
		return stepInfo{addr: addr, mode: mode}
	case addrZP:
		addr := uint16(c.Bus.Read8(c.PC))
		c.PC++
		return stepInfo{addr: addr, mode: mode}
	case addrZPX:
		base := c.Bus.Read8(c.PC)
		c.PC++
		return stepInfo{addr: uint16(base+c.X) & 0xFF, mode: mode}
	case addrZPY:
		base := c.Bus.Read8(c.PC)
		c.PC++
		return stepInfo{addr: uint16(base+c.Y) & 0xFF, mode: mode}
	case addrABS:
		addr := c.Bus.Read16(c.PC)
		c.PC += 2
		return stepInfo{addr: addr, mode: mode}
	case addrABX:
		base := c.Bus.Read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return stepInfo{addr: addr, mode: mode, pageCrossed: pageDiff(base, addr)}
	case addrABY:
		base := c.Bus.Read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return stepInfo{addr: addr, mode: mode, pageCrossed: pageDiff(base, addr)}
	case addrIND:
		ptr := c.Bus.Read16(c.PC)
		c.PC += 2
		return stepInfo{addr: c.read16PageBug(ptr), mode: mode}
	case addrIZX:
		base := c.Bus.Read8(c.PC)
		c.PC++
		return stepInfo{addr: c.read16ZP(base + c.X), mode: mode}
	case addrIZY:
		ptr := c.Bus.Read8(c.PC)
		c.PC++
		base := c.read16ZP(ptr)
		addr := base + uint16(c.Y)
		return stepInfo{addr: addr, mode: mode, pageCrossed: pageDiff(base, addr)}
	case addrREL:
		offset := int8(c.Bus.Read8(c.PC))
		c.PC++
		addr := c.PC + uint16(int16(offset))
		return stepInfo{addr: addr, mode: mode, pageCrossed: pageDiff(c.PC, addr)}
	}
	return stepInfo{}
}

// read16ZP reads a 16-bit pointer from the zero page; the second byte wraps
// within the page.
func (c *CPU) read16ZP(addr uint8) uint16 {
	lo := c.Bus.Read8(uint16(addr))
	hi := c.Bus.Read8(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// read16PageBug reproduces the 6502 JMP indirect bug: when the pointer low
// byte is $FF, the high byte is fetched from the start of the same page.
func (c *CPU) read16PageBug(addr uint16) uint16 {
	lo := c.Bus.Read8(addr)
	hiAddr := addr&0xFF00 | (addr+1)&0x00FF
	hi := c.Bus.Read8(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches, decodes and executes one instruction, returning the number of
// CPU cycles it consumed. Pending interrupts are serviced first: the
// instruction boundary is where NMI edges and IRQ levels are observed.
func (c *CPU) Step() int64 {
	if c.halted {
		return 1
	}

	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(NMIVector)
		return 7
	}
	if c.irqPending {
		c.irqPending = false
		if !c.P.hasFlag(Interrupt) {
			c.interrupt(IRQVector)
			return 7
		}
	}

	if c.tracer != nil {
		c.traceOp()
	}

	opcode := c.Bus.Read8(c.PC)
	c.PC++

	op := &opcodes[opcode]
	if op.fn == nil {
		c.halted = true
		log.ModCPU.WarnZ("CPU jammed").
			Hex16("PC", c.PC-1).
			Hex8("opcode", opcode).
			End()
		return 2
	}

	info := c.resolve(op.mode)
	prev := c.Cycles

	c.Cycles += int64(op.cycles)
	if op.pagePenalty && info.pageCrossed {
		c.Cycles++
	}

	op.fn(c, info)

	return c.Cycles - prev
}

// IsHalted reports whether the CPU executed a jam opcode.
func (c *CPU) IsHalted() bool {
	return c.halted
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.Bus.Write8(0x0100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Bus.Read8(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* interrupt handling */

// NMI latches a non-maskable interrupt edge; it is serviced at the next
// instruction boundary.
func (c *CPU) NMI() {
	c.nmiPending = true
}

// IRQ latches an interrupt request; it is serviced at the next instruction
// boundary unless the interrupt-disable flag is set there.
func (c *CPU) IRQ() {
	c.irqPending = true
}

// interrupt runs the 7-cycle interrupt sequence: push PC and P (Break clear,
// Reserved set), mask further IRQs, vector.
func (c *CPU) interrupt(vector uint16) {
	c.push16(c.PC)
	p := c.P
	p.setFlags(Reserved)
	p.clearFlags(Break)
	c.push8(uint8(p))
	c.P.setFlags(Interrupt)
	c.PC = c.Bus.Read16(vector)
	c.Cycles += 7
}

/* tracing */

// SetTraceOutput enables per-instruction execution tracing to w, in the
// reference trace format. Pass nil to disable.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, cpu: c}
}

func (c *CPU) traceOp() {
	state := cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P,
		SP:    c.SP,
		PC:    c.PC,
		Clock: c.Cycles,
	}
	if ppu := c.Bus.PPU; ppu != nil {
		state.Scanline = ppu.Scanline
		state.Dot = ppu.Dot
	}
	c.tracer.write(state)
}
