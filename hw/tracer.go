package hw

import (
	"fmt"
	"io"
	"strings"
)

// cpuState stores the CPU state for one line of the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock    int64
	Scanline int
	Dot      int
}

type tracer struct {
	cpu *CPU
	w   io.Writer
}

// write emits the trace line for the instruction about to execute, in the
// reference format: address, raw bytes, disassembly, registers, PPU position
// and cycle count.
func (t *tracer) write(state cpuState) {
	dis := t.cpu.Disasm(state.PC)

	var bytes strings.Builder
	for i, b := range dis.Buf {
		if i > 0 {
			bytes.WriteByte(' ')
		}
		fmt.Fprintf(&bytes, "%02X", b)
	}

	asm := dis.Name
	if dis.Oper != "" {
		asm += " " + dis.Oper
	}

	// Illegal mnemonics carry a leading '*' and shift one column left.
	format := "%04X  %-10s%-32s"
	if dis.Illegal() {
		format = "%04X  %-9s%-33s"
	}

	fmt.Fprintf(t.w, format, state.PC, bytes.String(), asm)
	fmt.Fprintf(t.w, "A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d\n",
		state.A, state.X, state.Y, uint8(state.P), state.SP,
		state.Scanline, state.Dot, state.Clock)
}
