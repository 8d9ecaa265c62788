package hw

import (
	"fmt"
	"testing"

	"tanuki/hw/apu"
	"tanuki/ines"
)

/* general testing helpers */

func tcheck(tb testing.TB, err error) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s\n", err)
}

func tcheckf(tb testing.TB, err error, format string, args ...any) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s: %s\n", fmt.Sprintf(format, args...), err)
}

// testMapper is a minimal NROM-like board with writable backing arrays, so
// tests can place programs and tiles directly.
type testMapper struct {
	prg    [0x8000]uint8
	prgRAM [0x2000]uint8
	chr    [0x2000]uint8
}

func (m *testMapper) Reset() {}

func (m *testMapper) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.prg[addr-0x8000]
	case addr >= 0x6000:
		return m.prgRAM[addr-0x6000]
	}
	return 0
}

func (m *testMapper) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
	}
}

func (m *testMapper) PPURead(addr uint16) uint8 {
	if addr < 0x2000 {
		return m.chr[addr]
	}
	return 0
}

func (m *testMapper) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 {
		m.chr[addr] = val
	}
}

// testMachine wires a full console around a testMapper.
type testMachine struct {
	bus    *Bus
	cpu    *CPU
	ppu    *PPU
	apu    *apu.APU
	mapper *testMapper
}

func newTestMachine(tb testing.TB) *testMachine {
	tb.Helper()

	mapper := &testMapper{}
	cart := &Cartridge{
		PRGRAM:    make([]byte, 0x2000),
		Mirroring: ines.MirrorHorizontal,
		Mapper:    mapper,
	}

	bus := NewBus()
	bus.Cart = cart
	bus.PPU = NewPPU(cart)
	bus.APU = apu.New(0)
	bus.APU.DMC.ReadMem = bus.Read8
	cpu := NewCPU(bus)

	return &testMachine{
		bus:    bus,
		cpu:    cpu,
		ppu:    bus.PPU,
		apu:    bus.APU,
		mapper: mapper,
	}
}

// loadProgram places code at $8000 and points the reset vector at it.
func (m *testMachine) loadProgram(code ...uint8) {
	copy(m.mapper.prg[:], code)
	m.mapper.prg[0x7FFC] = 0x00 // reset vector lo
	m.mapper.prg[0x7FFD] = 0x80 // reset vector hi
	m.cpu.Reset()
}
