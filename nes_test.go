package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// counterLoop increments X and stores it to $0300, forever.
var counterLoop = []byte{
	0xA2, 0x00, //       8000: LDX #$00
	0xE8,             // 8002: INX
	0x8E, 0x00, 0x03, // 8003: STX $0300
	0x4C, 0x02, 0x80, // 8006: JMP $8002
}

func TestRunFrameDuration(t *testing.T) {
	nes := powerUp(t, counterLoop)

	start := nes.CPU.Cycles
	nes.RunFrame()
	cycles := nes.CPU.Cycles - start

	// One frame is 341*262 dots, one CPU cycle per 3 dots, give or take the
	// final instruction overshoot.
	want := int64(341 * 262 / 3)
	if cycles < want-10 || cycles > want+10 {
		t.Errorf("frame took %d CPU cycles, want ~%d", cycles, want)
	}
}

func TestRAMMirrorEndToEnd(t *testing.T) {
	nes := powerUp(t, counterLoop)

	nes.Bus.Write8(0x1234, 0x42)
	if got := nes.Bus.Read8(0x0234); got != 0x42 {
		t.Errorf("Read8(0x0234) = %#02x, want 0x42", got)
	}
}

func TestOAMDMAStall(t *testing.T) {
	nes := powerUp(t, counterLoop)

	// Fill CPU page $02 with a recognizable pattern.
	for i := uint16(0); i < 256; i++ {
		nes.Bus.Write8(0x0200+i, uint8(i^0x5A))
	}
	nes.Bus.Write8(0x4014, 0x02)

	before := nes.CPU.Cycles
	nes.Step()
	elapsed := nes.CPU.Cycles - before

	if elapsed < 513 {
		t.Errorf("DMA step consumed %d cycles, want at least 513", elapsed)
	}

	nes.PPU.WriteRegister(0x2003, 0x10)
	if got := nes.PPU.ReadRegister(0x2004); got != 0x10^0x5A {
		t.Errorf("oam[0x10] = %#02x, want %#02x", got, 0x10^0x5A)
	}
}

func TestSaveStateTraceLaw(t *testing.T) {
	const warmup = 100
	const compare = 200

	nes := powerUp(t, counterLoop)
	for i := 0; i < warmup; i++ {
		nes.Step()
	}

	var state bytes.Buffer
	tcheck(t, nes.SaveState(&state))

	// Continue the original and record its trace.
	var trace1 strings.Builder
	nes.CPU.SetTraceOutput(&trace1)
	for i := 0; i < compare; i++ {
		nes.Step()
	}

	// Restore into a freshly powered core and record the same steps.
	nes2 := powerUp(t, counterLoop)
	tcheck(t, nes2.LoadState(bytes.NewReader(state.Bytes())))

	var trace2 strings.Builder
	nes2.CPU.SetTraceOutput(&trace2)
	for i := 0; i < compare; i++ {
		nes2.Step()
	}

	if diff := cmp.Diff(trace1.String(), trace2.String()); diff != "" {
		t.Errorf("trace diverged after state restore (-original +restored):\n%s", diff)
	}
}

func TestResetIdempotent(t *testing.T) {
	nes := powerUp(t, counterLoop)
	for i := 0; i < 50; i++ {
		nes.Step()
	}

	nes.Reset()
	first := nes.CPU.State()
	nes.Reset()
	second := nes.CPU.State()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("double reset differs from single (-first +second):\n%s", diff)
	}
}

func TestTeardownZeroesCartridge(t *testing.T) {
	nes := powerUp(t, counterLoop)
	prg := nes.Cart.PRGROM

	nes.Teardown()

	for i, b := range prg {
		if b != 0 {
			t.Fatalf("PRG byte %d = %#02x after teardown, want 0", i, b)
		}
	}
	if nes.Cart.Mapper != nil {
		t.Error("mapper still attached after teardown")
	}
}

func TestCartridgeLoadScenario(t *testing.T) {
	nes := powerUp(t, counterLoop)

	if len(nes.Cart.PRGROM) != 16384 {
		t.Errorf("PRG size = %d, want 16384", len(nes.Cart.PRGROM))
	}
	if nes.Cart.CHRRAM == nil || len(nes.Cart.CHRRAM) != 8192 {
		t.Error("CHR-RAM not allocated for a CHR-less cart")
	}
	for i, b := range nes.Cart.CHRRAM {
		if b != 0 {
			t.Fatalf("CHR-RAM byte %d = %#02x, want zero-filled", i, b)
		}
	}
	if nes.Cart.MapperID != 0 {
		t.Errorf("mapper id = %d, want 0", nes.Cart.MapperID)
	}

	// 16KB NROM mirrors across the 32KB window.
	if a, b := nes.Bus.Read8(0x8000), nes.Bus.Read8(0xC000); a != b {
		t.Errorf("NROM mirror: $8000=%#02x != $C000=%#02x", a, b)
	}
}
