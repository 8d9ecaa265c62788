package hw

import (
	"testing"
)

// tickTo advances the PPU until the given dot has just been processed.
func tickTo(p *PPU, scanline, dot int) {
	for p.Scanline != scanline || p.Dot != dot {
		p.Tick()
	}
	p.Tick()
}

func TestVBlankTiming(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	tickTo(p, 241, 0)
	if p.status&(1<<vblank) != 0 {
		t.Fatal("vblank set before (241,1)")
	}

	p.Tick() // process (241,1)
	if p.status&(1<<vblank) == 0 {
		t.Fatal("vblank not set at (241,1)")
	}
	if p.TakeNMI() {
		t.Fatal("NMI raised with NMI output disabled")
	}
}

func TestVBlankNMI(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	p.WriteRegister(0x2000, 0x80) // enable NMI output
	tickTo(p, 241, 1)

	if !p.TakeNMI() {
		t.Fatal("no NMI at vblank start with NMI output enabled")
	}
	if p.TakeNMI() {
		t.Fatal("TakeNMI must clear the pending flag")
	}
}

func TestNMIRaisedByCtrlToggleDuringVBlank(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	tickTo(p, 241, 1)
	p.TakeNMI()

	// Enabling NMI output while the vblank flag is set raises pending-NMI
	// immediately.
	p.WriteRegister(0x2000, 0x80)
	if !p.TakeNMI() {
		t.Fatal("no NMI after enabling output during vblank")
	}
}

func TestVBlankClearAtPreRender(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	tickTo(p, 241, 1)
	tickTo(p, 261, 1)
	if p.status&(1<<vblank) != 0 {
		t.Error("vblank not cleared at (261,1)")
	}
	if p.status&(1<<sprite0Hit) != 0 || p.status&(1<<spriteOverflow) != 0 {
		t.Error("sprite flags not cleared at (261,1)")
	}
}

func TestStatusReadClearsVBlankAndToggle(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	tickTo(p, 241, 1)
	p.WriteRegister(0x2005, 0x10) // first scroll write, toggle=1

	status := p.ReadRegister(0x2002)
	if status&(1<<vblank) == 0 {
		t.Error("status read did not report vblank")
	}
	if p.ReadRegister(0x2002)&(1<<vblank) != 0 {
		t.Error("second status read still reports vblank")
	}
	if p.w {
		t.Error("status read did not clear the write toggle")
	}
}

func TestScrollWriteLatch(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	p.WriteRegister(0x2005, 0x7D) // coarse-X=15, fine-x=5
	if p.t&0x1F != 15 {
		t.Errorf("t coarse-X = %d, want 15", p.t&0x1F)
	}
	if p.fineX != 5 {
		t.Errorf("fine-x = %d, want 5", p.fineX)
	}
	if !p.w {
		t.Error("toggle not set after first scroll write")
	}

	p.WriteRegister(0x2005, 0x5E) // coarse-Y=11, fine-Y=6
	if got := p.t >> 5 & 0x1F; got != 11 {
		t.Errorf("t coarse-Y = %d, want 11", got)
	}
	if got := p.t >> 12 & 0x07; got != 6 {
		t.Errorf("t fine-Y = %d, want 6", got)
	}
	if p.w {
		t.Error("toggle not cleared after second scroll write")
	}
}

func TestAddrWriteLatch(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	if p.v != 0x3F00 {
		t.Errorf("v = %#04x, want 0x3f00", p.v)
	}
}

func TestPaletteMirror(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	// Write $11 to $3F10 through the ADDR/DATA protocol.
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x10)
	p.WriteRegister(0x2007, 0x11)

	// Read back from the $3F00 mirror: palette reads are immediate.
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	if got := p.ReadRegister(0x2007); got != 0x11 {
		t.Errorf("palette read at $3F00 = %#02x, want 0x11 (mirror of $3F10)", got)
	}
}

func TestPPUDataReadBuffer(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu
	m.mapper.chr[0x0123] = 0xAB

	p.WriteRegister(0x2006, 0x01)
	p.WriteRegister(0x2006, 0x23)

	// First read returns the stale buffer, second the actual byte.
	p.ReadRegister(0x2007)
	p.WriteRegister(0x2006, 0x01)
	p.WriteRegister(0x2006, 0x23)
	if got := p.ReadRegister(0x2007); got != 0xAB {
		t.Errorf("buffered CHR read = %#02x, want 0xab", got)
	}
}

func TestPPUDataIncrement(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x01)
	if p.v != 0x2001 {
		t.Errorf("v = %#04x after +1 increment write, want 0x2001", p.v)
	}

	p.WriteRegister(0x2000, 0x04) // vertical increment
	p.WriteRegister(0x2007, 0x02)
	if p.v != 0x2021 {
		t.Errorf("v = %#04x after +32 increment write, want 0x2021", p.v)
	}
}

func TestNametableMirroring(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	// Horizontal: $2000 and $2400 share a bank.
	p.write(0x2000, 0x42)
	if got := p.read(0x2400); got != 0x42 {
		t.Errorf("horizontal mirroring: read($2400) = %#02x, want 0x42", got)
	}
	if got := p.read(0x2800); got == 0x42 {
		t.Error("horizontal mirroring: $2800 must map to the other bank")
	}
}

func TestScanlineDotBounds(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu
	p.WriteRegister(0x2001, 0x18) // rendering on

	for i := 0; i < 2*NumScanlines*NumDots; i++ {
		p.Tick()
		if p.Scanline < 0 || p.Scanline > 261 {
			t.Fatalf("scanline out of range: %d", p.Scanline)
		}
		if p.Dot < 0 || p.Dot > 340 {
			t.Fatalf("dot out of range: %d", p.Dot)
		}
	}
}

func TestFrameReadyAndOddFrameSkip(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	// Rendering disabled: every frame is exactly 341*262 dots.
	ticks := 0
	for !p.FrameReady() {
		p.Tick()
		ticks++
	}
	if ticks != NumScanlines*NumDots {
		t.Errorf("even frame length = %d dots, want %d", ticks, NumScanlines*NumDots)
	}
	p.ClearFrameReady()

	// Rendering enabled: the odd frame drops one dot.
	p.WriteRegister(0x2001, 0x08)
	ticks = 0
	for !p.FrameReady() {
		p.Tick()
		ticks++
	}
	if ticks != NumScanlines*NumDots-1 {
		t.Errorf("odd frame length = %d dots, want %d", ticks, NumScanlines*NumDots-1)
	}
}

func TestOAMDMACopy(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu

	var page [256]byte
	for i := range page {
		page[i] = uint8(i)
	}
	p.OAMDMA(page[:])

	p.WriteRegister(0x2003, 0x80)
	if got := p.ReadRegister(0x2004); got != 0x80 {
		t.Errorf("oam[0x80] = %#02x, want 0x80", got)
	}
}

func TestSpriteOverflowFlag(t *testing.T) {
	m := newTestMachine(t)
	p := m.ppu
	p.WriteRegister(0x2001, 0x18)

	// Nine sprites on scanline 50.
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 50
		p.oam[i*4+3] = uint8(i * 16)
	}

	tickTo(p, 50, 257)
	if p.status&(1<<spriteOverflow) == 0 {
		t.Error("overflow flag not set with nine sprites on a line")
	}
	if p.spriteCount != 8 {
		t.Errorf("spriteCount = %d, want 8", p.spriteCount)
	}
}
