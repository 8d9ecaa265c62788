package hw

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

func TestRAMMirroring(t *testing.T) {
	m := newTestMachine(t)

	m.bus.Write8(0x1234, 0x42)
	if got := m.bus.Read8(0x0234); got != 0x42 {
		t.Errorf("Read8(0x0234) = %#02x, want 0x42", got)
	}

	m.bus.Write8(0x07FF, 0xAB)
	if got := m.bus.Read8(0x1FFF); got != 0xAB {
		t.Errorf("Read8(0x1FFF) = %#02x, want 0xab", got)
	}

	// The four mirrors alias the same 2KB.
	m.bus.Write8(0x0000, 0xFF)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := m.bus.Read8(addr); got != 0xFF {
			t.Errorf("Read8(%#04x) = %#02x, want 0xff", addr, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	m := newTestMachine(t)

	// OAMADDR/OAMDATA repeat every 8 bytes up to $3FFF.
	m.bus.Write8(0x2003, 0x10)
	m.bus.Write8(0x3FF4, 0x77) // OAMDATA mirror
	m.bus.Write8(0x2003, 0x10)
	if got := m.bus.Read8(0x2004); got != 0x77 {
		t.Errorf("OAMDATA through mirror = %#02x, want 0x77", got)
	}
}

func TestControllerShift(t *testing.T) {
	m := newTestMachine(t)
	m.bus.Controllers[0].SetButtons(0b10110100)

	m.bus.Write8(0x4016, 1)
	m.bus.Write8(0x4016, 0)

	want := []uint8{0x40, 0x40, 0x41, 0x40, 0x41, 0x41, 0x40, 0x41}
	var got []uint8
	for range want {
		got = append(got, m.bus.Read8(0x4016))
	}
	if diff := gocmp.Diff(want, got); diff != "" {
		t.Errorf("controller reads mismatch (-want +got):\n%s", diff)
	}

	// Exhausted shift register returns 1s.
	for i := 0; i < 3; i++ {
		if got := m.bus.Read8(0x4016); got != 0x41 {
			t.Errorf("read after 8 shifts = %#02x, want 0x41", got)
		}
	}
}

func TestControllerStrobeHigh(t *testing.T) {
	m := newTestMachine(t)
	m.bus.Controllers[0].SetButtons(0x01)

	m.bus.Write8(0x4016, 1)
	// With the strobe held high every read reflects bit 0 of the live latch.
	for i := 0; i < 4; i++ {
		if got := m.bus.Read8(0x4016) & 1; got != 1 {
			t.Fatalf("strobed read bit = %d, want 1", got)
		}
	}

	m.bus.Controllers[0].SetButtons(0x00)
	if got := m.bus.Read8(0x4016) & 1; got != 0 {
		t.Fatalf("strobed read bit after release = %d, want 0", got)
	}
}

func TestOpenBus(t *testing.T) {
	m := newTestMachine(t)

	for _, addr := range []uint16{0x4018, 0x401F} {
		if got := m.bus.Read8(addr); got != 0xFF {
			t.Errorf("Read8(%#04x) = %#02x, want open bus 0xff", addr, got)
		}
	}
}

func TestOAMDMALatch(t *testing.T) {
	m := newTestMachine(t)

	if _, pending := m.bus.DMAPending(); pending {
		t.Fatal("DMA pending right after power up")
	}

	m.bus.Write8(0x4014, 0x02)
	page, pending := m.bus.DMAPending()
	if !pending || page != 0x02 {
		t.Fatalf("DMAPending() = (%#02x, %t), want (0x02, true)", page, pending)
	}

	m.bus.ClearDMA()
	if _, pending := m.bus.DMAPending(); pending {
		t.Fatal("DMA still pending after ClearDMA")
	}
}

func TestBusTickRatio(t *testing.T) {
	m := newTestMachine(t)

	// 114 CPU cycles move the PPU one scanline and one dot.
	m.bus.Tick(114)
	if m.ppu.Scanline != 1 || m.ppu.Dot != 1 {
		t.Errorf("PPU at (%d,%d) after 114 CPU cycles, want (1,1)",
			m.ppu.Scanline, m.ppu.Dot)
	}
}
