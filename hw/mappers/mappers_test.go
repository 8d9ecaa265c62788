package mappers

import (
	"testing"

	"tanuki/hw"
	"tanuki/ines"
)

// testCart builds a cartridge with patterned PRG so bank origins are
// recognizable: every byte holds its 8KB bank number.
func testCart(tb testing.TB, mapperID uint8, prgSize, chrSize int) *hw.Cartridge {
	tb.Helper()

	prg := make([]byte, prgSize)
	for i := range prg {
		prg[i] = uint8(i / 0x2000)
	}

	cart := &hw.Cartridge{
		PRGROM:    prg,
		PRGRAM:    make([]byte, 0x2000),
		Mirroring: ines.MirrorHorizontal,
		MapperID:  mapperID,
	}
	if chrSize > 0 {
		chr := make([]byte, chrSize)
		for i := range chr {
			chr[i] = uint8(i / 0x0400)
		}
		cart.CHRROM = chr
	} else {
		cart.CHRRAM = make([]byte, 0x2000)
	}

	if err := Load(cart); err != nil {
		tb.Fatalf("failed to load mapper %d: %s", mapperID, err)
	}
	return cart
}

func TestLoadUnsupportedMapper(t *testing.T) {
	cart := &hw.Cartridge{MapperID: 151}
	if err := Load(cart); err == nil {
		t.Fatal("expected an error for an unsupported mapper id")
	}
}

func TestNROMMirroring16K(t *testing.T) {
	cart := testCart(t, 0, 0x4000, 0x2000)
	cart.PRGROM[0x0123] = 0xAB

	// A single 16KB bank fills the 32KB window twice.
	if got := cart.CPURead(0x8123); got != 0xAB {
		t.Errorf("read at $8123 = %#02x, want 0xab", got)
	}
	if got := cart.CPURead(0xC123); got != 0xAB {
		t.Errorf("read at $C123 = %#02x, want 0xab (mirror)", got)
	}
}

func TestNROMPRGRAM(t *testing.T) {
	cart := testCart(t, 0, 0x4000, 0x2000)

	cart.CPUWrite(0x6000, 0x55)
	if got := cart.CPURead(0x6000); got != 0x55 {
		t.Errorf("PRG-RAM read = %#02x, want 0x55", got)
	}

	// PRG-ROM writes are dropped.
	before := cart.CPURead(0x8000)
	cart.CPUWrite(0x8000, ^before)
	if got := cart.CPURead(0x8000); got != before {
		t.Error("write to PRG-ROM was not dropped")
	}
}

func TestNROMCHRRAM(t *testing.T) {
	cart := testCart(t, 0, 0x4000, 0)

	cart.PPUWrite(0x1234, 0x77)
	if got := cart.PPURead(0x1234); got != 0x77 {
		t.Errorf("CHR-RAM read = %#02x, want 0x77", got)
	}
}

func TestUxROMBanking(t *testing.T) {
	cart := testCart(t, 2, 8*0x4000, 0)

	// The last bank is fixed at $C000.
	if got := cart.CPURead(0xC000); got != 14 {
		t.Errorf("fixed bank byte = %d, want 14", got)
	}

	cart.CPUWrite(0x8000, 3)
	if got := cart.CPURead(0x8000); got != 6 {
		t.Errorf("switched bank byte = %d, want 6", got)
	}
}

func TestCNROMBanking(t *testing.T) {
	cart := testCart(t, 3, 0x8000, 4*0x2000)

	cart.CPUWrite(0x8000, 2)
	if got := cart.PPURead(0x0000); got != 16 {
		t.Errorf("CHR bank 2 byte = %d, want 16", got)
	}
}

func TestAxROMBankingAndMirroring(t *testing.T) {
	cart := testCart(t, 7, 8*0x8000, 0)

	if cart.Mirroring != ines.MirrorSingleLow {
		t.Fatalf("mirroring = %s, want SingleLow after reset", cart.Mirroring)
	}

	cart.CPUWrite(0x8000, 0x12) // bank 2, single-high
	if got := cart.CPURead(0x8000); got != 8 {
		t.Errorf("32KB bank 2 byte = %d, want 8", got)
	}
	if cart.Mirroring != ines.MirrorSingleHigh {
		t.Errorf("mirroring = %s, want SingleHigh", cart.Mirroring)
	}
}

func TestGxROMBanking(t *testing.T) {
	cart := testCart(t, 66, 4*0x8000, 4*0x2000)

	cart.CPUWrite(0x8000, 0x21) // PRG bank 2, CHR bank 1
	if got := cart.CPURead(0x8000); got != 8 {
		t.Errorf("PRG bank 2 byte = %d, want 8", got)
	}
	if got := cart.PPURead(0x0000); got != 8 {
		t.Errorf("CHR bank 1 byte = %d, want 8", got)
	}
}

/* MMC3 */

func mmc3Cart(tb testing.TB) (*hw.Cartridge, *mmc3) {
	cart := testCart(tb, 4, 16*0x2000, 32*0x0400)
	return cart, cart.Mapper.(*mmc3)
}

func TestMMC3PRGBanking(t *testing.T) {
	cart, _ := mmc3Cart(t)

	// The last bank is always fixed at $E000.
	if got := cart.CPURead(0xE000); got != 15 {
		t.Errorf("$E000 byte = %d, want 15", got)
	}

	// R6 at $8000 in prg mode 0.
	cart.CPUWrite(0x8000, 6)
	cart.CPUWrite(0x8001, 3)
	if got := cart.CPURead(0x8000); got != 3 {
		t.Errorf("$8000 byte = %d, want bank 3", got)
	}
	if got := cart.CPURead(0xC000); got != 14 {
		t.Errorf("$C000 byte = %d, want second-to-last bank", got)
	}

	// prg mode 1 swaps R6 to $C000.
	cart.CPUWrite(0x8000, 0x46)
	if got := cart.CPURead(0xC000); got != 3 {
		t.Errorf("$C000 byte in mode 1 = %d, want bank 3", got)
	}
	if got := cart.CPURead(0x8000); got != 14 {
		t.Errorf("$8000 byte in mode 1 = %d, want second-to-last bank", got)
	}
}

func TestMMC3CHRBanking(t *testing.T) {
	cart, _ := mmc3Cart(t)

	// R0 selects a 2KB pair at $0000 in chr mode 0; bit 0 is ignored.
	cart.CPUWrite(0x8000, 0)
	cart.CPUWrite(0x8001, 9)
	if got := cart.PPURead(0x0000); got != 8 {
		t.Errorf("$0000 byte = %d, want bank 8 (paired)", got)
	}
	if got := cart.PPURead(0x0400); got != 9 {
		t.Errorf("$0400 byte = %d, want bank 9", got)
	}

	// R2 selects a 1KB bank at $1000.
	cart.CPUWrite(0x8000, 2)
	cart.CPUWrite(0x8001, 21)
	if got := cart.PPURead(0x1000); got != 21 {
		t.Errorf("$1000 byte = %d, want bank 21", got)
	}
}

func TestMMC3MirroringOverride(t *testing.T) {
	cart, _ := mmc3Cart(t)

	cart.CPUWrite(0xA000, 0)
	if cart.Mirroring != ines.MirrorVertical {
		t.Errorf("mirroring = %s, want Vertical", cart.Mirroring)
	}
	cart.CPUWrite(0xA000, 1)
	if cart.Mirroring != ines.MirrorHorizontal {
		t.Errorf("mirroring = %s, want Horizontal", cart.Mirroring)
	}
}

// clockA12 produces one clean filtered rising edge: a long low period
// followed by a read with A12 high.
func clockA12(m *mmc3, dot *uint32) {
	m.NotifyA12(0x0000, *dot)
	*dot += 100
	m.NotifyA12(0x1000, *dot)
	*dot += 100
}

func TestMMC3IRQCounter(t *testing.T) {
	cart, m := mmc3Cart(t)

	cart.CPUWrite(0xC000, 2) // latch
	cart.CPUWrite(0xC001, 0) // reload
	cart.CPUWrite(0xE001, 0) // enable

	dot := uint32(1000)
	clockA12(m, &dot) // reload: counter = 2
	if m.IRQPending() {
		t.Fatal("IRQ pending right after reload")
	}
	clockA12(m, &dot) // 1
	clockA12(m, &dot) // 0 -> IRQ
	if !m.IRQPending() {
		t.Fatal("no IRQ after counting down to zero")
	}

	m.IRQClear()
	if m.IRQPending() {
		t.Fatal("IRQClear did not drop the line")
	}
}

func TestMMC3IRQDisableAcks(t *testing.T) {
	cart, m := mmc3Cart(t)

	cart.CPUWrite(0xC000, 1)
	cart.CPUWrite(0xC001, 0)
	cart.CPUWrite(0xE001, 0)

	dot := uint32(1000)
	clockA12(m, &dot)
	clockA12(m, &dot)
	if !m.IRQPending() {
		t.Fatal("no IRQ raised")
	}

	cart.CPUWrite(0xE000, 0) // disarm and acknowledge
	if m.IRQPending() {
		t.Fatal("$E000 write did not acknowledge the IRQ")
	}
}

func TestMMC3A12Filter(t *testing.T) {
	cart, m := mmc3Cart(t)

	cart.CPUWrite(0xC000, 0) // latch 0: every clock raises when enabled
	cart.CPUWrite(0xC001, 0)
	cart.CPUWrite(0xE001, 0)

	// Edges 8 dots apart, as during sprite fetches: only the first edge
	// after a long low period may clock.
	dot := uint32(1000)
	m.NotifyA12(0x0000, dot)
	dot += 100
	m.NotifyA12(0x1000, dot) // clean edge: clocks
	clocks := 0
	if m.IRQPending() {
		clocks++
		m.IRQClear()
	}
	for i := 0; i < 8; i++ {
		m.NotifyA12(0x0000, dot+4)
		m.NotifyA12(0x1000, dot+8) // 8 dots of low: filtered
		dot += 8
		if m.IRQPending() {
			t.Fatal("filtered A12 edge clocked the counter")
		}
	}
	if clocks != 1 {
		t.Fatalf("clean edge clocks = %d, want 1", clocks)
	}
}

func TestMapperStateRoundTrip(t *testing.T) {
	cart, m := mmc3Cart(t)

	cart.CPUWrite(0x8000, 6)
	cart.CPUWrite(0x8001, 5)
	cart.CPUWrite(0xC000, 42)

	state := m.MapperState()

	cart.CPUWrite(0x8001, 9)
	cart.CPUWrite(0xC000, 7)
	m.RestoreMapper(state)

	if m.bankData[6] != 5 {
		t.Errorf("bankData[6] = %d after restore, want 5", m.bankData[6])
	}
	if m.irqLatch != 42 {
		t.Errorf("irqLatch = %d after restore, want 42", m.irqLatch)
	}
}
